package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stefmolin/login-attempt-simulator/internal/simulator"
)

var base = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

func sampleAttempts() []simulator.AttemptRecord {
	// Deliberately out of timestamp order.
	return []simulator.AttemptRecord{
		{Time: base.Add(2 * time.Second), SourceIP: "1.2.3.4", Username: "asmith", Success: true},
		{Time: base, SourceIP: "6.6.6.6", Username: "admin", FailureReason: simulator.FailureWrongPassword},
		{Time: base.Add(time.Second), SourceIP: "6.6.6.6", Username: "admn", FailureReason: simulator.FailureWrongUsername},
	}
}

func TestParseFormat(t *testing.T) {
	format, err := ParseFormat("csv")
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, format)

	format, err = ParseFormat("json")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, format)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}

func TestWriteAttemptsCSV(t *testing.T) {
	var buf bytes.Buffer
	records := sampleAttempts()
	require.NoError(t, WriteAttemptsCSV(&buf, records))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, []string{"datetime", "source_ip", "username", "success", "failure_reason"}, rows[0])

	// Rows come out sorted by timestamp regardless of creation order.
	assert.Equal(t, "admin", rows[1][2])
	assert.Equal(t, "error_wrong_password", rows[1][4])
	assert.Equal(t, "admn", rows[2][2])
	assert.Equal(t, []string{"2024-01-01T09:00:02Z", "1.2.3.4", "asmith", "true", ""}, rows[3])

	// The input slice is untouched.
	assert.Equal(t, base.Add(2*time.Second), records[0].Time)
}

func TestWriteAttemptsJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteAttemptsJSON(&buf, sampleAttempts()))

	var decoded []simulator.AttemptRecord
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 3)

	for i := 1; i < len(decoded); i++ {
		assert.False(t, decoded[i].Time.Before(decoded[i-1].Time))
	}
	assert.Equal(t, "admin", decoded[0].Username)
}

func TestWriteCampaignsCSV(t *testing.T) {
	id1 := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	id2 := uuid.MustParse("22222222-2222-2222-2222-222222222222")
	records := []simulator.CampaignRecord{
		{ID: id1, Start: base.Add(time.Hour), End: base.Add(2 * time.Hour), SourceIP: "6.6.6.6"},
		{ID: id2, Start: base, End: base.Add(time.Minute), SourceIP: "7.7.7.7"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCampaignsCSV(&buf, records))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"id", "start", "end", "source_ip"}, rows[0])
	assert.Equal(t, id2.String(), rows[1][0])
	assert.Equal(t, id1.String(), rows[2][0])
}

func TestWriteCampaignsJSON(t *testing.T) {
	records := []simulator.CampaignRecord{
		{ID: uuid.New(), Start: base.Add(time.Hour), End: base.Add(2 * time.Hour), SourceIP: "6.6.6.6"},
		{ID: uuid.New(), Start: base, End: base.Add(time.Minute), SourceIP: "7.7.7.7"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCampaignsJSON(&buf, records))

	var decoded []simulator.CampaignRecord
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "7.7.7.7", decoded[0].SourceIP)
}

func TestSaveFiles(t *testing.T) {
	dir := t.TempDir()

	attemptPath := filepath.Join(dir, "log.csv")
	require.NoError(t, SaveAttempts(attemptPath, FormatCSV, sampleAttempts()))
	assert.FileExists(t, attemptPath)

	campaignPath := filepath.Join(dir, "attacks.json")
	require.NoError(t, SaveCampaigns(campaignPath, FormatJSON, nil))
	assert.FileExists(t, campaignPath)
}
