// Package export serializes simulation logs. Logs arrive in creation
// order; sorting by timestamp happens here, never in the simulator.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/stefmolin/login-attempt-simulator/internal/simulator"
)

// Format selects the output encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ParseFormat validates a format string.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want csv or json)", s)
	}
}

var attemptHeader = []string{"datetime", "source_ip", "username", "success", "failure_reason"}

// WriteAttemptsCSV writes the attempt log as CSV, sorted by timestamp.
func WriteAttemptsCSV(w io.Writer, records []simulator.AttemptRecord) error {
	records = sortedAttempts(records)

	cw := csv.NewWriter(w)
	if err := cw.Write(attemptHeader); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.Time.Format(time.RFC3339),
			r.SourceIP,
			r.Username,
			strconv.FormatBool(r.Success),
			string(r.FailureReason),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

var campaignHeader = []string{"id", "start", "end", "source_ip"}

// WriteCampaignsCSV writes the campaign log as CSV, sorted by start time.
func WriteCampaignsCSV(w io.Writer, records []simulator.CampaignRecord) error {
	records = sortedCampaigns(records)

	cw := csv.NewWriter(w)
	if err := cw.Write(campaignHeader); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.ID.String(),
			r.Start.Format(time.RFC3339),
			r.End.Format(time.RFC3339),
			r.SourceIP,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteAttemptsJSON writes the attempt log as a JSON array, sorted by
// timestamp.
func WriteAttemptsJSON(w io.Writer, records []simulator.AttemptRecord) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(sortedAttempts(records))
}

// WriteCampaignsJSON writes the campaign log as a JSON array, sorted by
// start time.
func WriteCampaignsJSON(w io.Writer, records []simulator.CampaignRecord) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(sortedCampaigns(records))
}

// SaveAttempts writes the attempt log to a file in the given format.
func SaveAttempts(path string, format Format, records []simulator.AttemptRecord) error {
	return save(path, func(w io.Writer) error {
		if format == FormatJSON {
			return WriteAttemptsJSON(w, records)
		}
		return WriteAttemptsCSV(w, records)
	})
}

// SaveCampaigns writes the campaign log to a file in the given format.
func SaveCampaigns(path string, format Format, records []simulator.CampaignRecord) error {
	return save(path, func(w io.Writer) error {
		if format == FormatJSON {
			return WriteCampaignsJSON(w, records)
		}
		return WriteCampaignsCSV(w, records)
	})
}

func save(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func sortedAttempts(records []simulator.AttemptRecord) []simulator.AttemptRecord {
	out := make([]simulator.AttemptRecord, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Time.Before(out[j].Time)
	})
	return out
}

func sortedCampaigns(records []simulator.CampaignRecord) []simulator.CampaignRecord {
	out := make([]simulator.CampaignRecord, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start.Before(out[j].Start)
	})
	return out
}
