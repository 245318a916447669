package simulator

import (
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestNewValidation(t *testing.T) {
	base := singleUserBase()

	tests := []struct {
		name     string
		provider IdentityProvider
		opts     Options
		wantErr  string
	}{
		{
			name:    "nil provider",
			opts:    Options{Start: testStart},
			wantErr: "identity provider is required",
		},
		{
			name:     "empty user base",
			provider: newStubProvider(map[string][]string{}),
			opts:     Options{Start: testStart},
			wantErr:  "user base is empty",
		},
		{
			name:     "missing start",
			provider: newStubProvider(base),
			opts:     Options{},
			wantErr:  "start time is required",
		},
		{
			name:     "end before start",
			provider: newStubProvider(base),
			opts:     Options{Start: testStart, End: testStart.Add(-time.Hour)},
			wantErr:  "is not after start",
		},
		{
			name:     "end equals start",
			provider: newStubProvider(base),
			opts:     Options{Start: testStart, End: testStart},
			wantErr:  "is not after start",
		},
		{
			name:     "empty attacker profile",
			provider: newStubProvider(base),
			opts:     Options{Start: testStart, AttackerSuccessProbs: []float64{}},
			wantErr:  "attacker success profile is empty",
		},
		{
			name:     "empty valid-user profile",
			provider: newStubProvider(base),
			opts:     Options{Start: testStart, ValidUserSuccessProbs: []float64{}},
			wantErr:  "valid-user success profile is empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.provider, tt.opts)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewDefaultEnd(t *testing.T) {
	s, err := New(newStubProvider(singleUserBase()), Options{
		Start:  testStart,
		Seed:   67,
		Logger: discardLogger(),
	})
	require.NoError(t, err)

	// A missing end defaults to start plus a uniform 1-50 days.
	assert.False(t, s.End().Before(testStart.Add(24*time.Hour)))
	assert.False(t, s.End().After(testStart.Add(50*24*time.Hour)))
}

func TestSimulateParamValidation(t *testing.T) {
	s := newTestSimulator(t, 71, singleUserBase())

	assert.Error(t, s.Simulate(Params{AttackProb: 1.5}))
	assert.Error(t, s.Simulate(Params{AttackProb: -0.1}))
	assert.Error(t, s.Simulate(Params{AttackProb: 0.5, TryAllUsersProb: 2}))
	assert.Error(t, s.Simulate(Params{AttackProb: 0.5, TryAllUsersProb: -1}))
}

func TestSimulateDeterminism(t *testing.T) {
	base := map[string][]string{
		"asmith": {"1.2.3.4", "5.6.7.8"},
		"bjones": {"9.10.11.12"},
		"ckim":   {"13.14.15.16", "17.18.19.20", "21.22.23.24"},
	}
	params := Params{AttackProb: 0.3, TryAllUsersProb: 0.5, VaryOrigins: true}

	run := func() ([]AttemptRecord, []CampaignRecord) {
		s, err := New(newStubProvider(base), Options{
			Start:  testStart,
			End:    testStart.Add(72 * time.Hour),
			Seed:   99,
			Logger: discardLogger(),
		})
		require.NoError(t, err)
		require.NoError(t, s.Simulate(params))
		return s.Log(), s.CampaignLog()
	}

	logA, campaignsA := run()
	logB, campaignsB := run()

	require.Equal(t, logA, logB)
	require.Equal(t, campaignsA, campaignsB)
	assert.NotEmpty(t, logA)
}

func TestSimulateDifferentSeedsDiverge(t *testing.T) {
	run := func(seed int64) []AttemptRecord {
		s, err := New(newStubProvider(multiUserBase()), Options{
			Start:  testStart,
			End:    testStart.Add(72 * time.Hour),
			Seed:   seed,
			Logger: discardLogger(),
		})
		require.NoError(t, err)
		require.NoError(t, s.Simulate(Params{AttackProb: 0.3, TryAllUsersProb: 0.5}))
		return s.Log()
	}

	assert.NotEqual(t, run(1), run(2))
}

func TestSimulateWithoutAttacks(t *testing.T) {
	base := map[string][]string{
		"asmith": {"1.2.3.4"},
		"bjones": {"5.6.7.8", "9.10.11.12"},
	}
	s := newTestSimulator(t, 42, base)
	require.NoError(t, s.Simulate(Params{AttackProb: 0}))

	assert.Empty(t, s.CampaignLog())

	records := s.Log()
	require.NotEmpty(t, records)

	// Without campaigns every origin belongs to a known user.
	known := map[string]bool{}
	for _, origins := range base {
		for _, origin := range origins {
			known[origin] = true
		}
	}
	for _, r := range records {
		assert.True(t, known[r.SourceIP], "unexpected origin %s", r.SourceIP)
	}
}

func TestSimulateCampaignEveryHour(t *testing.T) {
	s := newTestSimulator(t, 73, multiUserBase())
	require.NoError(t, s.Simulate(Params{AttackProb: 1, TryAllUsersProb: 1}))

	campaigns := s.CampaignLog()
	// 48 hour window, boundaries inclusive.
	require.Len(t, campaigns, 49)

	for i, c := range campaigns {
		hour := testStart.Add(time.Duration(i) * time.Hour)
		assert.False(t, c.Start.Before(hour), "campaign %d starts before its hour", i)
		assert.False(t, c.Start.After(hour.Add(time.Hour)), "campaign %d starts after its hour", i)
		assert.False(t, c.End.Before(c.Start))
		assert.NotEqual(t, uuid.Nil, c.ID)
		assert.NotEmpty(t, c.SourceIP)
	}
}

func TestLogReturnsCopy(t *testing.T) {
	s := newTestSimulator(t, 79, singleUserBase())
	require.NoError(t, s.Simulate(Params{}))

	records := s.Log()
	require.NotEmpty(t, records)
	records[0].Username = "tampered"

	assert.NotEqual(t, "tampered", s.Log()[0].Username)
}

func TestLockoutMembershipIsUnique(t *testing.T) {
	s := newTestSimulator(t, 83, singleUserBase())

	// Two exhausting invocations in a row cannot double-lock: the second
	// hits the locked branch instead of the attempt loop.
	s.attemptLogin(testStart, "6.6.6.6", "asmith", 1.5, []float64{0, 0, 0})
	require.True(t, s.IsLocked("asmith"))

	records, _ := s.attemptLogin(testStart, "6.6.6.6", "asmith", 1.5, []float64{0, 0, 0})
	require.Len(t, records, 1)
	assert.Equal(t, FailureAccountLocked, records[0].FailureReason)
	assert.LessOrEqual(t, len(s.LockedAccounts()), 1)
}
