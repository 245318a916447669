// Package simulator synthesizes a labeled event log of website login
// attempts, mixing legitimate-user traffic with credential-guessing
// campaigns over a simulated time range. The walk is single-threaded and
// fully determined by the configured seed.
package simulator

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Default success profiles. A profile's length is also the maximum number
// of attempts its actor class makes per invocation.
var (
	defaultAttackerProbs  = []float64{0.25, 0.45}
	defaultValidUserProbs = []float64{0.87, 0.93, 0.95}
)

// IdentityProvider supplies the simulated user population.
type IdentityProvider interface {
	// Usernames returns all valid usernames in a stable order.
	Usernames() []string
	// Origins returns the known origins for a username.
	Origins(username string) []string
	// RandomOrigin returns an origin unaffiliated with any user, used
	// for attacker traffic.
	RandomOrigin() string
}

// Options configures a Simulator at construction.
type Options struct {
	// Start is the beginning of the simulated window. Required.
	Start time.Time
	// End is the end of the simulated window, inclusive at hour
	// granularity. Zero means Start plus a uniform 1-50 days.
	End time.Time
	// AttackerSuccessProbs is the attacker success profile. Nil means
	// the default; explicitly empty is a configuration error.
	AttackerSuccessProbs []float64
	// ValidUserSuccessProbs is the legitimate-user success profile.
	ValidUserSuccessProbs []float64
	// Seed fixes the random stream. The same seed, provider contents,
	// and options reproduce an identical event sequence.
	Seed int64
	// Logger receives progress logging. Nil means slog.Default.
	Logger *slog.Logger
}

// Params configures one Simulate run.
type Params struct {
	// AttackProb is the probability of a campaign in any given hour.
	AttackProb float64
	// TryAllUsersProb is the probability a campaign targets every user
	// instead of a random subset.
	TryAllUsersProb float64
	// VaryOrigins makes the attacker switch origins between targets.
	VaryOrigins bool
}

func (p Params) validate() error {
	if p.AttackProb < 0 || p.AttackProb > 1 {
		return fmt.Errorf("attack probability %v outside [0, 1]", p.AttackProb)
	}
	if p.TryAllUsersProb < 0 || p.TryAllUsersProb > 1 {
		return fmt.Errorf("try-all-users probability %v outside [0, 1]", p.TryAllUsersProb)
	}
	return nil
}

// Simulator owns the lockout set and both output logs for one simulation
// pass. It is not safe for concurrent use.
type Simulator struct {
	provider IdentityProvider
	users    []string
	valid    map[string]struct{}

	start time.Time
	end   time.Time

	attackerProbs  []float64
	validUserProbs []float64

	locked    map[string]struct{}
	log       []AttemptRecord
	campaigns []CampaignRecord

	rng    *rng
	logger *slog.Logger
}

// New validates the configuration and builds a Simulator. Configuration
// errors (empty user set, empty success profile, end not after start) are
// reported immediately rather than surfacing mid-run.
func New(provider IdentityProvider, opts Options) (*Simulator, error) {
	if provider == nil {
		return nil, fmt.Errorf("identity provider is required")
	}
	names := provider.Usernames()
	if len(names) == 0 {
		return nil, fmt.Errorf("user base is empty")
	}
	if opts.Start.IsZero() {
		return nil, fmt.Errorf("start time is required")
	}

	attackerProbs := opts.AttackerSuccessProbs
	if attackerProbs == nil {
		attackerProbs = defaultAttackerProbs
	} else if len(attackerProbs) == 0 {
		return nil, fmt.Errorf("attacker success profile is empty")
	}
	validUserProbs := opts.ValidUserSuccessProbs
	if validUserProbs == nil {
		validUserProbs = defaultValidUserProbs
	} else if len(validUserProbs) == 0 {
		return nil, fmt.Errorf("valid-user success profile is empty")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	users := make([]string, len(names))
	copy(users, names)
	valid := make(map[string]struct{}, len(users))
	for _, user := range users {
		valid[user] = struct{}{}
	}

	s := &Simulator{
		provider:       provider,
		users:          users,
		valid:          valid,
		start:          opts.Start,
		attackerProbs:  attackerProbs,
		validUserProbs: validUserProbs,
		locked:         make(map[string]struct{}),
		rng:            newRNG(opts.Seed),
		logger:         logger,
	}

	switch {
	case opts.End.IsZero():
		s.end = s.start.Add(hoursDuration(24 * s.rng.uniform(1, 50)))
	case !opts.End.After(opts.Start):
		return nil, fmt.Errorf("end %v is not after start %v", opts.End, opts.Start)
	default:
		s.end = opts.End
	}

	return s, nil
}

// Simulate walks the configured window hour by hour, triggering at most
// one campaign per hour and always generating legitimate arrivals. It may
// be called once per Simulator; the logs accumulate across calls.
func (s *Simulator) Simulate(p Params) error {
	if err := p.validate(); err != nil {
		return err
	}

	hours := int(s.end.Sub(s.start).Hours())
	s.logger.Info("starting simulation",
		slog.Time("start", s.start),
		slog.Time("end", s.end),
		slog.Int("hours", hours+1),
		slog.Int("users", len(s.users)),
	)

	for offset := 0; offset <= hours; offset++ {
		current := s.start.Add(time.Duration(offset) * time.Hour)

		if s.rng.Float64() < p.AttackProb {
			s.runCampaign(current, p)
		}
		s.runArrivals(current)
	}

	s.logger.Info("simulation complete",
		slog.Int("attempts", len(s.log)),
		slog.Int("campaigns", len(s.campaigns)),
	)
	return nil
}

// runCampaign starts one campaign at a random point inside the hour.
func (s *Simulator) runCampaign(hour time.Time, p Params) {
	start := hour.Add(hoursDuration(s.rng.Float64()))

	var targets []string
	if s.rng.Float64() < p.TryAllUsersProb {
		targets = s.users
	} else {
		targets = s.sampleUsers(s.rng.IntN(len(s.users) + 1))
	}

	origin, end := s.hack(start, targets, p.VaryOrigins)
	id, _ := uuid.NewRandomFromReader(s.rng)
	s.campaigns = append(s.campaigns, CampaignRecord{
		ID:       id,
		Start:    start,
		End:      end,
		SourceIP: origin,
	})

	s.logger.Debug("campaign finished",
		slog.String("id", id.String()),
		slog.String("source_ip", origin),
		slog.Int("targets", len(targets)),
	)
}

// runArrivals generates the hour's legitimate traffic. One user and one of
// their origins are drawn once for the hour; every arrival that hour
// funnels through that pair.
func (s *Simulator) runArrivals(hour time.Time) {
	count, offsets := s.validUserArrivals(hour)

	username := s.users[s.rng.IntN(len(s.users))]
	origins := s.provider.Origins(username)
	origin := origins[s.rng.IntN(len(origins))]

	current := hour
	for i := 0; i < count; i++ {
		current = current.Add(hoursDuration(offsets[i]))
		records, end := s.validUserAttempt(current, username, origin)
		s.log = append(s.log, records...)
		current = end
	}
}

// sampleUsers returns n distinct users in random order.
func (s *Simulator) sampleUsers(n int) []string {
	perm := s.rng.Perm(len(s.users))
	sample := make([]string, n)
	for i := 0; i < n; i++ {
		sample[i] = s.users[perm[i]]
	}
	return sample
}

// Log returns a copy of the attempt log in creation order.
func (s *Simulator) Log() []AttemptRecord {
	out := make([]AttemptRecord, len(s.log))
	copy(out, s.log)
	return out
}

// CampaignLog returns a copy of the campaign log in creation order.
func (s *Simulator) CampaignLog() []CampaignRecord {
	out := make([]CampaignRecord, len(s.campaigns))
	copy(out, s.campaigns)
	return out
}

// IsLocked reports whether a username is currently locked out.
func (s *Simulator) IsLocked(username string) bool {
	_, ok := s.locked[username]
	return ok
}

// LockedAccounts returns the currently locked usernames, sorted.
func (s *Simulator) LockedAccounts() []string {
	out := make([]string, 0, len(s.locked))
	for user := range s.locked {
		out = append(out, user)
	}
	sort.Strings(out)
	return out
}

// End returns the end of the simulated window, resolved at construction.
func (s *Simulator) End() time.Time {
	return s.end
}

func hoursDuration(hours float64) time.Duration {
	return time.Duration(hours * float64(time.Hour))
}
