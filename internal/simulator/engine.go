package simulator

import "time"

// attemptsBeforeLockout is the number of consecutive failed attempts the
// site permits before locking an account.
const attemptsBeforeLockout = 3

// attemptLogin runs one login attempt sequence for a (username, origin)
// pair and returns the records produced plus the simulated time after the
// last recorded event.
//
// usernameAccuracy is the probability the username is typed correctly; it
// is drawn once per invocation by the actor wrappers and may sit outside
// [0, 1], which simply saturates the checks. The success profile's length
// caps the number of attempts, jointly with attemptsBeforeLockout.
func (s *Simulator) attemptLogin(when time.Time, sourceIP, username string, usernameAccuracy float64, successProfile []float64) ([]AttemptRecord, time.Time) {
	current := when
	correct := username
	if s.rng.Float64() > usernameAccuracy {
		username = s.distortUsername(username)
	}

	if _, locked := s.locked[username]; locked {
		current = current.Add(time.Second)
		records := []AttemptRecord{{
			Time:          current,
			SourceIP:      sourceIP,
			Username:      username,
			FailureReason: FailureAccountLocked,
		}}
		// The account unlocks half the time, modeling expiry of the
		// lockout window before the next attempt.
		if s.rng.Float64() >= 0.5 {
			delete(s.locked, username)
		}
		return records, current
	}

	tries := len(successProfile)
	records := make([]AttemptRecord, 0, min(tries, attemptsBeforeLockout))
	succeeded := false
	for i := 0; i < tries && i < attemptsBeforeLockout; i++ {
		current = current.Add(time.Second)

		if !s.isValidUser(username) {
			records = append(records, AttemptRecord{
				Time:          current,
				SourceIP:      sourceIP,
				Username:      username,
				FailureReason: FailureWrongUsername,
			})
			// The actor may notice the typo and correct it for the
			// next attempt.
			if s.rng.Float64() <= usernameAccuracy {
				username = correct
			}
			continue
		}

		if s.rng.Float64() <= successProfile[i] {
			records = append(records, AttemptRecord{
				Time:     current,
				SourceIP: sourceIP,
				Username: username,
				Success:  true,
			})
			succeeded = true
			break
		}

		records = append(records, AttemptRecord{
			Time:          current,
			SourceIP:      sourceIP,
			Username:      username,
			FailureReason: FailureWrongPassword,
		})
	}

	// Lockout requires a profile long enough to permit the full number of
	// failed attempts and a final username that names a real account.
	if !succeeded && tries >= attemptsBeforeLockout && s.isValidUser(username) {
		s.locked[username] = struct{}{}
	}

	return records, current
}

// attackerAttempt runs one attacker invocation. Attackers rarely know the
// exact username, so accuracy centers low with high variance.
func (s *Simulator) attackerAttempt(when time.Time, sourceIP, username string) ([]AttemptRecord, time.Time) {
	accuracy := s.rng.normal(0.35, 0.5)
	return s.attemptLogin(when, sourceIP, username, accuracy, s.attackerProbs)
}

// validUserAttempt runs one legitimate-user invocation from the given
// origin. Valid users essentially always type their own username right.
func (s *Simulator) validUserAttempt(when time.Time, username, sourceIP string) ([]AttemptRecord, time.Time) {
	accuracy := s.rng.normal(1.01, 0.01)
	return s.attemptLogin(when, sourceIP, username, accuracy, s.validUserProbs)
}

// distortUsername mistypes a username: a random character is either
// dropped or replaced with a random lowercase letter.
func (s *Simulator) distortUsername(username string) string {
	runes := []rune(username)
	if len(runes) == 0 {
		return username
	}
	i := s.rng.IntN(len(runes))
	if s.rng.Float64() < 0.5 {
		return string(runes[:i]) + string(runes[i+1:])
	}
	runes[i] = rune('a' + s.rng.IntN(26))
	return string(runes)
}

func (s *Simulator) isValidUser(username string) bool {
	_, ok := s.valid[username]
	return ok
}
