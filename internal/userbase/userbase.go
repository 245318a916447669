// Package userbase manages the simulated user population: the mapping of
// usernames to the network origins they are known to log in from, its JSON
// persistence, and generation of fresh user bases.
package userbase

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// UserBase maps usernames to the list of origins (IPv4 address strings)
// each user is known to log in from.
type UserBase map[string][]string

// Usernames returns the usernames in sorted order so iteration is stable
// across runs.
func (ub UserBase) Usernames() []string {
	users := make([]string, 0, len(ub))
	for user := range ub {
		users = append(users, user)
	}
	sort.Strings(users)
	return users
}

// Validate checks that the user base is usable for simulation.
func (ub UserBase) Validate() error {
	if len(ub) == 0 {
		return fmt.Errorf("user base is empty")
	}
	for user, origins := range ub {
		if user == "" {
			return fmt.Errorf("user base contains an empty username")
		}
		if len(origins) == 0 {
			return fmt.Errorf("user %q has no origins", user)
		}
	}
	return nil
}

// Save writes the user base to path as JSON.
func Save(path string, ub UserBase) error {
	data, err := json.MarshalIndent(ub, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal user base: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write user base: %w", err)
	}
	return nil
}

// Load reads a user base JSON file and validates it.
func Load(path string) (UserBase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read user base: %w", err)
	}
	var ub UserBase
	if err := json.Unmarshal(data, &ub); err != nil {
		return nil, fmt.Errorf("parse user base %s: %w", path, err)
	}
	if err := ub.Validate(); err != nil {
		return nil, fmt.Errorf("user base %s: %w", path, err)
	}
	return ub, nil
}
