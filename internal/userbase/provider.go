package userbase

import "fmt"

// Provider exposes a user base to the simulator: stable username ordering,
// per-user origin lookup, and random origins for unaffiliated traffic.
type Provider struct {
	base  UserBase
	users []string
	gen   *Generator
}

// NewProvider wraps a validated user base and an origin generator.
func NewProvider(base UserBase, gen *Generator) (*Provider, error) {
	if err := base.Validate(); err != nil {
		return nil, err
	}
	if gen == nil {
		return nil, fmt.Errorf("origin generator is required")
	}
	return &Provider{
		base:  base,
		users: base.Usernames(),
		gen:   gen,
	}, nil
}

// Usernames returns the usernames in sorted order.
func (p *Provider) Usernames() []string {
	return p.users
}

// Origins returns the known origins for a username, nil if unknown.
func (p *Provider) Origins(username string) []string {
	return p.base[username]
}

// RandomOrigin returns a random public origin unaffiliated with any user.
func (p *Provider) RandomOrigin() string {
	return p.gen.PublicIPv4()
}
