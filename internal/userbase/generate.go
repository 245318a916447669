package userbase

import (
	"net/netip"

	"github.com/brianvoe/gofakeit/v6"
)

var surnames = []string{"smith", "jones", "kim", "lopez", "brown"}

// serviceAccounts are well-known accounts attackers tend to probe first.
var serviceAccounts = []string{"admin", "master", "dba"}

// MakeUsernames builds the standard population: every lowercase first
// initial combined with each surname, plus the service accounts.
func MakeUsernames() []string {
	users := make([]string, 0, 26*len(surnames)+len(serviceAccounts))
	for initial := 'a'; initial <= 'z'; initial++ {
		for _, surname := range surnames {
			users = append(users, string(initial)+surname)
		}
	}
	users = append(users, serviceAccounts...)
	return users
}

// Generator produces fake but plausible network origins. All randomness
// comes from a seeded faker so generation is reproducible.
type Generator struct {
	faker *gofakeit.Faker
}

// NewGenerator returns a Generator seeded with the given value.
func NewGenerator(seed int64) *Generator {
	return &Generator{faker: gofakeit.New(seed)}
}

// PublicIPv4 returns a random globally routable IPv4 address string.
// Private, loopback, link-local, multicast, and unspecified addresses are
// redrawn.
func (g *Generator) PublicIPv4() string {
	for {
		ip := g.faker.IPv4Address()
		addr, err := netip.ParseAddr(ip)
		if err != nil {
			continue
		}
		if isPublic(addr) {
			return ip
		}
	}
}

func isPublic(addr netip.Addr) bool {
	// IsGlobalUnicast rules out loopback, multicast, link-local,
	// unspecified, and the broadcast address, but not RFC 1918 space.
	return addr.IsGlobalUnicast() && !addr.IsPrivate()
}

// AssignOrigins gives each user between one and three known origins.
func (g *Generator) AssignOrigins(users []string) UserBase {
	ub := make(UserBase, len(users))
	for _, user := range users {
		n := g.faker.Number(1, 3)
		origins := make([]string, n)
		for i := range origins {
			origins[i] = g.PublicIPv4()
		}
		ub[user] = origins
	}
	return ub
}
