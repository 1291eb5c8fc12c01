package user

import (
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/wajeeh/souqadmin/internal/core/apierr"
)

var (
	seedFirstNames = []string{
		"Sara", "Fatima", "Layla", "Mariam", "Aisha", "Nour", "Huda",
		"Yasmin", "Reem", "Dana", "Maha", "Hana", "Lina", "Rana", "Salma",
	}
	seedLastNames = []string{
		"Ahmed", "Ali", "Hassan", "Omar", "Khalid", "Abdullah", "Mohamed",
		"Ibrahim", "Mahmoud", "Said", "Rashid", "Hamad", "Jaber", "Salem", "Youssef",
	}
	seedLocations = []string{
		"Doha City, Qatar", "Al Wakrah, Qatar", "Al Rayyan, Qatar", "Lusail, Qatar",
	}
	// Weighted so roughly two thirds of accounts are active.
	seedStatuses = []Status{
		StatusActive, StatusActive, StatusActive, StatusActive,
		StatusSuspended, StatusBanned,
	}
)

// Generate builds count deterministic users from the given seed, with
// registration dates spread over the 180 days before now. The result is
// ordered newest-first by ID, matching the dataset the engine's base order
// is defined against.
func Generate(count int, seed int64, now time.Time) []*User {
	rng := rand.New(rand.NewSource(seed))
	users := make([]*User, 0, count)

	for i := 1; i <= count; i++ {
		first := seedFirstNames[rng.Intn(len(seedFirstNames))]
		last := seedLastNames[rng.Intn(len(seedLastNames))]
		daysAgo := rng.Intn(180)

		users = append(users, &User{
			ID:                i,
			Name:              first + " " + last,
			Email:             fmt.Sprintf("%s.%s%d@example.com", strings.ToLower(first), strings.ToLower(last), i),
			Mobile:            fmt.Sprintf("+974 555%04d", 1000+rng.Intn(9000)),
			Avatar:            first[:1] + last[:1],
			RegistrationDate:  NewDate(now.AddDate(0, 0, -daysAgo)),
			Status:            seedStatuses[rng.Intn(len(seedStatuses))],
			Location:          seedLocations[rng.Intn(len(seedLocations))],
			TotalBookings:     rng.Intn(20),
			TotalOrders:       rng.Intn(15),
			TotalSpent:        500 + rng.Intn(4500),
			ActiveBookings:    rng.Intn(3),
			CompletedBookings: rng.Intn(15),
		})
	}

	// Newest first.
	for i, j := 0, len(users)-1; i < j; i, j = i+1, j-1 {
		users[i], users[j] = users[j], users[i]
	}
	return users
}

// LoadFixture reads a YAML dataset, validates every record and returns the
// users in file order.
func LoadFixture(path string) ([]*User, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}

	var doc struct {
		Users []*User `yaml:"users"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}

	seen := make(map[int]bool, len(doc.Users))
	for _, u := range doc.Users {
		if err := u.Validate(); err != nil {
			return nil, err
		}
		if seen[u.ID] {
			return nil, apierr.Newf(apierr.KindInvalidArgument, "duplicate user id %d in fixture", u.ID)
		}
		seen[u.ID] = true
	}
	return doc.Users, nil
}
