package user

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func regDate(year int, month time.Month, day int) Date {
	return NewDate(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

func TestAnalyzeCounts(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	store := []*User{
		{ID: 1, Status: StatusActive, RegistrationDate: regDate(2026, time.March, 2)},
		{ID: 2, Status: StatusSuspended, RegistrationDate: regDate(2026, time.February, 20)},
		{ID: 3, Status: StatusBanned, RegistrationDate: regDate(2026, time.February, 1)},
		{ID: 4, Status: StatusActive, RegistrationDate: regDate(2025, time.March, 10)}, // same month, wrong year
	}

	snap := Analyze(store, now)
	assert.Equal(t, 4, snap.TotalUsers)
	assert.Equal(t, 2, snap.ActiveUsers)
	assert.Equal(t, 1, snap.SuspendedUsers)
	assert.Equal(t, 1, snap.BannedUsers)
	assert.Equal(t, 1, snap.NewUsersThisMonth)
	// (1 - 2) / 2 * 100 = -50
	assert.Equal(t, -50, snap.UserGrowthRate)
}

func TestAnalyzeGrowthRateZeroDivision(t *testing.T) {
	now := time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	store := []*User{
		{ID: 1, Status: StatusActive, RegistrationDate: regDate(2026, time.March, 1)},
		{ID: 2, Status: StatusActive, RegistrationDate: regDate(2026, time.March, 5)},
	}

	// No registrations last month: rate is defined as 0, not an error.
	snap := Analyze(store, now)
	assert.Equal(t, 2, snap.NewUsersThisMonth)
	assert.Equal(t, 0, snap.UserGrowthRate)
}

func TestAnalyzeJanuaryLooksAtDecember(t *testing.T) {
	now := time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)
	store := []*User{
		{ID: 1, Status: StatusActive, RegistrationDate: regDate(2026, time.January, 3)},
		{ID: 2, Status: StatusActive, RegistrationDate: regDate(2025, time.December, 28)},
		{ID: 3, Status: StatusActive, RegistrationDate: regDate(2025, time.December, 2)},
	}

	snap := Analyze(store, now)
	assert.Equal(t, 1, snap.NewUsersThisMonth)
	// (1 - 2) / 2 * 100 = -50
	assert.Equal(t, -50, snap.UserGrowthRate)
}

func TestAnalyzeTopSpenders(t *testing.T) {
	now := time.Now()
	store := []*User{
		{ID: 1, Status: StatusActive, TotalSpent: 100},
		{ID: 2, Status: StatusActive, TotalSpent: 900},
		{ID: 3, Status: StatusActive, TotalSpent: 500},
		{ID: 4, Status: StatusActive, TotalSpent: 500}, // ties keep store order
		{ID: 5, Status: StatusActive, TotalSpent: 700},
		{ID: 6, Status: StatusActive, TotalSpent: 200},
		{ID: 7, Status: StatusActive, TotalSpent: 800},
	}

	snap := Analyze(store, now)
	assert.Equal(t, []int{2, 7, 5, 3, 4}, ids(snap.TopSpenders))
}

func TestAnalyzeFewerUsersThanTopN(t *testing.T) {
	store := []*User{
		{ID: 1, Status: StatusActive, TotalSpent: 10},
		{ID: 2, Status: StatusActive, TotalSpent: 20},
	}

	snap := Analyze(store, time.Now())
	assert.Equal(t, []int{2, 1}, ids(snap.TopSpenders))
}
