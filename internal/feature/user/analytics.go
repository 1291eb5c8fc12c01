package user

import (
	"math"
	"sort"
	"time"
)

// TopSpenderCount is how many of the highest-spending users the analytics
// snapshot carries.
const TopSpenderCount = 5

// Analyze computes the aggregate snapshot over users. "This month" is the
// calendar month and year of now, supplied by the caller so the result is
// reproducible. Records in the snapshot alias the input.
func Analyze(users []*User, now time.Time) *AnalyticsSnapshot {
	snap := &AnalyticsSnapshot{TotalUsers: len(users)}

	for _, u := range users {
		switch u.Status {
		case StatusActive:
			snap.ActiveUsers++
		case StatusSuspended:
			snap.SuspendedUsers++
		case StatusBanned:
			snap.BannedUsers++
		}
	}

	thisMonth, thisYear := now.Month(), now.Year()
	lastMonthRef := now.AddDate(0, -1, -now.Day()+1) // first day of previous month
	lastMonth, lastYear := lastMonthRef.Month(), lastMonthRef.Year()

	var newLastMonth int
	for _, u := range users {
		reg := u.RegistrationDate
		if reg.Month() == thisMonth && reg.Year() == thisYear {
			snap.NewUsersThisMonth++
		}
		if reg.Month() == lastMonth && reg.Year() == lastYear {
			newLastMonth++
		}
	}

	// Zero registrations last month means no meaningful rate, reported as
	// 0 rather than an error.
	if newLastMonth > 0 {
		snap.UserGrowthRate = int(math.Round(float64(snap.NewUsersThisMonth-newLastMonth) / float64(newLastMonth) * 100))
	}

	top := make([]*User, len(users))
	copy(top, users)
	// Stable: equal spenders keep store order.
	sort.SliceStable(top, func(i, j int) bool { return top[i].TotalSpent > top[j].TotalSpent })
	if len(top) > TopSpenderCount {
		top = top[:TopSpenderCount]
	}
	snap.TopSpenders = top

	return snap
}
