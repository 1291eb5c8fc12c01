// Package user holds the marketplace user records, the in-memory record
// store backing mock mode, and the query engine that filters, sorts and
// paginates them.
package user

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/wajeeh/souqadmin/internal/core/apierr"
)

// Common errors
var (
	ErrNotFound = apierr.New(apierr.KindNotFound, "User not found")
)

// Status represents the moderation state of a user account.
type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
	StatusBanned    Status = "banned"
)

// Valid reports whether s is one of the three account states.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusSuspended, StatusBanned:
		return true
	}
	return false
}

// DateLayout is the wire format for registration dates.
const DateLayout = "Jan 2, 2006"

// Date is a day-granularity timestamp serialized as e.g. "Mar 15, 2025".
type Date struct {
	time.Time
}

// NewDate truncates t to its calendar day.
func NewDate(t time.Time) Date {
	return Date{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

// MarshalJSON renders the date in the dashboard wire format.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

// UnmarshalJSON parses the dashboard wire format.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid date %s", s)
	}
	t, err := time.Parse(DateLayout, s[1:len(s)-1])
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// UnmarshalYAML lets fixture files use the same date format as the wire.
func (d *Date) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// MarshalYAML renders the date in the wire format.
func (d Date) MarshalYAML() (interface{}, error) {
	return d.Format(DateLayout), nil
}

// User represents a marketplace customer account as the admin dashboard
// sees it. ID is unique and immutable once assigned.
type User struct {
	ID                int    `json:"id" yaml:"id"`
	Name              string `json:"name" yaml:"name"`
	Email             string `json:"email" yaml:"email"`
	Mobile            string `json:"mobile" yaml:"mobile"`
	Avatar            string `json:"avatar" yaml:"avatar"` // short initials label
	RegistrationDate  Date   `json:"registrationDate" yaml:"registrationDate"`
	Status            Status `json:"status" yaml:"status"`
	Location          string `json:"location,omitempty" yaml:"location,omitempty"`
	TotalBookings     int    `json:"totalBookings" yaml:"totalBookings"`
	TotalOrders       int    `json:"totalOrders" yaml:"totalOrders"`
	TotalSpent        int    `json:"totalSpent" yaml:"totalSpent"`
	ActiveBookings    int    `json:"activeBookings" yaml:"activeBookings"`
	CompletedBookings int    `json:"completedBookings" yaml:"completedBookings"`
}

// Validate enforces the record invariants: a known status and non-negative
// counters.
func (u *User) Validate() error {
	if !u.Status.Valid() {
		return apierr.Newf(apierr.KindInvalidArgument, "invalid status %q for user %d", u.Status, u.ID)
	}
	if u.TotalBookings < 0 || u.TotalOrders < 0 || u.TotalSpent < 0 ||
		u.ActiveBookings < 0 || u.CompletedBookings < 0 {
		return apierr.Newf(apierr.KindInvalidArgument, "negative counter on user %d", u.ID)
	}
	return nil
}

// Clone creates a copy of the user.
func (u *User) Clone() *User {
	clone := *u
	return &clone
}

// Page is one page of query results together with pre-pagination totals.
type Page struct {
	Data       []*User `json:"data"`
	Total      int     `json:"total"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
	TotalPages int     `json:"totalPages"`
}

// Clone deep-copies the page so cache snapshots cannot alias live records.
func (p *Page) Clone() *Page {
	if p == nil {
		return nil
	}
	clone := *p
	clone.Data = make([]*User, len(p.Data))
	for i, u := range p.Data {
		clone.Data[i] = u.Clone()
	}
	return &clone
}

// StatusUpdate is the payload of a status-change mutation.
type StatusUpdate struct {
	Status Status `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// AnalyticsSnapshot aggregates counts over the whole user base. It is
// derived on demand and never persisted.
type AnalyticsSnapshot struct {
	TotalUsers        int     `json:"totalUsers"`
	ActiveUsers       int     `json:"activeUsers"`
	SuspendedUsers    int     `json:"suspendedUsers"`
	BannedUsers       int     `json:"bannedUsers"`
	NewUsersThisMonth int     `json:"newUsersThisMonth"`
	UserGrowthRate    int     `json:"userGrowthRate"`
	TopSpenders       []*User `json:"topSpenders"`
}

// Clone deep-copies the snapshot.
func (a *AnalyticsSnapshot) Clone() *AnalyticsSnapshot {
	if a == nil {
		return nil
	}
	clone := *a
	clone.TopSpenders = make([]*User, len(a.TopSpenders))
	for i, u := range a.TopSpenders {
		clone.TopSpenders[i] = u.Clone()
	}
	return &clone
}
