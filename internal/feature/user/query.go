package user

import (
	"fmt"
	"sort"
	"strings"

	"github.com/wajeeh/souqadmin/internal/core/apierr"
)

// Sort fields accepted by the query engine.
const (
	SortByName             = "name"
	SortByRegistrationDate = "registrationDate"
	SortByTotalSpent       = "totalSpent"
)

// Sort directions.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// FilterAll disables status filtering.
const FilterAll = "all"

// Defaults applied by Normalized.
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Query describes one list request: filters, sort and page window. Two
// queries address the same cache entry iff all fields compare equal.
type Query struct {
	Page      int
	Limit     int
	Search    string
	Status    string // active|suspended|banned|all
	SortBy    string // empty means store order
	SortOrder string // asc|desc
}

// DefaultQuery returns the descriptor used when the caller specifies
// nothing.
func DefaultQuery() Query {
	return Query{Page: DefaultPage, Limit: DefaultLimit, Status: FilterAll, SortOrder: SortDesc}
}

// Normalized fills zero values with their defaults. It does not validate.
func (q Query) Normalized() Query {
	if q.Page == 0 {
		q.Page = DefaultPage
	}
	if q.Limit == 0 {
		q.Limit = DefaultLimit
	}
	if q.Status == "" {
		q.Status = FilterAll
	}
	// The original dashboard treats a missing direction as descending.
	if q.SortOrder == "" {
		q.SortOrder = SortDesc
	}
	return q
}

// Validate rejects descriptors the engine cannot run.
func (q Query) Validate() error {
	if q.Limit <= 0 {
		return apierr.Newf(apierr.KindInvalidArgument, "limit must be positive, got %d", q.Limit)
	}
	if q.Page <= 0 {
		return apierr.Newf(apierr.KindInvalidArgument, "page must be positive, got %d", q.Page)
	}
	switch q.Status {
	case FilterAll, string(StatusActive), string(StatusSuspended), string(StatusBanned):
	default:
		return apierr.Newf(apierr.KindInvalidArgument, "unknown status filter %q", q.Status)
	}
	switch q.SortBy {
	case "", SortByName, SortByRegistrationDate, SortByTotalSpent:
	default:
		return apierr.Newf(apierr.KindInvalidArgument, "unknown sort field %q", q.SortBy)
	}
	switch q.SortOrder {
	case SortAsc, SortDesc:
	default:
		return apierr.Newf(apierr.KindInvalidArgument, "unknown sort order %q", q.SortOrder)
	}
	return nil
}

// Key renders the canonical cache-key fragment for the descriptor.
func (q Query) Key() string {
	return fmt.Sprintf("p=%d&l=%d&q=%s&st=%s&sb=%s&so=%s",
		q.Page, q.Limit, q.Search, q.Status, q.SortBy, q.SortOrder)
}

// Run executes the query over users in a fixed pipeline: status filter,
// then search filter, then stable sort, then pagination. The input slice is
// never mutated; records in the result alias the input.
func Run(users []*User, q Query) (*Page, error) {
	q = q.Normalized()
	if err := q.Validate(); err != nil {
		return nil, err
	}

	filtered := users
	if q.Status != FilterAll {
		filtered = filterStatus(filtered, Status(q.Status))
	}
	if search := strings.TrimSpace(q.Search); search != "" {
		filtered = filterSearch(filtered, search)
	}

	if q.SortBy != "" {
		sorted := make([]*User, len(filtered))
		copy(sorted, filtered)
		cmp := comparator(q.SortBy)
		if q.SortOrder == SortDesc {
			sort.SliceStable(sorted, func(i, j int) bool { return cmp(sorted[i], sorted[j]) > 0 })
		} else {
			sort.SliceStable(sorted, func(i, j int) bool { return cmp(sorted[i], sorted[j]) < 0 })
		}
		filtered = sorted
	}

	total := len(filtered)
	start := (q.Page - 1) * q.Limit
	end := start + q.Limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	items := make([]*User, end-start)
	copy(items, filtered[start:end])

	return &Page{
		Data:       items,
		Total:      total,
		Page:       q.Page,
		Limit:      q.Limit,
		TotalPages: (total + q.Limit - 1) / q.Limit,
	}, nil
}

func filterStatus(users []*User, status Status) []*User {
	out := make([]*User, 0, len(users))
	for _, u := range users {
		if u.Status == status {
			out = append(out, u)
		}
	}
	return out
}

// filterSearch keeps users whose name, email or mobile contains the search
// string, case-insensitively. Plain substring match, no tokenization.
func filterSearch(users []*User, search string) []*User {
	needle := strings.ToLower(search)
	out := make([]*User, 0, len(users))
	for _, u := range users {
		if strings.Contains(strings.ToLower(u.Name), needle) ||
			strings.Contains(strings.ToLower(u.Email), needle) ||
			strings.Contains(strings.ToLower(u.Mobile), needle) {
			out = append(out, u)
		}
	}
	return out
}

func comparator(sortBy string) func(a, b *User) int {
	switch sortBy {
	case SortByName:
		return func(a, b *User) int {
			return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		}
	case SortByRegistrationDate:
		return func(a, b *User) int {
			return a.RegistrationDate.Compare(b.RegistrationDate.Time)
		}
	default: // SortByTotalSpent, guarded by Validate
		return func(a, b *User) int {
			return a.TotalSpent - b.TotalSpent
		}
	}
}
