package user

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wajeeh/souqadmin/internal/core/apierr"
)

func testUser(id int, status Status) *User {
	return &User{
		ID:               id,
		Name:             fmt.Sprintf("User %d", id),
		Email:            fmt.Sprintf("user%d@example.com", id),
		Mobile:           fmt.Sprintf("+974 555%04d", id),
		Status:           status,
		RegistrationDate: NewDate(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, id)),
		TotalSpent:       id * 100,
	}
}

func TestRunStatusFilter(t *testing.T) {
	store := []*User{
		testUser(1, StatusActive),
		testUser(2, StatusSuspended),
		testUser(3, StatusActive),
	}

	page, err := Run(store, Query{Status: "active", Page: 1, Limit: 10})
	require.NoError(t, err)

	require.Len(t, page.Data, 2)
	assert.Equal(t, 1, page.Data[0].ID)
	assert.Equal(t, 3, page.Data[1].ID)
	assert.Equal(t, 2, page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 10, page.Limit)
	assert.Equal(t, 1, page.TotalPages)
}

func TestRunSearch(t *testing.T) {
	store := []*User{
		{ID: 1, Name: "Sara Ahmed", Email: "sara@example.com", Mobile: "+974 5551000", Status: StatusActive},
		{ID: 2, Name: "Layla Hassan", Email: "layla@example.com", Mobile: "+974 5552000", Status: StatusActive},
		{ID: 3, Name: "Reem Omar", Email: "sara.omar@example.com", Mobile: "+974 5553000", Status: StatusActive},
	}

	// Case-insensitive, matches across name OR email OR mobile.
	page, err := Run(store, Query{Search: "SARA"})
	require.NoError(t, err)
	require.Len(t, page.Data, 2)
	assert.Equal(t, 1, page.Data[0].ID)
	assert.Equal(t, 3, page.Data[1].ID)

	page, err = Run(store, Query{Search: "5552"})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, 2, page.Data[0].ID)

	// Whitespace-only search is no filter.
	page, err = Run(store, Query{Search: "   "})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
}

func TestRunFilterComposition(t *testing.T) {
	store := []*User{
		{ID: 1, Name: "Sara Ahmed", Status: StatusActive},
		{ID: 2, Name: "Sara Ali", Status: StatusBanned},
		{ID: 3, Name: "Layla Said", Status: StatusActive},
		{ID: 4, Name: "Sara Omar", Status: StatusActive},
	}

	// Result set must equal the intersection of both filter sets.
	page, err := Run(store, Query{Status: "active", Search: "sara"})
	require.NoError(t, err)
	require.Len(t, page.Data, 2)
	assert.Equal(t, 1, page.Data[0].ID)
	assert.Equal(t, 4, page.Data[1].ID)
	assert.Equal(t, 2, page.Total)
}

func TestRunPaginationWindows(t *testing.T) {
	const n = 23
	store := make([]*User, 0, n)
	for i := 1; i <= n; i++ {
		store = append(store, testUser(i, StatusActive))
	}

	for _, tc := range []struct {
		page, limit, wantLen, wantPages int
	}{
		{1, 10, 10, 3},
		{2, 10, 10, 3},
		{3, 10, 3, 3},
		{4, 10, 0, 3}, // past the end: empty items, correct totals
		{1, 23, 23, 1},
		{1, 50, 23, 1},
	} {
		page, err := Run(store, Query{Page: tc.page, Limit: tc.limit})
		require.NoError(t, err)
		assert.Len(t, page.Data, tc.wantLen, "page=%d limit=%d", tc.page, tc.limit)
		assert.Equal(t, n, page.Total)
		assert.Equal(t, tc.wantPages, page.TotalPages)
	}
}

func TestRunEmptyStore(t *testing.T) {
	page, err := Run(nil, Query{})
	require.NoError(t, err)
	assert.Empty(t, page.Data)
	assert.Equal(t, 0, page.Total)
	assert.Equal(t, 0, page.TotalPages)
}

func TestRunInvalidDescriptor(t *testing.T) {
	store := []*User{testUser(1, StatusActive)}

	_, err := Run(store, Query{Limit: -5})
	assert.True(t, apierr.IsKind(err, apierr.KindInvalidArgument))

	_, err = Run(store, Query{Page: -1})
	assert.True(t, apierr.IsKind(err, apierr.KindInvalidArgument))

	_, err = Run(store, Query{SortBy: "email"})
	assert.True(t, apierr.IsKind(err, apierr.KindInvalidArgument))

	_, err = Run(store, Query{Status: "pending"})
	assert.True(t, apierr.IsKind(err, apierr.KindInvalidArgument))

	_, err = Run(store, Query{SortOrder: "descending"})
	assert.True(t, apierr.IsKind(err, apierr.KindInvalidArgument))
}

func TestRunSortNumeric(t *testing.T) {
	store := []*User{
		{ID: 1, Status: StatusActive, TotalSpent: 300},
		{ID: 2, Status: StatusActive, TotalSpent: 100},
		{ID: 3, Status: StatusActive, TotalSpent: 200},
	}

	page, err := Run(store, Query{SortBy: SortByTotalSpent, SortOrder: SortAsc})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 1}, ids(page.Data))

	page, err = Run(store, Query{SortBy: SortByTotalSpent, SortOrder: SortDesc})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 2}, ids(page.Data))
}

func TestRunSortStability(t *testing.T) {
	// Equal sort keys must keep their pre-sort relative order, both ways.
	store := []*User{
		{ID: 1, Name: "Aisha", Status: StatusActive, TotalSpent: 100},
		{ID: 2, Name: "aisha", Status: StatusActive, TotalSpent: 100},
		{ID: 3, Name: "Aisha", Status: StatusActive, TotalSpent: 100},
		{ID: 4, Name: "Badr", Status: StatusActive, TotalSpent: 50},
	}

	page, err := Run(store, Query{SortBy: SortByTotalSpent, SortOrder: SortAsc})
	require.NoError(t, err)
	assert.Equal(t, []int{4, 1, 2, 3}, ids(page.Data))

	page, err = Run(store, Query{SortBy: SortByTotalSpent, SortOrder: SortDesc})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4}, ids(page.Data))

	// Name comparison is case-insensitive, so ids 1-3 tie on name too.
	page, err = Run(store, Query{SortBy: SortByName, SortOrder: SortAsc})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3, 4}, ids(page.Data))
}

func TestRunDoesNotMutateInput(t *testing.T) {
	store := []*User{
		testUser(2, StatusActive),
		testUser(1, StatusActive),
		testUser(3, StatusActive),
	}

	_, err := Run(store, Query{SortBy: SortByTotalSpent, SortOrder: SortAsc})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1, 3}, ids(store))
}

func TestQueryKeyDistinguishesDescriptors(t *testing.T) {
	a := Query{Page: 1, Limit: 10, Status: "all"}
	b := Query{Page: 1, Limit: 10, Status: "all", Search: "sara"}
	c := Query{Page: 2, Limit: 10, Status: "all"}

	assert.NotEqual(t, a.Key(), b.Key())
	assert.NotEqual(t, a.Key(), c.Key())
	assert.Equal(t, a.Key(), Query{Page: 1, Limit: 10, Status: "all"}.Key())
}

func TestQueryNormalizedDefaults(t *testing.T) {
	q := Query{}.Normalized()
	assert.Equal(t, DefaultPage, q.Page)
	assert.Equal(t, DefaultLimit, q.Limit)
	assert.Equal(t, FilterAll, q.Status)
	assert.Equal(t, SortDesc, q.SortOrder)
}

func ids(users []*User) []int {
	out := make([]int, len(users))
	for i, u := range users {
		out[i] = u.ID
	}
	return out
}
