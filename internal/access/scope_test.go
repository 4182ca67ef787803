package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/models"
)

func TestBuildQueryDenyFailsClosed(t *testing.T) {
	_, err := BuildQuery(Anonymous, Decision{}, ResourceFilter{Resource: "bookings"})
	assert.ErrorIs(t, err, ErrNotAllowed)

	_, err = BuildQuery(user("u1", models.UserRoleUser), deny(ReasonInsufficientRole), ResourceFilter{Resource: "bookings"})
	assert.ErrorIs(t, err, ErrNotAllowed)
}

func TestBuildQueryForcesOwnerForPlainUsers(t *testing.T) {
	caller := user("u1", models.UserRoleUser)

	// The request asks for someone else's rows.
	q, err := BuildQuery(caller, allow, ResourceFilter{
		Resource:    "bookings",
		OwnerColumn: "user_id",
		Owner:       "u2",
	})
	require.NoError(t, err)
	assert.Equal(t, "u1", q.OwnerID(), "owner parameter must be overridden with the caller's id")
}

func TestBuildQueryHonorsOwnerForElevatedCallers(t *testing.T) {
	admin := user("a1", models.UserRoleAdmin)

	q, err := BuildQuery(admin, allow, ResourceFilter{
		Resource:    "bookings",
		OwnerColumn: "user_id",
		Owner:       "u2",
	})
	require.NoError(t, err)
	assert.Equal(t, "u2", q.OwnerID())

	// No owner requested means no owner scoping at all.
	q, err = BuildQuery(admin, allow, ResourceFilter{
		Resource:    "bookings",
		OwnerColumn: "user_id",
	})
	require.NoError(t, err)
	assert.Empty(t, q.OwnerID())
}

func TestBuildQueryNoOwnerColumn(t *testing.T) {
	q, err := BuildQuery(user("u1", models.UserRoleUser), allow, ResourceFilter{
		Resource: "destinations",
		Owner:    "u2",
	})
	require.NoError(t, err)
	assert.Empty(t, q.OwnerID(), "resources without an owner column are never owner scoped")
}

func TestBuildQueryPaginationDefaults(t *testing.T) {
	q, err := BuildQuery(Anonymous, allow, ResourceFilter{Resource: "posts"})
	require.NoError(t, err)
	assert.Equal(t, 0, q.Offset())
	assert.Equal(t, defaultPageSize, q.Limit())

	q, err = BuildQuery(Anonymous, allow, ResourceFilter{Resource: "posts", Page: -3, Limit: -1})
	require.NoError(t, err)
	assert.Equal(t, 0, q.Offset())
	assert.Equal(t, defaultPageSize, q.Limit())
}

func TestBuildQueryPaginationWindows(t *testing.T) {
	first, err := BuildQuery(Anonymous, allow, ResourceFilter{Resource: "posts", Page: 1, Limit: 20})
	require.NoError(t, err)
	second, err := BuildQuery(Anonymous, allow, ResourceFilter{Resource: "posts", Page: 2, Limit: 20})
	require.NoError(t, err)

	// Consecutive pages cover disjoint, adjacent windows.
	assert.Equal(t, 0, first.Offset())
	assert.Equal(t, 20, second.Offset())
	assert.Equal(t, first.Limit(), second.Limit())
}

func TestEscapeLike(t *testing.T) {
	cases := map[string]string{
		"plain":     "plain",
		"100%":      `100\%`,
		"a_b":       `a\_b`,
		`back\slash`: `back\\slash`,
		`%_\`:       `\%\_` + `\\`,
	}
	for input, want := range cases {
		assert.Equal(t, want, escapeLike(input), "input %q", input)
	}
}
