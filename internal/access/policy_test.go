package access

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/models"
)

// fakeProfileStore returns a canned role and counts lookups, so tests
// can assert whether a decision consulted the store at all.
type fakeProfileStore struct {
	roles   map[string]models.UserRole
	lookups int
}

func (s *fakeProfileStore) Role(ctx context.Context, userID string) (models.UserRole, error) {
	s.lookups++
	role, ok := s.roles[userID]
	if !ok {
		return "", ErrProfileNotFound
	}
	return role, nil
}

func user(id string, role models.UserRole) Identity {
	return Identity{ID: id, Email: id + "@example.com", Role: role}
}

func TestEvaluatePublicRead(t *testing.T) {
	store := &fakeProfileStore{}
	e := NewEvaluator(store)

	assert.True(t, e.Evaluate(context.Background(), Anonymous, PublicRead).Allowed)
	assert.True(t, e.Evaluate(context.Background(), user("u1", models.UserRoleUser), PublicRead).Allowed)
	assert.Zero(t, store.lookups, "public reads must not hit the profile store")
}

func TestEvaluateAuthenticatedSelf(t *testing.T) {
	store := &fakeProfileStore{}
	e := NewEvaluator(store)

	decision := e.Evaluate(context.Background(), Anonymous, AuthenticatedSelf)
	require.False(t, decision.Allowed)
	assert.Equal(t, ReasonUnauthenticated, decision.Reason)

	assert.True(t, e.Evaluate(context.Background(), user("u1", models.UserRoleUser), AuthenticatedSelf).Allowed)
	assert.Zero(t, store.lookups)
}

func TestEvaluateAdminChecksProfileStore(t *testing.T) {
	store := &fakeProfileStore{roles: map[string]models.UserRole{
		"admin-1": models.UserRoleAdmin,
		"user-1":  models.UserRoleUser,
	}}
	e := NewEvaluator(store)

	// The session claim says admin but the store says user. The store
	// is authoritative.
	decision := e.Evaluate(context.Background(), user("user-1", models.UserRoleAdmin), AdminOnly)
	require.False(t, decision.Allowed)
	assert.Equal(t, ReasonInsufficientRole, decision.Reason)

	// The inverse: stale claim, real admin in the store.
	assert.True(t, e.Evaluate(context.Background(), user("admin-1", models.UserRoleUser), AdminOnly).Allowed)
	assert.Equal(t, 2, store.lookups)
}

func TestEvaluateAdminDeniedWhenProfileMissing(t *testing.T) {
	e := NewEvaluator(&fakeProfileStore{})

	decision := e.Evaluate(context.Background(), user("ghost", models.UserRoleAdmin), AdminOnly)
	require.False(t, decision.Allowed)
	assert.Equal(t, ReasonProfileMissing, decision.Reason)
}

func TestEvaluateSuperadminOnly(t *testing.T) {
	store := &fakeProfileStore{roles: map[string]models.UserRole{
		"admin-1": models.UserRoleAdmin,
		"root-1":  models.UserRoleSuperAdmin,
	}}
	e := NewEvaluator(store)

	decision := e.Evaluate(context.Background(), user("admin-1", models.UserRoleAdmin), SuperadminOnly)
	require.False(t, decision.Allowed)
	assert.Equal(t, ReasonInsufficientRole, decision.Reason)

	assert.True(t, e.Evaluate(context.Background(), user("root-1", models.UserRoleSuperAdmin), SuperadminOnly).Allowed)
}

func TestEvaluateUnknownCapabilityFailsClosed(t *testing.T) {
	e := NewEvaluator(&fakeProfileStore{roles: map[string]models.UserRole{
		"root-1": models.UserRoleSuperAdmin,
	}})

	decision := e.Evaluate(context.Background(), user("root-1", models.UserRoleSuperAdmin), Capability("backdoor"))
	assert.False(t, decision.Allowed)
}

func TestAnonymousAdminNeverConsultsStore(t *testing.T) {
	store := &fakeProfileStore{}
	e := NewEvaluator(store)

	decision := e.Evaluate(context.Background(), Anonymous, AdminOnly)
	require.False(t, decision.Allowed)
	assert.Equal(t, ReasonUnauthenticated, decision.Reason)
	assert.Zero(t, store.lookups)
}
