package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/access"
	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/models"
)

const testSecret = "middleware-test-secret"

type stubProfileStore struct {
	roles map[string]models.UserRole
}

func (s *stubProfileStore) Role(ctx context.Context, userID string) (models.UserRole, error) {
	role, ok := s.roles[userID]
	if !ok {
		return "", access.ErrProfileNotFound
	}
	return role, nil
}

type stubTransactionStore struct{}

func (s *stubTransactionStore) TokenActive(ctx context.Context, userID, token string) bool {
	return true
}

func newTestMiddleware(roles map[string]models.UserRole) *AuthMiddleware {
	return NewAuthMiddleware(
		access.NewResolver(testSecret, &stubTransactionStore{}),
		access.NewEvaluator(&stubProfileStore{roles: roles}),
	)
}

func bearerFor(t *testing.T, userID string, role models.UserRole) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, access.Claims{
		UserID: userID,
		Email:  userID + "@example.com",
		Role:   string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return "Bearer " + signed
}

// run sends one GET through ResolveIdentity + Require(capability) and
// reports the status plus whether the handler ran.
func run(t *testing.T, m *AuthMiddleware, capability access.Capability, authHeader string) (int, bool) {
	t.Helper()
	e := echo.New()
	handlerRan := false

	e.GET("/probe", func(c echo.Context) error {
		handlerRan = true
		return c.NoContent(http.StatusOK)
	}, m.ResolveIdentity(), m.Require(capability))

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec.Code, handlerRan
}

func TestRequireAnonymousGets401(t *testing.T) {
	m := newTestMiddleware(nil)

	code, ran := run(t, m, access.AuthenticatedSelf, "")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.False(t, ran, "handler must not run on a denied request")
}

func TestRequireInsufficientRoleGets403(t *testing.T) {
	m := newTestMiddleware(map[string]models.UserRole{"u1": models.UserRoleUser})

	code, ran := run(t, m, access.AdminOnly, bearerFor(t, "u1", models.UserRoleUser))
	assert.Equal(t, http.StatusForbidden, code)
	assert.False(t, ran)
}

func TestRequireClaimedRoleIsNotTrusted(t *testing.T) {
	// Token claims admin, users table says user.
	m := newTestMiddleware(map[string]models.UserRole{"u1": models.UserRoleUser})

	code, ran := run(t, m, access.AdminOnly, bearerFor(t, "u1", models.UserRoleAdmin))
	assert.Equal(t, http.StatusForbidden, code)
	assert.False(t, ran)
}

func TestRequireAdminAllowed(t *testing.T) {
	m := newTestMiddleware(map[string]models.UserRole{"a1": models.UserRoleAdmin})

	code, ran := run(t, m, access.AdminOnly, bearerFor(t, "a1", models.UserRoleAdmin))
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, ran)
}

func TestRequirePublicReadAllowsAnonymous(t *testing.T) {
	m := newTestMiddleware(nil)

	code, ran := run(t, m, access.PublicRead, "")
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, ran)
}

func TestGetIdentityDefaultsToAnonymous(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	assert.Equal(t, access.Anonymous, GetIdentity(c))
}

func TestGetDecisionDefaultsToDeny(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	assert.False(t, GetDecision(c).Allowed, "a missing decision must fail closed")
}
