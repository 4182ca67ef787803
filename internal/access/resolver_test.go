package access

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/config"
	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/models"
	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/utils"
)

const testSecret = "resolver-test-secret"

type fakeTransactionStore struct {
	active map[string]bool
}

func (s *fakeTransactionStore) TokenActive(ctx context.Context, userID, token string) bool {
	return s.active[userID]
}

func signToken(t *testing.T, secret string, userID string, role models.UserRole, expires time.Time) string {
	t.Helper()
	claims := Claims{
		UserID: userID,
		Email:  userID + "@example.com",
		Role:   string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestResolveValidToken(t *testing.T) {
	store := &fakeTransactionStore{active: map[string]bool{"u1": true}}
	r := NewResolver(testSecret, store)

	token := signToken(t, testSecret, "u1", models.UserRoleUser, time.Now().Add(time.Hour))
	identity := r.Resolve(context.Background(), "Bearer "+token)

	assert.Equal(t, "u1", identity.ID)
	assert.Equal(t, "u1@example.com", identity.Email)
	assert.Equal(t, models.UserRoleUser, identity.Role)
	assert.True(t, identity.Authenticated())
}

func TestResolveFailuresAreAnonymous(t *testing.T) {
	store := &fakeTransactionStore{active: map[string]bool{"u1": true}}
	r := NewResolver(testSecret, store)

	valid := signToken(t, testSecret, "u1", models.UserRoleUser, time.Now().Add(time.Hour))

	cases := map[string]string{
		"empty header":     "",
		"not bearer":       "Basic dXNlcjpwYXNz",
		"malformed":        "Bearer not.a.token",
		"missing token":    "Bearer",
		"wrong secret":     "Bearer " + signToken(t, "other-secret", "u1", models.UserRoleUser, time.Now().Add(time.Hour)),
		"expired":          "Bearer " + signToken(t, testSecret, "u1", models.UserRoleUser, time.Now().Add(-time.Hour)),
		"trailing garbage": "Bearer " + valid + " extra",
	}
	for name, header := range cases {
		assert.Equal(t, Anonymous, r.Resolve(context.Background(), header), name)
	}
}

func TestResolveRevokedSession(t *testing.T) {
	store := &fakeTransactionStore{active: map[string]bool{}}
	r := NewResolver(testSecret, store)

	// The token itself verifies, but the session was revoked.
	token := signToken(t, testSecret, "u1", models.UserRoleUser, time.Now().Add(time.Hour))
	assert.Equal(t, Anonymous, r.Resolve(context.Background(), "Bearer "+token))
}

func TestResolveAcceptsIssuedTokensWithoutSecretEnv(t *testing.T) {
	// Login signs tokens through utils and the resolver verifies with
	// the configured secret; with JWT_SECRET unset both sides must
	// fall back to the same key or nobody can authenticate.
	t.Setenv("JWT_SECRET", "")
	os.Unsetenv("JWT_SECRET")

	user := models.User{Email: "ayu@example.com", Role: models.UserRoleUser}
	user.ID = "5f6f0a4e-3c7d-4b2a-9d6e-8a1b2c3d4e5f"
	token, err := utils.GenerateJWT(user)
	require.NoError(t, err)

	cfg, err := config.Load()
	require.NoError(t, err)

	r := NewResolver(cfg.JWT.Secret, nil)
	identity := r.Resolve(context.Background(), "Bearer "+token)
	assert.Equal(t, user.ID, identity.ID)
	assert.True(t, identity.Authenticated())
}

func TestResolveRejectsNonHMACAlgorithms(t *testing.T) {
	r := NewResolver(testSecret, &fakeTransactionStore{active: map[string]bool{"u1": true}})

	// alg=none style tokens must never authenticate.
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		UserID: "u1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	assert.Equal(t, Anonymous, r.Resolve(context.Background(), "Bearer "+unsigned))
}
