package access

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/models"
	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/utils/logger"
)

// Claims carried by access tokens.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// TransactionStore checks that a token was issued by us and has not
// been revoked. Backed by the auth_transactions table.
type TransactionStore interface {
	TokenActive(ctx context.Context, userID, token string) bool
}

// Resolver turns an Authorization header into an Identity. Every
// failure mode (missing header, malformed token, bad signature,
// expired, revoked) resolves to Anonymous, never to an error.
type Resolver struct {
	secret       string
	transactions TransactionStore
	log          *logger.Logger
}

func NewResolver(secret string, transactions TransactionStore) *Resolver {
	return &Resolver{
		secret:       secret,
		transactions: transactions,
		log:          logger.New("session_resolver"),
	}
}

// Resolve extracts the caller identity from a bearer credential.
func (r *Resolver) Resolve(ctx context.Context, authHeader string) Identity {
	if authHeader == "" {
		return Anonymous
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return Anonymous
	}
	tokenString := parts[1]

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(r.secret), nil
	})
	if err != nil || !token.Valid {
		return Anonymous
	}

	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		return Anonymous
	}

	if r.transactions != nil && !r.transactions.TokenActive(ctx, claims.UserID, tokenString) {
		r.log.Warn("Token for user %s not found in auth transactions", claims.UserID)
		return Anonymous
	}

	return Identity{
		ID:    claims.UserID,
		Email: claims.Email,
		Role:  models.UserRole(claims.Role),
	}
}
