package access

import (
	"context"
	"errors"

	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/models"
)

// Capability is a named access-level requirement attached to an endpoint.
type Capability string

const (
	// PublicRead allows anyone, including Anonymous.
	PublicRead Capability = "public_read"
	// AuthenticatedSelf allows any signed-in user; query scope is
	// forced to the caller's own rows.
	AuthenticatedSelf Capability = "authenticated_self"
	// AdminOnly requires admin or superadmin, verified against the
	// users table rather than the session claim.
	AdminOnly Capability = "admin_only"
	// AdminOrSuperadmin is semantically identical to AdminOnly. It is
	// kept as a separate capability so audit logs can distinguish
	// endpoints that were registered for superadmin-class consoles.
	AdminOrSuperadmin Capability = "admin_or_superadmin"
	// SuperadminOnly requires the superadmin role.
	SuperadminOnly Capability = "superadmin_only"
)

// DenyReason explains a denied decision. Reasons are for server-side
// logs only; clients see a generic 401/403.
type DenyReason string

const (
	ReasonUnauthenticated  DenyReason = "unauthenticated"
	ReasonInsufficientRole DenyReason = "insufficient_role"
	ReasonProfileMissing   DenyReason = "profile_missing"
)

// Decision is computed once per request and never cached across
// requests; the role may change between requests.
type Decision struct {
	Allowed bool
	Reason  DenyReason
}

var allow = Decision{Allowed: true}

func deny(reason DenyReason) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// ErrProfileNotFound is returned by ProfileStore when no user row exists.
var ErrProfileNotFound = errors.New("profile not found")

// ProfileStore reads the authoritative role for a user. The session
// claim is advisory; admin-gated decisions always go through here.
type ProfileStore interface {
	Role(ctx context.Context, userID string) (models.UserRole, error)
}

// Evaluator decides ALLOW/DENY for an identity against a capability.
type Evaluator struct {
	profiles ProfileStore
}

func NewEvaluator(profiles ProfileStore) *Evaluator {
	return &Evaluator{profiles: profiles}
}

// Evaluate returns the access decision for one request. A DENY must
// short-circuit before any resource query is issued.
func (e *Evaluator) Evaluate(ctx context.Context, id Identity, capability Capability) Decision {
	switch capability {
	case PublicRead:
		return allow

	case AuthenticatedSelf:
		if !id.Authenticated() {
			return deny(ReasonUnauthenticated)
		}
		return allow

	case AdminOnly, AdminOrSuperadmin:
		if !id.Authenticated() {
			return deny(ReasonUnauthenticated)
		}
		role, err := e.profiles.Role(ctx, id.ID)
		if err != nil {
			return deny(ReasonProfileMissing)
		}
		if !role.Elevated() {
			return deny(ReasonInsufficientRole)
		}
		return allow

	case SuperadminOnly:
		if !id.Authenticated() {
			return deny(ReasonUnauthenticated)
		}
		role, err := e.profiles.Role(ctx, id.ID)
		if err != nil {
			return deny(ReasonProfileMissing)
		}
		if role != models.UserRoleSuperAdmin {
			return deny(ReasonInsufficientRole)
		}
		return allow

	default:
		// Unknown capabilities fail closed.
		return deny(ReasonInsufficientRole)
	}
}
