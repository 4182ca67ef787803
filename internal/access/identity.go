package access

import (
	"github.com/nazirmuhamad15-ops/Curug-Mara-Vercel-sub001/internal/models"
)

// Identity is the resolved caller for one request. It is built from the
// session credential at request start and discarded at request end;
// nothing in this package caches it across requests.
type Identity struct {
	ID    string
	Email string
	Role  models.UserRole
}

// Anonymous is the distinguished unauthenticated identity. Handlers
// must branch on Authenticated() explicitly; resolution never fails
// with an error.
var Anonymous = Identity{}

// Authenticated reports whether the identity belongs to a signed-in user.
func (i Identity) Authenticated() bool {
	return i.ID != ""
}

// Elevated reports whether the identity may read rows it does not own.
// The role carried here comes from the session claim and is advisory:
// admin-gated decisions re-check the users table (see Evaluator).
func (i Identity) Elevated() bool {
	return i.Authenticated() && i.Role.Elevated()
}
