package auth

import "github.com/rentlyapp/rently/internal/common"

// AssertOwner returns common.ErrForbidden unless identity refers to the user
// that owns the resource. Pure comparison, no I/O.
func AssertOwner(identity *Identity, ownerID string) error {
	if identity == nil || identity.UserID != ownerID {
		return common.ErrForbidden
	}
	return nil
}
