package auth

import (
	"fmt"

	"github.com/spec-kit/blog-service/internal/domain"
	apperrors "github.com/spec-kit/blog-service/pkg/util"
)

// CheckOwnership decides whether the identity may mutate a resource whose
// recorded owner is ownerID. Allowed when the subject owns the resource or
// holds one of the override roles. Callers must have resolved existence
// first: ownership is never evaluated against an absent resource.
func CheckOwnership(identity *Identity, resource, ownerID string, overrideRoles ...domain.Role) error {
	if identity == nil {
		return apperrors.NewUnauthenticated("authentication required")
	}
	if identity.UserID == ownerID {
		return nil
	}
	for _, role := range overrideRoles {
		if identity.Role == role {
			return nil
		}
	}
	return apperrors.NewForbidden(fmt.Sprintf("you can only modify your own %s", resource))
}
