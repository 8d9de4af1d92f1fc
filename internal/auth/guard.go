// Package auth holds the authorization guard and the territory/role scoping
// rules. Every mutating handler calls the guard before touching the
// database; every read path applies the scope at query time so a client
// cannot request unfiltered data.
package auth

import (
	"errors"

	"github.com/buwaneka1/shop-mapper/internal/models"
	"github.com/buwaneka1/shop-mapper/internal/session"
)

var (
	// ErrUnauthenticated means no valid session accompanied the request.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrUnauthorized means the session's role does not permit the operation.
	ErrUnauthorized = errors.New("operation not permitted")
	// ErrSelfDelete blocks deletion of the acting user's own account,
	// regardless of role. Keeps an admin from locking themselves out.
	ErrSelfDelete = errors.New("cannot delete your own account")
)

// Require checks that claims exist and carry one of the given roles.
func Require(claims *session.Claims, roles ...models.Role) error {
	if claims == nil {
		return ErrUnauthenticated
	}
	for _, r := range roles {
		if claims.User.Role == r {
			return nil
		}
	}
	return ErrUnauthorized
}

// RequireUserDelete authorizes deleting the user with targetID: admin only,
// and never the acting user.
func RequireUserDelete(claims *session.Claims, targetID uint) error {
	if err := Require(claims, models.RoleAdmin); err != nil {
		return err
	}
	if claims.User.ID == targetID {
		return ErrSelfDelete
	}
	return nil
}
