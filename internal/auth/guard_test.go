package auth

import (
	"errors"
	"testing"

	"github.com/buwaneka1/shop-mapper/internal/models"
	"github.com/buwaneka1/shop-mapper/internal/session"
)

func claimsFor(role models.Role, userID uint) *session.Claims {
	return &session.Claims{
		User:        session.User{ID: userID, Username: "someone", Role: role},
		TerritoryID: 1,
	}
}

func TestRequire_PolicyTable(t *testing.T) {
	cases := []struct {
		name    string
		claims  *session.Claims
		roles   []models.Role
		wantErr error
	}{
		{"nil session", nil, []models.Role{models.RoleAdmin}, ErrUnauthenticated},
		{"admin op as admin", claimsFor(models.RoleAdmin, 1), []models.Role{models.RoleAdmin}, nil},
		{"admin op as rep", claimsFor(models.RoleRep, 2), []models.Role{models.RoleAdmin}, ErrUnauthorized},
		{"admin op as viewer", claimsFor(models.RoleViewer, 3), []models.Role{models.RoleAdmin}, ErrUnauthorized},
		{"shop op as admin", claimsFor(models.RoleAdmin, 1), []models.Role{models.RoleAdmin, models.RoleRep}, nil},
		{"shop op as rep", claimsFor(models.RoleRep, 2), []models.Role{models.RoleAdmin, models.RoleRep}, nil},
		{"shop op as viewer", claimsFor(models.RoleViewer, 3), []models.Role{models.RoleAdmin, models.RoleRep}, ErrUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Require(tc.claims, tc.roles...)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Require() = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestRequireUserDelete(t *testing.T) {
	cases := []struct {
		name     string
		claims   *session.Claims
		targetID uint
		wantErr  error
	}{
		{"admin deletes other", claimsFor(models.RoleAdmin, 1), 2, nil},
		{"admin deletes self", claimsFor(models.RoleAdmin, 1), 1, ErrSelfDelete},
		{"rep deletes other", claimsFor(models.RoleRep, 2), 3, ErrUnauthorized},
		{"rep deletes self", claimsFor(models.RoleRep, 2), 2, ErrUnauthorized},
		{"viewer deletes other", claimsFor(models.RoleViewer, 3), 1, ErrUnauthorized},
		{"no session", nil, 1, ErrUnauthenticated},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := RequireUserDelete(tc.claims, tc.targetID)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("RequireUserDelete() = %v, want %v", err, tc.wantErr)
			}
		})
	}
}
