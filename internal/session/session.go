// Package session implements the signed client-side session token and its
// cookie transport. All session state lives in the token itself; the server
// keeps no session table, so a request is authenticated purely by decoding
// the cookie it carries.
package session

import (
	"errors"
	"time"

	"github.com/buwaneka1/shop-mapper/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned by Decode for any token that cannot be
// trusted: bad signature, malformed payload or past expiry. Callers must
// treat it exactly like a missing token.
var ErrInvalidToken = errors.New("invalid session token")

// User is the identity snapshot embedded in the token at login. LorryID is
// set only for REP users bound to a lorry.
type User struct {
	ID       uint        `json:"id"`
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
	LorryID  *uint       `json:"lorryId,omitempty"`
}

// Claims is the full token payload: the user, the territory context chosen
// at login, and the absolute expiry.
type Claims struct {
	User        User `json:"user"`
	TerritoryID uint `json:"territoryId"`
	jwt.RegisteredClaims
}

// Encode signs the payload with HS256. The resulting token is tamper
// evident; editing role or territory client-side breaks the signature.
func Encode(secret string, user User, territoryID uint, expires time.Time) (string, error) {
	claims := &Claims{
		User:        user,
		TerritoryID: territoryID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Decode verifies and parses a token. Expired, malformed and tampered
// tokens all collapse into ErrInvalidToken.
func Decode(secret, tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.ExpiresAt == nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
