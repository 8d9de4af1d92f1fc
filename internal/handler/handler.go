package handler

import (
	"errors"
	"net/http"

	"github.com/buwaneka1/shop-mapper/internal/auth"
	"github.com/buwaneka1/shop-mapper/internal/util"

	"github.com/gin-gonic/gin"
)

// denied translates guard errors into the standard error envelope.
// Unauthenticated and unauthorized callers both get a generic denial; the
// operation has not touched the database at this point.
func denied(c *gin.Context, err error) {
	switch {
	case errors.Is(err, auth.ErrUnauthenticated):
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "not logged in")
	case errors.Is(err, auth.ErrSelfDelete):
		util.Error(c, http.StatusForbidden, util.CodeForbidden, auth.ErrSelfDelete.Error())
	default:
		util.Error(c, http.StatusForbidden, util.CodeForbidden, "operation not permitted")
	}
}
