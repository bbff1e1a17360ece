package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/gophtodo/internal/common"
	"github.com/dmitrijs2005/gophtodo/internal/logging"
	"github.com/labstack/echo/v4"
)

const userIDKey = "userID"

// NewAuthGate rejects requests without a valid bearer token. The token is
// read from the Authorization header; a "Bearer " prefix is optional.
// On success the user id is available through UserID.
//
// observe, when not nil, is told why a request was rejected.
func NewAuthGate(tokens TokenVerifier, l logging.Logger, observe func(reason string)) echo.MiddlewareFunc {
	if observe == nil {
		observe = func(string) {}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			userID, err := identify(tokens, c.Request().Header.Get(common.AccessTokenHeaderName))
			if err != nil {
				l.Warn(ctx, "token rejected", "error", err, "path", c.Request().URL.Path)
				if errors.Is(err, common.ErrorUnauthorized) {
					observe("no_identity")
					return c.JSON(http.StatusForbidden, messageResponse{Message: "Unauthorized user"})
				}
				observe("invalid_token")
				return c.JSON(http.StatusUnauthorized, messageResponse{Message: "invalid token"})
			}

			l.Debug(ctx, "token accepted", "user_id", userID, "path", c.Request().URL.Path)
			c.Set(userIDKey, userID)
			return next(c)
		}
	}
}

// identify verifies the header value and returns the user id it names.
// A token that verifies but carries no id yields common.ErrorUnauthorized.
func identify(tokens TokenVerifier, header string) (string, error) {
	userID, err := tokens.Verify(strings.TrimPrefix(header, common.BearerScheme))
	if err != nil {
		return "", err
	}
	if userID == "" {
		return "", common.ErrorUnauthorized
	}
	return userID, nil
}

// UserID returns the authenticated user id stored by the gate.
func UserID(c echo.Context) (string, bool) {
	id, ok := c.Get(userIDKey).(string)
	return id, ok && id != ""
}
