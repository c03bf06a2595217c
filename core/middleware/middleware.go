package middleware

import (
	"context"
	"strings"

	"outings-api/core/constants"
	"outings-api/core/controller"
	"outings-api/core/errors"
	"outings-api/core/logger"
	"outings-api/modules/activity/entity"

	"github.com/labstack/echo/v4"
)

// UserResolver turns the id sent by the client into a seeded user.
type UserResolver interface {
	ResolveUser(ctx context.Context, userID string) (*entity.User, *errors.AppError)
}

// Middleware carries the mock authentication: the client names its user in the
// X-User-ID header and nothing is verified beyond the user existing.
type Middleware struct {
	resolver UserResolver
}

func NewMiddleware(resolver UserResolver) *Middleware {
	return &Middleware{resolver: resolver}
}

// CurrentUser resolves X-User-ID when present. An unknown id is rejected so that a
// stale client does not silently browse as anonymous.
func (m *Middleware) CurrentUser() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID := strings.TrimSpace(c.Request().Header.Get(constants.HeaderUserID))
			if userID == "" {
				return next(c)
			}

			user, appErr := m.resolver.ResolveUser(c.Request().Context(), userID)
			if appErr != nil {
				logger.Warn("Middleware:CurrentUser:Rejected", "user_id", userID, "code", appErr.Code)
				return controller.NewErrorResponse(controller.HTTPStatus(errors.ErrUnauthorized), errors.ErrUnauthorized, constants.MsgUserNotFound)
			}

			c.Set(constants.ContextCurrentUser, user)
			return next(c)
		}
	}
}

// RequireUser rejects requests without a resolved user. It must run after CurrentUser.
func (m *Middleware) RequireUser() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if GetCurrentUser(c) == nil {
				return controller.NewErrorResponse(controller.HTTPStatus(errors.ErrUnauthorized), errors.ErrUnauthorized, constants.MsgLoginRequired)
			}
			return next(c)
		}
	}
}

// GetCurrentUser returns the user set by CurrentUser, or nil.
func GetCurrentUser(c echo.Context) *entity.User {
	user, ok := c.Get(constants.ContextCurrentUser).(*entity.User)
	if !ok {
		return nil
	}
	return user
}

// GetCurrentUserID returns the current user id or "" for anonymous requests.
func GetCurrentUserID(c echo.Context) string {
	if user := GetCurrentUser(c); user != nil {
		return user.ID
	}
	return ""
}
