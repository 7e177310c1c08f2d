package middleware

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/qa-forum-api/internal/constants"
	apierrors "github.com/yukikurage/qa-forum-api/internal/errors"
	"github.com/yukikurage/qa-forum-api/internal/models"
	"github.com/yukikurage/qa-forum-api/internal/services"
)

// ActorLoader resolves a session user id to a user.
type ActorLoader interface {
	GetUser(ctx context.Context, id uint64) (*models.User, error)
}

// LoadActor resolves the session user, if any, and stores it as the request actor.
// Requests without a session continue as anonymous. A session pointing at a deleted
// user is cleared.
func LoadActor(users ActorLoader, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		c.Set(constants.ContextKeyUserID, session.Get(constants.ContextKeyUserID))

		userID, ok := GetUserID(c)
		if !ok {
			c.Next()
			return
		}

		user, err := users.GetUser(c.Request.Context(), userID)
		switch {
		case err == nil:
			c.Set(constants.ContextKeyActor, user)
		case errors.Is(err, services.ErrNotFound):
			session.Clear()
			if err := session.Save(); err != nil {
				log.Warn("failed to clear stale session", slog.Any("error", err))
			}
			c.Set(constants.ContextKeyUserID, nil)
		default:
			apierrors.Respond(c, err)
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireAuth checks if the user is authenticated via session
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetActor(c) == nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	switch v := userID.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}

// GetActor returns the authenticated user, or nil for an anonymous request.
func GetActor(c *gin.Context) *models.User {
	actor, exists := c.Get(constants.ContextKeyActor)
	if !exists {
		return nil
	}
	user, _ := actor.(*models.User)
	return user
}
