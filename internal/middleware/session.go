package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"

	"github.com/noah-isme/bimbel-api/internal/models"
	"github.com/noah-isme/bimbel-api/internal/session"
	appErrors "github.com/noah-isme/bimbel-api/pkg/errors"
	"github.com/noah-isme/bimbel-api/pkg/logger"
	"github.com/noah-isme/bimbel-api/pkg/response"
)

// ContextUserKey is the gin context key storing the authenticated *models.User.
const ContextUserKey = "currentUser"

// DebugIdentityHeader asks for the debug identity on a request that has no session. The
// authenticator still refuses it unless debug identity is enabled.
const DebugIdentityHeader = "X-Debug-Identity"

type sessionAuthenticator interface {
	CurrentUser(ctx context.Context, userID int64) (*models.User, error)
}

// RequireSession resolves the session cookie to a user re-read from storage. A request without
// an authenticated session is rejected unless it carries DebugIdentityHeader, in which case it
// is resolved as the debug identity.
func RequireSession(store sessions.Store, cookieName string, auth sessionAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := store.Get(c.Request, cookieName)
		if err != nil {
			response.Abort(c, appErrors.Persistence(err, "load session"))
			return
		}

		userID, ok := session.UserID(sess)
		if !ok {
			if c.GetHeader(DebugIdentityHeader) == "" {
				response.Abort(c, appErrors.ErrUnauthorized)
				return
			}
			userID = models.DebugUserID
		}

		user, err := auth.CurrentUser(c.Request.Context(), userID)
		if err != nil {
			response.Abort(c, err)
			return
		}

		c.Set(ContextUserKey, user)
		c.Set(logger.UserIDKey, user.ID)
		c.Next()
	}
}

// CurrentUser returns the user stored by RequireSession.
func CurrentUser(c *gin.Context) *models.User {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}
