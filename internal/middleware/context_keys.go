package middleware

import (
	"context"

	"github.com/gestium/biz_reporting_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// contextKey is a private key type so context values cannot collide with
// other packages.
type contextKey string

const (
	loggerKey = contextKey("logger")
	actorKey  = contextKey("actor")
)

// GetActorFromContext retrieves the authenticated actor set by AuthMiddleware.
func GetActorFromContext(c *gin.Context) (domain.Actor, bool) {
	if v, exists := c.Get(string(actorKey)); exists {
		if actor, ok := v.(domain.Actor); ok {
			return actor, true
		}
	}
	if v := c.Request.Context().Value(actorKey); v != nil {
		if actor, ok := v.(domain.Actor); ok {
			return actor, true
		}
	}
	return domain.Actor{}, false
}

// WithActor stores the actor in a standard context; used by tests and by the
// auth middleware.
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}
