package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/core/domain"
)

// actorKey is the key used to store the authenticated actor in the request context.
const actorKey = contextKey("actor")

// GetActorFromContext retrieves the authenticated actor from the request context.
// It returns the actor and a boolean indicating if it was found.
func GetActorFromContext(c *gin.Context) (domain.Actor, bool) {
	actor, ok := c.Request.Context().Value(actorKey).(domain.Actor)
	if !ok || actor.ID == "" {
		return domain.Actor{}, false
	}
	return actor, true
}

// GetRequestMetadata returns the client information recorded on audit logs.
func GetRequestMetadata(c *gin.Context) domain.RequestMetadata {
	return domain.RequestMetadata{
		ClientIP:  c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
}
