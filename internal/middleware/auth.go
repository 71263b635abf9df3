package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/qams/internal/dto"
	"github.com/lshigami/qams/internal/model"
	"github.com/lshigami/qams/internal/service"
	"github.com/rs/zerolog/log"
)

const actorKey = "actor"

// Auth validates the bearer token and stores the caller's Actor in the context.
func Auth(authSvc service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if header == "" || token == header || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Missing or malformed Authorization header"})
			return
		}

		actor, err := authSvc.Authenticate(c.Request.Context(), token)
		if err != nil {
			log.Debug().Err(err).Str("requestID", RequestIDFrom(c)).Msg("Rejected bearer token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Invalid or expired token"})
			return
		}

		c.Set(actorKey, actor)
		c.Next()
	}
}

// RequireRole aborts with 403 unless the caller has one of roles. It is a
// coarse route filter; services still run their own access checks.
func RequireRole(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFrom(c)
		if ok {
			for _, r := range roles {
				if actor.Role == r {
					c.Next()
					return
				}
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Message: "Insufficient permissions"})
	}
}

// ActorFrom returns the actor set by Auth.
func ActorFrom(c *gin.Context) (service.Actor, bool) {
	v, ok := c.Get(actorKey)
	if !ok {
		return service.Actor{}, false
	}
	actor, ok := v.(service.Actor)
	return actor, ok
}
