package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/jugehoerig/vereinsapi/internal/auth"
	"github.com/jugehoerig/vereinsapi/internal/helpers"
	"github.com/jugehoerig/vereinsapi/internal/models"
)

const actorKey = "actor"

// JWTAuthMiddleware rejects requests without a bearer token with 401 and
// requests with a bad or expired token with 403. On success the actor is
// stored on the context for GetActor.
func JWTAuthMiddleware(manager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.TokenFromHeader(c.GetHeader("Authorization"))
		if err != nil {
			helpers.RespondWithError(c, http.StatusUnauthorized, "No token provided.")
			return
		}

		claims, err := manager.Validate(token)
		if err != nil {
			zerolog.Ctx(c.Request.Context()).Warn().Err(err).Msg("token rejected")
			helpers.RespondWithError(c, http.StatusForbidden, "Invalid or expired token.")
			return
		}

		actor := claims.Actor()
		c.Set(actorKey, actor)

		ctx := c.Request.Context()
		logger := zerolog.Ctx(ctx).With().Int64("actor_id", actor.ID).Str("actor", actor.Username).Logger()
		c.Request = c.Request.WithContext(logger.WithContext(ctx))

		c.Next()
	}
}

// GetActor returns the authenticated actor, or the zero Actor when the
// route is not guarded.
func GetActor(c *gin.Context) models.Actor {
	actor, exists := c.Get(actorKey)
	if !exists {
		return models.Actor{}
	}
	return actor.(models.Actor)
}
