package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"jobboard-api/internal/core/auth"
	"jobboard-api/internal/domain"
	resp "jobboard-api/internal/transport/http/response"
)

const keyActor = "actor"

// AuthJWT 只做身份解析；角色与归属判断在 service 层的策略函数里做
func AuthJWT(j *auth.JWTer) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Fail("missing token"))
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Fail("invalid token"))
			return
		}
		c.Set(keyActor, domain.Actor{ID: claims.UID, Role: claims.Role})
		c.Next()
	}
}

func ActorFrom(c *gin.Context) (domain.Actor, bool) {
	v, ok := c.Get(keyActor)
	if !ok {
		return domain.Actor{}, false
	}
	a, ok := v.(domain.Actor)
	return a, ok
}
