package middleware

import (
	"strings"

	"aeducacao_backend/internal/config"
	"aeducacao_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware 解析Bearer令牌（或token查询参数）并把claims放进上下文
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if tokenString == "" {
			tokenString = c.Query("token")
		}

		if tokenString == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(tokenString, cfg.JWT.Secret)
		if err != nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set("claims", claims)
		c.Next()
	}
}

// AdminOnly 仅放行admin角色
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := util.GetClaimsFromContext(c)
		if claims == nil || claims.Role != "admin" {
			util.Forbidden(c)
			c.Abort()
			return
		}
		c.Next()
	}
}
