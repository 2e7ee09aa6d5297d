package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yourplaces/backend/pkg/helpers"
	"github.com/yourplaces/backend/pkg/response"
)

const CtxUserIDKey = "userID"

// BearerAuth extracts and verifies the Authorization bearer token and
// injects the bound user id into the Gin context. Nothing is looked up
// server-side: the token alone proves identity. Every mutating route runs
// behind this; handlers never trust a client-supplied user id for
// ownership decisions.
func BearerAuth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Browsers send OPTIONS without auth headers.
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			response.AbortErr(c, http.StatusUnauthorized, "Authentication failed!")
			return
		}
		claims, err := jwt.Parse(token)
		if err != nil {
			response.AbortErr(c, http.StatusUnauthorized, "Authentication failed!")
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Next()
	}
}

// bearerToken pulls the token out of "Bearer <token>". A missing header,
// a different scheme, or an empty token segment all fail.
func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}
