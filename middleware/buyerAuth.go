package middleware

import (
	"net/http"
	"strings"

	"propmart/utils"

	"github.com/gin-gonic/gin"
)

// JWTAuthBuyerMiddleware authenticates buyer requests and stores the buyer id
// on the context for handlers.
func JWTAuthBuyerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		buyerID, err := utils.SubjectFromToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		c.Set("buyerID", buyerID)
		c.Next()
	}
}
