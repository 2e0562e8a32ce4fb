package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Keys under which Auth stores the caller on the gin context
const (
	ContextKeyUserID    = "user_id"
	ContextKeyUserName  = "user_name"
	ContextKeyUserEmail = "user_email"
	ContextKeyToken     = "jwtToken"
)

func abortUnauthorized(c *gin.Context, message, localized string) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"error": gin.H{
			"code":    "UNAUTHORIZED",
			"message": message,
		},
		"message": localized,
	})
	c.Abort()
}

// Auth returns a middleware that validates HMAC signed JWT tokens
func Auth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Authorization header is required", "인증이 필요합니다")
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortUnauthorized(c, "Invalid authorization header format", "잘못된 인증 헤더 형식입니다")
			return
		}

		tokenString := parts[1]

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(jwtSecret), nil
		})
		if err != nil || !token.Valid {
			abortUnauthorized(c, "Invalid or expired token", "유효하지 않거나 만료된 토큰입니다")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortUnauthorized(c, "Invalid token claims", "유효하지 않은 토큰 정보입니다")
			return
		}

		// Support multiple claim formats
		var userIDStr string
		if uid, ok := claims["user_id"].(string); ok {
			userIDStr = uid
		} else if sub, ok := claims["sub"].(string); ok {
			userIDStr = sub
		} else if uid, ok := claims["uid"].(string); ok {
			userIDStr = uid
		} else {
			abortUnauthorized(c, "User ID not found in token", "토큰에서 사용자 ID를 찾을 수 없습니다")
			return
		}

		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			abortUnauthorized(c, "Invalid user ID format", "유효하지 않은 사용자 ID 형식입니다")
			return
		}

		c.Set(ContextKeyUserID, userID)
		c.Set(ContextKeyToken, tokenString)
		if name, ok := claims["name"].(string); ok {
			c.Set(ContextKeyUserName, name)
		}
		if email, ok := claims["email"].(string); ok {
			c.Set(ContextKeyUserEmail, email)
		}

		c.Next()
	}
}
