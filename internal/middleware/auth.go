// Package middleware contains the gin middleware of the API: bearer token
// authentication and request logging. Identity lives in an external account
// service; this API only verifies the tokens it issues.
package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/wedkarski/competitions-api/internal/response"
)

const (
	contextUserIDKey   = "user_id"
	contextUserNameKey = "user_name"
)

// Claims are the token claims this API understands. UserID is the numeric
// account id of the external identity service.
type Claims struct {
	UserID int64  `json:"uid"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

// Auth verifies the Authorization bearer token and stores the caller's
// identity in the request context
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.UnauthorizedError(c, "missing authorization header")
			c.Abort()
			return
		}

		tokenStr, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenStr == "" {
			response.UnauthorizedError(c, "malformed authorization header")
			c.Abort()
			return
		}

		tok, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !tok.Valid {
			response.UnauthorizedError(c, "invalid token")
			c.Abort()
			return
		}

		claims, ok := tok.Claims.(*Claims)
		if !ok || claims.UserID == 0 {
			response.UnauthorizedError(c, "invalid token claims")
			c.Abort()
			return
		}

		c.Set(contextUserIDKey, claims.UserID)
		c.Set(contextUserNameKey, claims.Name)
		c.Next()
	}
}

// CurrentUser returns the authenticated caller stored by Auth
func CurrentUser(c *gin.Context) (int64, string) {
	id, _ := c.Get(contextUserIDKey)
	name, _ := c.Get(contextUserNameKey)
	userID, _ := id.(int64)
	userName, _ := name.(string)
	return userID, userName
}

// SignToken issues a token the Auth middleware accepts. Used by tests and
// local tooling; production tokens come from the identity service.
func SignToken(secret string, userID int64, name string, ttl time.Duration) (string, error) {
	claims := Claims{
		UserID: userID,
		Name:   name,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
