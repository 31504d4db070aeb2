package middleware

import (
	"net/http"
	"strings"

	"trasporto-backend/internal/model"
	"trasporto-backend/internal/repository"
	"trasporto-backend/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Context keys set by RequireAuth for downstream handlers.
const (
	ContextAccount   = "account"
	ContextAccountID = "accountID"
)

// RequireAuth validates the bearer token and re-fetches the bound account.
// There is no revocation list: a token stops working when it expires, or on
// its next verification after the account is deleted or un-approved.
func RequireAuth(secret []byte, accounts repository.AccountRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "access token required"))
			return
		}
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "invalid authorization format, expected 'Bearer <token>'"))
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "invalid or expired token"))
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "invalid token claims"))
			return
		}
		accountID, ok := claims["sub"].(string)
		if !ok || accountID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "invalid token claims"))
			return
		}

		account, err := accounts.GetByID(c.Request.Context(), accountID)
		if err != nil || !account.IsApproved {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "invalid token or account not approved"))
			return
		}

		c.Set(ContextAccount, account)
		c.Set(ContextAccountID, accountID)
		c.Next()
	}
}

// RequireAdmin gates admin-only routes. Must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		account, ok := CurrentAccount(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "access token required"))
			return
		}
		if account.Role != model.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Error(http.StatusForbidden, "admin access required"))
			return
		}
		c.Next()
	}
}

// CurrentAccount returns the account loaded by RequireAuth.
func CurrentAccount(c *gin.Context) (*model.Account, bool) {
	v, exists := c.Get(ContextAccount)
	if !exists {
		return nil, false
	}
	account, ok := v.(*model.Account)
	return account, ok
}
