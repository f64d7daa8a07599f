package middleware

import (
	"strings"

	"jobkit-backend/internal/domain"
	"jobkit-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware accepts a Bearer access token and attaches the principal to
// both the gin context and the request context.
func AuthMiddleware(authUC domain.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			abortWith(c, apperror.Unauthorized("Authorization header with Bearer token required"))
			return
		}

		claims, err := authUC.Authenticate(c.Request.Context(), token)
		if err != nil {
			abortWith(c, err)
			return
		}

		attachPrincipal(c, claims)
		c.Next()
	}
}

// OptionalAuth attaches the principal when a valid token is present and
// otherwise serves the request anonymously.
func OptionalAuth(authUC domain.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c); ok {
			if claims, err := authUC.Authenticate(c.Request.Context(), token); err == nil {
				attachPrincipal(c, claims)
			}
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	scheme, token, found := strings.Cut(c.GetHeader("Authorization"), " ")
	token = strings.TrimSpace(token)
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", false
	}
	return token, true
}

func attachPrincipal(c *gin.Context, claims *domain.SessionClaims) {
	c.Set(string(domain.KeyUserID), claims.AccountID)
	c.Set(string(domain.KeyUserRole), claims.Role)
	c.Request = c.Request.WithContext(domain.WithPrincipal(c.Request.Context(), claims.AccountID, claims.Role))
}

// RequireRole lets through only the listed roles. Run it after AuthMiddleware.
func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, role, ok := domain.PrincipalFromContext(c.Request.Context())
		if !ok {
			abortWith(c, apperror.Unauthorized("User not authenticated"))
			return
		}
		for _, r := range roles {
			if r == role {
				c.Next()
				return
			}
		}
		abortWith(c, apperror.Forbidden("You do not have permission to perform this action"))
	}
}

// abortWith hands err to ErrorHandler and stops the chain.
func abortWith(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
