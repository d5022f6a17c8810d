package middleware

import (
	"net/http"
	"strings"
	"time"

	"student-rewards-api/internal/core/domain"
	"student-rewards-api/internal/core/ports"
	"student-rewards-api/pkg/apperror"
	"student-rewards-api/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const (
	// Header names for wallet authentication
	HeaderWalletAddress = "X-Wallet-Address"
	HeaderUserRole      = "X-User-Role"

	// Context keys
	CtxPrincipal = "principal"
)

// WalletAuth creates a middleware that resolves the caller identity.
// It accepts either a Bearer session token or the plain wallet
// headers; the token wins when both are present.
func WalletAuth(tokenSvc ports.TokenService, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			if !strings.HasPrefix(authHeader, "Bearer ") {
				response.Error(c, apperror.ErrInvalidToken())
				c.Abort()
				return
			}

			claims, err := tokenSvc.Validate(strings.TrimPrefix(authHeader, "Bearer "))
			if err != nil {
				response.Error(c, apperror.ErrInvalidToken())
				c.Abort()
				return
			}

			c.Set(CtxPrincipal, domain.Principal{
				Address: claims.Address,
				Role:    domain.Role(claims.Role),
			})
			c.Next()
			return
		}

		address := c.GetHeader(HeaderWalletAddress)
		if address == "" {
			response.Error(c, apperror.ErrWalletAddressRequired())
			c.Abort()
			return
		}

		role := domain.Role(c.GetHeader(HeaderUserRole))
		switch role {
		case domain.RoleAdmin, domain.RoleOrganizer, domain.RoleIssuer, domain.RoleStudent:
		default:
			role = domain.RoleStudent
		}

		c.Set(CtxPrincipal, domain.Principal{Address: address, Role: role})
		c.Next()
	}
}

// GetPrincipal returns the authenticated caller from the context.
func GetPrincipal(c *gin.Context) (domain.Principal, bool) {
	v, exists := c.Get(CtxPrincipal)
	if !exists {
		return domain.Principal{}, false
	}
	p, ok := v.(domain.Principal)
	return p, ok
}

// RequireAdmin rejects callers without the admin role.
func RequireAdmin() gin.HandlerFunc {
	return requireRole(func(p domain.Principal) bool { return p.IsAdmin() })
}

// RequireOrganizer rejects callers that may not manage events.
func RequireOrganizer() gin.HandlerFunc {
	return requireRole(func(p domain.Principal) bool { return p.IsOrganizer() })
}

// RequireIssuer rejects callers that may not issue credentials.
func RequireIssuer() gin.HandlerFunc {
	return requireRole(func(p domain.Principal) bool { return p.IsIssuer() })
}

func requireRole(allowed func(domain.Principal) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := GetPrincipal(c)
		if !ok {
			response.Error(c, apperror.ErrWalletAddressRequired())
			c.Abort()
			return
		}
		if !allowed(p) {
			response.Error(c, apperror.ErrRoleForbidden(string(p.Role)))
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequestLogger creates a middleware that logs every HTTP request.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()

		event := log.Info()
		if status >= http.StatusInternalServerError {
			event = log.Error()
		} else if status >= http.StatusBadRequest {
			event = log.Warn()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", latency).
			Str("client_ip", c.ClientIP()).
			Msg("http request")
	}
}

// Recovery creates a panic recovery middleware.
func Recovery(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Str("path", c.Request.URL.Path).Msg("panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error_code": "SYS_001",
					"message":    "Internal server error",
				})
			}
		}()
		c.Next()
	}
}
