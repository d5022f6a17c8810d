package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"student-rewards-api/internal/core/domain"
	"student-rewards-api/internal/core/ports"
	"student-rewards-api/internal/core/ports/mocks"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func principalEcho() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := GetPrincipal(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no principal"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"address": p.Address, "role": string(p.Role)})
	}
}

func TestWalletAuth_MissingAddress(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tokenSvc := mocks.NewMockTokenService(ctrl)

	router := gin.New()
	router.GET("/test", WalletAuth(tokenSvc, zerolog.Nop()), principalEcho())

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_001")
}

func TestWalletAuth_HeaderIdentity(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tokenSvc := mocks.NewMockTokenService(ctrl)

	router := gin.New()
	router.GET("/test", WalletAuth(tokenSvc, zerolog.Nop()), principalEcho())

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(HeaderWalletAddress, "0xStudent1")
	req.Header.Set(HeaderUserRole, "organizer")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "0xStudent1")
	assert.Contains(t, w.Body.String(), "organizer")
}

func TestWalletAuth_UnknownRoleFallsBackToStudent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tokenSvc := mocks.NewMockTokenService(ctrl)

	router := gin.New()
	router.GET("/test", WalletAuth(tokenSvc, zerolog.Nop()), principalEcho())

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(HeaderWalletAddress, "0xStudent1")
	req.Header.Set(HeaderUserRole, "superuser")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "student")
}

func TestWalletAuth_BearerToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tokenSvc := mocks.NewMockTokenService(ctrl)
	tokenSvc.EXPECT().Validate("good-token").Return(&ports.TokenClaims{
		Address: "0xAdmin",
		Role:    "admin",
	}, nil)

	router := gin.New()
	router.GET("/test", WalletAuth(tokenSvc, zerolog.Nop()), principalEcho())

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "0xAdmin")
	assert.Contains(t, w.Body.String(), "admin")
}

func TestWalletAuth_BearerTokenWinsOverHeaders(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tokenSvc := mocks.NewMockTokenService(ctrl)
	tokenSvc.EXPECT().Validate("good-token").Return(&ports.TokenClaims{
		Address: "0xFromToken",
		Role:    "student",
	}, nil)

	router := gin.New()
	router.GET("/test", WalletAuth(tokenSvc, zerolog.Nop()), principalEcho())

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	req.Header.Set(HeaderWalletAddress, "0xFromHeader")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "0xFromToken")
}

func TestWalletAuth_InvalidToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tokenSvc := mocks.NewMockTokenService(ctrl)
	tokenSvc.EXPECT().Validate("bad-token").Return(nil, errors.New("expired"))

	router := gin.New()
	router.GET("/test", WalletAuth(tokenSvc, zerolog.Nop()), principalEcho())

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_003")
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name       string
		role       domain.Role
		wantStatus int
	}{
		{"admin allowed", domain.RoleAdmin, http.StatusOK},
		{"organizer forbidden", domain.RoleOrganizer, http.StatusForbidden},
		{"student forbidden", domain.RoleStudent, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.GET("/test", func(c *gin.Context) {
				c.Set(CtxPrincipal, domain.Principal{Address: "0xA", Role: tt.role})
				c.Next()
			}, RequireAdmin(), func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"ok": true})
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestRequireOrganizer_AdminCounts(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleOrganizer} {
		router := gin.New()
		router.GET("/test", func(c *gin.Context) {
			c.Set(CtxPrincipal, domain.Principal{Address: "0xA", Role: role})
			c.Next()
		}, RequireOrganizer(), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": true})
		})

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code, "role %s should pass", role)
	}
}

func TestRequireIssuer_MissingPrincipal(t *testing.T) {
	router := gin.New()
	router.GET("/test", RequireIssuer(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRecovery_CatchesPanic(t *testing.T) {
	router := gin.New()
	router.Use(Recovery(zerolog.Nop()))
	router.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "SYS_001")
}
