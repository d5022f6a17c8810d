package middleware

import (
	"encoding/json"
	"strings"
	"time"

	"student-rewards-api/internal/core/domain"
	"student-rewards-api/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuditLog creates an audit middleware that logs successful write
// operations, mapping HTTP methods and paths to audit actions.
func AuditLog(auditSvc ports.AuditService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Only audit successful write operations (status 2xx)
		if c.Writer.Status() < 200 || c.Writer.Status() >= 300 {
			return
		}
		if c.Request.Method == "GET" || c.Request.Method == "HEAD" || c.Request.Method == "OPTIONS" {
			return
		}

		action, resourceType := mapPathToAction(c.Request.URL.Path, c.Request.Method)
		if action == "" {
			return
		}

		var actor, role string
		if p, ok := GetPrincipal(c); ok {
			actor = p.Address
			role = string(p.Role)
		}

		details, _ := json.Marshal(map[string]interface{}{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"status": c.Writer.Status(),
		})

		auditSvc.Log(c.Request.Context(), &domain.AuditLog{
			ID:           uuid.New(),
			Actor:        actor,
			Role:         role,
			Action:       action,
			ResourceType: resourceType,
			IPAddress:    c.ClientIP(),
			Details:      string(details),
			CreatedAt:    time.Now(),
		})
	}
}

func mapPathToAction(path, method string) (domain.AuditAction, string) {
	if method != "POST" {
		return "", ""
	}
	switch {
	case path == "/api/v1/auth/session":
		return domain.AuditActionSession, "session"
	case path == "/api/v1/rewards/issue":
		return domain.AuditActionIssueReward, "reward"
	case path == "/api/v1/rewards/transfer":
		return domain.AuditActionTransfer, "reward"
	case path == "/api/v1/credentials/issue":
		return domain.AuditActionIssueCredential, "credential"
	case path == "/api/v1/users/events":
		return domain.AuditActionCreateEvent, "event"
	case strings.HasPrefix(path, "/api/v1/users/attendance"):
		return domain.AuditActionRecordAttendance, "attendance"
	}
	return "", ""
}
