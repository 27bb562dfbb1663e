package httpserver

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/bookmarker/internal/common"
	"github.com/dmitrijs2005/bookmarker/internal/shared"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDKey = "request_id"
	accountIDKey = "auth.account_id"
	emailKey     = "auth.email"
)

// maxRequestIDLen caps client-supplied request ids.
const maxRequestIDLen = 128

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(common.RequestIDHeaderName)
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(common.RequestIDHeaderName, id)
		c.Next()
	}
}

func (h *handlers) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		h.logger.Info(c.Request.Context(), "request",
			"request_id", c.GetString(requestIDKey),
			"method", c.Request.Method,
			"route", c.FullPath(),
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
	}
}

func (h *handlers) recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		h.logger.Error(c.Request.Context(), "panic recovered",
			"request_id", c.GetString(requestIDKey), "route", c.FullPath(), "panic", recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, shared.ErrorResponse{
			Code:    "INTERNAL",
			Message: "Internal server error",
		})
	})
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions}
	cfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", common.AuthorizationHeaderName, common.RequestIDHeaderName}
	cfg.ExposeHeaders = []string{common.RequestIDHeaderName}

	allowAll := len(origins) == 0
	for _, o := range origins {
		if o == "*" {
			allowAll = true
		}
	}
	if allowAll {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}

// requireBearer validates "Authorization: Bearer <jwt>" and stores the
// account id and email on the context.
func (h *handlers) requireBearer() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(common.AuthorizationHeaderName)
		token, ok := strings.CutPrefix(header, common.BearerPrefix)
		if !ok || strings.TrimSpace(token) == "" {
			h.writeError(c, common.ErrInvalidToken)
			return
		}

		secret, err := h.secrets.Get(common.SecretKeyJWT)
		if err != nil {
			h.writeError(c, err)
			return
		}

		claims, err := h.tokens.Parse(strings.TrimSpace(token), []byte(secret))
		if err != nil {
			h.writeError(c, err)
			return
		}

		c.Set(accountIDKey, claims.Subject)
		c.Set(emailKey, claims.Email)
		c.Next()
	}
}

func accountID(c *gin.Context) string {
	return c.GetString(accountIDKey)
}
