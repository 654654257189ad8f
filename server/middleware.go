package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/teachlens/teachlens-pipeline/auth"
)

const teacherIDKey = "teacher_id"

// CORS lets the browser frontend call the API with a bearer token.
func CORS(origins []string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

func RequestLogger(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		entry := log.WithFields(logrus.Fields{
			"method":      strings.ToUpper(c.Request.Method),
			"path":        path,
			"status":      status,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		if id, ok := c.Get(teacherIDKey); ok {
			entry = entry.WithField("teacher_id", id)
		}

		switch {
		case status >= 500:
			entry.Error("HTTP request")
		case status >= 400:
			entry.Warn("HTTP request")
		default:
			entry.Info("HTTP request")
		}
	}
}

// RequireAuth accepts "Authorization: Bearer <jwt>" and stores the teacher id.
func RequireAuth(tokens *auth.Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if len(h) <= 7 || !strings.EqualFold(h[:7], "Bearer ") {
			abort(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token")
			return
		}
		claims, err := tokens.Parse(strings.TrimSpace(h[7:]))
		if err != nil {
			abort(c, http.StatusUnauthorized, "unauthorized", err.Error())
			return
		}
		c.Set(teacherIDKey, claims.TeacherID)
		c.Next()
	}
}

func teacherID(c *gin.Context) uint {
	return c.GetUint(teacherIDKey)
}
