package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medconnect/doctor-service/internal/metrics"
	"github.com/medconnect/doctor-service/internal/queue"
	"github.com/medconnect/doctor-service/internal/repo"
	"github.com/medconnect/doctor-service/internal/security"
)

const authUserKey = "authUser"

// AuthUser is the identity the auth middleware injects for protected routes.
// Handlers read it instead of re-parsing the token.
type AuthUser struct {
	DoctorID string
	Email    string
}

// RequestID takes the caller's X-Request-ID or mints one, echoes it on the
// response, and stashes it on the request context for event correlation.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Header("X-Request-ID", id)
		c.Set("X-Request-ID", id)
		c.Request = c.Request.WithContext(queue.WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.InFlight.Inc()
		start := time.Now()

		c.Next()

		metrics.InFlight.Dec()
		metrics.ReqDuration.WithLabelValues(route, c.Request.Method).
			Observe(time.Since(start).Seconds())
		metrics.RequestsTotal.WithLabelValues(route, c.Request.Method,
			strconv.Itoa(c.Writer.Status())).Inc()
	}
}

// AuthDoctor requires a bearer access token and puts the resolved AuthUser into
// the gin context. Verify and reset tokens do not pass here.
func AuthDoctor(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(strings.ToLower(h), "bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authorization token is missing"})
			return
		}
		tok := strings.TrimSpace(h[len("Bearer "):])
		claims, err := security.ParseToken(secret, security.PurposeAccess, tok)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}
		c.Set(authUserKey, AuthUser{DoctorID: claims.DoctorID, Email: claims.Email})
		c.Next()
	}
}

func authUser(c *gin.Context) AuthUser {
	v, _ := c.Get(authUserKey)
	u, _ := v.(AuthUser)
	return u
}

// RateLimit caps requests per client IP through the redis fixed window. A nil
// limiter or a redis failure lets the request through; throttling is advisory.
func RateLimit(l *repo.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, err := l.Allow(c.Request.Context(), c.ClientIP())
		if err == nil && !ok {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": "Too many requests, please try again later"})
			return
		}
		c.Next()
	}
}
