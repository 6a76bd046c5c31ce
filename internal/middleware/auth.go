package middleware

import (
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"fleetmon/internal/utils"

	"github.com/gin-gonic/gin"
)

// AuthService checks the shared ingestion secret on write and delete calls
// and throttles clients that keep failing.
type AuthService struct {
	secretHash [sha256.Size]byte
	logger     *utils.Logger

	mu       sync.Mutex
	failures map[string]*authFailure
}

type authFailure struct {
	count        int
	lastAttempt  time.Time
	lockoutUntil time.Time
}

func NewAuthService(secret string, logger *utils.Logger) *AuthService {
	return &AuthService{
		secretHash: sha256.Sum256([]byte(secret)),
		logger:     logger,
		failures:   make(map[string]*authFailure),
	}
}

// CheckKey compares a presented key against the configured secret. Both sides
// are hashed before the comparison so neither content nor length leaks
// through timing.
func (a *AuthService) CheckKey(key string) bool {
	presented := sha256.Sum256([]byte(key))
	return subtle.ConstantTimeCompare(presented[:], a.secretHash[:]) == 1
}

// bearerToken extracts the credential from the Authorization header. Agents
// have sent both "Bearer TOKEN" and a bare token; accept either.
func bearerToken(c *gin.Context) string {
	token := c.GetHeader("Authorization")
	token = strings.TrimPrefix(token, "Bearer ")
	return strings.TrimSpace(token)
}

// RequireAPIKey guards mutating endpoints. A missing or wrong key is rejected
// with no state change, and repeat offenders get locked out with an
// escalating, capped delay.
func (a *AuthService) RequireAPIKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if retryAfter, locked := a.checkLockout(key); locked {
			c.Header("Retry-After", retryAfterSeconds(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":       "Too many unauthorized attempts",
				"retry_after": int(retryAfter.Seconds()),
			})
			return
		}

		token := bearerToken(c)
		if token == "" || !a.CheckKey(token) {
			a.logger.Writef("unauthorized %s %s from %s", c.Request.Method, c.Request.URL.Path, key)
			retryAfter, locked := a.recordFailure(key)
			if locked {
				c.Header("Retry-After", retryAfterSeconds(retryAfter))
				c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
					"error":       "Too many unauthorized attempts",
					"retry_after": int(retryAfter.Seconds()),
				})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or missing API key"})
			return
		}

		a.clearFailures(key)
		c.Next()
	}
}

func retryAfterSeconds(d time.Duration) string {
	return fmt.Sprintf("%.0f", d.Seconds())
}

func (a *AuthService) checkLockout(key string) (time.Duration, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	rec, ok := a.failures[key]
	if !ok {
		return 0, false
	}
	now := time.Now()
	if rec.lockoutUntil.After(now) {
		return rec.lockoutUntil.Sub(now), true
	}
	return 0, false
}

func (a *AuthService) recordFailure(key string) (time.Duration, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := time.Now()
	rec, ok := a.failures[key]
	if !ok {
		rec = &authFailure{}
		a.failures[key] = rec
	}

	if rec.lockoutUntil.After(now) {
		return rec.lockoutUntil.Sub(now), true
	}

	if now.Sub(rec.lastAttempt) > 5*time.Minute {
		rec.count = 0
	}

	rec.lastAttempt = now
	rec.count++

	if rec.count >= 3 {
		lockout := time.Duration(rec.count) * 15 * time.Second
		if lockout > 2*time.Minute {
			lockout = 2 * time.Minute
		}
		rec.lockoutUntil = now.Add(lockout)
		rec.count = 0
		return lockout, true
	}

	return 0, false
}

func (a *AuthService) clearFailures(key string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.failures, key)
}
