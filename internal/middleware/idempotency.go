package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/commu-board/auth-service/pkg/response"
)

const (
	// IdempotencyKeyHeader is the header name for the idempotency key
	IdempotencyKeyHeader = "X-Idempotency-Key"
	// ContextKeyIdempotencyKey is the context key for the idempotency key
	ContextKeyIdempotencyKey = "idempotency_key"
	// idempotencyKeyPrefix is the Redis key prefix
	idempotencyKeyPrefix = "idempotency:"
)

// idempotencyStatus marks where a keyed request is in its lifecycle
type idempotencyStatus string

const (
	statusProcessing idempotencyStatus = "processing"
	statusCompleted  idempotencyStatus = "completed"
)

// idempotencyRecord stores the state of a keyed request
type idempotencyRecord struct {
	Key          string            `json:"key"`
	Status       idempotencyStatus `json:"status"`
	RequestHash  string            `json:"request_hash"`
	ResponseCode int               `json:"response_code"`
	ResponseBody string            `json:"response_body"`
	CreatedAt    time.Time         `json:"created_at"`
	CompletedAt  *time.Time        `json:"completed_at,omitempty"`
}

// RedisClient is the subset of Redis operations the middleware needs
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// IdempotencyConfig holds configuration for the idempotency middleware
type IdempotencyConfig struct {
	Redis RedisClient
	// TTL for completed records
	TTL time.Duration
	// ProcessingTTL for in-flight records, kept short so a crashed
	// handler does not block retries for long
	ProcessingTTL time.Duration
}

// DefaultIdempotencyConfig returns default configuration
func DefaultIdempotencyConfig(redis RedisClient) *IdempotencyConfig {
	return &IdempotencyConfig{
		Redis:         redis,
		TTL:           5 * time.Minute,
		ProcessingTTL: 60 * time.Second,
	}
}

// Idempotency replays the cached response when a request carries an
// X-Idempotency-Key already seen. Requests without the header pass
// through untouched, and Redis failures fail open.
func Idempotency(config *IdempotencyConfig) gin.HandlerFunc {
	if config.ProcessingTTL == 0 {
		config.ProcessingTTL = 60 * time.Second
	}
	if config.TTL == 0 {
		config.TTL = 5 * time.Minute
	}

	return func(c *gin.Context) {
		idempotencyKey := c.GetHeader(IdempotencyKeyHeader)
		if idempotencyKey == "" {
			c.Next()
			return
		}

		c.Set(ContextKeyIdempotencyKey, idempotencyKey)

		var bodyBytes []byte
		if c.Request.Body != nil {
			bodyBytes, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
		}

		requestHash := requestHash(c, bodyBytes)
		redisKey := idempotencyKeyPrefix + idempotencyKey
		ctx := c.Request.Context()

		existing, err := getRecord(ctx, config.Redis, redisKey)
		if err != nil && !errors.Is(err, redis.Nil) {
			// fail open on Redis errors
			c.Next()
			return
		}

		if existing != nil {
			replayRecord(c, existing, requestHash)
			return
		}

		record := &idempotencyRecord{
			Key:         idempotencyKey,
			Status:      statusProcessing,
			RequestHash: requestHash,
			CreatedAt:   time.Now(),
		}

		if !trySetRecord(ctx, config.Redis, redisKey, record, config.ProcessingTTL) {
			// Another request claimed the key first.
			existing, _ = getRecord(ctx, config.Redis, redisKey)
			if existing != nil {
				replayRecord(c, existing, requestHash)
				return
			}
		}

		rw := &captureWriter{
			ResponseWriter: c.Writer,
			body:           bytes.NewBuffer(nil),
		}
		c.Writer = rw

		c.Next()

		now := time.Now()
		record.Status = statusCompleted
		record.ResponseCode = rw.status
		record.ResponseBody = rw.body.String()
		record.CompletedAt = &now

		saveRecord(ctx, config.Redis, redisKey, record, config.TTL)
	}
}

func replayRecord(c *gin.Context, record *idempotencyRecord, requestHash string) {
	if record.RequestHash != requestHash {
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, response.Error(
			"IDEMPOTENCY_KEY_REUSED", "idempotency key already used with a different request"))
		return
	}
	if record.Status == statusProcessing {
		c.AbortWithStatusJSON(http.StatusConflict, response.Error(
			"REQUEST_IN_PROGRESS", "a request with this idempotency key is already being processed"))
		return
	}
	c.Data(record.ResponseCode, "application/json", []byte(record.ResponseBody))
	c.Abort()
}

// captureWriter records the response for replay
type captureWriter struct {
	gin.ResponseWriter
	body   *bytes.Buffer
	status int
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *captureWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func requestHash(c *gin.Context, body []byte) string {
	h := sha256.New()
	h.Write([]byte(c.Request.Method))
	h.Write([]byte(c.Request.URL.Path))
	if userID, ok := GetUserID(c); ok {
		h.Write([]byte(strconv.FormatInt(userID, 10)))
	}
	if len(body) > 0 {
		h.Write(body)
	}
	return hex.EncodeToString(h.Sum(nil))
}

func getRecord(ctx context.Context, rc RedisClient, key string) (*idempotencyRecord, error) {
	result, err := rc.Get(ctx, key).Result()
	if err != nil {
		return nil, err
	}

	var record idempotencyRecord
	if err := json.Unmarshal([]byte(result), &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func trySetRecord(ctx context.Context, rc RedisClient, key string, record *idempotencyRecord, ttl time.Duration) bool {
	data, err := json.Marshal(record)
	if err != nil {
		return false
	}
	ok, err := rc.SetNX(ctx, key, string(data), ttl).Result()
	if err != nil {
		return false
	}
	return ok
}

func saveRecord(ctx context.Context, rc RedisClient, key string, record *idempotencyRecord, ttl time.Duration) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return rc.Set(ctx, key, string(data), ttl).Err()
}
