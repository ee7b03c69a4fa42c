// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements Idempotency-Key support for unsafe methods. The first
// request carrying a key runs normally and, when it succeeds (2xx), its
// status and body are stored under (user, target, key). A later request with
// the same key and target is answered from the stored record with
// Idempotency-Replayed: true, without running the handler or consuming a
// rate-limit token. Target is "<METHOD> <path>", so one key can be reused on
// different resources.
//
// Storage is injected through IdempotencyStore; TTL handling belongs there.
package middleware

import (
	"bytes"
	"context"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	// HeaderIdempotencyKey carries the client's key.
	HeaderIdempotencyKey = "Idempotency-Key"
	// HeaderIdempotencyReplayed is "true" on replayed responses.
	HeaderIdempotencyReplayed = "Idempotency-Replayed"

	ctxKeyIdemKey    = "idem.key"
	ctxKeyIdemReplay = "idem.replay"
)

// StoredResponse is a response recorded for replay.
type StoredResponse struct {
	Status int
	Body   []byte
}

// IdempotencyStore loads and saves recorded responses. Load reports
// found=false for missing or expired records. Save may fail with a duplicate
// error when a concurrent request recorded the same key first; the
// middleware ignores that.
type IdempotencyStore interface {
	Load(ctx context.Context, userID, target, key string, now time.Time) (resp StoredResponse, found bool, err error)
	Save(ctx context.Context, userID, target, key string, resp StoredResponse) error
}

// IdempotencyOptions configures key validation.
type IdempotencyOptions struct {
	// MaxLen caps the key length. Values <= 0 default to 200.
	MaxLen int
	// Pattern restricts allowed characters; defaults to ^[A-Za-z0-9._~\-:]+$.
	Pattern *regexp.Regexp
}

// GetIdempotencyKey returns the validated key of the current request.
func GetIdempotencyKey(c *gin.Context) (string, bool) {
	s := c.GetString(ctxKeyIdemKey)
	return s, s != ""
}

// IsReplay reports whether the response was served from a stored record.
func IsReplay(c *gin.Context) bool {
	return c.GetBool(ctxKeyIdemReplay)
}

// Idempotency returns the middleware. Safe methods and requests without a
// key pass through untouched.
func Idempotency(opts IdempotencyOptions, store IdempotencyStore) gin.HandlerFunc {
	maxLen := opts.MaxLen
	if maxLen <= 0 {
		maxLen = 200
	}
	pat := opts.Pattern
	if pat == nil {
		pat = regexp.MustCompile(`^[A-Za-z0-9._~\-:]+$`)
	}

	return func(c *gin.Context) {
		key := c.GetHeader(HeaderIdempotencyKey)
		if key == "" || !isUnsafe(c.Request.Method) {
			c.Next()
			return
		}
		if len(key) > maxLen || !pat.MatchString(key) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"request_id": RequestIDFrom(c),
				"code":       "bad_idempotency_key",
				"message":    "invalid Idempotency-Key",
			})
			return
		}
		c.Set(ctxKeyIdemKey, key)
		if store == nil {
			c.Next()
			return
		}

		uid := UserIDFrom(c)
		if uid == "" {
			uid = anonymousUser
		}
		target := c.Request.Method + " " + c.Request.URL.Path
		ctx := c.Request.Context()

		prev, found, err := store.Load(ctx, uid, target, key, time.Now().UTC())
		if err != nil {
			LoggerFrom(c).Warn().Err(err).Msg("idempotency lookup failed")
		}
		if found {
			c.Set(ctxKeyIdemReplay, true)
			idemReplays.Inc()
			c.Header(HeaderIdempotencyReplayed, "true")
			c.Data(prev.Status, "application/json; charset=utf-8", prev.Body)
			c.Abort()
			return
		}

		rec := &captureWriter{ResponseWriter: c.Writer}
		c.Writer = rec
		c.Next()
		c.Writer = rec.ResponseWriter

		status := rec.Status()
		if status < 200 || status >= 300 {
			return
		}
		resp := StoredResponse{Status: status, Body: rec.body.Bytes()}
		if err := store.Save(ctx, uid, target, key, resp); err != nil {
			LoggerFrom(c).Debug().Err(err).Msg("idempotency record not saved")
		}
	}
}

// captureWriter tees the response body so it can be recorded.
type captureWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *captureWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

func isUnsafe(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}
