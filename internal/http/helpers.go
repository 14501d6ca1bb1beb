package http

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// errorResponse is the uniform error body for every non-2xx reply.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Stage   string `json:"stage,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorResponse{Error: code, Message: msg})
}

func writeStageError(w http.ResponseWriter, status int, code string, err error, stage string) {
	writeJSON(w, status, errorResponse{Error: code, Message: err.Error(), Stage: stage})
}

// requestBody supports both JSON and form-encoded payloads.
type requestBody struct {
	jsonData map[string]any
	formData url.Values
}

func parseBody(r *http.Request) (*requestBody, error) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, 1<<16))
	if err != nil {
		return nil, err
	}

	b := &requestBody{}
	if len(raw) == 0 {
		b.formData = url.Values{}
		return b, nil
	}

	if raw[0] == '{' {
		b.jsonData = make(map[string]any)
		if err := json.Unmarshal(raw, &b.jsonData); err != nil {
			return nil, err
		}
		return b, nil
	}

	b.formData, err = url.ParseQuery(string(raw))
	return b, err
}

// Get returns a trimmed string value from the parsed body.
func (b *requestBody) Get(key string) string {
	if b.jsonData != nil {
		if v, ok := b.jsonData[key]; ok {
			if s, ok := v.(string); ok {
				return strings.TrimSpace(s)
			}
		}
		return ""
	}
	return strings.TrimSpace(b.formData.Get(key))
}

// sanitizeInput strips control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// extractClientIP prefers forwarding headers, falling back to the socket
// peer address.
func extractClientIP(r *http.Request) string {
	if v := r.Header.Get("X-Forwarded-For"); v != "" {
		// First hop is the original client.
		if idx := strings.IndexByte(v, ','); idx >= 0 {
			v = v[:idx]
		}
		return strings.TrimSpace(v)
	}
	if v := r.Header.Get("X-Real-IP"); v != "" {
		return v
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// generateRequestID creates a unique request id for tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}
