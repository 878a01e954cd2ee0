package respond

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-matcher/internal/shared/telemetry"
)

func TestErrorWritesEnvelopeAndLogs(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var logs bytes.Buffer
	restore := telemetry.SetOutput(&logs)
	defer restore()

	router := gin.New()
	router.GET("/x", func(c *gin.Context) {
		c.Set("requestId", "req-1")
		Error(c, http.StatusBadRequest, "validation_error", "Job title is required", nil)
	})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/x", nil))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["error"] != "Job title is required" {
		t.Fatalf("unexpected error field: %v", body["error"])
	}
	if body["code"] != "validation_error" {
		t.Fatalf("unexpected code field: %v", body["code"])
	}
	if _, ok := body["details"]; ok {
		t.Fatalf("details should be omitted when nil")
	}
	if !strings.Contains(logs.String(), `"msg":"http.error"`) || !strings.Contains(logs.String(), `"request_id":"req-1"`) {
		t.Fatalf("expected http.error log line, got %q", logs.String())
	}
}
