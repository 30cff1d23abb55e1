package routers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"storefront/internal/app/pkg/logger"
	"storefront/internal/app/pkg/metrics"
	"storefront/internal/app/server/handlers/order"
)

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	log := logger.NewNopLogger()
	return SetupRoutes(order.NewOrderHandler(nil, log), log, m, reg)
}

type logEntry struct {
	msg       string
	requestID string
}

// recordingLogger 记录 Context 日志及其 request_id
type recordingLogger struct {
	entries []logEntry
}

func (l *recordingLogger) record(ctx context.Context, msg string) {
	l.entries = append(l.entries, logEntry{msg: msg, requestID: logger.RequestIDFrom(ctx)})
}

func (l *recordingLogger) Info(msg string, fields ...interface{})  {}
func (l *recordingLogger) Error(msg string, fields ...interface{}) {}
func (l *recordingLogger) Warn(msg string, fields ...interface{})  {}
func (l *recordingLogger) Debug(msg string, fields ...interface{}) {}
func (l *recordingLogger) InfoContext(ctx context.Context, msg string, fields ...interface{}) {
	l.record(ctx, msg)
}
func (l *recordingLogger) ErrorContext(ctx context.Context, msg string, fields ...interface{}) {
	l.record(ctx, msg)
}
func (l *recordingLogger) WarnContext(ctx context.Context, msg string, fields ...interface{}) {
	l.record(ctx, msg)
}
func (l *recordingLogger) DebugContext(ctx context.Context, msg string, fields ...interface{}) {
	l.record(ctx, msg)
}
func (l *recordingLogger) Sync() error { return nil }

func TestPanicKeepsRequestIDAndAccessLog(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := prometheus.NewRegistry()
	log := &recordingLogger{}
	r := SetupRoutes(order.NewOrderHandler(nil, log), log, metrics.New(reg), reg)
	r.GET("/boom", func(c *gin.Context) { panic("nil map write") })

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	req.Header.Set("X-Request-ID", "req-panic")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status got %d", w.Code)
	}
	if w.Header().Get("X-Request-ID") != "req-panic" {
		t.Fatalf("request id header got %q", w.Header().Get("X-Request-ID"))
	}

	want := []string{"Panic recovered", "HTTP request"}
	if len(log.entries) != len(want) {
		t.Fatalf("log entries got %+v", log.entries)
	}
	for i, msg := range want {
		if log.entries[i].msg != msg || log.entries[i].requestID != "req-panic" {
			t.Fatalf("entry %d got %+v", i, log.entries[i])
		}
	}
}

func TestHealth(t *testing.T) {
	r := newTestEngine()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status got %d", w.Code)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatal("request id header missing")
	}
}

func TestMetricsExposeHTTPCounters(t *testing.T) {
	r := newTestEngine()

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `storefront_http_requests_total{method="GET",route="/health",status="200"} 1`) {
		t.Fatalf("http counter missing from /metrics:\n%s", w.Body.String())
	}
}

func TestCORSPreflight(t *testing.T) {
	r := newTestEngine()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/api/v1/admin/orders/ord_1", nil))
	if w.Code != http.StatusNoContent {
		t.Fatalf("status got %d", w.Code)
	}
	if !strings.Contains(w.Header().Get("Access-Control-Allow-Methods"), "PATCH") {
		t.Fatal("PATCH must be allowed")
	}
}
