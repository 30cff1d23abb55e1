package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestContextLoggingAttachesRequestID(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := &ZapLogger{logger: zap.New(core).Sugar()}

	ctx := WithRequestID(context.Background(), "req-42")
	l.InfoContext(ctx, "Order status updated", "order_id", "ord_1")
	l.Info("no context")

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["request_id"] != "req-42" || fields["order_id"] != "ord_1" {
		t.Fatalf("fields got %v", fields)
	}
	if _, ok := entries[1].ContextMap()["request_id"]; ok {
		t.Fatal("request_id must only be attached from context")
	}
}

func TestRequestIDFromEmptyContext(t *testing.T) {
	if id := RequestIDFrom(context.Background()); id != "" {
		t.Fatalf("expected empty request id, got %q", id)
	}
}
