package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestWithContextAddsSessionAndRequest(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("production", &buf)

	ctx := context.WithValue(context.Background(), RequestIDKey, "req-1")
	ctx = context.WithValue(ctx, SessionIDKey, "sess-1")
	log.WithContext(ctx).CountrySelected("FR", "+33")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON output: %v", err)
	}
	if entry["request_id"] != "req-1" || entry["session_id"] != "sess-1" {
		t.Fatalf("missing context attributes: %v", entry)
	}
	if entry["msg"] != "country_selected" || entry["code"] != "FR" {
		t.Fatalf("unexpected entry %v", entry)
	}
}

func TestDevelopmentLogsDebugAsText(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("development", &buf)

	log.ValidationChanged("FR", 10, true)

	out := buf.String()
	if !strings.Contains(out, "validation_changed") || !strings.Contains(out, "digits=10") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestProductionSkipsDebug(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("production", &buf)

	log.ValidationChanged("FR", 10, true)

	if buf.Len() != 0 {
		t.Fatalf("expected debug entry to be dropped, got %q", buf.String())
	}
}
