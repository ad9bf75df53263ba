package events

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"flagphone_backend/platform/logger"
)

func TestSubscribeLoggingWritesEvents(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter("development", &buf)
	bus := NewInMemoryBus(log)
	SubscribeLogging(bus, log)

	ctx := context.Background()
	if err := bus.PublishSync(ctx, CountrySelected{BaseEvent: NewBaseEvent(), SessionID: "s1", Code: "FR", DialCode: "+33"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := bus.PublishSync(ctx, ValidationChanged{BaseEvent: NewBaseEvent(), SessionID: "s1", Region: "FR", Digits: 10, IsValid: true}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"country_selected", "session_id=s1", "code=FR", "validation_changed", "valid=true"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in log output:\n%s", want, out)
		}
	}
}
