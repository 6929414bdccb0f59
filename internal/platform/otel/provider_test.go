package otel_test

import (
	"context"
	"testing"

	"github.com/louisbranch/aikira.quest/internal/platform/otel"
)

func TestSetup_NoopWhenEndpointEmpty(t *testing.T) {
	t.Setenv("AIKIRA_QUEST_OTEL_ENDPOINT", "")
	t.Setenv("AIKIRA_QUEST_OTEL_ENABLED", "")

	shutdown, err := otel.Setup(context.Background(), "test-service")
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if shutdown == nil {
		t.Fatal("expected shutdown function")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestSetup_NoopWhenDisabled(t *testing.T) {
	t.Setenv("AIKIRA_QUEST_OTEL_ENDPOINT", "http://localhost:4318")
	t.Setenv("AIKIRA_QUEST_OTEL_ENABLED", "false")

	shutdown, err := otel.Setup(context.Background(), "test-service")
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}
