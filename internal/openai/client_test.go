package openai

import (
	"context"
	"strings"
	"testing"
)

func TestSummarizeDigestFallback(t *testing.T) {
	t.Parallel()

	client := New("")
	digest := "Your reminders for today:\n- 09:00: standup\n- 18:30: buy milk"

	summary, err := client.SummarizeDigest(context.Background(), digest)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary != digest {
		t.Fatalf("fallback must return the digest unchanged, got %q", summary)
	}

	long := strings.Repeat("reminder ", 100)
	summary, err = client.SummarizeDigest(context.Background(), long)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(summary) > len(long) || !strings.HasSuffix(summary, "...") {
		t.Fatalf("expected capped fallback, got %d chars", len(summary))
	}

	if _, err := client.SummarizeDigest(context.Background(), "   "); err == nil {
		t.Fatalf("expected error for empty content")
	}
}
