package main

import (
	"context"
	"errors"
	"testing"

	"quotebot/provider/testutil"
)

func TestPingProvider(t *testing.T) {
	mock := testutil.NewMockProvider("gpt-4o")
	if err := pingProvider(mock); err != nil {
		t.Fatalf("expected reachable provider, got %v", err)
	}

	mock.PingFunc = func(ctx context.Context) error {
		return errors.New("connection refused")
	}
	if err := pingProvider(mock); err == nil {
		t.Fatal("expected error from unreachable provider")
	}
}
