package vaultprint

import (
	"context"
	"testing"
	"time"
)

func TestWithTimeout(t *testing.T) {
	ctx, cancel := withTimeout(context.Background(), time.Minute)
	defer cancel()
	deadline, ok := ctx.Deadline()
	if !ok || time.Until(deadline) > time.Minute {
		t.Errorf("deadline = %v, %v; want within a minute", deadline, ok)
	}

	for _, d := range []time.Duration{0, -time.Second} {
		ctx, cancel := withTimeout(context.Background(), d)
		if _, ok := ctx.Deadline(); ok {
			t.Errorf("timeout %v set a deadline", d)
		}
		cancel()
		if ctx.Err() == nil {
			t.Errorf("timeout %v: cancel did not end the context", d)
		}
	}
}

func TestPrinterTimeoutFromOptions(t *testing.T) {
	p := &Printer{cfg: defaultConfig()}
	WithTimeout(2 * time.Second)(&p.cfg)
	ctx, cancel := p.withTimeout(context.Background())
	defer cancel()
	if deadline, ok := ctx.Deadline(); !ok || time.Until(deadline) > 2*time.Second {
		t.Errorf("deadline = %v, %v", deadline, ok)
	}
}
