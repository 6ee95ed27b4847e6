// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRetryWithBackoff(t *testing.T) {
	t.Parallel()

	errTransient := errors.New("transient")
	errFatal := errors.New("fatal")

	tests := []struct {
		name        string
		maxAttempts int
		results     []error
		retryable   bool
		wantCalls   int
		wantErr     error
	}{
		{name: "first try", maxAttempts: 3, results: []error{nil}, wantCalls: 1},
		{name: "succeeds after retries", maxAttempts: 3, results: []error{errTransient, errTransient, nil}, retryable: true, wantCalls: 3},
		{name: "exhausted", maxAttempts: 2, results: []error{errTransient, errTransient}, retryable: true, wantCalls: 2, wantErr: errTransient},
		{name: "not retryable", maxAttempts: 3, results: []error{errFatal}, wantCalls: 1, wantErr: errFatal},
		{name: "zero attempts runs once", maxAttempts: 0, results: []error{errTransient}, retryable: true, wantCalls: 1, wantErr: errTransient},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			calls := 0
			err := RetryWithBackoff(context.Background(), tt.maxAttempts, time.Millisecond, func(attempt int) (bool, error) {
				if attempt != calls {
					t.Errorf("attempt = %d, want %d", attempt, calls)
				}
				err := tt.results[calls]
				calls++
				return tt.retryable, err
			})
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if !errors.Is(err, tt.wantErr) || (tt.wantErr == nil && err != nil) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRetryWithBackoff_ContextCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	errTransient := errors.New("transient")
	calls := 0
	err := RetryWithBackoff(ctx, 5, time.Hour, func(int) (bool, error) {
		calls++
		cancel()
		return true, errTransient
	})
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if !errors.Is(err, context.Canceled) || !errors.Is(err, errTransient) {
		t.Errorf("err = %v, want both context.Canceled and the last error", err)
	}
}
