// SPDX-License-Identifier: MPL-2.0

package provision

import (
	"context"
	"fmt"
	"time"
)

// RetryWithBackoff runs op up to maxAttempts times with exponential backoff
// starting at baseBackoff. op reports whether a failure is worth retrying; a
// non-retryable error is returned immediately. After the last attempt the
// last error is returned. maxAttempts below 1 means a single attempt.
func RetryWithBackoff(
	ctx context.Context,
	maxAttempts int,
	baseBackoff time.Duration,
	op func(attempt int) (retry bool, err error),
) error {
	maxAttempts = max(maxAttempts, 1)

	var lastErr error
	for attempt := range maxAttempts {
		if attempt > 0 {
			timer := time.NewTimer(baseBackoff * time.Duration(1<<(attempt-1)))
			select {
			case <-ctx.Done():
				timer.Stop()
				return fmt.Errorf("retry aborted: %w (last error: %w)", ctx.Err(), lastErr)
			case <-timer.C:
			}
		}

		retry, err := op(attempt)
		if err == nil {
			return nil
		}
		if !retry {
			return err
		}
		lastErr = err
	}
	return lastErr
}
