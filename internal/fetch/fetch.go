// Package fetch downloads recordings over HTTP with bounded retries.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"vocal-emotion-go/internal/logger"
)

var httpClient = &http.Client{Timeout: 30 * time.Second}

// MaxBytes caps a single download; recordings past this are rejected
// rather than buffered.
const MaxBytes = 100 << 20

// Audio downloads the recording at url, retrying transient failures with
// exponential backoff. Server 5xx and transport errors retry; 4xx fail fast.
func Audio(ctx context.Context, url string) ([]byte, error) {
	log := logger.Component("fetch").WithField("url", url)

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 25 * time.Second

	var body []byte
	var lastErr error
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err := httpClient.Do(req)
		if err != nil {
			lastErr = err
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("server error: %s", resp.Status)
			return lastErr
		}
		if resp.StatusCode >= 300 {
			lastErr = fmt.Errorf("download failed: %s", resp.Status)
			return backoff.Permanent(lastErr)
		}
		b, err := io.ReadAll(io.LimitReader(resp.Body, MaxBytes+1))
		if err != nil {
			lastErr = err
			return err
		}
		if len(b) > MaxBytes {
			lastErr = fmt.Errorf("recording exceeds %d byte limit", MaxBytes)
			return backoff.Permanent(lastErr)
		}
		body = b
		return nil
	}
	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		if lastErr != nil {
			log.WithError(lastErr).Warn("download gave up")
			return nil, fmt.Errorf("fetch audio: %w", lastErr)
		}
		return nil, fmt.Errorf("fetch audio: %w", err)
	}
	log.WithField("bytes", len(body)).Debug("recording downloaded")
	return body, nil
}
