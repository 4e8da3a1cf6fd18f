package http

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// MaxReadBytes is the size of each chunk read from a request body.
const MaxReadBytes = 2048

// ReadBody reads body to the end in chunks of at most MaxReadBytes and
// returns the concatenated bytes. Any error other than io.EOF aborts the
// read. The body is drained and closed before ReadBody returns, on
// success and on failure. A nil body reads as empty.
func ReadBody(body io.ReadCloser) ([]byte, error) {
	if body == nil {
		return []byte{}, nil
	}
	defer func() {
		_, _ = io.Copy(io.Discard, body)
		if err := body.Close(); err != nil {
			slog.Warn("failed to close request body", "error", err)
		}
	}()

	buf := make([]byte, 0, MaxReadBytes)
	chunk := make([]byte, MaxReadBytes)
	for {
		n, err := body.Read(chunk)
		buf = append(buf, chunk[:n]...)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return buf, nil
			}
			return nil, fmt.Errorf("read body: %w", err)
		}
	}
}

// drainBody discards a request body the route does not use.
func drainBody(r *http.Request) {
	if _, err := ReadBody(r.Body); err != nil {
		slog.Warn("failed to drain request body", "error", err)
	}
}
