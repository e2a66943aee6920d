// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package client

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/livevote/models"
)

// maxEventSize bounds one snapshot event on the wire
const maxEventSize = 4 << 20

// SubscribeOptions opens the live snapshot stream. Every snapshot is
// delivered as the full option list. The channel closes when ctx is done
// or the stream fails; failures are logged and not retried.
func (c *Client) SubscribeOptions(ctx context.Context) <-chan []models.Option {
	ch := make(chan []models.Option, 1)

	go func() {
		defer close(ch)

		err := c.stream(ctx, func(snap models.Snapshot) bool {
			select {
			case ch <- snap.Options:
				return true
			case <-ctx.Done():
				return false
			}
		})
		if err != nil && ctx.Err() == nil {
			slog.Error("options subscription stopped", "error", err)
		}
	}()

	return ch
}

// stream reads snapshot events until emit returns false, ctx ends or the
// connection drops
func (c *Client) stream(ctx context.Context, emit func(models.Snapshot) bool) error {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/options/stream", nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.streamClient.Do(req)
	if err != nil {
		return fmt.Errorf("open stream: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return parseResponse(resp, nil)
	}
	defer resp.Body.Close()

	return readEvents(resp.Body, func(event, data string) bool {
		if event != models.EventSnapshot {
			return true
		}
		var snap models.Snapshot
		if err := json.Unmarshal([]byte(data), &snap); err != nil {
			slog.Warn("skipping malformed snapshot", "error", err)
			return true
		}
		return emit(snap)
	})
}

// readEvents splits an SSE body into events. Comment lines are skipped
// and multi-line data fields are joined with newlines.
func readEvents(r io.Reader, handle func(event, data string) bool) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxEventSize)

	var event string
	var data []string
	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case line == "":
			// Blank line ends the event
			if len(data) > 0 {
				if event == "" {
					event = "message"
				}
				if !handle(event, strings.Join(data, "\n")) {
					return nil
				}
			}
			event, data = "", nil
		case strings.HasPrefix(line, ":"):
			continue
		case strings.HasPrefix(line, "event:"):
			event = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			value := strings.TrimPrefix(line, "data:")
			data = append(data, strings.TrimPrefix(value, " "))
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read stream: %w", err)
	}
	return io.ErrUnexpectedEOF
}
