// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/go-json-experiment/json"

	"github.com/colours93/a2a"
)

// Stream delivers the events of a message/stream or tasks/subscribe call
// as they arrive over Server-Sent Events (§4.3, §4.7).
type Stream struct {
	resp   *http.Response
	events chan a2a.StreamResponse
	errs   chan error
	logger *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	closeOnce sync.Once
}

func newStream(ctx context.Context, resp *http.Response, bufferSize int, logger *slog.Logger) *Stream {
	sctx, cancel := context.WithCancel(ctx)
	s := &Stream{
		resp:   resp,
		events: make(chan a2a.StreamResponse, bufferSize),
		errs:   make(chan error, 1),
		logger: logger,
		ctx:    sctx,
		cancel: cancel,
	}
	go s.readLoop()
	return s
}

// Events returns the channel of decoded stream events. It is closed when
// the underlying connection ends or the stream is closed.
func (s *Stream) Events() <-chan a2a.StreamResponse { return s.events }

// Err returns the error that ended the stream, if any. Call it only
// after Events() is drained/closed.
func (s *Stream) Err() error {
	select {
	case err := <-s.errs:
		return err
	default:
		return nil
	}
}

// Close terminates the stream and releases the underlying connection.
func (s *Stream) Close() error {
	var err error
	s.closeOnce.Do(func() {
		s.cancel()
		err = s.resp.Body.Close()
	})
	return err
}

// readLoop parses the "data: <json>\n\n" SSE framing (§4.7) and decodes
// each payload as a JSON-RPC response wrapping a StreamResponse.
func (s *Stream) readLoop() {
	defer close(s.events)
	defer s.resp.Body.Close()

	reader := bufio.NewReader(s.resp.Body)
	var data strings.Builder

	for {
		select {
		case <-s.ctx.Done():
			return
		default:
		}

		line, err := reader.ReadString('\n')
		if err != nil {
			if err != io.EOF {
				s.fail(fmt.Errorf("a2a client: read sse stream: %w", err))
			}
			return
		}
		line = strings.TrimRight(line, "\r\n")

		switch {
		case line == "":
			if data.Len() == 0 {
				continue
			}
			if err := s.deliver(data.String()); err != nil {
				s.fail(err)
				return
			}
			data.Reset()
		case strings.HasPrefix(line, ":"):
			// heartbeat comment, ignore
		case strings.HasPrefix(line, "data:"):
			chunk := strings.TrimPrefix(strings.TrimPrefix(line, "data:"), " ")
			if data.Len() > 0 {
				data.WriteByte('\n')
			}
			data.WriteString(chunk)
		}
	}
}

func (s *Stream) deliver(data string) error {
	var resp a2a.Response
	if err := json.Unmarshal([]byte(data), &resp); err != nil {
		return fmt.Errorf("a2a client: decode sse event: %w", err)
	}
	if resp.Error != nil {
		return resp.Error
	}
	body, err := json.Marshal(resp.Result)
	if err != nil {
		return fmt.Errorf("a2a client: re-marshal sse event: %w", err)
	}
	var event a2a.StreamResponse
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("a2a client: decode stream response: %w", err)
	}
	select {
	case s.events <- event:
	case <-s.ctx.Done():
	}
	return nil
}

func (s *Stream) fail(err error) {
	select {
	case s.errs <- err:
	default:
	}
	s.logger.Debug("a2a stream ended", "error", err)
}
