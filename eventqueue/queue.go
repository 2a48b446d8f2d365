// Copyright 2025 The Go A2A Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package eventqueue implements the per-task broadcast event queue that
// carries [github.com/colours93/a2a.StreamResponse] events from a running
// AgentExecutor to every subscriber of message/stream and tasks/subscribe
// (§4.3).
package eventqueue

import (
	"context"
	"errors"
	"sync"

	"github.com/colours93/a2a"
)

// ErrClosed is returned by Enqueue and Dequeue once a Queue has been
// closed.
var ErrClosed = errors.New("eventqueue: queue closed")

// Item is a single value delivered by a Queue: either a StreamResponse
// event, or a lag notice reporting that this subscriber fell behind and
// some number of events were dropped on its behalf (§4.3, §8 scenario 6).
type Item struct {
	Event   a2a.StreamResponse
	Dropped int // > 0 marks this Item as a lag notice, not an Event delivery
}

// IsLag reports whether it represents a lag notice rather than a real
// event.
func (it Item) IsLag() bool { return it.Dropped > 0 }

// Queue is a bounded, broadcast, per-task event channel. The root queue
// for a task is created once; every stream subscriber gets its own Tap,
// an independent bounded channel fed by the same publisher.
//
// A slow subscriber never blocks the publisher or other subscribers: if a
// tap's buffer is full when an event arrives, the oldest buffered event is
// dropped to make room, and the tap's next receive surfaces a lag Item
// reporting how many events were skipped, instead of silently losing them.
type Queue struct {
	mu       sync.Mutex
	buf      []Item
	size     int
	closed   bool
	notEmpty chan struct{}

	parent   *Queue
	children []*Queue
}

// New creates a root Queue with the given bounded capacity. Capacity must
// be positive; callers typically pass a2a.DefaultEventQueueSize.
func New(capacity int) *Queue {
	if capacity <= 0 {
		capacity = a2a.DefaultEventQueueSize
	}
	return &Queue{
		size:     capacity,
		notEmpty: make(chan struct{}, 1),
	}
}

// Tap creates a child Queue of the same capacity that receives a copy of
// every event enqueued to q (and, transitively, to q's ancestors) from
// this point forward.
func (q *Queue) Tap() (*Queue, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return nil, ErrClosed
	}
	child := New(q.size)
	child.parent = q
	q.children = append(q.children, child)
	return child, nil
}

// Enqueue publishes event to q and every descendant tap. It never blocks
// and never fails due to backpressure: a full buffer drops its oldest
// entry and records the loss as a lag notice.
func (q *Queue) Enqueue(event a2a.StreamResponse) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return ErrClosed
	}
	q.pushLocked(Item{Event: event})
	children := append([]*Queue(nil), q.children...)
	q.mu.Unlock()

	for _, c := range children {
		_ = c.Enqueue(event)
	}
	return nil
}

// pushLocked appends it to the buffer. If the buffer already holds
// capacity events, the oldest event is dropped and counted in the single
// lag notice kept at the head of the buffer. Callers must hold q.mu.
func (q *Queue) pushLocked(it Item) {
	lag := 0
	if len(q.buf) > 0 && q.buf[0].IsLag() {
		lag = q.buf[0].Dropped
		q.buf = q.buf[1:]
	}
	if len(q.buf) >= q.size {
		q.buf = q.buf[1:]
		lag++
	}
	if lag > 0 {
		q.buf = append([]Item{{Dropped: lag}}, q.buf...)
	}
	q.buf = append(q.buf, it)
	select {
	case q.notEmpty <- struct{}{}:
	default:
	}
}

// Dequeue blocks until an Item is available, q is closed, or ctx is done.
// A lag Item (it.IsLag()) must be handled by the caller as "at least
// it.Dropped events were missed" rather than treated as a real event.
func (q *Queue) Dequeue(ctx context.Context) (Item, error) {
	for {
		q.mu.Lock()
		if len(q.buf) > 0 {
			it := q.buf[0]
			q.buf = q.buf[1:]
			q.mu.Unlock()
			return it, nil
		}
		closed := q.closed
		q.mu.Unlock()
		if closed {
			return Item{}, ErrClosed
		}

		select {
		case <-ctx.Done():
			return Item{}, ctx.Err()
		case <-q.notEmpty:
		}
	}
}

// Close closes q and every descendant tap. Buffered items already queued
// remain available to Dequeue until drained; after that, Dequeue returns
// ErrClosed.
func (q *Queue) Close() error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	children := append([]*Queue(nil), q.children...)
	select {
	case q.notEmpty <- struct{}{}:
	default:
	}
	q.mu.Unlock()

	for _, c := range children {
		_ = c.Close()
	}
	return nil
}

// Len reports the number of buffered items (real events plus at most one
// pending lag notice).
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.buf)
}
