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

package eventqueue

import "sync"

// Manager owns one root Queue per task id, created lazily on first use.
type Manager interface {
	// Get returns the root queue for taskID, creating it if necessary.
	Get(taskID string) *Queue
	// Tap returns a fresh subscriber queue for taskID.
	Tap(taskID string) (*Queue, error)
	// Close closes and forgets the queue for taskID.
	Close(taskID string) error
	// CloseAll closes and forgets every managed queue.
	CloseAll()
}

// InMemoryManager is the reference Manager implementation: root queues
// live only in process memory and are lost on restart.
type InMemoryManager struct {
	mu       sync.Mutex
	queues   map[string]*Queue
	capacity int
}

// NewInMemoryManager creates a Manager whose queues share the given
// capacity.
func NewInMemoryManager(capacity int) *InMemoryManager {
	return &InMemoryManager{
		queues:   make(map[string]*Queue),
		capacity: capacity,
	}
}

// Get implements [Manager].
func (m *InMemoryManager) Get(taskID string) *Queue {
	m.mu.Lock()
	defer m.mu.Unlock()
	q, ok := m.queues[taskID]
	if !ok {
		q = New(m.capacity)
		m.queues[taskID] = q
	}
	return q
}

// Tap implements [Manager].
func (m *InMemoryManager) Tap(taskID string) (*Queue, error) {
	return m.Get(taskID).Tap()
}

// Close implements [Manager].
func (m *InMemoryManager) Close(taskID string) error {
	m.mu.Lock()
	q, ok := m.queues[taskID]
	if ok {
		delete(m.queues, taskID)
	}
	m.mu.Unlock()
	if !ok {
		return nil
	}
	return q.Close()
}

// CloseAll implements [Manager].
func (m *InMemoryManager) CloseAll() {
	m.mu.Lock()
	queues := m.queues
	m.queues = make(map[string]*Queue)
	m.mu.Unlock()
	for _, q := range queues {
		_ = q.Close()
	}
}
