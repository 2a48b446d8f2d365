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

// Package agentexecutor defines the capability interface an agent
// implementation provides to the request handler: given a request
// context, drive the task to completion by publishing events onto an
// eventqueue.Queue (§4.6).
package agentexecutor

import (
	"context"
	"time"

	"github.com/colours93/a2a"
	"github.com/colours93/a2a/auth"
	"github.com/colours93/a2a/eventqueue"
)

// RequestContext carries everything an AgentExecutor needs to process one
// message/send or message/stream call.
type RequestContext struct {
	TaskID    string
	ContextID string
	Message   a2a.Message
	Task      *a2a.Task // non-nil when continuing an existing task
	AgentCard *a2a.AgentCard
	CreatedAt time.Time
	User      auth.User // caller identity; auth.UnauthenticatedUser if the transport authenticated no one
}

// AgentExecutor is the interface an A2A agent implementation provides.
// Execute publishes at least one terminal status-update event (Completed,
// Failed, or Canceled) or leaves the task in InputRequired/AuthRequired
// awaiting a follow-up message/send (§4.5, §9).
type AgentExecutor interface {
	// Execute processes reqCtx, publishing status and artifact events on
	// queue as work progresses.
	Execute(ctx context.Context, reqCtx RequestContext, queue *eventqueue.Queue) error

	// Cancel is invoked by tasks/cancel to request cooperative
	// cancellation of a task Execute is still driving. Implementations
	// should stop work promptly and publish a Canceled status update.
	Cancel(ctx context.Context, reqCtx RequestContext, queue *eventqueue.Queue) error
}

// BaseExecutor provides a default Cancel that immediately publishes a
// Canceled status update; embedders must still provide Execute.
type BaseExecutor struct{}

// Cancel implements [AgentExecutor] by force-canceling the task.
func (BaseExecutor) Cancel(ctx context.Context, reqCtx RequestContext, queue *eventqueue.Queue) error {
	msg := a2a.NewAgentTextMessage("task canceled", reqCtx.TaskID, reqCtx.ContextID)
	return queue.Enqueue(a2a.NewStatusUpdateResponse(a2a.TaskStatusUpdateEvent{
		TaskID:    reqCtx.TaskID,
		ContextID: reqCtx.ContextID,
		Status: a2a.TaskStatus{
			State:     a2a.TaskStateCanceled,
			Message:   &msg,
			Timestamp: time.Now().UTC(),
		},
		Final: true,
	}))
}
