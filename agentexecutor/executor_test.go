// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package agentexecutor_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/colours93/a2a"
	"github.com/colours93/a2a/agentexecutor"
	"github.com/colours93/a2a/eventqueue"
)

func TestBaseExecutor_Cancel_PublishesTerminalCanceledStatus(t *testing.T) {
	q := eventqueue.New(4)
	var exec agentexecutor.BaseExecutor

	reqCtx := agentexecutor.RequestContext{TaskID: "t1", ContextID: "c1"}
	require.NoError(t, exec.Cancel(context.Background(), reqCtx, q))

	item, err := q.Dequeue(context.Background())
	require.NoError(t, err)
	require.Equal(t, a2a.StreamEventStatusUpdate, item.Event.Kind)
	require.Equal(t, a2a.TaskStateCanceled, item.Event.StatusUpdate.Status.State)
	require.True(t, item.Event.StatusUpdate.Final)
}
