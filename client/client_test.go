// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package client_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/colours93/a2a"
	"github.com/colours93/a2a/agentexecutor"
	"github.com/colours93/a2a/client"
	"github.com/colours93/a2a/eventqueue"
	"github.com/colours93/a2a/server"
	"github.com/colours93/a2a/taskstore"
	"github.com/colours93/a2a/taskupdater"
)

type reversingExecutor struct {
	agentexecutor.BaseExecutor
}

func (reversingExecutor) Execute(ctx context.Context, reqCtx agentexecutor.RequestContext, queue *eventqueue.Queue) error {
	u := taskupdater.New(queue, reqCtx.TaskID, reqCtx.ContextID, a2a.TaskStateSubmitted)
	if err := u.StartWork(ctx, nil); err != nil {
		return err
	}
	return u.Complete(ctx, reverse(reqCtx.Message.Text()))
}

func reverse(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	store := taskstore.NewMemoryStore()
	queues := eventqueue.NewInMemoryManager(a2a.DefaultEventQueueSize)
	handler := server.NewDefaultRequestHandler(reversingExecutor{}, store, queues, nil)
	httpHandler := server.NewHTTPHandler(handler, a2a.AgentCard{Name: "rev", URL: "http://x", Version: "1"}, nil)
	return httptest.NewServer(httpHandler.Mux())
}

func TestClient_SendMessage(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()

	c := client.New(ts.URL + a2a.DefaultRPCURL)
	task, err := c.SendMessage(context.Background(), a2a.MessageSendParams{Message: a2a.NewUserTextMessage("abc")})
	require.NoError(t, err)
	require.Equal(t, a2a.TaskStateCompleted, task.Status.State)
	require.Len(t, task.Artifacts, 1)
	part, ok := task.Artifacts[0].Parts[0].Part.(a2a.TextPart)
	require.True(t, ok)
	require.Equal(t, "cba", part.Text)
}

func TestClient_StreamMessage(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()

	c := client.New(ts.URL + a2a.DefaultRPCURL)
	stream, err := c.StreamMessage(context.Background(), a2a.MessageSendParams{Message: a2a.NewUserTextMessage("xyz")})
	require.NoError(t, err)
	defer stream.Close()

	var sawFinal, sawArtifact bool
	for event := range stream.Events() {
		switch {
		case event.Kind == a2a.StreamEventArtifactUpdate:
			sawArtifact = true
			part, ok := event.ArtifactUpdate.Artifact.Parts[0].Part.(a2a.TextPart)
			require.True(t, ok)
			require.Equal(t, "zyx", part.Text)
		case event.Kind == a2a.StreamEventStatusUpdate && event.StatusUpdate.Final:
			sawFinal = true
		}
	}
	require.NoError(t, stream.Err())
	require.True(t, sawArtifact)
	require.True(t, sawFinal)
}

func TestClient_GetTask_NotFound(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()

	c := client.New(ts.URL + a2a.DefaultRPCURL)
	_, err := c.GetTask(context.Background(), a2a.TaskQueryParams{ID: "missing"})
	require.Error(t, err)
}

func TestClient_CancelTask(t *testing.T) {
	ts := newTestServer(t)
	defer ts.Close()

	c := client.New(ts.URL + a2a.DefaultRPCURL)
	task, err := c.SendMessage(context.Background(), a2a.MessageSendParams{Message: a2a.NewUserTextMessage("hi")})
	require.NoError(t, err)

	_, err = c.CancelTask(context.Background(), task.ID)
	require.Error(t, err) // already completed, not cancelable
}
