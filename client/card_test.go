// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/colours93/a2a"
	"github.com/colours93/a2a/client"
	"github.com/colours93/a2a/eventqueue"
	"github.com/colours93/a2a/server"
	"github.com/colours93/a2a/taskstore"
)

func TestResolveCard(t *testing.T) {
	store := taskstore.NewMemoryStore()
	queues := eventqueue.NewInMemoryManager(a2a.DefaultEventQueueSize)
	handler := server.NewDefaultRequestHandler(reversingExecutor{}, store, queues, nil)
	card := a2a.AgentCard{Name: "rev", URL: "http://x", Version: "1"}
	httpHandler := server.NewHTTPHandler(handler, card, nil)

	ts := httptest.NewServer(httpHandler.Mux())
	defer ts.Close()

	got, err := client.ResolveCard(context.Background(), nil, ts.URL)
	require.NoError(t, err)
	require.Equal(t, "rev", got.Name)
}

func TestResolveCard_NotFound(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	_, err := client.ResolveCard(context.Background(), nil, ts.URL)
	require.Error(t, err)
}

func TestNewFromCard_UsesFirstCompatibleJSONRPCInterface(t *testing.T) {
	ts := httptest.NewUnstartedServer(nil)
	baseURL := "http://" + ts.Listener.Addr().String()

	store := taskstore.NewMemoryStore()
	queues := eventqueue.NewInMemoryManager(a2a.DefaultEventQueueSize)
	handler := server.NewDefaultRequestHandler(reversingExecutor{}, store, queues, nil)
	card := a2a.AgentCard{
		Name: "rev", Version: "1", ProtocolVersion: a2a.ProtocolVersion,
		SupportedInterfaces: []a2a.AgentInterface{
			{URL: "grpc://unused", ProtocolBinding: a2a.ProtocolBindingGRPC, ProtocolVersion: a2a.ProtocolVersion},
			{URL: baseURL + a2a.DefaultRPCURL, ProtocolBinding: a2a.ProtocolBindingJSONRPC, ProtocolVersion: a2a.ProtocolVersion},
		},
	}
	ts.Config.Handler = server.NewHTTPHandler(handler, card, nil).Mux()
	ts.Start()
	defer ts.Close()

	c, gotCard, err := client.NewFromCard(context.Background(), ts.URL)
	require.NoError(t, err)
	require.Equal(t, "rev", gotCard.Name)

	task, err := c.SendMessage(context.Background(), a2a.MessageSendParams{Message: a2a.NewUserTextMessage("abc")})
	require.NoError(t, err)
	require.Equal(t, a2a.TaskStateCompleted, task.Status.State)
}
