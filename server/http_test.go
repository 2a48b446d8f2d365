// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package server_test

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/colours93/a2a"
	"github.com/colours93/a2a/agentexecutor"
	"github.com/colours93/a2a/auth"
	"github.com/colours93/a2a/eventqueue"
	"github.com/colours93/a2a/server"
	"github.com/colours93/a2a/taskstore"
	"github.com/colours93/a2a/taskupdater"
)

type namedUser string

func (u namedUser) IsAuthenticated() bool { return true }
func (u namedUser) UserName() string      { return string(u) }

// userEchoingExecutor replies with the caller identity threaded through
// reqCtx.User, so tests can assert on how it reached the executor.
type userEchoingExecutor struct {
	agentexecutor.BaseExecutor
}

func (userEchoingExecutor) Execute(ctx context.Context, reqCtx agentexecutor.RequestContext, queue *eventqueue.Queue) error {
	u := taskupdater.New(queue, reqCtx.TaskID, reqCtx.ContextID, a2a.TaskStateSubmitted)
	if err := u.StartWork(ctx, nil); err != nil {
		return err
	}
	return u.Complete(ctx, "user: "+reqCtx.User.UserName())
}

type completingExecutor struct {
	agentexecutor.BaseExecutor
}

func (completingExecutor) Execute(ctx context.Context, reqCtx agentexecutor.RequestContext, queue *eventqueue.Queue) error {
	u := taskupdater.New(queue, reqCtx.TaskID, reqCtx.ContextID, a2a.TaskStateSubmitted)
	if err := u.StartWork(ctx, nil); err != nil {
		return err
	}
	return u.Complete(ctx, "reply: "+reqCtx.Message.Text())
}

func newTestHandler() *server.HTTPHandler {
	store := taskstore.NewMemoryStore()
	queues := eventqueue.NewInMemoryManager(a2a.DefaultEventQueueSize)
	handler := server.NewDefaultRequestHandler(completingExecutor{}, store, queues, nil)
	return server.NewHTTPHandler(handler, a2a.AgentCard{Name: "test", URL: "http://x", Version: "1"}, nil)
}

func TestServeRPC_MessageSend(t *testing.T) {
	h := newTestHandler()
	ts := httptest.NewServer(h.Mux())
	defer ts.Close()

	body := `{"jsonrpc":"2.0","id":1,"method":"message/send","params":{"message":{"kind":"message","messageId":"m1","role":"user","parts":[{"kind":"text","text":"hi"}]}}}`
	resp, err := http.Post(ts.URL+a2a.DefaultRPCURL, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var out struct {
		Result struct {
			Status struct {
				State string `json:"state"`
			} `json:"status"`
			Artifacts []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"artifacts"`
		} `json:"result"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Equal(t, "completed", out.Result.Status.State)
	require.Len(t, out.Result.Artifacts, 1)
	require.Equal(t, "reply: hi", out.Result.Artifacts[0].Parts[0].Text)
}

func TestServeRPC_MessageSend_ThreadsAuthenticatedUser(t *testing.T) {
	store := taskstore.NewMemoryStore()
	queues := eventqueue.NewInMemoryManager(a2a.DefaultEventQueueSize)
	handler := server.NewDefaultRequestHandler(userEchoingExecutor{}, store, queues, nil)
	h := server.NewHTTPHandler(handler, a2a.AgentCard{Name: "test", URL: "http://x", Version: "1"}, nil)
	h.UserFromRequest = func(r *http.Request) auth.User {
		if name := r.Header.Get("X-Test-User"); name != "" {
			return namedUser(name)
		}
		return auth.UnauthenticatedUser{}
	}
	ts := httptest.NewServer(h.Mux())
	defer ts.Close()

	body := `{"jsonrpc":"2.0","id":1,"method":"message/send","params":{"message":{"kind":"message","messageId":"m1","role":"user","parts":[{"kind":"text","text":"hi"}]}}}`
	req, err := http.NewRequest(http.MethodPost, ts.URL+a2a.DefaultRPCURL, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("X-Test-User", "alice")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out struct {
		Result struct {
			Artifacts []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"artifacts"`
		} `json:"result"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out.Result.Artifacts, 1)
	require.Equal(t, "user: alice", out.Result.Artifacts[0].Parts[0].Text)
}

func TestServeRPC_UnknownMethod(t *testing.T) {
	h := newTestHandler()
	ts := httptest.NewServer(h.Mux())
	defer ts.Close()

	body := `{"jsonrpc":"2.0","id":1,"method":"nope","params":{}}`
	resp, err := http.Post(ts.URL+a2a.DefaultRPCURL, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var out struct {
		Error struct {
			Code int `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Equal(t, a2a.ErrorCodeMethodNotFound, out.Error.Code)
}

func TestServeRPC_MessageStream(t *testing.T) {
	h := newTestHandler()
	ts := httptest.NewServer(h.Mux())
	defer ts.Close()

	body := `{"jsonrpc":"2.0","id":1,"method":"message/stream","params":{"message":{"kind":"message","messageId":"m1","role":"user","parts":[{"kind":"text","text":"hi"}]}}}`
	req, err := http.NewRequest(http.MethodPost, ts.URL+a2a.DefaultRPCURL, strings.NewReader(body))
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	scanner := bufio.NewScanner(resp.Body)
	sawFinal := false
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		if strings.Contains(line, `"final":true`) {
			sawFinal = true
			break
		}
	}
	require.True(t, sawFinal, "expected a final status-update event on the stream")
}

func TestServeAgentCard(t *testing.T) {
	h := newTestHandler()
	ts := httptest.NewServer(h.Mux())
	defer ts.Close()

	resp, err := http.Get(ts.URL + a2a.AgentCardWellKnownPath)
	require.NoError(t, err)
	defer resp.Body.Close()

	var card a2a.AgentCard
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&card))
	require.Equal(t, "test", card.Name)
}
