// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-json-experiment/json"

	"github.com/colours93/a2a"
)

// ResolveCard fetches the AgentCard published at baseURL +
// [a2a.AgentCardWellKnownPath] (§4.8). baseURL may or may not have a
// trailing slash.
func ResolveCard(ctx context.Context, hc *http.Client, baseURL string) (*a2a.AgentCard, error) {
	if hc == nil {
		hc = http.DefaultClient
	}

	u, err := url.Parse(strings.TrimSuffix(baseURL, "/") + a2a.AgentCardWellKnownPath)
	if err != nil {
		return nil, fmt.Errorf("a2a client: parse agent card url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("a2a client: build agent card request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("a2a client: fetch agent card: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return nil, &HTTPError{StatusCode: resp.StatusCode}
	}

	var card a2a.AgentCard
	if err := json.UnmarshalRead(resp.Body, &card); err != nil {
		return nil, fmt.Errorf("a2a client: decode agent card: %w", err)
	}
	if err := card.Validate(); err != nil {
		return nil, fmt.Errorf("a2a client: invalid agent card: %w", err)
	}
	return &card, nil
}
