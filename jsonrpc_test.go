// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package a2a

import (
	"testing"

	"github.com/go-json-experiment/json"
	"github.com/stretchr/testify/require"
)

func TestRequest_Validate(t *testing.T) {
	cases := map[string]struct {
		req     Request
		wantErr bool
	}{
		"valid":          {req: Request{JSONRPC: "2.0", Method: MethodTasksGet}},
		"bad version":    {req: Request{JSONRPC: "1.0", Method: MethodTasksGet}, wantErr: true},
		"missing method": {req: Request{JSONRPC: "2.0"}, wantErr: true},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			err := tc.req.Validate()
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestRequest_DecodeParams(t *testing.T) {
	body, err := json.Marshal(TaskIDParams{ID: "t1"})
	require.NoError(t, err)
	req := Request{JSONRPC: "2.0", Method: MethodTasksCancel, Params: body}

	var params TaskIDParams
	require.NoError(t, req.DecodeParams(&params))
	require.Equal(t, "t1", params.ID)
}

func TestRequest_DecodeParams_Empty(t *testing.T) {
	req := Request{JSONRPC: "2.0", Method: MethodTasksCancel}
	var params TaskIDParams
	require.ErrorIs(t, req.DecodeParams(&params), ErrInvalidParams)
}

func TestNewErrorResponse(t *testing.T) {
	resp := NewErrorResponse(1, ErrTaskNotFound)
	require.Equal(t, JSONRPCVersion, resp.JSONRPC)
	require.Nil(t, resp.Result)
	require.Equal(t, ErrTaskNotFound, resp.Error)
}
