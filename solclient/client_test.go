// Copyright 2024 The go-solprereq Authors
// This file is part of the go-solprereq library.
//
// The go-solprereq library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-solprereq library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-solprereq library. If not, see <http://www.gnu.org/licenses/>.

package solclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/rgeraldes24/go-solprereq/wallet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rpcRequest struct {
	ID     json.RawMessage   `json:"id"`
	Method string            `json:"method"`
	Params []json.RawMessage `json:"params"`
}

// rpcServer answers JSON-RPC calls from a table of handlers keyed by method.
type rpcServer struct {
	mu       sync.Mutex
	handlers map[string]func(params []json.RawMessage) (interface{}, *rpcError)
	calls    map[string]int
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func newRPCServer(t *testing.T) (*rpcServer, *Client) {
	s := &rpcServer{
		handlers: make(map[string]func([]json.RawMessage) (interface{}, *rpcError)),
		calls:    make(map[string]int),
	}
	srv := httptest.NewServer(s)
	t.Cleanup(srv.Close)
	c := Dial(srv.URL)
	c.SetPollInterval(time.Millisecond)
	return s, c
}

func (s *rpcServer) handle(method string, fn func(params []json.RawMessage) (interface{}, *rpcError)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[method] = fn
}

func (s *rpcServer) result(method string, result interface{}) {
	s.handle(method, func([]json.RawMessage) (interface{}, *rpcError) { return result, nil })
}

func (s *rpcServer) count(method string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[method]
}

func (s *rpcServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req rpcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	s.calls[req.Method]++
	fn := s.handlers[req.Method]
	s.mu.Unlock()

	resp := map[string]interface{}{"jsonrpc": "2.0", "id": req.ID}
	if fn == nil {
		resp["error"] = rpcError{Code: -32601, Message: "Method not found"}
	} else if result, rerr := fn(req.Params); rerr != nil {
		resp["error"] = rerr
	} else {
		resp["result"] = result
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func withContext(value interface{}) map[string]interface{} {
	return map[string]interface{}{
		"context": map[string]interface{}{"slot": 100},
		"value":   value,
	}
}

func TestLatestBlockhash(t *testing.T) {
	s, c := newRPCServer(t)
	var want solana.Hash
	for i := range want {
		want[i] = byte(i + 1)
	}
	s.result("getLatestBlockhash", withContext(map[string]interface{}{
		"blockhash":            want.String(),
		"lastValidBlockHeight": 3090,
	}))

	have, err := c.LatestBlockhash(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, have)
}

func TestBalance(t *testing.T) {
	s, c := newRPCServer(t)
	s.result("getBalance", withContext(2_000_000_000))

	have, err := c.Balance(context.Background(), solana.SystemProgramID)
	require.NoError(t, err)
	assert.Equal(t, uint64(2_000_000_000), have)

	// A null result is a failed call, not a zero balance.
	s.result("getBalance", nil)
	_, err = c.Balance(context.Background(), solana.SystemProgramID)
	assert.ErrorIs(t, err, wallet.ErrNetwork)
}

func TestNetworkError(t *testing.T) {
	s, c := newRPCServer(t)
	s.handle("getBalance", func([]json.RawMessage) (interface{}, *rpcError) {
		return nil, &rpcError{Code: -32005, Message: "node is behind"}
	})
	_, err := c.Balance(context.Background(), solana.SystemProgramID)
	assert.ErrorIs(t, err, wallet.ErrNetwork)

	// Methods without a handler fail as well.
	_, err = c.LatestBlockhash(context.Background())
	assert.ErrorIs(t, err, wallet.ErrNetwork)
}

func TestFeeForMessage(t *testing.T) {
	s, c := newRPCServer(t)
	tx := testTransaction(t)

	s.result("getFeeForMessage", withContext(5000))
	fee, err := c.FeeForMessage(context.Background(), &tx.Message)
	require.NoError(t, err)
	assert.Equal(t, uint64(5000), fee)

	s.result("getFeeForMessage", withContext(nil))
	_, err = c.FeeForMessage(context.Background(), &tx.Message)
	assert.ErrorIs(t, err, wallet.ErrNetwork)
}

func TestAccountExists(t *testing.T) {
	s, c := newRPCServer(t)

	s.result("getAccountInfo", withContext(nil))
	exists, err := c.AccountExists(context.Background(), solana.SystemProgramID)
	require.NoError(t, err)
	assert.False(t, exists)

	s.result("getAccountInfo", withContext(map[string]interface{}{
		"data":       []string{"", "base64"},
		"executable": false,
		"lamports":   1461600,
		"owner":      solana.TokenProgramID.String(),
		"rentEpoch":  0,
	}))
	exists, err = c.AccountExists(context.Background(), solana.SystemProgramID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestSendAndConfirm(t *testing.T) {
	s, c := newRPCServer(t)
	tx := testTransaction(t)
	want := tx.Signatures[0]

	s.result("sendTransaction", want.String())
	var polls int
	s.handle("getSignatureStatuses", func([]json.RawMessage) (interface{}, *rpcError) {
		polls++
		if polls < 3 {
			return withContext([]interface{}{nil}), nil
		}
		return withContext([]interface{}{map[string]interface{}{
			"slot":               120,
			"confirmations":      1,
			"err":                nil,
			"confirmationStatus": "confirmed",
		}}), nil
	})

	have, err := c.SendAndConfirm(context.Background(), tx)
	require.NoError(t, err)
	assert.Equal(t, want, have)
	assert.Equal(t, 1, s.count("sendTransaction"))
	assert.Equal(t, 3, s.count("getSignatureStatuses"))
}

func TestSendAndConfirmFailed(t *testing.T) {
	s, c := newRPCServer(t)
	tx := testTransaction(t)

	s.result("sendTransaction", tx.Signatures[0].String())
	s.result("getSignatureStatuses", withContext([]interface{}{map[string]interface{}{
		"slot":               120,
		"confirmations":      nil,
		"err":                map[string]interface{}{"InstructionError": []interface{}{0, "Custom"}},
		"confirmationStatus": "processed",
	}}))

	_, err := c.SendAndConfirm(context.Background(), tx)
	assert.ErrorIs(t, err, ErrTransactionFailed)
	assert.ErrorIs(t, err, wallet.ErrNetwork)
}

func TestSendAndConfirmCancelled(t *testing.T) {
	s, c := newRPCServer(t)
	tx := testTransaction(t)

	s.result("sendTransaction", tx.Signatures[0].String())
	s.result("getSignatureStatuses", withContext([]interface{}{nil}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := c.SendAndConfirm(ctx, tx)
	assert.ErrorIs(t, err, wallet.ErrNetwork)
	assert.True(t, errors.Is(ctx.Err(), context.DeadlineExceeded))
}

func testTransaction(t *testing.T) *solana.Transaction {
	t.Helper()
	key, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	to, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	var blockhash solana.Hash
	blockhash[0] = 0xaa
	tx, err := solana.NewTransaction(
		[]solana.Instruction{system.NewTransferInstruction(1, key.PublicKey(), to.PublicKey()).Build()},
		blockhash,
		solana.TransactionPayer(key.PublicKey()),
	)
	require.NoError(t, err)
	_, err = tx.Sign(func(pub solana.PublicKey) *solana.PrivateKey {
		if pub.Equals(key.PublicKey()) {
			return &key
		}
		return nil
	})
	require.NoError(t, err)
	return tx
}
