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

// Package solclient provides a client for the Solana JSON-RPC API that
// implements the wallet backend.
package solclient

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/rgeraldes24/go-solprereq/log"
	"github.com/rgeraldes24/go-solprereq/wallet"
)

// ErrTransactionFailed is returned when the cluster executed a transaction
// but reported an error for it.
var ErrTransactionFailed = fmt.Errorf("%w: transaction failed", wallet.ErrNetwork)

// DefaultPollInterval is the default interval between signature status
// queries while waiting for a confirmation.
const DefaultPollInterval = 500 * time.Millisecond

// Client is a wallet.Backend talking to a Solana RPC node.
type Client struct {
	c            *rpc.Client
	commitment   rpc.CommitmentType
	pollInterval time.Duration
}

// Dial creates a client for the given RPC endpoint.
func Dial(endpoint string) *Client {
	return NewClient(rpc.New(endpoint))
}

// NewClient creates a client that uses the given RPC client.
func NewClient(c *rpc.Client) *Client {
	return &Client{
		c:            c,
		commitment:   rpc.CommitmentConfirmed,
		pollInterval: DefaultPollInterval,
	}
}

// SetPollInterval changes the interval between confirmation polls.
func (sc *Client) SetPollInterval(d time.Duration) {
	if d > 0 {
		sc.pollInterval = d
	}
}

// Close closes the underlying RPC connection.
func (sc *Client) Close() error {
	return sc.c.Close()
}

func networkError(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", wallet.ErrNetwork, op, err)
}

// LatestBlockhash returns the most recent blockhash.
func (sc *Client) LatestBlockhash(ctx context.Context) (solana.Hash, error) {
	res, err := sc.c.GetLatestBlockhash(ctx, sc.commitment)
	if err != nil {
		return solana.Hash{}, networkError("getLatestBlockhash", err)
	}
	if res == nil || res.Value == nil {
		return solana.Hash{}, networkError("getLatestBlockhash", errors.New("empty result"))
	}
	log.Trace("Fetched latest blockhash", "blockhash", res.Value.Blockhash, "lastValid", res.Value.LastValidBlockHeight)
	return res.Value.Blockhash, nil
}

// Balance returns the lamport balance of an account.
func (sc *Client) Balance(ctx context.Context, account solana.PublicKey) (uint64, error) {
	res, err := sc.c.GetBalance(ctx, account, sc.commitment)
	if err != nil {
		return 0, networkError("getBalance", err)
	}
	if res == nil {
		return 0, networkError("getBalance", errors.New("empty result"))
	}
	return res.Value, nil
}

// FeeForMessage returns the fee the cluster charges for the message.
func (sc *Client) FeeForMessage(ctx context.Context, msg *solana.Message) (uint64, error) {
	raw, err := msg.MarshalBinary()
	if err != nil {
		return 0, err
	}
	res, err := sc.c.GetFeeForMessage(ctx, base64.StdEncoding.EncodeToString(raw), sc.commitment)
	if err != nil {
		return 0, networkError("getFeeForMessage", err)
	}
	if res == nil || res.Value == nil {
		// The node answers null for a blockhash it no longer knows.
		return 0, networkError("getFeeForMessage", errors.New("blockhash not found"))
	}
	return *res.Value, nil
}

// RequestAirdrop requests lamports from the cluster faucet.
func (sc *Client) RequestAirdrop(ctx context.Context, account solana.PublicKey, lamports uint64) (solana.Signature, error) {
	sig, err := sc.c.RequestAirdrop(ctx, account, lamports, sc.commitment)
	if err != nil {
		return solana.Signature{}, networkError("requestAirdrop", err)
	}
	return sig, nil
}

// MinimumBalanceForRentExemption returns the rent exempt minimum for an
// account with size bytes of data.
func (sc *Client) MinimumBalanceForRentExemption(ctx context.Context, size uint64) (uint64, error) {
	lamports, err := sc.c.GetMinimumBalanceForRentExemption(ctx, size, sc.commitment)
	if err != nil {
		return 0, networkError("getMinimumBalanceForRentExemption", err)
	}
	return lamports, nil
}

// AccountExists reports whether the account is allocated.
func (sc *Client) AccountExists(ctx context.Context, account solana.PublicKey) (bool, error) {
	_, err := sc.c.GetAccountInfoWithOpts(ctx, account, &rpc.GetAccountInfoOpts{Commitment: sc.commitment})
	if errors.Is(err, rpc.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, networkError("getAccountInfo", err)
	}
	return true, nil
}

// SendAndConfirm submits the transaction and polls its signature status until
// the cluster confirmed it, reported an error for it, or ctx is done.
func (sc *Client) SendAndConfirm(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	sig, err := sc.c.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		PreflightCommitment: sc.commitment,
	})
	if err != nil {
		return solana.Signature{}, networkError("sendTransaction", err)
	}
	log.Debug("Submitted transaction", "signature", sig)

	ticker := time.NewTicker(sc.pollInterval)
	defer ticker.Stop()
	for {
		done, err := sc.checkConfirmed(ctx, sig)
		if err != nil || done {
			return sig, err
		}
		select {
		case <-ctx.Done():
			return sig, networkError("confirmTransaction", ctx.Err())
		case <-ticker.C:
		}
	}
}

func (sc *Client) checkConfirmed(ctx context.Context, sig solana.Signature) (bool, error) {
	res, err := sc.c.GetSignatureStatuses(ctx, false, sig)
	if err != nil {
		return false, networkError("getSignatureStatuses", err)
	}
	if res == nil || len(res.Value) == 0 || res.Value[0] == nil {
		return false, nil
	}
	status := res.Value[0]
	if status.Err != nil {
		return false, fmt.Errorf("%w: %v", ErrTransactionFailed, status.Err)
	}
	switch status.ConfirmationStatus {
	case rpc.ConfirmationStatusConfirmed, rpc.ConfirmationStatusFinalized:
		log.Debug("Transaction confirmed", "signature", sig, "slot", status.Slot, "status", status.ConfirmationStatus)
		return true, nil
	}
	return false, nil
}
