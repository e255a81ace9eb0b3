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

// Package wallet implements the transaction workflows: airdrops, SOL
// transfers, the prerequisite enrollment call and SPL token operations.
//
// Every workflow is a linear sequence of calls on a Backend. A failing step
// aborts the workflow and its error is returned wrapped; nothing is retried.
package wallet

import (
	"context"
	"errors"

	"github.com/gagliardetto/solana-go"
)

var (
	// ErrNetwork is wrapped by every error originating in a Backend.
	ErrNetwork = errors.New("network error")

	// ErrInsufficientFunds is returned when the account balance does not
	// cover the fee and transferred amount. It is always returned before
	// anything is submitted.
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// Backend is the remote procedure service consumed by the workflows. All
// methods block until the remote side answered.
type Backend interface {
	// LatestBlockhash returns the most recent blockhash anchoring new
	// transactions.
	LatestBlockhash(ctx context.Context) (solana.Hash, error)

	// Balance returns the balance of an account in lamports.
	Balance(ctx context.Context, account solana.PublicKey) (uint64, error)

	// FeeForMessage returns the fee the network would charge for a message.
	FeeForMessage(ctx context.Context, msg *solana.Message) (uint64, error)

	// RequestAirdrop asks the cluster faucet for lamports.
	RequestAirdrop(ctx context.Context, account solana.PublicKey, lamports uint64) (solana.Signature, error)

	// SendAndConfirm submits a signed transaction and waits for the
	// cluster to confirm it.
	SendAndConfirm(ctx context.Context, tx *solana.Transaction) (solana.Signature, error)

	// MinimumBalanceForRentExemption returns the lamports an account of the
	// given data size must hold to be rent exempt.
	MinimumBalanceForRentExemption(ctx context.Context, size uint64) (uint64, error)

	// AccountExists reports whether an account is allocated on chain.
	AccountExists(ctx context.Context, account solana.PublicKey) (bool, error)
}

// Receipt describes a confirmed transaction.
type Receipt struct {
	Signature solana.Signature
	Amount    uint64           // lamports or token base units moved, zero if none
	Fee       uint64           // fee estimated before submission, zero if not queried
	Created   solana.PublicKey // account created by the transaction, if any
}

// signTransaction wraps instructions into a transaction paid by payer and
// signs it with the payer and all extra signers.
func signTransaction(instructions []solana.Instruction, blockhash solana.Hash, payer solana.PrivateKey, signers ...solana.PrivateKey) (*solana.Transaction, error) {
	tx, err := solana.NewTransaction(instructions, blockhash, solana.TransactionPayer(payer.PublicKey()))
	if err != nil {
		return nil, err
	}
	keys := append([]solana.PrivateKey{payer}, signers...)
	_, err = tx.Sign(func(pub solana.PublicKey) *solana.PrivateKey {
		for i := range keys {
			if keys[i].PublicKey().Equals(pub) {
				return &keys[i]
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tx, nil
}
