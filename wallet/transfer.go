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

package wallet

import (
	"context"
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/rgeraldes24/go-solprereq/log"
)

func transferInstruction(lamports uint64, from, to solana.PublicKey) solana.Instruction {
	return system.NewTransferInstruction(lamports, from, to).Build()
}

// Sweep moves the entire balance of from to the recipient. The fee is
// estimated on a draft message transferring the full balance, then the final
// transaction transfers exactly balance - fee so the account ends up empty.
func Sweep(ctx context.Context, b Backend, from solana.PrivateKey, to solana.PublicKey) (*Receipt, error) {
	payer := from.PublicKey()

	blockhash, err := b.LatestBlockhash(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent blockhash: %w", err)
	}
	balance, err := b.Balance(ctx, payer)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance: %w", err)
	}
	draft, err := solana.NewTransaction(
		[]solana.Instruction{transferInstruction(balance, payer, to)},
		blockhash,
		solana.TransactionPayer(payer),
	)
	if err != nil {
		return nil, err
	}
	fee, err := b.FeeForMessage(ctx, &draft.Message)
	if err != nil {
		return nil, fmt.Errorf("failed to get fee for message: %w", err)
	}
	if fee > balance {
		return nil, fmt.Errorf("%w: balance %d lamports, fee %d lamports", ErrInsufficientFunds, balance, fee)
	}
	amount := balance - fee
	log.Debug("Estimated sweep fee", "from", payer, "balance", balance, "fee", fee)

	tx, err := signTransaction([]solana.Instruction{transferInstruction(amount, payer, to)}, blockhash, from)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}
	sig, err := b.SendAndConfirm(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("failed to send transaction: %w", err)
	}
	log.Info("Swept account", "from", payer, "to", to, "lamports", amount, "fee", fee)
	return &Receipt{Signature: sig, Amount: amount, Fee: fee}, nil
}

// Transfer sends a fixed amount of lamports. The balance must cover both the
// amount and the estimated fee.
func Transfer(ctx context.Context, b Backend, from solana.PrivateKey, to solana.PublicKey, lamports uint64) (*Receipt, error) {
	if lamports == 0 {
		return nil, errors.New("transfer amount must be positive")
	}
	payer := from.PublicKey()

	blockhash, err := b.LatestBlockhash(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent blockhash: %w", err)
	}
	balance, err := b.Balance(ctx, payer)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance: %w", err)
	}
	instructions := []solana.Instruction{transferInstruction(lamports, payer, to)}
	draft, err := solana.NewTransaction(instructions, blockhash, solana.TransactionPayer(payer))
	if err != nil {
		return nil, err
	}
	fee, err := b.FeeForMessage(ctx, &draft.Message)
	if err != nil {
		return nil, fmt.Errorf("failed to get fee for message: %w", err)
	}
	if lamports > balance || fee > balance-lamports {
		return nil, fmt.Errorf("%w: balance %d lamports, amount %d lamports, fee %d lamports", ErrInsufficientFunds, balance, lamports, fee)
	}
	tx, err := signTransaction(instructions, blockhash, from)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}
	sig, err := b.SendAndConfirm(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("failed to send transaction: %w", err)
	}
	log.Info("Transferred lamports", "from", payer, "to", to, "lamports", lamports, "fee", fee)
	return &Receipt{Signature: sig, Amount: lamports, Fee: fee}, nil
}
