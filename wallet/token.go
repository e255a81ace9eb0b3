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
	associatedtokenaccount "github.com/gagliardetto/solana-go/programs/associated-token-account"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/rgeraldes24/go-solprereq/log"
)

// MintSize is the size of an SPL token mint account.
const MintSize = 82

// CreateMint allocates a rent exempt mint account owned by the token program
// and initializes it with payer as mint authority and no freeze authority.
func CreateMint(ctx context.Context, b Backend, payer, mint solana.PrivateKey, decimals uint8) (*Receipt, error) {
	rent, err := b.MinimumBalanceForRentExemption(ctx, MintSize)
	if err != nil {
		return nil, fmt.Errorf("failed to get rent exemption: %w", err)
	}
	blockhash, err := b.LatestBlockhash(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent blockhash: %w", err)
	}
	instructions := []solana.Instruction{
		system.NewCreateAccountInstruction(rent, MintSize, solana.TokenProgramID, payer.PublicKey(), mint.PublicKey()).Build(),
		token.NewInitializeMintInstructionBuilder().
			SetDecimals(decimals).
			SetMintAuthority(payer.PublicKey()).
			SetMintAccount(mint.PublicKey()).
			SetSysVarRentPubkeyAccount(solana.SysVarRentPubkey).
			Build(),
	}
	tx, err := signTransaction(instructions, blockhash, payer, mint)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}
	sig, err := b.SendAndConfirm(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("failed to send transaction: %w", err)
	}
	log.Info("Created mint", "mint", mint.PublicKey(), "decimals", decimals, "rent", rent)
	return &Receipt{Signature: sig, Amount: rent, Created: mint.PublicKey()}, nil
}

// TransferTokens moves amount base units of mint from the owner's associated
// token account to the recipient's one. Missing associated token accounts are
// created in the same transaction, paid by the owner.
func TransferTokens(ctx context.Context, b Backend, owner solana.PrivateKey, mint, to solana.PublicKey, amount uint64) (*Receipt, error) {
	if amount == 0 {
		return nil, errors.New("token amount must be positive")
	}
	from := owner.PublicKey()
	fromATA, _, err := solana.FindAssociatedTokenAddress(from, mint)
	if err != nil {
		return nil, err
	}
	toATA, _, err := solana.FindAssociatedTokenAddress(to, mint)
	if err != nil {
		return nil, err
	}

	var instructions []solana.Instruction
	for _, acc := range []struct{ wallet, ata solana.PublicKey }{{from, fromATA}, {to, toATA}} {
		exists, err := b.AccountExists(ctx, acc.ata)
		if err != nil {
			return nil, fmt.Errorf("failed to look up token account %s: %w", acc.ata, err)
		}
		if !exists {
			log.Debug("Creating associated token account", "wallet", acc.wallet, "account", acc.ata)
			instructions = append(instructions, associatedtokenaccount.NewCreateInstruction(from, acc.wallet, mint).Build())
		}
	}
	instructions = append(instructions, token.NewTransferInstruction(amount, fromATA, toATA, from, nil).Build())

	blockhash, err := b.LatestBlockhash(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent blockhash: %w", err)
	}
	tx, err := signTransaction(instructions, blockhash, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}
	sig, err := b.SendAndConfirm(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("failed to send transaction: %w", err)
	}
	log.Info("Transferred tokens", "mint", mint, "from", fromATA, "to", toATA, "amount", amount)
	return &Receipt{Signature: sig, Amount: amount}, nil
}
