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
	"github.com/rgeraldes24/go-solprereq/log"
)

// Airdrop requests lamports from the cluster faucet for account.
func Airdrop(ctx context.Context, b Backend, account solana.PublicKey, lamports uint64) (solana.Signature, error) {
	if lamports == 0 {
		return solana.Signature{}, errors.New("airdrop amount must be positive")
	}
	sig, err := b.RequestAirdrop(ctx, account, lamports)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("airdrop to %s failed: %w", account, err)
	}
	log.Info("Requested airdrop", "account", account, "lamports", lamports, "signature", sig)
	return sig, nil
}
