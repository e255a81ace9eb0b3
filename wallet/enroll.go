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
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/rgeraldes24/go-solprereq/log"
	"github.com/rgeraldes24/go-solprereq/params"
)

// EnrollAccountCount is the number of accounts the enrollment instruction
// passes to the prerequisite program.
const EnrollAccountCount = 7

// PrereqAccount derives the enrollment record of signer, the program derived
// address for the seeds ["prereqs", signer].
func PrereqAccount(program, signer solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress([][]byte{[]byte(params.PrereqSeed), signer.Bytes()}, program)
}

// EnrollInstruction builds the call completing the prerequisite program. The
// account order and flags must match what the program expects:
//
//	0. signer             writable, signer
//	1. prereq PDA         writable
//	2. mint               writable, signer
//	3. collection         writable
//	4. authority          read-only
//	5. MPL core program   read-only
//	6. system program     read-only
func EnrollInstruction(cfg *params.Config, signer, mint solana.PublicKey) (*solana.GenericInstruction, error) {
	pda, _, err := PrereqAccount(cfg.PrereqProgram, signer)
	if err != nil {
		return nil, fmt.Errorf("failed to derive prereq account: %w", err)
	}
	accounts := solana.AccountMetaSlice{
		solana.NewAccountMeta(signer, true, true),
		solana.NewAccountMeta(pda, true, false),
		solana.NewAccountMeta(mint, true, true),
		solana.NewAccountMeta(cfg.Collection, true, false),
		solana.NewAccountMeta(cfg.Authority, false, false),
		solana.NewAccountMeta(cfg.MPLCoreProgram, false, false),
		solana.NewAccountMeta(solana.SystemProgramID, false, false),
	}
	data := make([]byte, len(cfg.SubmitDiscriminator))
	copy(data, cfg.SubmitDiscriminator[:])
	return solana.NewInstruction(cfg.PrereqProgram, accounts, data), nil
}

// Enroll submits the enrollment instruction, signed by the signer paying the
// fee and by the freshly generated mint of the new asset.
func Enroll(ctx context.Context, b Backend, cfg *params.Config, signer, mint solana.PrivateKey) (*Receipt, error) {
	ix, err := EnrollInstruction(cfg, signer.PublicKey(), mint.PublicKey())
	if err != nil {
		return nil, err
	}
	blockhash, err := b.LatestBlockhash(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent blockhash: %w", err)
	}
	tx, err := signTransaction([]solana.Instruction{ix}, blockhash, signer, mint)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}
	sig, err := b.SendAndConfirm(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("failed to send transaction: %w", err)
	}
	log.Info("Submitted enrollment", "signer", signer.PublicKey(), "mint", mint.PublicKey(), "program", cfg.PrereqProgram)
	return &Receipt{Signature: sig, Created: mint.PublicKey()}, nil
}
