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
	"encoding/binary"
	"errors"
	"fmt"
	"testing"

	"github.com/gagliardetto/solana-go"
)

const testFee = 5000

// testBackend is an in-memory Backend tracking balances and applying the
// system transfers of every submitted transaction.
type testBackend struct {
	blockhash solana.Hash
	balances  map[solana.PublicKey]uint64
	accounts  map[solana.PublicKey]bool
	fee       uint64
	rent      uint64
	fail      map[string]error

	calls []string
	sent  []*solana.Transaction
}

func newTestBackend() *testBackend {
	b := &testBackend{
		balances: make(map[solana.PublicKey]uint64),
		accounts: make(map[solana.PublicKey]bool),
		fee:      testFee,
		rent:     1461600,
		fail:     make(map[string]error),
	}
	b.blockhash[0] = 0xaa
	return b
}

func (b *testBackend) call(method string) error {
	b.calls = append(b.calls, method)
	if err := b.fail[method]; err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	return nil
}

func (b *testBackend) called(method string) bool {
	for _, c := range b.calls {
		if c == method {
			return true
		}
	}
	return false
}

func (b *testBackend) LatestBlockhash(ctx context.Context) (solana.Hash, error) {
	return b.blockhash, b.call("LatestBlockhash")
}

func (b *testBackend) Balance(ctx context.Context, account solana.PublicKey) (uint64, error) {
	if err := b.call("Balance"); err != nil {
		return 0, err
	}
	return b.balances[account], nil
}

func (b *testBackend) FeeForMessage(ctx context.Context, msg *solana.Message) (uint64, error) {
	if err := b.call("FeeForMessage"); err != nil {
		return 0, err
	}
	if msg.RecentBlockhash != b.blockhash {
		return 0, errors.New("unknown blockhash")
	}
	return b.fee, nil
}

func (b *testBackend) RequestAirdrop(ctx context.Context, account solana.PublicKey, lamports uint64) (solana.Signature, error) {
	if err := b.call("RequestAirdrop"); err != nil {
		return solana.Signature{}, err
	}
	b.balances[account] += lamports
	var sig solana.Signature
	sig[0] = 0x01
	return sig, nil
}

func (b *testBackend) SendAndConfirm(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	if err := b.call("SendAndConfirm"); err != nil {
		return solana.Signature{}, err
	}
	if err := verifyTransaction(tx); err != nil {
		return solana.Signature{}, err
	}
	keys := tx.Message.AccountKeys
	payer := keys[0]
	if b.balances[payer] < b.fee {
		return solana.Signature{}, fmt.Errorf("%w: insufficient funds for fee", ErrNetwork)
	}
	b.balances[payer] -= b.fee
	for _, ci := range tx.Message.Instructions {
		if !keys[ci.ProgramIDIndex].Equals(solana.SystemProgramID) {
			continue
		}
		data := []byte(ci.Data)
		if len(data) != 12 || binary.LittleEndian.Uint32(data) != 2 {
			continue
		}
		amount := binary.LittleEndian.Uint64(data[4:])
		from, to := keys[ci.Accounts[0]], keys[ci.Accounts[1]]
		if b.balances[from] < amount {
			return solana.Signature{}, fmt.Errorf("%w: insufficient funds for transfer", ErrNetwork)
		}
		b.balances[from] -= amount
		b.balances[to] += amount
	}
	b.sent = append(b.sent, tx)
	return tx.Signatures[0], nil
}

func (b *testBackend) MinimumBalanceForRentExemption(ctx context.Context, size uint64) (uint64, error) {
	return b.rent, b.call("MinimumBalanceForRentExemption")
}

func (b *testBackend) AccountExists(ctx context.Context, account solana.PublicKey) (bool, error) {
	if err := b.call("AccountExists"); err != nil {
		return false, err
	}
	return b.accounts[account], nil
}

// verifyTransaction checks that every required signature is present and valid.
func verifyTransaction(tx *solana.Transaction) error {
	msg, err := tx.Message.MarshalBinary()
	if err != nil {
		return err
	}
	required := int(tx.Message.Header.NumRequiredSignatures)
	if len(tx.Signatures) != required {
		return fmt.Errorf("have %d signatures, want %d", len(tx.Signatures), required)
	}
	for i, sig := range tx.Signatures {
		if !sig.Verify(tx.Message.AccountKeys[i], msg) {
			return fmt.Errorf("invalid signature for %s", tx.Message.AccountKeys[i])
		}
	}
	return nil
}

// transferAmounts returns the lamports of every system transfer in tx.
func transferAmounts(t *testing.T, tx *solana.Transaction) []uint64 {
	t.Helper()
	var amounts []uint64
	for _, ci := range tx.Message.Instructions {
		if !tx.Message.AccountKeys[ci.ProgramIDIndex].Equals(solana.SystemProgramID) {
			continue
		}
		data := []byte(ci.Data)
		if len(data) == 12 && binary.LittleEndian.Uint32(data) == 2 {
			amounts = append(amounts, binary.LittleEndian.Uint64(data[4:]))
		}
	}
	return amounts
}

func mustGenerateKey(t *testing.T) solana.PrivateKey {
	t.Helper()
	key, err := solana.NewRandomPrivateKey()
	if err != nil {
		t.Fatal(err)
	}
	return key
}
