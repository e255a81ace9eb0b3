// Copyright 2024 The go-solprereq Authors
// This file is part of go-solprereq.
//
// go-solprereq is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// go-solprereq is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with go-solprereq. If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cespare/cp"
	"github.com/gagliardetto/solana-go"
	"github.com/rgeraldes24/go-solprereq/params"
	"github.com/rgeraldes24/go-solprereq/wallet"
)

const (
	devAddress     = "9C6hybhQ6Aycep9jaUnP6uL9ZYvDjUp1aSkFWPUFJtpj"
	devKeyBase58   = "2Ana1pUpv2ZbMVkwF5FXapYeBEjdxDatLn7nvJkhgTSdZd8hbDHTd21as7EAsg7ypityqfsw2pMQKJcVDVcAEsd"
	devKeyBytes    = "[1,2,3,4,5,6,7,8,9,10,11,12,13,14,15,16,17,18,19,20,21,22,23,24,25,26,27,28,29,30,31,32,121,181,86,46,143,230,84,249,64,120,177,18,232,169,139,167,144,31,133,58,230,149,190,215,224,227,145,11,173,4,150,100]"
	enrollAddress  = "FgcwodK7aTtn3DgvqwPuSseKgTPcMpGmK6zdf7Ri9KXm"
)

// runSolprereq runs the command line with the given arguments and returns
// what it printed.
func runSolprereq(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	err := app.Run(append([]string{"solprereq", "--verbosity", "0", "--nocolor"}, args...))
	return out.String(), err
}

// tmpDatadirWithWallets copies the test wallets into a temporary directory.
func tmpDatadirWithWallets(t *testing.T) string {
	datadir := t.TempDir()
	for _, name := range []string{"dev-wallet.json", "turbin3-wallet.json"} {
		if err := cp.CopyFile(filepath.Join(datadir, name), filepath.Join("testdata", name)); err != nil {
			t.Fatal(err)
		}
	}
	return datadir
}

// testBackend is a wallet.Backend holding a single balance.
type testBackend struct {
	balance uint64
	fee     uint64
	sent    []*solana.Transaction
	calls   int
}

func (b *testBackend) LatestBlockhash(context.Context) (solana.Hash, error) {
	b.calls++
	return solana.Hash{1}, nil
}

func (b *testBackend) Balance(context.Context, solana.PublicKey) (uint64, error) {
	b.calls++
	return b.balance, nil
}

func (b *testBackend) FeeForMessage(context.Context, *solana.Message) (uint64, error) {
	b.calls++
	return b.fee, nil
}

func (b *testBackend) RequestAirdrop(context.Context, solana.PublicKey, uint64) (solana.Signature, error) {
	b.calls++
	return solana.Signature{2}, nil
}

func (b *testBackend) SendAndConfirm(_ context.Context, tx *solana.Transaction) (solana.Signature, error) {
	b.calls++
	b.sent = append(b.sent, tx)
	return tx.Signatures[0], nil
}

func (b *testBackend) MinimumBalanceForRentExemption(context.Context, uint64) (uint64, error) {
	b.calls++
	return 1461600, nil
}

func (b *testBackend) AccountExists(context.Context, solana.PublicKey) (bool, error) {
	b.calls++
	return true, nil
}

// useBackend makes the commands talk to b and counts how often a backend was
// requested.
func useBackend(t *testing.T, b wallet.Backend) *int {
	t.Helper()
	var dials int
	orig := newBackend
	newBackend = func(*params.Config) wallet.Backend {
		dials++
		return b
	}
	t.Cleanup(func() { newBackend = orig })
	return &dials
}

func expectOutput(t *testing.T, out string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(out, w) {
			t.Errorf("output does not contain %q:\n%s", w, out)
		}
	}
}
