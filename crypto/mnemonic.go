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

package crypto

import (
	"crypto/ed25519"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/tyler-smith/go-bip39"
)

// mnemonicEntropyBits gives 12 word phrases.
const mnemonicEntropyBits = 128

// NewMnemonic returns a random BIP-39 mnemonic phrase.
func NewMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(mnemonicEntropyBits)
	if err != nil {
		return "", err
	}
	return bip39.NewMnemonic(entropy)
}

// MnemonicToPrivateKey derives the keypair of a BIP-39 mnemonic the way
// solana-keygen does without a derivation path: the first 32 bytes of the
// BIP-39 seed are the ed25519 seed.
func MnemonicToPrivateKey(mnemonic, passphrase string) (solana.PrivateKey, error) {
	mnemonic = strings.Join(strings.Fields(mnemonic), " ")
	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, passphrase)
	if err != nil {
		return nil, err
	}
	return solana.PrivateKey(ed25519.NewKeyFromSeed(seed[:ed25519.SeedSize])), nil
}
