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
	"bytes"
	"crypto/ed25519"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gagliardetto/solana-go"
	"github.com/rgeraldes24/go-solprereq/common"
)

// PrivateKeyLength is the length of a Solana secret key: the 32 byte ed25519
// seed followed by the 32 byte public key.
const PrivateKeyLength = ed25519.PrivateKeySize

// ErrMissingKeyFile is returned when a key file does not exist on disk.
var ErrMissingKeyFile = errors.New("key file not found")

// GenerateKey creates a new keypair from crypto/rand.
func GenerateKey() (solana.PrivateKey, error) {
	return solana.NewRandomPrivateKey()
}

// ToPrivateKey validates raw secret key bytes and converts them to a keypair.
// The trailing public key half must match the one derived from the seed.
func ToPrivateKey(b []byte) (solana.PrivateKey, error) {
	if len(b) != PrivateKeyLength {
		return nil, fmt.Errorf("invalid private key length %d, want %d", len(b), PrivateKeyLength)
	}
	derived := ed25519.NewKeyFromSeed(b[:ed25519.SeedSize])
	if !bytes.Equal(derived[ed25519.SeedSize:], b[ed25519.SeedSize:]) {
		return nil, errors.New("public key does not match private key seed")
	}
	key := make(solana.PrivateKey, PrivateKeyLength)
	copy(key, b)
	return key, nil
}

// Base58ToPrivateKey parses a base-58 encoded secret key, as exported by most
// browser wallets.
func Base58ToPrivateKey(text string) (solana.PrivateKey, error) {
	b, err := common.TextToBytes(text)
	if err != nil {
		return nil, err
	}
	return ToPrivateKey(b)
}

// LoadKeyFile loads a keypair from a Solana CLI key file, a JSON array
// holding the 64 secret key bytes.
func LoadKeyFile(file string) (solana.PrivateKey, error) {
	blob, err := os.ReadFile(file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingKeyFile, file)
		}
		return nil, err
	}
	b, err := common.ParseByteList(string(blob))
	if err != nil {
		return nil, fmt.Errorf("invalid key file %s: %w", file, err)
	}
	key, err := ToPrivateKey(b)
	if err != nil {
		return nil, fmt.Errorf("invalid key file %s: %w", file, err)
	}
	return key, nil
}

// SaveKeyFile saves a keypair to the given file in the Solana CLI format with
// restrictive permissions. The parent directory is created if needed.
func SaveKeyFile(file string, key solana.PrivateKey) error {
	if len(key) != PrivateKeyLength {
		return fmt.Errorf("invalid private key length %d, want %d", len(key), PrivateKeyLength)
	}
	if err := os.MkdirAll(filepath.Dir(file), 0700); err != nil {
		return err
	}
	return os.WriteFile(file, []byte(common.FormatByteList(key)), 0600)
}
