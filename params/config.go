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

package params

import (
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/gagliardetto/solana-go"
)

// DiscriminatorLength is the length of an Anchor instruction discriminator.
const DiscriminatorLength = 8

// Discriminator is the leading instruction data selecting a program method.
type Discriminator [DiscriminatorLength]byte

// MarshalText implements encoding.TextMarshaler.
func (d Discriminator) MarshalText() ([]byte, error) {
	return []byte(hex.EncodeToString(d[:])), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, accepting hex with or
// without 0x prefix.
func (d *Discriminator) UnmarshalText(input []byte) error {
	s := strings.TrimPrefix(strings.TrimPrefix(string(input), "0x"), "0X")
	b, err := hex.DecodeString(s)
	if err != nil {
		return fmt.Errorf("invalid discriminator %q: %v", input, err)
	}
	if len(b) != DiscriminatorLength {
		return fmt.Errorf("invalid discriminator length %d, want %d", len(b), DiscriminatorLength)
	}
	copy(d[:], b)
	return nil
}

// Config holds the network endpoint and the fixed addresses used by the
// workflows. All addresses are base-58 in configuration files.
type Config struct {
	// Cluster names the network for explorer links (devnet, testnet, mainnet-beta).
	Cluster string
	// RPC is the JSON-RPC endpoint.
	RPC string

	// KeyFile is the key file of the development wallet paying for
	// airdrops, transfers and verifications.
	KeyFile string
	// EnrollKeyFile is the key file of the identity submitting the
	// enrollment instruction.
	EnrollKeyFile string

	// Recipient receives SOL transfers.
	Recipient solana.PublicKey

	PrereqProgram       solana.PublicKey
	Collection          solana.PublicKey
	MPLCoreProgram      solana.PublicKey
	Authority           solana.PublicKey
	SubmitDiscriminator Discriminator

	// TokenMint and TokenRecipient are used by the SPL token transfer.
	TokenMint      solana.PublicKey
	TokenRecipient solana.PublicKey
	TokenDecimals  uint8

	AirdropLamports uint64
	ConfirmPoll     time.Duration
}

// DevnetConfig contains the default settings for the Solana devnet.
var DevnetConfig = Config{
	Cluster:             "devnet",
	RPC:                 DevnetRPC,
	KeyFile:             "dev-wallet.json",
	EnrollKeyFile:       "turbin3-wallet.json",
	Recipient:           solana.MustPublicKeyFromBase58("CSPoJGos3ueoi31tovEbTADcMceVgpGPmh4it2ts2GeA"),
	PrereqProgram:       solana.MustPublicKeyFromBase58("TRBZyQHB3m68FGeVsqTK39Wm4xejadjVhP5MAZaKWDM"),
	Collection:          solana.MustPublicKeyFromBase58("5ebsp5RChCGK7ssRZMVMufgVZhd2kFbNaotcZ5UvytN2"),
	MPLCoreProgram:      solana.MustPublicKeyFromBase58("CoREENxT6tW1HoK8ypY1SxRMZTcVPm7R94rH4PZNhX7d"),
	Authority:           solana.MustPublicKeyFromBase58("5xstXUdRJKxRrqbJuo5SAfKf68y7afoYwTeH1FXbsA3k"),
	SubmitDiscriminator: Discriminator{77, 124, 82, 163, 21, 133, 181, 206},
	TokenMint:           solana.MustPublicKeyFromBase58("55QFHhwQ5zNSdj2JabBHPYyweYT97WWacPgDLQx24oxB"),
	TokenRecipient:      solana.MustPublicKeyFromBase58("CaHfSLGKiGhV7Yy1HEiPHS4iaXYdcZhnUXFPaw2fUZKN"),
	TokenDecimals:       6,
	AirdropLamports:     2 * LamportsPerSol,
	ConfirmPoll:         500 * time.Millisecond,
}
