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
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// LamportsPerSol is the number of lamports in one SOL.
const LamportsPerSol uint64 = 1_000_000_000

// Public RPC endpoints of the Solana clusters.
const (
	MainnetRPC = "https://api.mainnet-beta.solana.com"
	TestnetRPC = "https://api.testnet.solana.com"
	DevnetRPC  = "https://api.devnet.solana.com"
)

// ExplorerURL is the base URL of the Solana block explorer.
const ExplorerURL = "https://explorer.solana.com"

// VerifyMessage is the message signed by the verify command.
const VerifyMessage = "I verify my Solana Keypair!"

// PrereqSeed is the static seed of the prerequisite enrollment account.
const PrereqSeed = "prereqs"

// ClusterRPC returns the public RPC endpoint of the named cluster, or the
// empty string for an unknown cluster.
func ClusterRPC(cluster string) string {
	switch cluster {
	case "mainnet-beta", "mainnet":
		return MainnetRPC
	case "testnet":
		return TestnetRPC
	case "devnet":
		return DevnetRPC
	}
	return ""
}

// ExplorerTxURL returns the explorer page of a transaction signature on the
// given cluster.
func ExplorerTxURL(sig solana.Signature, cluster string) string {
	if cluster == "" || cluster == "mainnet-beta" {
		return fmt.Sprintf("%s/tx/%s", ExplorerURL, sig)
	}
	return fmt.Sprintf("%s/tx/%s?cluster=%s", ExplorerURL, sig, cluster)
}

// ExplorerAddressURL returns the explorer page of an account.
func ExplorerAddressURL(addr solana.PublicKey, cluster string) string {
	if cluster == "" || cluster == "mainnet-beta" {
		return fmt.Sprintf("%s/address/%s", ExplorerURL, addr)
	}
	return fmt.Sprintf("%s/address/%s?cluster=%s", ExplorerURL, addr, cluster)
}
