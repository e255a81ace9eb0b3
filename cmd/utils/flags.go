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

package utils

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/rgeraldes24/go-solprereq/params"
	"github.com/urfave/cli/v2"
)

var (
	ConfigFileFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}
	ClusterFlag = &cli.StringFlag{
		Name:    "cluster",
		Usage:   "Solana cluster (devnet, testnet, mainnet-beta)",
		EnvVars: []string{"SOLPREREQ_CLUSTER"},
	}
	RPCFlag = &cli.StringFlag{
		Name:    "rpc",
		Usage:   "JSON-RPC endpoint (defaults to the public endpoint of the cluster)",
		EnvVars: []string{"SOLPREREQ_RPC"},
	}
	KeyFileFlag = &cli.StringFlag{
		Name:    "keyfile",
		Usage:   "Wallet key file (JSON byte array)",
		EnvVars: []string{"SOLPREREQ_KEYFILE"},
	}
	TimeoutFlag = &cli.DurationFlag{
		Name:  "timeout",
		Usage: "Abort network calls after this duration (0 = wait forever)",
	}
	JSONFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "Output JSON instead of human-readable format",
	}
	RecipientFlag = &cli.StringFlag{
		Name:  "to",
		Usage: "Recipient address (base-58)",
	}
	LamportsFlag = &cli.Uint64Flag{
		Name:  "lamports",
		Usage: "Amount in lamports",
	}
)

// NetworkFlags are the flags of every command talking to a cluster.
var NetworkFlags = []cli.Flag{
	ClusterFlag,
	RPCFlag,
	TimeoutFlag,
}

// SetConfig applies the command line flags (and their environment variables)
// to cfg.
func SetConfig(ctx *cli.Context, cfg *params.Config) error {
	if ctx.IsSet(ClusterFlag.Name) {
		cfg.Cluster = ctx.String(ClusterFlag.Name)
		rpc := params.ClusterRPC(cfg.Cluster)
		if rpc == "" && !ctx.IsSet(RPCFlag.Name) {
			return fmt.Errorf("unknown cluster %q, set the endpoint with --%s", cfg.Cluster, RPCFlag.Name)
		}
		cfg.RPC = rpc
	}
	if ctx.IsSet(RPCFlag.Name) {
		cfg.RPC = ctx.String(RPCFlag.Name)
	}
	if ctx.IsSet(KeyFileFlag.Name) {
		cfg.KeyFile = ctx.String(KeyFileFlag.Name)
	}
	if cfg.RPC == "" {
		return fmt.Errorf("no RPC endpoint configured for cluster %q", cfg.Cluster)
	}
	return nil
}

// PublicKeyFlag parses an address flag, falling back to def when the flag is
// not set.
func PublicKeyFlag(ctx *cli.Context, flag *cli.StringFlag, def solana.PublicKey) (solana.PublicKey, error) {
	if !ctx.IsSet(flag.Name) {
		return def, nil
	}
	pk, err := solana.PublicKeyFromBase58(ctx.String(flag.Name))
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("invalid --%s address: %v", flag.Name, err)
	}
	return pk, nil
}
