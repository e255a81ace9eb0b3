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
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/rgeraldes24/go-solprereq/cmd/utils"
	"github.com/rgeraldes24/go-solprereq/params"
	"github.com/rgeraldes24/go-solprereq/wallet"
	"github.com/urfave/cli/v2"
)

var (
	decimalsFlag = &cli.UintFlag{
		Name:  "decimals",
		Usage: "Number of decimals of the new mint",
	}
	mintFlag = &cli.StringFlag{
		Name:  "mint",
		Usage: "Token mint address (base-58)",
	}
	amountFlag = &cli.Uint64Flag{
		Name:     "amount",
		Usage:    "Amount in token base units",
		Required: true,
	}
)

var (
	commandToken = &cli.Command{
		Name:  "token",
		Usage: "SPL token operations",
		Subcommands: []*cli.Command{
			commandTokenCreateMint,
			commandTokenTransfer,
		},
	}
	commandTokenCreateMint = &cli.Command{
		Name:   "create-mint",
		Usage:  "Create a new SPL token mint with the wallet as mint authority",
		Flags:  append([]cli.Flag{utils.KeyFileFlag, decimalsFlag}, utils.NetworkFlags...),
		Action: tokenCreateMint,
	}
	commandTokenTransfer = &cli.Command{
		Name:  "transfer",
		Usage: "Transfer SPL tokens, creating associated token accounts as needed",
		Flags: append([]cli.Flag{
			utils.KeyFileFlag,
			mintFlag,
			utils.RecipientFlag,
			amountFlag,
		}, utils.NetworkFlags...),
		Action: tokenTransfer,
	}
)

func tokenCreateMint(ctx *cli.Context) error {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	payer, err := utils.LoadKey(cfg.KeyFile)
	if err != nil {
		return err
	}
	decimals := cfg.TokenDecimals
	if ctx.IsSet(decimalsFlag.Name) {
		d := ctx.Uint(decimalsFlag.Name)
		if d > 255 {
			return fmt.Errorf("invalid decimals %d", d)
		}
		decimals = uint8(d)
	}
	mint, err := solana.NewRandomPrivateKey()
	if err != nil {
		return fmt.Errorf("failed to generate mint keypair: %v", err)
	}
	cctx, cancel := utils.CommandContext(ctx)
	defer cancel()

	receipt, err := wallet.CreateMint(cctx, newBackend(cfg), payer, mint, decimals)
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.App.Writer, "Successfully created a mint %s\n", receipt.Created)
	fmt.Fprintln(ctx.App.Writer, params.ExplorerAddressURL(receipt.Created, cfg.Cluster))
	printTx(ctx.App.Writer, cfg, receipt.Signature)
	return nil
}

func tokenTransfer(ctx *cli.Context) error {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	owner, err := utils.LoadKey(cfg.KeyFile)
	if err != nil {
		return err
	}
	mint, err := utils.PublicKeyFlag(ctx, mintFlag, cfg.TokenMint)
	if err != nil {
		return err
	}
	to, err := utils.PublicKeyFlag(ctx, utils.RecipientFlag, cfg.TokenRecipient)
	if err != nil {
		return err
	}
	cctx, cancel := utils.CommandContext(ctx)
	defer cancel()

	receipt, err := wallet.TransferTokens(cctx, newBackend(cfg), owner, mint, to, ctx.Uint64(amountFlag.Name))
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.App.Writer, "Transferred %d base units of %s to %s\n", receipt.Amount, mint, to)
	printTx(ctx.App.Writer, cfg, receipt.Signature)
	return nil
}
