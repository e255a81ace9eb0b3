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
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/gagliardetto/solana-go"
	"github.com/olekukonko/tablewriter"
	"github.com/rgeraldes24/go-solprereq/cmd/utils"
	"github.com/rgeraldes24/go-solprereq/params"
	"github.com/rgeraldes24/go-solprereq/solclient"
	"github.com/rgeraldes24/go-solprereq/wallet"
	"github.com/urfave/cli/v2"
)

// newBackend connects to the configured RPC endpoint.
var newBackend = func(cfg *params.Config) wallet.Backend {
	c := solclient.Dial(cfg.RPC)
	c.SetPollInterval(cfg.ConfirmPoll)
	return c
}

var (
	dryRunFlag = &cli.BoolFlag{
		Name:  "dry-run",
		Usage: "Print the instruction accounts without submitting",
	}
	enrollKeyFileFlag = &cli.StringFlag{
		Name:    "enroll.keyfile",
		Usage:   "Key file of the enrolling identity",
		EnvVars: []string{"SOLPREREQ_ENROLL_KEYFILE"},
	}
)

var (
	commandAirdrop = &cli.Command{
		Name:   "airdrop",
		Usage:  "Request devnet SOL for the wallet",
		Flags:  append([]cli.Flag{utils.KeyFileFlag, utils.LamportsFlag}, utils.NetworkFlags...),
		Action: airdrop,
	}
	commandTransfer = &cli.Command{
		Name:   "transfer",
		Usage:  "Transfer a fixed amount of lamports from the wallet",
		Flags:  append([]cli.Flag{utils.KeyFileFlag, utils.RecipientFlag, utils.LamportsFlag}, utils.NetworkFlags...),
		Action: transfer,
	}
	commandSweep = &cli.Command{
		Name:  "sweep",
		Usage: "Transfer the whole wallet balance, minus the fee",
		Description: `
Transfer the entire balance of the wallet to the recipient. The fee is
queried for the transfer first, so the wallet ends up with exactly zero
lamports.
`,
		Flags:  append([]cli.Flag{utils.KeyFileFlag, utils.RecipientFlag}, utils.NetworkFlags...),
		Action: sweep,
	}
	commandEnroll = &cli.Command{
		Name:  "enroll",
		Usage: "Submit the prerequisite completion to the enrollment program",
		Description: `
Call the prerequisite program with the enrollment key as signer and a freshly
generated mint for the new asset. The enrollment key is read from the
EnrollKeyFile setting or --enroll.keyfile, never from the development wallet.
`,
		Flags:  append([]cli.Flag{enrollKeyFileFlag, dryRunFlag}, utils.NetworkFlags...),
		Action: enroll,
	}
)

func airdrop(ctx *cli.Context) error {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	key, err := utils.LoadKey(cfg.KeyFile)
	if err != nil {
		return err
	}
	lamports := cfg.AirdropLamports
	if ctx.IsSet(utils.LamportsFlag.Name) {
		lamports = ctx.Uint64(utils.LamportsFlag.Name)
	}
	cctx, cancel := utils.CommandContext(ctx)
	defer cancel()

	sig, err := wallet.Airdrop(cctx, newBackend(cfg), key.PublicKey(), lamports)
	if err != nil {
		return fmt.Errorf("airdrop failed: %w", err)
	}
	printTx(ctx.App.Writer, cfg, sig)
	return nil
}

func transfer(ctx *cli.Context) error {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	key, err := utils.LoadKey(cfg.KeyFile)
	if err != nil {
		return err
	}
	to, err := utils.PublicKeyFlag(ctx, utils.RecipientFlag, cfg.Recipient)
	if err != nil {
		return err
	}
	if !ctx.IsSet(utils.LamportsFlag.Name) {
		return fmt.Errorf("missing --%s", utils.LamportsFlag.Name)
	}
	cctx, cancel := utils.CommandContext(ctx)
	defer cancel()

	receipt, err := wallet.Transfer(cctx, newBackend(cfg), key, to, ctx.Uint64(utils.LamportsFlag.Name))
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.App.Writer, "Transferred %d lamports to %s (fee %d lamports)\n", receipt.Amount, to, receipt.Fee)
	printTx(ctx.App.Writer, cfg, receipt.Signature)
	return nil
}

func sweep(ctx *cli.Context) error {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	key, err := utils.LoadKey(cfg.KeyFile)
	if err != nil {
		return err
	}
	to, err := utils.PublicKeyFlag(ctx, utils.RecipientFlag, cfg.Recipient)
	if err != nil {
		return err
	}
	cctx, cancel := utils.CommandContext(ctx)
	defer cancel()

	receipt, err := wallet.Sweep(cctx, newBackend(cfg), key, to)
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.App.Writer, "Transferred %d lamports to %s (fee %d lamports)\n", receipt.Amount, to, receipt.Fee)
	printTx(ctx.App.Writer, cfg, receipt.Signature)
	return nil
}

func enroll(ctx *cli.Context) error {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	if ctx.IsSet(enrollKeyFileFlag.Name) {
		cfg.EnrollKeyFile = ctx.String(enrollKeyFileFlag.Name)
	}
	signer, err := utils.LoadKey(cfg.EnrollKeyFile)
	if err != nil {
		return err
	}
	mint, err := solana.NewRandomPrivateKey()
	if err != nil {
		return fmt.Errorf("failed to generate mint keypair: %v", err)
	}

	if ctx.Bool(dryRunFlag.Name) {
		ix, err := wallet.EnrollInstruction(cfg, signer.PublicKey(), mint.PublicKey())
		if err != nil {
			return err
		}
		fmt.Fprintf(ctx.App.Writer, "Program: %s\n", ix.ProgramID())
		printAccounts(ctx.App.Writer, ix.Accounts())
		return nil
	}

	cctx, cancel := utils.CommandContext(ctx)
	defer cancel()
	receipt, err := wallet.Enroll(cctx, newBackend(cfg), cfg, signer, mint)
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.App.Writer, "Minted asset %s\n", receipt.Created)
	printTx(ctx.App.Writer, cfg, receipt.Signature)
	return nil
}

var enrollRoles = [wallet.EnrollAccountCount]string{"signer", "prereq", "mint", "collection", "authority", "mpl core", "system"}

func printAccounts(w io.Writer, accounts []*solana.AccountMeta) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Role", "Address", "Writable", "Signer"})
	for i, acc := range accounts {
		role := ""
		if i < len(enrollRoles) {
			role = enrollRoles[i]
		}
		table.Append([]string{
			strconv.Itoa(i),
			role,
			acc.PublicKey.String(),
			strconv.FormatBool(acc.IsWritable),
			strconv.FormatBool(acc.IsSigner),
		})
	}
	table.Render()
}

func printTx(w io.Writer, cfg *params.Config, sig solana.Signature) {
	fmt.Fprintf(w, "%s Check out your TX here:\n%s\n", color.GreenString("Success!"), params.ExplorerTxURL(sig, cfg.Cluster))
}
