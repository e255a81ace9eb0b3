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
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/gagliardetto/solana-go"
	"github.com/rgeraldes24/go-solprereq/cmd/utils"
	"github.com/rgeraldes24/go-solprereq/common"
	"github.com/rgeraldes24/go-solprereq/console/prompt"
	"github.com/rgeraldes24/go-solprereq/crypto"
	"github.com/urfave/cli/v2"
)

var (
	commandKey = &cli.Command{
		Name:  "key",
		Usage: "Operations on wallet keys",
		Subcommands: []*cli.Command{
			commandKeyGenerate,
			commandKeyToBase58,
			commandKeyFromBase58,
			commandKeyFromMnemonic,
			commandKeyAddress,
		},
	}
	commandKeyGenerate = &cli.Command{
		Name:      "generate",
		Usage:     "Generate a new keypair",
		ArgsUsage: "[ <keyfile> ]",
		Description: `
Generate a new random keypair and print its address and secret key bytes.

If a keyfile is given, the secret key is also saved there as a JSON byte
array. An existing file is never overwritten.

With --mnemonic the key is derived from a new BIP-39 phrase, which is printed
so the key can be recovered with 'key from-mnemonic'.
`,
		Flags:  []cli.Flag{utils.JSONFlag, mnemonicFlag, passphraseFlag},
		Action: keyGenerate,
	}
	commandKeyToBase58 = &cli.Command{
		Name:      "to-base58",
		Usage:     "Convert a JSON byte array secret key to base-58",
		ArgsUsage: "[ <bytes> ]",
		Action:    keyToBase58,
	}
	commandKeyFromBase58 = &cli.Command{
		Name:      "from-base58",
		Usage:     "Convert a base-58 secret key to a JSON byte array",
		ArgsUsage: "[ <base58> ]",
		Action:    keyFromBase58,
	}
	commandKeyFromMnemonic = &cli.Command{
		Name:      "from-mnemonic",
		Usage:     "Recover a keypair from a BIP-39 mnemonic phrase",
		ArgsUsage: "[ <keyfile> ]",
		Description: `
Read a mnemonic phrase from stdin and print the derived address and secret
key bytes. The derivation matches solana-keygen without a derivation path.
If a keyfile is given, the key is saved there.
`,
		Flags:  []cli.Flag{utils.JSONFlag, passphraseFlag},
		Action: keyFromMnemonic,
	}
	commandKeyAddress = &cli.Command{
		Name:      "address",
		Usage:     "Print the address of a key file",
		ArgsUsage: "<keyfile>",
		Action:    keyAddress,
	}
)

var (
	mnemonicFlag = &cli.BoolFlag{
		Name:  "mnemonic",
		Usage: "Derive the key from a new BIP-39 mnemonic phrase",
	}
	passphraseFlag = &cli.StringFlag{
		Name:  "passphrase",
		Usage: "Optional BIP-39 passphrase",
	}
)

type outputGenerate struct {
	Address   string          `json:"address"`
	SecretKey json.RawMessage `json:"secretKey"`
	Mnemonic  string          `json:"mnemonic,omitempty"`
	Keyfile   string          `json:"keyfile,omitempty"`
}

func keyGenerate(ctx *cli.Context) error {
	keyfile := ctx.Args().First()
	if err := checkKeyfileFree(keyfile); err != nil {
		return err
	}
	var (
		key      solana.PrivateKey
		mnemonic string
		err      error
	)
	if ctx.Bool(mnemonicFlag.Name) {
		if mnemonic, err = crypto.NewMnemonic(); err != nil {
			return fmt.Errorf("failed to generate mnemonic: %v", err)
		}
		key, err = crypto.MnemonicToPrivateKey(mnemonic, ctx.String(passphraseFlag.Name))
	} else {
		key, err = crypto.GenerateKey()
	}
	if err != nil {
		return fmt.Errorf("failed to generate random private key: %v", err)
	}
	return printKey(ctx, "You've generated a new Solana wallet", key, mnemonic, keyfile)
}

func keyFromMnemonic(ctx *cli.Context) error {
	keyfile := ctx.Args().First()
	if err := checkKeyfileFree(keyfile); err != nil {
		return err
	}
	mnemonic, err := prompt.Stdin.PromptInput("Input your mnemonic phrase: ")
	if err != nil {
		return err
	}
	key, err := crypto.MnemonicToPrivateKey(mnemonic, ctx.String(passphraseFlag.Name))
	if err != nil {
		return fmt.Errorf("invalid mnemonic: %v", err)
	}
	return printKey(ctx, "Recovered Solana wallet", key, "", keyfile)
}

// checkKeyfileFree fails if a key would overwrite an existing file.
func checkKeyfileFree(keyfile string) error {
	if keyfile != "" && common.FileExist(keyfile) {
		return fmt.Errorf("keyfile already exists at %s", keyfile)
	}
	return nil
}

// printKey saves the key if a keyfile is given and prints it.
func printKey(ctx *cli.Context, title string, key solana.PrivateKey, mnemonic, keyfile string) error {
	if keyfile != "" {
		if err := crypto.SaveKeyFile(keyfile, key); err != nil {
			return fmt.Errorf("failed to write keyfile to %s: %v", keyfile, err)
		}
	}
	out := outputGenerate{
		Address:   key.PublicKey().String(),
		SecretKey: json.RawMessage(common.FormatByteList(key)),
		Mnemonic:  mnemonic,
		Keyfile:   keyfile,
	}
	w := ctx.App.Writer
	if ctx.Bool(utils.JSONFlag.Name) {
		return printJSON(w, out)
	}
	fmt.Fprintf(w, "%s: %s\n\n", title, out.Address)
	if mnemonic != "" {
		fmt.Fprintf(w, "Your recovery phrase is:\n%s\n\n", mnemonic)
	}
	if keyfile != "" {
		fmt.Fprintf(w, "Your wallet was saved to %s\n", keyfile)
		return nil
	}
	fmt.Fprintln(w, "To save your wallet, copy and paste the following into a JSON file:")
	fmt.Fprintln(w, string(out.SecretKey))
	return nil
}

func keyToBase58(ctx *cli.Context) error {
	input, err := readInput(ctx, "Input your private key as a JSON byte array (e.g. [12,34,...]):")
	if err != nil {
		return err
	}
	b, err := common.ParseByteList(input)
	if err != nil {
		return err
	}
	text, err := common.BytesToText(b)
	if err != nil {
		return err
	}
	w := ctx.App.Writer
	fmt.Fprintln(w, "Your Base58-encoded private key is:")
	fmt.Fprintln(w, text)
	return nil
}

func keyFromBase58(ctx *cli.Context) error {
	input, err := readInput(ctx, "Input your private key as a base58 string:")
	if err != nil {
		return err
	}
	b, err := common.TextToBytes(input)
	if err != nil {
		return err
	}
	w := ctx.App.Writer
	fmt.Fprintln(w, "Your wallet file format is:")
	fmt.Fprintln(w, common.FormatByteList(b))
	return nil
}

func keyAddress(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("need key file as argument")
	}
	key, err := utils.LoadKey(ctx.Args().First())
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.App.Writer, key.PublicKey())
	return nil
}

// readInput returns the first command argument, or reads one line from stdin
// when there is none.
func readInput(ctx *cli.Context, msg string) (string, error) {
	if ctx.NArg() > 0 {
		return ctx.Args().First(), nil
	}
	return prompt.Stdin.PromptInput(msg + " ")
}

func printJSON(w io.Writer, v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
