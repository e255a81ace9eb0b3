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

	"github.com/fatih/color"
	"github.com/rgeraldes24/go-solprereq/cmd/utils"
	"github.com/rgeraldes24/go-solprereq/crypto"
	"github.com/rgeraldes24/go-solprereq/params"
	"github.com/urfave/cli/v2"
)

var (
	messageFlag = &cli.StringFlag{
		Name:  "message",
		Usage: "Message to sign",
		Value: params.VerifyMessage,
	}
	digestFlag = &cli.BoolFlag{
		Name:  "digest",
		Usage: "Verify against the SHA-256 digest of the signature instead of the message",
	}
)

var commandVerify = &cli.Command{
	Name:  "verify",
	Usage: "Sign a message with the wallet and verify the signature",
	Description: `
Sign a message with the wallet key and verify the signature against the
wallet's public key. A failed verification is reported, not treated as an
error.

With --digest the signature is checked against the SHA-256 digest of the
signature bytes. Ed25519 signs the message, not a digest, so this check fails.
`,
	Flags:  []cli.Flag{utils.KeyFileFlag, messageFlag, digestFlag},
	Action: verifyKeypair,
}

func verifyKeypair(ctx *cli.Context) error {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	key, err := utils.LoadKey(cfg.KeyFile)
	if err != nil {
		return err
	}
	msg := []byte(ctx.String(messageFlag.Name))
	sig, err := crypto.Sign(key, msg)
	if err != nil {
		return fmt.Errorf("failed to sign message: %v", err)
	}

	var verified bool
	if ctx.Bool(digestFlag.Name) {
		digest := crypto.SignatureDigest(sig)
		fmt.Fprintf(ctx.App.Writer, "Signature digest: %x\n", digest)
		verified = crypto.VerifySignatureDigest(key.PublicKey(), sig)
	} else {
		verified = crypto.VerifySignature(key.PublicKey(), msg, sig)
	}

	w := ctx.App.Writer
	fmt.Fprintf(w, "Signature: %s\n", sig)
	if verified {
		fmt.Fprintln(w, color.GreenString("Signature verified"))
	} else {
		fmt.Fprintln(w, color.RedString("Verification failed"))
	}
	return nil
}
