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

// solprereq is a command line tool for learning Solana devnet wallet operations:
// key generation and conversion, signing, airdrops, transfers and program
// calls.
package main

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/rgeraldes24/go-solprereq/cmd/utils"
	"github.com/rgeraldes24/go-solprereq/internal/debug"
	"github.com/urfave/cli/v2"
)

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "solprereq"
	app.Usage = "Solana devnet wallet toolkit"
	app.HideVersion = true
	app.Flags = append([]cli.Flag{utils.ConfigFileFlag}, debug.Flags...)
	app.Commands = []*cli.Command{
		commandKey,
		commandVerify,
		commandAirdrop,
		commandTransfer,
		commandSweep,
		commandEnroll,
		commandToken,
		commandDumpConfig,
	}
	app.Before = func(ctx *cli.Context) error {
		return debug.Setup(ctx)
	}
	return app
}

func main() {
	// Environment variables from .env back the flag defaults; a missing
	// file is fine.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		utils.Fatalf("Failed to load .env file: %v", err)
	}
	if err := newApp().Run(os.Args); err != nil {
		utils.Fatalf("%v", err)
	}
}
