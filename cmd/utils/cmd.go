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

// Package utils contains internal helper functions for go-solprereq commands.
package utils

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/gagliardetto/solana-go"
	"github.com/rgeraldes24/go-solprereq/crypto"
	"github.com/rgeraldes24/go-solprereq/log"
	"github.com/urfave/cli/v2"
)

// Fatalf formats a message to standard error and exits the program.
// The message is also printed to standard output if standard error
// is redirected to a different file.
func Fatalf(format string, args ...interface{}) {
	w := io.MultiWriter(os.Stdout, os.Stderr)
	if runtime.GOOS == "windows" {
		// The SameFile check below doesn't work on Windows.
		// stdout is unlikely to get redirected though, so just print there.
		w = os.Stdout
	} else {
		outf, _ := os.Stdout.Stat()
		errf, _ := os.Stderr.Stat()
		if outf != nil && errf != nil && os.SameFile(outf, errf) {
			w = os.Stderr
		}
	}
	fmt.Fprintf(w, "Fatal: "+format+"\n", args...)
	os.Exit(1)
}

// LoadKey loads the keypair stored at file. A missing file is reported with
// a hint on how to create one.
func LoadKey(file string) (solana.PrivateKey, error) {
	key, err := crypto.LoadKeyFile(file)
	if errors.Is(err, crypto.ErrMissingKeyFile) {
		return nil, fmt.Errorf("couldn't find wallet file %s (create one with 'solprereq key generate %s'): %w", file, file, err)
	}
	if err != nil {
		return nil, err
	}
	log.Debug("Loaded wallet", "file", file, "address", key.PublicKey())
	return key, nil
}

// CommandContext returns the context for the network calls of a command,
// bounded by --timeout when it is set.
func CommandContext(ctx *cli.Context) (context.Context, context.CancelFunc) {
	if timeout := ctx.Duration(TimeoutFlag.Name); timeout > 0 {
		return context.WithTimeout(ctx.Context, timeout)
	}
	return context.WithCancel(ctx.Context)
}
