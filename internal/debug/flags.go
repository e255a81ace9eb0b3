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

package debug

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/rgeraldes24/go-solprereq/log"
	"github.com/urfave/cli/v2"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	verbosityFlag = &cli.IntFlag{
		Name:  "verbosity",
		Usage: "Logging verbosity: 0=crit, 1=error, 2=warn, 3=info, 4=debug, 5=detail",
		Value: int(log.LvlInfo),
	}
	logjsonFlag = &cli.BoolFlag{
		Name:  "log.json",
		Usage: "Format logs with JSON",
	}
	logFileFlag = &cli.StringFlag{
		Name:  "log.file",
		Usage: "Write logs to a file instead of stderr",
	}
	logMaxSizeFlag = &cli.IntFlag{
		Name:  "log.maxsize",
		Usage: "Maximum size in megabytes of the log file before it gets rotated",
		Value: 100,
	}
	nocolorFlag = &cli.BoolFlag{
		Name:  "nocolor",
		Usage: "Disable coloured terminal output",
	}
)

// Flags holds all command-line flags required for debugging.
var Flags = []cli.Flag{
	verbosityFlag,
	logjsonFlag,
	logFileFlag,
	logMaxSizeFlag,
	nocolorFlag,
}

// Setup initializes logging based on the CLI flags.
// It should be called as early as possible in the program.
func Setup(ctx *cli.Context) error {
	lvl := log.Lvl(ctx.Int(verbosityFlag.Name))
	if lvl < log.LvlCrit || lvl > log.LvlTrace {
		return fmt.Errorf("invalid verbosity %d", lvl)
	}
	if ctx.Bool(nocolorFlag.Name) {
		color.NoColor = true
	}
	if file := ctx.String(logFileFlag.Name); file != "" {
		rotating := &lumberjack.Logger{
			Filename:   file,
			MaxSize:    ctx.Int(logMaxSizeFlag.Name),
			MaxBackups: 3,
		}
		if ctx.Bool(logjsonFlag.Name) {
			log.SetDefault(log.NewLogger(rotating, lvl))
		} else {
			log.SetDefault(log.NewTerminalLogger(rotating, lvl, false))
		}
		return nil
	}
	if ctx.Bool(logjsonFlag.Name) {
		log.SetDefault(log.NewLogger(os.Stderr, lvl))
		return nil
	}
	output := io.Writer(os.Stderr)
	usecolor := UseColor(os.Stderr) && !ctx.Bool(nocolorFlag.Name)
	if usecolor {
		output = colorable.NewColorableStderr()
	}
	log.SetDefault(log.NewTerminalLogger(output, lvl, usecolor))
	return nil
}

// UseColor reports whether f is a terminal capable of showing colours.
func UseColor(f *os.File) bool {
	return (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) && os.Getenv("TERM") != "dumb"
}
