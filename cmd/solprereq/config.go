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
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"unicode"

	"github.com/naoina/toml"
	"github.com/rgeraldes24/go-solprereq/cmd/utils"
	"github.com/rgeraldes24/go-solprereq/common"
	"github.com/rgeraldes24/go-solprereq/params"
	"github.com/urfave/cli/v2"
)

var commandDumpConfig = &cli.Command{
	Name:        "dumpconfig",
	Usage:       "Export configuration values in a TOML format",
	ArgsUsage:   "<dumpfile (optional)>",
	Flags:       append([]cli.Flag{utils.KeyFileFlag}, utils.NetworkFlags...),
	Description: `Export configuration values in TOML format (to stdout by default).`,
	Action:      dumpConfig,
}

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		var link string
		if unicode.IsUpper(rune(rt.Name()[0])) && rt.PkgPath() != "main" {
			link = fmt.Sprintf(", see https://godoc.org/%s#%s for available fields", rt.PkgPath(), rt.Name())
		}
		return fmt.Errorf("field '%s' is not defined in %s%s", field, rt.String(), link)
	},
}

func loadConfig(file string, cfg *params.Config) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(file + ", " + err.Error())
	}
	return err
}

// makeConfig loads the configuration: devnet defaults, then the config file,
// then environment variables and flags. Relative key file paths in a config
// file are resolved against the directory of that file.
func makeConfig(ctx *cli.Context) (*params.Config, error) {
	cfg := params.DevnetConfig
	if file := ctx.String(utils.ConfigFileFlag.Name); file != "" {
		if err := loadConfig(file, &cfg); err != nil {
			return nil, err
		}
		dir := filepath.Dir(file)
		cfg.KeyFile = common.AbsolutePath(dir, cfg.KeyFile)
		cfg.EnrollKeyFile = common.AbsolutePath(dir, cfg.EnrollKeyFile)
	}
	if err := utils.SetConfig(ctx, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// dumpConfig is the dumpconfig command.
func dumpConfig(ctx *cli.Context) error {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	out, err := tomlSettings.Marshal(cfg)
	if err != nil {
		return err
	}

	dump := ctx.App.Writer
	if ctx.NArg() > 0 {
		f, err := os.OpenFile(ctx.Args().Get(0), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return err
		}
		defer f.Close()
		dump = f
	}
	_, err = dump.Write(out)
	return err
}
