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
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rgeraldes24/go-solprereq/params"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, file string, cfg *params.Config) {
	t.Helper()
	out, err := tomlSettings.Marshal(cfg)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(file, out, 0644))
}

func TestDumpConfigRoundtrip(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.toml")

	_, err := runSolprereq(t, "dumpconfig", "--rpc", "http://127.0.0.1:8899", file)
	require.NoError(t, err)

	var cfg params.Config
	require.NoError(t, loadConfig(file, &cfg))
	assert.Equal(t, "http://127.0.0.1:8899", cfg.RPC)
	assert.Equal(t, params.DevnetConfig.PrereqProgram, cfg.PrereqProgram)
	assert.Equal(t, params.DevnetConfig.SubmitDiscriminator, cfg.SubmitDiscriminator)
	assert.Equal(t, params.DevnetConfig.ConfirmPoll, cfg.ConfirmPoll)

	// Flags take precedence over the file.
	out, err := runSolprereq(t, "--config", file, "dumpconfig", "--cluster", "testnet")
	require.NoError(t, err)
	expectOutput(t, out, `Cluster = "testnet"`, params.TestnetRPC)
}

func TestLoadConfigOverride(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.toml")
	cfg := params.DevnetConfig
	cfg.ConfirmPoll = 2 * time.Second
	cfg.TokenDecimals = 9
	writeConfig(t, file, &cfg)

	var loaded params.Config
	require.NoError(t, loadConfig(file, &loaded))
	assert.Equal(t, 2*time.Second, loaded.ConfirmPoll)
	assert.Equal(t, uint8(9), loaded.TokenDecimals)
}

func TestLoadConfigUnknownField(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(file, []byte("Endpoint = \"x\"\n"), 0644))

	var cfg params.Config
	err := loadConfig(file, &cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field 'Endpoint' is not defined")
}

func TestUnknownCluster(t *testing.T) {
	_, err := runSolprereq(t, "dumpconfig", "--cluster", "localnet")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown cluster "localnet"`)

	out, err := runSolprereq(t, "dumpconfig", "--cluster", "localnet", "--rpc", "http://127.0.0.1:8899")
	require.NoError(t, err)
	expectOutput(t, out, `Cluster = "localnet"`, `RPC = "http://127.0.0.1:8899"`)
}

func TestConfigRelativeKeyFile(t *testing.T) {
	datadir := tmpDatadirWithWallets(t)
	file := filepath.Join(datadir, "config.toml")
	cfg := params.DevnetConfig
	cfg.KeyFile = "dev-wallet.json"
	writeConfig(t, file, &cfg)

	out, err := runSolprereq(t, "--config", file, "verify")
	require.NoError(t, err)
	expectOutput(t, out, "Signature verified")
}
