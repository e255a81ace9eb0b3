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

package common

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileExist(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "dev-wallet.json")
	if FileExist(file) {
		t.Fatalf("%s reported to exist", file)
	}
	if err := os.WriteFile(file, []byte("[]"), 0600); err != nil {
		t.Fatal(err)
	}
	if !FileExist(file) {
		t.Fatalf("%s reported missing", file)
	}
}

func TestAbsolutePath(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "wallet.json")
	tests := []struct {
		datadir, filename, want string
	}{
		{"conf", "dev-wallet.json", filepath.Join("conf", "dev-wallet.json")},
		{"conf", abs, abs},
		{".", "dev-wallet.json", "dev-wallet.json"},
	}
	for _, tt := range tests {
		if have := AbsolutePath(tt.datadir, tt.filename); have != tt.want {
			t.Errorf("AbsolutePath(%q, %q) = %q, want %q", tt.datadir, tt.filename, have, tt.want)
		}
	}
}
