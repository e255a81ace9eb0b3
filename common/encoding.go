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
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/mr-tron/base58"
)

// ErrEncoding is returned when key material can not be converted between its
// textual and binary forms.
var ErrEncoding = errors.New("invalid encoding")

// BytesToText encodes b using the Bitcoin base-58 alphabet, the canonical text
// form of Solana keys, addresses and signatures.
func BytesToText(b []byte) (string, error) {
	if len(b) == 0 {
		return "", fmt.Errorf("%w: empty byte array", ErrEncoding)
	}
	return base58.Encode(b), nil
}

// TextToBytes decodes a base-58 string. Leading and trailing whitespace is
// ignored so that a pasted line can be decoded as is.
func TextToBytes(text string) ([]byte, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: empty string", ErrEncoding)
	}
	b, err := base58.Decode(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncoding, err)
	}
	return b, nil
}

// ParseByteList parses a comma separated list of byte values, as printed by
// FormatByteList and stored in Solana CLI key files. The surrounding brackets
// are optional.
func ParseByteList(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("%w: empty byte list", ErrEncoding)
	}
	fields := strings.Split(s, ",")
	out := make([]byte, 0, len(fields))
	for i, field := range fields {
		v, err := strconv.ParseUint(strings.TrimSpace(field), 10, 8)
		if err != nil {
			return nil, fmt.Errorf("%w: element %d (%q) is not a byte value", ErrEncoding, i, strings.TrimSpace(field))
		}
		out = append(out, byte(v))
	}
	return out, nil
}

// FormatByteList renders b as a bracketed, comma separated list of decimal
// values, e.g. [12,34,56].
func FormatByteList(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b)*4 + 2)
	sb.WriteByte('[')
	for i, v := range b {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(int(v)))
	}
	sb.WriteByte(']')
	return sb.String()
}
