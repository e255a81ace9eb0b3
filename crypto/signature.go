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

package crypto

import (
	"crypto/sha256"

	"github.com/gagliardetto/solana-go"
)

// DigestLength is the length of a signature digest.
const DigestLength = sha256.Size

// Sign signs msg with the given keypair.
func Sign(key solana.PrivateKey, msg []byte) (solana.Signature, error) {
	return key.Sign(msg)
}

// VerifySignature checks that sig is a valid signature of msg by pub.
func VerifySignature(pub solana.PublicKey, msg []byte, sig solana.Signature) bool {
	return sig.Verify(pub, msg)
}

// SignatureDigest returns the SHA-256 hash of the signature bytes.
func SignatureDigest(sig solana.Signature) [DigestLength]byte {
	return sha256.Sum256(sig[:])
}

// VerifySignatureDigest verifies sig against the digest of the signature
// itself instead of the signed message. A signature produced by Sign over a
// different message does not verify against its own digest, so the result is
// false in practice. Use VerifySignature to check a message.
func VerifySignatureDigest(pub solana.PublicKey, sig solana.Signature) bool {
	digest := SignatureDigest(sig)
	return sig.Verify(pub, digest[:])
}
