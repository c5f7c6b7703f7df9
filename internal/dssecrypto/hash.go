// Package dssecrypto provides the keyed-hash and symmetric-encryption
// primitives the Sigma and Libertas schemes are built on: HMAC-SHA-256 keyed
// hashes and AES-CBC with the scheme's padding convention.
package dssecrypto

import (
	"crypto/hmac"
	"crypto/sha256"
	"math/big"
	"strconv"
)

// HStr computes the HMAC-SHA-256 of the UTF-8 bytes of s under key k.
func HStr(k []byte, s string) []byte {
	h := hmac.New(sha256.New, k)
	h.Write([]byte(s))
	return h.Sum(nil)
}

// HInt computes HStr(k, decimal(n)).
func HInt(k []byte, n uint64) []byte {
	return HStr(k, strconv.FormatUint(n, 10))
}

// HBytes computes the HMAC-SHA-256 of b under key k.
func HBytes(k, b []byte) []byte {
	h := hmac.New(sha256.New, k)
	h.Write(b)
	return h.Sum(nil)
}

// HStrInt returns the big-endian integer interpretation of HStr(k, s).
func HStrInt(k []byte, s string) *big.Int {
	return new(big.Int).SetBytes(HStr(k, s))
}

// PositionMod computes HStrInt(k, s) mod m, the Bloom filter position
// derived from a feature string.
func PositionMod(k []byte, s string, m uint32) uint32 {
	mod := new(big.Int).Mod(HStrInt(k, s), big.NewInt(int64(m)))
	return uint32(mod.Uint64())
}
