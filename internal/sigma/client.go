package sigma

import (
	"crypto/rand"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/LibertasConstruction/Libertas/internal/dssecrypto"
	"github.com/LibertasConstruction/Libertas/internal/pprl"
)

// Client is the Sigma client: it holds the keys (k_h, k_g) and the derived
// Bloom-filter dimensions, and builds add/search/delete tokens. Generic over
// the opaque document identifier type P (see types.go).
type Client[P Identifier] struct {
	fpRate float64
	avgLen int

	bfSize  uint32 // m
	bfHashK uint32 // H

	kh [][]byte // k_h[1..H]
	kg []byte   // k_g
}

// NewClient computes the Bloom filter dimensions m and H from the target
// false-positive rate fpRate and the average keyword length avgLen, exactly
// as the Zhao-Nishide client does: it first measures the size of S_K applied
// to a placeholder keyword of the average length, then solves the standard
// Bloom filter sizing formulas for m and H.
func NewClient[P Identifier](fpRate float64, avgLen int) *Client[P] {
	setSize := len(pprl.KeywordSet(strings.Repeat("0", avgLen)))
	m := uint32(math.Ceil(-(float64(setSize) * math.Log(fpRate)) / (math.Log(2) * math.Log(2))))
	h := uint32(math.Ceil((float64(m) / float64(setSize)) * math.Log(2)))
	return &Client[P]{
		fpRate:  fpRate,
		avgLen:  avgLen,
		bfSize:  m,
		bfHashK: h,
	}
}

// Setup draws H independent hash keys k_h and one key k_g, each
// securityParameter/8 bytes. securityParameter must be a multiple of 8.
func (c *Client[P]) Setup(securityParameter int) error {
	if securityParameter <= 0 || securityParameter%8 != 0 {
		return fmt.Errorf("sigma: security parameter %d is not a positive multiple of 8", securityParameter)
	}
	keyLen := securityParameter / 8

	kh := make([][]byte, c.bfHashK)
	for i := range kh {
		k := make([]byte, keyLen)
		if _, err := io.ReadFull(rand.Reader, k); err != nil {
			return fmt.Errorf("sigma: %w", err)
		}
		kh[i] = k
	}

	kg := make([]byte, keyLen)
	if _, err := io.ReadFull(rand.Reader, kg); err != nil {
		return fmt.Errorf("sigma: %w", err)
	}

	c.kh = kh
	c.kg = kg
	return nil
}

// AddToken builds an add token for the (ind, w) pair: it computes the
// keyword's BF-id, fills a fresh Bloom filter with S_K(w+"\0") at H
// positions per feature under each k_h[i], and masks every bit position
// with the low bit of HMAC(BF-id, H_int(k_g, position)).
func (c *Client[P]) AddToken(ind P, w string) Token[P] {
	bID := dssecrypto.HStr(c.kg, ind.String()+w)

	bf := pprl.NewBloomFilter(c.bfSize)
	for _, e := range pprl.KeywordSet(w+"\x00") {
		for _, k := range c.kh {
			pos := dssecrypto.PositionMod(k, e, c.bfSize)
			bf.Set(pos)
		}
	}

	for pos := uint32(0); pos < c.bfSize; pos++ {
		mask := dssecrypto.HBytes(bID, dssecrypto.HInt(c.kg, uint64(pos)))
		bf.Flip(pos, mask[0])
	}

	return Token[P]{Ind: ind, Bloom: bf, ID: bID}
}

// SrchToken builds a search token for query q: one Bloom filter position per
// (feature, hash key) pair in S_T(q+"\0"), paired with the HMAC of that
// position under k_g.
func (c *Client[P]) SrchToken(q string) SearchToken {
	var positions []uint32
	for _, e := range pprl.QuerySet(q + "\x00") {
		for _, k := range c.kh {
			positions = append(positions, dssecrypto.PositionMod(k, e, c.bfSize))
		}
	}

	hashes := make([][]byte, len(positions))
	for i, pos := range positions {
		hashes[i] = dssecrypto.HInt(c.kg, uint64(pos))
	}

	return SearchToken{Positions: positions, Hashes: hashes}
}

// DelToken builds a delete token for the (ind, w) pair: its BF-id. Deleting
// by BF-id removes every stored record that shares it, which (per spec) is
// every record ever added for this exact (ind, w) pair.
func (c *Client[P]) DelToken(ind P, w string) []byte {
	return dssecrypto.HStr(c.kg, ind.String()+w)
}

// BloomSize returns the Bloom filter bit length m derived at construction.
func (c *Client[P]) BloomSize() uint32 {
	return c.bfSize
}

// HashCount returns the number of independent hash keys H derived at
// construction.
func (c *Client[P]) HashCount() uint32 {
	return c.bfHashK
}
