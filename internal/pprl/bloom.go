// bloom.go
// Package pprl provides the masked Bloom filter and feature-string
// generators the Sigma scheme indexes keywords with. A BloomFilter is a
// fixed-size bitset; bit positions are derived by the caller (package sigma)
// via keyed HMAC, not by the filter itself — Sigma needs per-position control
// to apply its XOR mask, which rules out a hash-internal Add/Test API.
package pprl

// BloomFilter is a fixed-size bitset.
type BloomFilter struct {
	m        uint32   // total number of bits
	bitArray []uint64 // underlying bit array (length = ceil(m/64))
}

// NewBloomFilter returns a zeroed BloomFilter of m bits.
func NewBloomFilter(m uint32) *BloomFilter {
	blocks := (m + 63) / 64
	return &BloomFilter{
		m:        m,
		bitArray: make([]uint64, blocks),
	}
}

// Len returns the number of bits in the filter.
func (bf *BloomFilter) Len() uint32 {
	return bf.m
}

// Set sets the bit at idx to 1.
func (bf *BloomFilter) Set(idx uint32) {
	block := idx / 64
	offset := idx % 64
	bf.bitArray[block] |= 1 << offset
}

// Get returns true if the bit at idx is 1.
func (bf *BloomFilter) Get(idx uint32) bool {
	block := idx / 64
	offset := idx % 64
	return (bf.bitArray[block] & (1 << offset)) != 0
}

// Flip XORs the bit at idx with the low bit of mask, used to apply Sigma's
// per-position mask during add_token.
func (bf *BloomFilter) Flip(idx uint32, mask byte) {
	if mask&1 == 0 {
		return
	}
	block := idx / 64
	offset := idx % 64
	bf.bitArray[block] ^= 1 << offset
}
