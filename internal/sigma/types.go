// Package sigma implements the Zhao-Nishide wildcard-capable searchable
// symmetric encryption scheme: a client that derives masked Bloom-filter
// positions and an untrusted server that stores masked filters and answers
// search tokens without ever seeing plaintext keywords.
//
// Sigma is written against an opaque document identifier type P so that a
// wrapping scheme (see package libertas) can substitute an encrypted payload
// for the identifier without Sigma's server ever branching on which it
// holds — see SPEC_FULL.md §4.7 "Opaque payload polymorphism".
package sigma

import (
	"fmt"

	"github.com/LibertasConstruction/Libertas/internal/pprl"
)

// Identifier is the constraint an opaque document identifier must satisfy:
// Sigma needs only a stable decimal-ish rendering to compute BF-id and a way
// to compare two identifiers for result deduplication.
type Identifier interface {
	fmt.Stringer
}

// DocID is the identifier type used when Sigma is operated standalone
// (without Libertas): a plain non-negative document identifier.
type DocID uint64

// String renders DocID in the decimal form BF-id hashing requires.
func (d DocID) String() string {
	return fmt.Sprintf("%d", uint64(d))
}

// Token is a Sigma add token: a document identifier, its masked Bloom
// filter, and the filter's BF-id.
type Token[P Identifier] struct {
	Ind   P
	Bloom *pprl.BloomFilter
	ID    []byte
}

// SearchToken is a Sigma search token: parallel slices of Bloom filter
// positions and the HMAC of each position under k_g.
type SearchToken struct {
	Positions []uint32
	Hashes    [][]byte
}
