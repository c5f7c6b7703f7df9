package sigma

import (
	"bytes"

	"github.com/LibertasConstruction/Libertas/internal/dssecrypto"
	"github.com/LibertasConstruction/Libertas/internal/logging"
)

// Server is the Sigma server: an untrusted, insertion-ordered store of add
// tokens that answers search tokens by testing each stored Bloom filter for
// membership, without ever seeing a plaintext keyword. Grounded on the
// teacher's append/filter-rebuild Storage idiom (internal/pprl/storage.go),
// adapted from a JSON-line file to a plain in-memory slice — spec.md's
// Non-goals exclude index persistence.
type Server[P Identifier] struct {
	index []Token[P]
}

// NewServer returns a Server with an empty index.
func NewServer[P Identifier]() *Server[P] {
	return &Server[P]{}
}

// BuildIndex clears the server's index.
func (s *Server[P]) BuildIndex() {
	s.index = nil
}

// Add appends an add token to the index. Duplicates are permitted.
func (s *Server[P]) Add(tok Token[P]) {
	s.index = append(s.index, tok)
	logging.Get().Debug("sigma: add ind=%s bf_id=%x index_size=%d", tok.Ind, tok.ID, len(s.index))
}

// Delete removes every record whose BF-id equals bID.
func (s *Server[P]) Delete(bID []byte) {
	kept := s.index[:0]
	removed := 0
	for _, rec := range s.index {
		if !bytes.Equal(rec.ID, bID) {
			kept = append(kept, rec)
		} else {
			removed++
		}
	}
	s.index = kept
	logging.Get().Debug("sigma: delete bf_id=%x removed=%d index_size=%d", bID, removed, len(s.index))
}

// Search tests every stored record's Bloom filter against the search token
// and returns the identifiers of records that test positive for every
// feature, deduplicated, in first-seen order. False positives are possible
// (inherent to Bloom filters); false negatives are not, given parameters
// matching the advertised average keyword length.
func (s *Server[P]) Search(tok SearchToken) []P {
	var results []P
	seen := make(map[string]bool, len(s.index))

	for _, rec := range s.index {
		if !matches(rec, tok) {
			continue
		}
		key := rec.Ind.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		results = append(results, rec.Ind)
	}
	logging.Get().Info("sigma: search scanned=%d matched=%d", len(s.index), len(results))
	return results
}

// matches tests whether rec's masked Bloom filter contains every feature
// encoded in tok, unmasking each bit with the per-record mask derived from
// rec.ID before testing it.
func matches[P Identifier](rec Token[P], tok SearchToken) bool {
	for i, pos := range tok.Positions {
		mask := dssecrypto.HBytes(rec.ID, tok.Hashes[i])
		bit := mask[0] & 1
		if boolToBit(rec.Bloom.Get(pos))^bit == 0 {
			return false
		}
	}
	return true
}

func boolToBit(b bool) byte {
	if b {
		return 1
	}
	return 0
}
