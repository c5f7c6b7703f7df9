// featureset.go
// Package pprl also provides the S_K/S_T feature-string generators: the
// multisets of position- and pair-encoded strings the Sigma scheme hashes
// into Bloom filter positions. Unlike a QGramSet, membership here is
// order- and occurrence-sensitive by construction: S_T(q) is a sub-multiset
// of S_K(w) whenever q (as a wildcard pattern) matches w, which is what lets
// the server test a query against a keyword's masked Bloom filter.
package pprl

import (
	"strconv"
	"strings"
)

// KeywordSet returns S_K(w): the feature strings S_K^o(w) ∪ S_K^p1(w) ∪ S_K^p2(w).
func KeywordSet(w string) []string {
	out := keywordOrdered(w)
	out = append(out, pairSetWithDistance(w)...)
	out = append(out, pairSet(w)...)
	return out
}

// QuerySet returns S_T(q): the feature strings S_T^o(q) ∪ S_T^p1(q) ∪ S_T^p2(q)
// for a wildcard query q containing '_' (single char) and '*' (any-length run).
func QuerySet(q string) []string {
	out := queryOrdered(q)
	out = append(out, queryPairSetWithDistance(q)...)
	out = append(out, pairSet(stripWildcards(q))...)
	return out
}

// keywordOrdered returns S_K^o(w): "{1-based position}:{character}" for
// every character of w.
func keywordOrdered(w string) []string {
	out := make([]string, 0, len(w))
	for i, c := range []byte(w) {
		out = append(out, strconv.Itoa(i+1)+":"+string(c))
	}
	return out
}

// pairSetWithDistance returns S_K^p1(w): for every ordered pair of positions
// i<j, "{k}:{j-i}:{w[i]},{w[j]}" where k is the 1-based occurrence count of
// that (distance, pair) key within w.
func pairSetWithDistance(w string) []string {
	b := []byte(w)
	var keys []string
	for i := 0; i < len(b); i++ {
		for j := i + 1; j < len(b); j++ {
			keys = append(keys, strconv.Itoa(j-i)+":"+string(b[i])+","+string(b[j]))
		}
	}
	return withOccurrence(keys)
}

// pairSet returns S_K^p2(w): like pairSetWithDistance but keys omit the
// distance component, "{k}:{w[i]},{w[j]}".
func pairSet(w string) []string {
	b := []byte(w)
	var keys []string
	for i := 0; i < len(b); i++ {
		for j := i + 1; j < len(b); j++ {
			keys = append(keys, string(b[i])+","+string(b[j]))
		}
	}
	return withOccurrence(keys)
}

// queryOrdered returns S_T^o(q): "{1-based position}:{character}" for every
// concrete (non '_') character in the prefix of q before its first '*'.
func queryOrdered(q string) []string {
	prefix := q
	if idx := strings.IndexByte(q, '*'); idx >= 0 {
		prefix = q[:idx]
	}
	var out []string
	for i := 0; i < len(prefix); i++ {
		if prefix[i] == '_' {
			continue
		}
		out = append(out, strconv.Itoa(i+1)+":"+string(prefix[i]))
	}
	return out
}

// queryPairSetWithDistance returns S_T^p1(q): q is split on '*' into
// wildcard-free-of-'*' segments; within each segment every pair of concrete
// (non '_') positions i<j contributes "{k}:{j-i}:{q[i]},{q[j]}", k again the
// 1-based occurrence count, counted across the whole query.
func queryPairSetWithDistance(q string) []string {
	segments := strings.Split(q, "*")
	var keys []string
	for _, seg := range segments {
		for i := 0; i < len(seg); i++ {
			if seg[i] == '_' {
				continue
			}
			for j := i + 1; j < len(seg); j++ {
				if seg[j] == '_' {
					continue
				}
				keys = append(keys, strconv.Itoa(j-i)+":"+string(seg[i])+","+string(seg[j]))
			}
		}
	}
	return withOccurrence(keys)
}

// stripWildcards removes every '_' and '*' from q, for use by S_T^p2.
func stripWildcards(q string) string {
	var b strings.Builder
	b.Grow(len(q))
	for i := 0; i < len(q); i++ {
		if q[i] != '_' && q[i] != '*' {
			b.WriteByte(q[i])
		}
	}
	return b.String()
}

// withOccurrence tags each distinct key in keys by its 1-based occurrence
// number, producing "{k}:{key}" entries: the first time a key appears
// contributes "1:{key}", the second "2:{key}", and so on. Order of the
// returned slice is irrelevant; only the resulting multiset of tagged
// strings matters.
func withOccurrence(keys []string) []string {
	counts := make(map[string]int, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		counts[k]++
		out = append(out, strconv.Itoa(counts[k])+":"+k)
	}
	return out
}
