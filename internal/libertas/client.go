// Package libertas wraps a Sigma client/server pair to provide update-pattern
// revealing backward privacy: every add and delete is serialised into a
// timestamped record, encrypted, and carried as Sigma's opaque document
// identifier (a big-integer ciphertext). A search returns ciphertexts; the
// Libertas client decrypts them, sorts by timestamp, and replays add/delete
// semantics to recover the set of documents currently associated with the
// query's keyword(s).
package libertas

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"sort"

	"github.com/LibertasConstruction/Libertas/internal/config"
	"github.com/LibertasConstruction/Libertas/internal/dssecrypto"
	"github.com/LibertasConstruction/Libertas/internal/logging"
	"github.com/LibertasConstruction/Libertas/internal/sigma"
)

// Client is the Libertas client: an embedded Sigma client operating over
// *big.Int payloads, a record-encryption key k_L, and a monotonic timestamp
// counter.
type Client struct {
	sigma *sigma.Client[*big.Int]
	kL    []byte
	t     uint64
}

// NewClient returns a Libertas client whose embedded Sigma client is sized
// for the given false-positive rate and average keyword length. Call Setup
// before using it.
func NewClient(fpRate float64, avgLen int) *Client {
	return &Client{sigma: sigma.NewClient[*big.Int](fpRate, avgLen)}
}

// NewClientFromConfig builds and sets up a Libertas client from a validated
// Config: it sizes the embedded Sigma client from cfg.Sigma.{FPRate,
// AverageKeywordLength} and runs Setup with cfg.Libertas.SecurityParameter
// (for k_L) and cfg.Sigma.SecurityParameter (for k_h/k_g). This is the
// construction-time configuration surface spec.md §6 describes; it lives
// here rather than on Config itself because Config is a leaf package that
// internal/logging already depends on, and a Config method returning *Client
// would import this package back into it.
func NewClientFromConfig(cfg *config.Config) (*Client, error) {
	c := NewClient(cfg.Sigma.FPRate, cfg.Sigma.AverageKeywordLength)
	if err := c.Setup(cfg.Libertas.SecurityParameter, cfg.Sigma.SecurityParameter); err != nil {
		return nil, err
	}
	return c, nil
}

// Setup generates k_L (secL/8 bytes, used only for record encryption) and
// sets up the embedded Sigma scheme at security parameter secSigma. secL
// must yield a valid AES key length (16, 24 or 32 bytes).
func (c *Client) Setup(secL, secSigma int) error {
	if secL <= 0 || secL%8 != 0 {
		return fmt.Errorf("libertas: security parameter %d is not a positive multiple of 8", secL)
	}
	keyLen := secL / 8
	if keyLen != 16 && keyLen != 24 && keyLen != 32 {
		return fmt.Errorf("libertas: security parameter %d does not yield a valid AES key length", secL)
	}

	if err := c.sigma.Setup(secSigma); err != nil {
		return err
	}

	kL := make([]byte, keyLen)
	if _, err := io.ReadFull(rand.Reader, kL); err != nil {
		return fmt.Errorf("libertas: %w", err)
	}
	c.kL = kL
	c.t = 0
	return nil
}

// SrchToken delegates to the embedded Sigma client.
func (c *Client) SrchToken(q string) sigma.SearchToken {
	return c.sigma.SrchToken(q)
}

// AddToken advances the timestamp counter, encrypts an ADD record for
// (ind, w), and returns a Sigma add token carrying the ciphertext as its
// opaque document identifier.
func (c *Client) AddToken(ind uint64, w string) (sigma.Token[*big.Int], error) {
	return c.updateToken(OpAdd, ind, w)
}

// DelToken advances the timestamp counter, encrypts a DEL record for
// (ind, w), and returns a Sigma *add* token (never a Sigma delete): deletion
// under Libertas happens logically, during DecSearch, not at the Sigma
// layer.
func (c *Client) DelToken(ind uint64, w string) (sigma.Token[*big.Int], error) {
	return c.updateToken(OpDel, ind, w)
}

func (c *Client) updateToken(op Op, ind uint64, w string) (sigma.Token[*big.Int], error) {
	if err := validateKeyword(w); err != nil {
		return sigma.Token[*big.Int]{}, err
	}

	c.t++
	rec := update{t: c.t, op: op, ind: ind, w: w}

	ciphertext, err := dssecrypto.Encrypt(c.kL, rec.marshal())
	if err != nil {
		return sigma.Token[*big.Int]{}, fmt.Errorf("libertas: %w", err)
	}
	payload := new(big.Int).SetBytes(ciphertext)

	logging.Get().Debug("libertas: encrypted update t=%d op=%d ind=%d", rec.t, rec.op, rec.ind)
	return c.sigma.AddToken(payload, w), nil
}

// DecSearch decrypts the ciphertext payloads a Sigma search returned, sorts
// them by timestamp, and replays add/delete semantics per keyword to
// determine which document identifiers are currently associated with the
// matched keyword(s). The result is deduplicated and unordered, matching
// the reference implementation.
func (c *Client) DecSearch(results []*big.Int) ([]uint64, error) {
	updates := make([]update, 0, len(results))
	for _, payload := range results {
		u, err := c.decryptUpdate(payload)
		if err != nil {
			return nil, err
		}
		updates = append(updates, u)
	}

	sort.Slice(updates, func(i, j int) bool { return updates[i].t < updates[j].t })

	present := make(map[string][]uint64)
	contains := func(list []uint64, ind uint64) bool {
		for _, v := range list {
			if v == ind {
				return true
			}
		}
		return false
	}

	for _, u := range updates {
		list := present[u.w]
		switch u.op {
		case OpAdd:
			if !contains(list, u.ind) {
				present[u.w] = append(list, u.ind)
			}
		case OpDel:
			for i, v := range list {
				if v == u.ind {
					present[u.w] = append(list[:i], list[i+1:]...)
					break
				}
			}
		}
	}

	seen := make(map[uint64]bool)
	var out []uint64
	for _, list := range present {
		for _, ind := range list {
			if !seen[ind] {
				seen[ind] = true
				out = append(out, ind)
			}
		}
	}
	return out, nil
}

// decryptUpdate inverts Client.updateToken's encryption: it reconstructs the
// IV-prefixed ciphertext from the big-integer payload and decrypts it. The
// byte length is recovered as ceil(bitlen(payload)/8/16)*16, matching the
// reference implementation's rounding exactly. Leading zero bytes short of a
// full block are restored by the rounding; a payload whose first 16 bytes
// (the IV) are all zero is decoded 16 bytes short (see DESIGN.md).
func (c *Client) decryptUpdate(payload *big.Int) (update, error) {
	byteLen := ((payload.BitLen() + 7) / 8)
	byteLen = ((byteLen + 15) / 16) * 16

	raw := payload.FillBytes(make([]byte, byteLen))
	plain, err := dssecrypto.Decrypt(c.kL, raw)
	if err != nil {
		logging.Get().Warn("libertas: failed to decrypt update payload: %v", err)
		return update{}, fmt.Errorf("libertas: %w", err)
	}

	u, err := parseUpdate(plain)
	if err != nil {
		logging.Get().Warn("libertas: failed to parse decrypted update: %v", err)
		return update{}, err
	}
	return u, nil
}
