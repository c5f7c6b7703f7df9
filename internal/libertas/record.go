package libertas

import (
	"fmt"
	"strconv"
	"strings"
)

// Op identifies an update operation in a Libertas update record.
type Op int

const (
	// OpAdd marks a record as an add.
	OpAdd Op = 1
	// OpDel marks a record as a delete.
	OpDel Op = 2
)

// update is a decrypted (t, op, ind, w) tuple: a timestamped add or delete
// of a document-keyword pair.
type update struct {
	t   uint64
	op  Op
	ind uint64
	w   string
}

// marshal serialises an update as the comma-joined "t,op,ind,w" record the
// spec defines. w must not contain a literal comma (checked by the caller).
func (u update) marshal() string {
	return fmt.Sprintf("%d,%d,%d,%s", u.t, int(u.op), u.ind, u.w)
}

// parseUpdate parses a "t,op,ind,w" record produced by marshal. The keyword
// field is everything after the third comma. The no-comma precondition on
// keywords is enforced on the caller's input by Client.AddToken/DelToken,
// not here.
func parseUpdate(s string) (update, error) {
	parts := strings.SplitN(s, ",", 4)
	if len(parts) != 4 {
		return update{}, fmt.Errorf("libertas: malformed update record %q", s)
	}

	t, err := strconv.ParseUint(parts[0], 10, 64)
	if err != nil {
		return update{}, fmt.Errorf("libertas: malformed timestamp in %q: %w", s, err)
	}
	opVal, err := strconv.Atoi(parts[1])
	if err != nil || (opVal != int(OpAdd) && opVal != int(OpDel)) {
		return update{}, fmt.Errorf("libertas: malformed op in %q", s)
	}
	ind, err := strconv.ParseUint(parts[2], 10, 64)
	if err != nil {
		return update{}, fmt.Errorf("libertas: malformed document id in %q: %w", s, err)
	}

	return update{t: t, op: Op(opVal), ind: ind, w: parts[3]}, nil
}

// validateKeyword rejects keywords containing the literal comma the record
// format uses as a field separator (spec.md §7: a contract violation the
// client must reject).
func validateKeyword(w string) error {
	if strings.Contains(w, ",") {
		return fmt.Errorf("libertas: keyword %q must not contain a comma", w)
	}
	return nil
}
