package account

import (
	"fmt"
	"strings"
)

// Kind selects the credit and debit rules an account follows
type Kind int

const (
	// KindCurrent accepts credits freely and debits up to the balance
	KindCurrent Kind = iota + 1
	// KindCredit accepts one credit over its lifetime and unlimited debits
	KindCredit
	// KindSavings accepts credits and refuses debits
	KindSavings
)

func (k Kind) String() string {
	switch k {
	case KindCurrent:
		return "current"
	case KindCredit:
		return "credit"
	case KindSavings:
		return "savings"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind parses a kind name as produced by Kind.String
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "current":
		return KindCurrent, nil
	case "credit":
		return KindCredit, nil
	case "savings":
		return KindSavings, nil
	default:
		return 0, fmt.Errorf("unknown account kind %q", s)
	}
}
