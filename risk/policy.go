package risk

import (
	"fmt"
	"sort"
	"strings"
)

// AccountType is a broker account convention that fixes the forex contract
// size.
type AccountType string

const (
	Overseas AccountType = "overseas"
	Domestic AccountType = "domestic"
	Micro    AccountType = "micro"
)

var contractSizes = map[AccountType]float64{
	Overseas: 100000,
	Domestic: 10000,
	Micro:    1000,
}

// ParseAccountType accepts the names above in any case. An empty string is
// Overseas.
func ParseAccountType(s string) (AccountType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Overseas, nil
	}
	if _, ok := contractSizes[AccountType(s)]; ok {
		return AccountType(s), nil
	}
	return "", fmt.Errorf("unknown account type %q (want one of %s)", s, strings.Join(AccountTypes(), ", "))
}

// ContractSize is the units per forex lot for this account type.
func (a AccountType) ContractSize() float64 {
	return contractSizes[a]
}

func AccountTypes() []string {
	out := make([]string, 0, len(contractSizes))
	for a := range contractSizes {
		out = append(out, string(a))
	}
	sort.Strings(out)
	return out
}

// Policy holds the limits CheckLot enforces.
type Policy struct {
	MaxRiskPercent float64 // 2 means 2% of balance
}

const DefaultMaxRiskPercent = 2.0

func DefaultPolicy() Policy {
	return Policy{MaxRiskPercent: DefaultMaxRiskPercent}
}
