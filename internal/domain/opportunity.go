package domain

import "strings"

// StrategyKind identifies which detection strategy produced an opportunity.
type StrategyKind int

const (
	StrategyTriangular StrategyKind = iota + 1
	StrategyCycle                   // Bellman-Ford negative cycle
)

// String returns the string representation of StrategyKind.
func (k StrategyKind) String() string {
	switch k {
	case StrategyTriangular:
		return "TRIANGULAR"
	case StrategyCycle:
		return "CYCLE"
	default:
		return "UNKNOWN"
	}
}

// Opportunity is a detected arbitrage opportunity. It is transient:
// constructed by a scanner, handed to the ledger, then discarded.
type Opportunity struct {
	Strategy StrategyKind

	// Path holds the currencies in trade order. The round trip is implicit:
	// the last element converts back to the first.
	Path []string

	// Legs holds the resolved conversion rate for each step of the path.
	// Populated for triangular opportunities; empty for cycle opportunities,
	// whose profit is computed by replaying the cycle against the table.
	Legs []float64

	// NetProfitFraction is the fee-adjusted round-trip gain, e.g. 0.02 for +2%.
	NetProfitFraction float64

	DetectedAt int64 // Unix milliseconds
}

// PathString renders the closed path, e.g. "BTC -> ETH -> USDT -> BTC".
func (o *Opportunity) PathString() string {
	if len(o.Path) == 0 {
		return ""
	}
	return strings.Join(o.Path, " -> ") + " -> " + o.Path[0]
}
