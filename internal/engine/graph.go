package engine

import (
	"math"
	"sort"
	"strings"

	"arb_go/internal/domain"
)

// Edge is one directed conversion in the currency graph. Weight is the
// negated log of the fee-adjusted rate, so a profitable round trip
// (product > 1) shows up as a negative-weight cycle (sum < 0).
type Edge struct {
	To     string
	Weight float64
}

// Graph is an adjacency list over currency codes. It is rebuilt from
// scratch every detection tick; edges are never updated in place.
type Graph map[string][]Edge

// GraphBuilder turns a table snapshot into a log-weighted currency graph.
type GraphBuilder struct {
	feeRate float64
}

// NewGraphBuilder creates a builder applying the given per-leg fee rate.
func NewGraphBuilder(feeRate float64) *GraphBuilder {
	return &GraphBuilder{feeRate: feeRate}
}

// Build constructs the graph plus the sorted list of currencies it spans.
// Symbols shorter than 6 characters or quoted at a non-positive price
// contribute no vertices and no edges. Symbol keys are walked in sorted
// order so adjacency lists come out identical for identical snapshots.
func (g *GraphBuilder) Build(table domain.PriceTable) (Graph, []string) {
	graph := make(Graph)
	currencySet := make(map[string]struct{})

	symbols := make([]string, 0, len(table))
	for symbol := range table {
		symbols = append(symbols, symbol)
	}
	sort.Strings(symbols)

	for _, symbol := range symbols {
		if len(symbol) < 6 {
			continue
		}
		price := table[symbol].Price
		if price <= 0 {
			continue
		}

		base, quote := SplitSymbol(symbol)

		currencySet[base] = struct{}{}
		currencySet[quote] = struct{}{}

		// base -> quote at the quoted price, quote -> base at its reciprocal.
		graph[base] = append(graph[base], Edge{
			To:     quote,
			Weight: -math.Log(price * (1 - g.feeRate)),
		})
		graph[quote] = append(graph[quote], Edge{
			To:     base,
			Weight: -math.Log((1 / price) * (1 - g.feeRate)),
		})
	}

	currencies := make([]string, 0, len(currencySet))
	for c := range currencySet {
		currencies = append(currencies, c)
	}
	sort.Strings(currencies)

	return graph, currencies
}

// SplitSymbol infers (base, quote) from a concatenated pair symbol: a
// "USDT" suffix wins, otherwise the first 3 characters are taken as the
// base. This mirrors the feed's symbol universe and is a known
// simplification; 4-letter codes outside USDT pairs will be misread.
// A production feed should deliver base and quote explicitly.
func SplitSymbol(symbol string) (base, quote string) {
	if strings.HasSuffix(symbol, "USDT") {
		return symbol[:len(symbol)-4], "USDT"
	}
	return symbol[:3], symbol[3:]
}
