package engine

import (
	"math"
	"testing"

	"arb_go/internal/domain"
)

func TestGraphBuilder_EdgeWeights(t *testing.T) {
	feeRate := 0.001
	table := domain.PriceTable{
		"BTCUSDT": {Price: 20000, ObservedAt: 1000},
	}

	graph, currencies := NewGraphBuilder(feeRate).Build(table)

	if len(currencies) != 2 || currencies[0] != "BTC" || currencies[1] != "USDT" {
		t.Fatalf("Expected sorted currencies [BTC USDT], got %v", currencies)
	}

	forward := graph["BTC"]
	if len(forward) != 1 || forward[0].To != "USDT" {
		t.Fatalf("Expected one BTC->USDT edge, got %v", forward)
	}
	expectedForward := -math.Log(20000 * (1 - feeRate))
	if forward[0].Weight != expectedForward {
		t.Errorf("Expected forward weight %v, got %v", expectedForward, forward[0].Weight)
	}

	reverse := graph["USDT"]
	if len(reverse) != 1 || reverse[0].To != "BTC" {
		t.Fatalf("Expected one USDT->BTC edge, got %v", reverse)
	}
	expectedReverse := -math.Log((1.0 / 20000) * (1 - feeRate))
	if reverse[0].Weight != expectedReverse {
		t.Errorf("Expected reverse weight %v, got %v", expectedReverse, reverse[0].Weight)
	}
}

func TestGraphBuilder_SkipsNonPositivePrices(t *testing.T) {
	table := domain.PriceTable{
		"BTCUSDT": {Price: 0, ObservedAt: 1000},
		"ETHUSDT": {Price: -3, ObservedAt: 1000},
	}

	graph, currencies := NewGraphBuilder(0.001).Build(table)

	if len(graph) != 0 {
		t.Errorf("Non-positive prices must not produce edges, got %v", graph)
	}
	if len(currencies) != 0 {
		t.Errorf("Non-positive prices must not produce vertices, got %v", currencies)
	}
}

func TestGraphBuilder_SkipsShortSymbols(t *testing.T) {
	table := domain.PriceTable{
		"BTC":    {Price: 100, ObservedAt: 1000},
		"ETHBTC": {Price: 0.05, ObservedAt: 1000},
	}

	graph, _ := NewGraphBuilder(0.001).Build(table)

	if len(graph) != 2 {
		t.Errorf("Expected only ETHBTC to contribute edges, got %v", graph)
	}
}

func TestGraphBuilder_Deterministic(t *testing.T) {
	table := domain.PriceTable{
		"BTCUSDT": {Price: 20000, ObservedAt: 1000},
		"ETHUSDT": {Price: 1500, ObservedAt: 1000},
		"ETHBTC":  {Price: 0.075, ObservedAt: 1000},
		"BNBUSDT": {Price: 300, ObservedAt: 1000},
	}
	builder := NewGraphBuilder(0.001)

	g1, c1 := builder.Build(table)
	g2, c2 := builder.Build(table)

	if len(c1) != len(c2) {
		t.Fatalf("Currency lists differ: %v vs %v", c1, c2)
	}
	for i := range c1 {
		if c1[i] != c2[i] {
			t.Fatalf("Currency order differs at %d: %v vs %v", i, c1, c2)
		}
	}
	for u, edges := range g1 {
		if len(g2[u]) != len(edges) {
			t.Fatalf("Adjacency of %s differs", u)
		}
		for i, e := range edges {
			if g2[u][i] != e {
				t.Errorf("Edge order differs for %s at %d: %v vs %v", u, i, e, g2[u][i])
			}
		}
	}
}

func TestSplitSymbol(t *testing.T) {
	base, quote := SplitSymbol("BTCUSDT")
	if base != "BTC" || quote != "USDT" {
		t.Errorf("Expected BTC/USDT, got %s/%s", base, quote)
	}

	// USDT suffix wins over the 3-letter rule for longer bases too.
	base, quote = SplitSymbol("DOGEUSDT")
	if base != "DOGE" || quote != "USDT" {
		t.Errorf("Expected DOGE/USDT, got %s/%s", base, quote)
	}

	// Without the suffix, the first 3 characters are taken as the base.
	base, quote = SplitSymbol("ETHBTC")
	if base != "ETH" || quote != "BTC" {
		t.Errorf("Expected ETH/BTC, got %s/%s", base, quote)
	}
}
