package engine

import (
	"math"
	"testing"

	"arb_go/internal/domain"
)

// profitCycleTable forms a synthetic three-currency negative cycle:
// BTC -> ETH -> XRP -> BTC with round-trip product 2 * 3 * 0.17 = 1.02.
func profitCycleTable() domain.PriceTable {
	return domain.PriceTable{
		"BTCETH": {Price: 2, ObservedAt: 1000},
		"ETHXRP": {Price: 3, ObservedAt: 1000},
		"XRPBTC": {Price: 0.17, ObservedAt: 1000},
	}
}

func TestCycleDetector_FindsNegativeCycle(t *testing.T) {
	feeRate := 0.001
	table := profitCycleTable()

	graph, currencies := NewGraphBuilder(feeRate).Build(table)
	opp, found := NewCycleDetector(feeRate).Detect(graph, currencies, table)

	if !found {
		t.Fatal("Expected a cycle opportunity")
	}
	if opp.Strategy != domain.StrategyCycle {
		t.Errorf("Expected CYCLE, got %s", opp.Strategy)
	}
	if len(opp.Path) != 3 {
		t.Fatalf("Expected a 3-element cycle, got %v", opp.Path)
	}

	seen := map[string]bool{}
	for _, c := range opp.Path {
		seen[c] = true
	}
	if !seen["BTC"] || !seen["ETH"] || !seen["XRP"] {
		t.Errorf("Cycle should cover BTC, ETH, XRP: %v", opp.Path)
	}

	// Replayed profit: 1.02 scaled by three fee deductions.
	expected := 1.02*math.Pow(1-feeRate, 3) - 1
	if math.Abs(opp.NetProfitFraction-expected)/expected > 1e-9 {
		t.Errorf("Expected profit ~%v, got %v", expected, opp.NetProfitFraction)
	}
}

func TestCycleDetector_NoOpportunityOnBreakEven(t *testing.T) {
	// Round-trip product is exactly 1 in both directions (2 * 4 * 0.125),
	// so after fees every cycle has positive log-weight.
	table := domain.PriceTable{
		"BTCETH": {Price: 2, ObservedAt: 1000},
		"ETHXRP": {Price: 4, ObservedAt: 1000},
		"XRPBTC": {Price: 0.125, ObservedAt: 1000},
	}

	graph, currencies := NewGraphBuilder(0.001).Build(table)
	if _, found := NewCycleDetector(0.001).Detect(graph, currencies, table); found {
		t.Error("No cycle opportunity expected when all round trips are break-even or worse")
	}
}

func TestCycleDetector_Deterministic(t *testing.T) {
	feeRate := 0.001
	table := profitCycleTable()
	builder := NewGraphBuilder(feeRate)
	detector := NewCycleDetector(feeRate)

	graph1, currencies1 := builder.Build(table)
	opp1, found1 := detector.Detect(graph1, currencies1, table)

	graph2, currencies2 := builder.Build(table)
	opp2, found2 := detector.Detect(graph2, currencies2, table)

	if !found1 || !found2 {
		t.Fatal("Both runs should find the cycle")
	}
	if opp1.NetProfitFraction != opp2.NetProfitFraction {
		t.Errorf("Profit differs between runs: %v vs %v", opp1.NetProfitFraction, opp2.NetProfitFraction)
	}
	if len(opp1.Path) != len(opp2.Path) {
		t.Fatalf("Cycle length differs: %v vs %v", opp1.Path, opp2.Path)
	}
	for i := range opp1.Path {
		if opp1.Path[i] != opp2.Path[i] {
			t.Errorf("Cycle differs at %d: %v vs %v", i, opp1.Path, opp2.Path)
		}
	}
}

func TestCycleDetector_MatchesTriangularProfit(t *testing.T) {
	// For a 3-node cycle, the detector's replayed profit must agree with
	// the triangular scanner's multiplicative computation on the
	// equivalent triplet to within floating-point tolerance.
	feeRate := 0.001
	table := profitCycleTable()

	graph, currencies := NewGraphBuilder(feeRate).Build(table)
	cycleOpp, found := NewCycleDetector(feeRate).Detect(graph, currencies, table)
	if !found {
		t.Fatal("Expected a cycle opportunity")
	}

	triplet := domain.Triplet{cycleOpp.Path[0], cycleOpp.Path[1], cycleOpp.Path[2]}
	triOpps := NewTriangularScanner([]domain.Triplet{triplet}, feeRate).Scan(table)
	if len(triOpps) != 1 {
		t.Fatalf("Equivalent triplet should also qualify, got %d opportunities", len(triOpps))
	}

	diff := math.Abs(cycleOpp.NetProfitFraction - triOpps[0].NetProfitFraction)
	if diff/triOpps[0].NetProfitFraction > 1e-9 {
		t.Errorf("Cycle profit %v and triangular profit %v diverge beyond tolerance",
			cycleOpp.NetProfitFraction, triOpps[0].NetProfitFraction)
	}
}

func TestCycleDetector_ReplayUnresolvableLeg(t *testing.T) {
	feeRate := 0.001
	// ETH -> XRP has no quote in either orientation: the leg converts 1:1
	// but still pays the per-leg fee.
	table := domain.PriceTable{
		"BTCETH": {Price: 2, ObservedAt: 1000},
		"XRPBTC": {Price: 0.17, ObservedAt: 1000},
	}

	detector := NewCycleDetector(feeRate)
	amount := detector.replayCycle([]string{"BTC", "ETH", "XRP"}, table)

	expected := 1.0
	expected = expected * 2 * (1 - feeRate)
	expected = expected * 1 * (1 - feeRate) // missing leg
	expected = expected * 0.17 * (1 - feeRate)
	if amount != expected {
		t.Errorf("Expected replay amount %v, got %v", expected, amount)
	}

	// A missing leg must replay exactly like an explicit 1:1 rate.
	full := domain.PriceTable{
		"BTCETH": {Price: 2, ObservedAt: 1000},
		"ETHXRP": {Price: 1, ObservedAt: 1000},
		"XRPBTC": {Price: 0.17, ObservedAt: 1000},
	}
	if got := detector.replayCycle([]string{"BTC", "ETH", "XRP"}, full); got != amount {
		t.Errorf("Missing leg diverged from explicit 1:1 rate: %v vs %v", amount, got)
	}
}

func TestCycleDetector_EmptyGraph(t *testing.T) {
	table := domain.PriceTable{}
	graph, currencies := NewGraphBuilder(0.001).Build(table)

	if _, found := NewCycleDetector(0.001).Detect(graph, currencies, table); found {
		t.Error("Empty graph should yield no opportunity")
	}
}

func TestReconstructCycle_DeadEnd(t *testing.T) {
	// A predecessor chain that dead-ends before any vertex repeats is not
	// a reconstructible cycle.
	pred := map[string]string{
		"XRP": "ETH",
		"ETH": "BTC",
	}
	if _, ok := reconstructCycle(pred, "XRP"); ok {
		t.Error("Dead-end chain should not reconstruct a cycle")
	}
}

func TestReconstructCycle_ClosesLoop(t *testing.T) {
	pred := map[string]string{
		"BTC": "XRP",
		"XRP": "ETH",
		"ETH": "BTC",
		"ADA": "BTC", // Tail leading into the cycle
	}
	cycle, ok := reconstructCycle(pred, "ADA")
	if !ok {
		t.Fatal("Expected a reconstructible cycle")
	}
	if len(cycle) != 3 {
		t.Fatalf("Expected 3-element cycle, got %v", cycle)
	}
}
