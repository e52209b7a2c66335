package engine

import (
	"math"
	"time"

	"arb_go/internal/domain"
)

// CycleDetector finds profitable negative-weight cycles in the currency
// graph via Bellman-Ford relaxation. A single Detect call returns at most
// one opportunity: the first profitable cycle found in start-vertex order.
type CycleDetector struct {
	feeRate float64
}

// NewCycleDetector creates a detector applying the given per-leg fee rate
// when replaying a candidate cycle with real rates.
func NewCycleDetector(feeRate float64) *CycleDetector {
	return &CycleDetector{feeRate: feeRate}
}

// Detect runs Bellman-Ford from every currency in the given order and
// returns the first profitable cycle. The caller passes currencies sorted,
// which makes the result reproducible for identical snapshots. The first
// success short-circuits the remaining start vertices.
func (d *CycleDetector) Detect(graph Graph, currencies []string, table domain.PriceTable) (domain.Opportunity, bool) {
	for _, start := range currencies {
		if opp, found := d.detectFrom(start, graph, currencies, table); found {
			return opp, true
		}
	}
	return domain.Opportunity{}, false
}

// detectFrom relaxes all edges |V|-1 times from one start vertex, then
// scans for an edge that still relaxes. Such an edge proves a negative
// cycle reachable from start; the cycle is rebuilt from predecessor links
// and replayed with actual rates. Only the first still-relaxable edge is
// considered per start vertex.
func (d *CycleDetector) detectFrom(start string, graph Graph, currencies []string, table domain.PriceTable) (domain.Opportunity, bool) {
	dist := make(map[string]float64, len(currencies))
	pred := make(map[string]string, len(currencies))
	for _, c := range currencies {
		dist[c] = math.Inf(1)
	}
	dist[start] = 0

	for i := 0; i < len(currencies)-1; i++ {
		for _, u := range currencies {
			for _, e := range graph[u] {
				if dist[u]+e.Weight < dist[e.To] {
					dist[e.To] = dist[u] + e.Weight
					pred[e.To] = u
				}
			}
		}
	}

	for _, u := range currencies {
		for _, e := range graph[u] {
			if dist[u]+e.Weight >= dist[e.To] {
				continue
			}

			cycle, ok := reconstructCycle(pred, e.To)
			if !ok {
				// Predecessor chain dead-ends before closing: nothing
				// concrete to trade, so this start yields no opportunity.
				return domain.Opportunity{}, false
			}

			profit := d.replayCycle(cycle, table)
			if profit > 1 {
				return domain.Opportunity{
					Strategy:          domain.StrategyCycle,
					Path:              cycle,
					NetProfitFraction: profit - 1,
					DetectedAt:        time.Now().UnixMilli(),
				}, true
			}
			return domain.Opportunity{}, false
		}
	}

	return domain.Opportunity{}, false
}

// reconstructCycle walks predecessor links from the vertex where the extra
// relaxation pass fired until some vertex repeats; that vertex is the
// cycle's re-entry point. A second walk from the re-entry point back to
// itself yields the ordered cycle. Returns false if the chain hits a
// vertex with no predecessor before any repeat.
func reconstructCycle(pred map[string]string, from string) ([]string, bool) {
	visited := make(map[string]struct{})
	current := from
	for {
		if _, seen := visited[current]; seen {
			break
		}
		visited[current] = struct{}{}
		next, ok := pred[current]
		if !ok {
			return nil, false
		}
		current = next
	}

	entry := current
	cycle := []string{entry}
	for current = pred[entry]; current != entry; current = pred[current] {
		cycle = append(cycle, current)
	}

	// The predecessor walk runs against trade direction; reverse it.
	for i, j := 0, len(cycle)-1; i < j; i, j = i+1, j-1 {
		cycle[i], cycle[j] = cycle[j], cycle[i]
	}
	return cycle, true
}

// replayCycle trades one unit around the cycle using real (non-log) rates.
// A leg whose rate cannot be resolved is treated as a 1:1 conversion
// rather than failing the whole cycle; the fee still applies per leg.
func (d *CycleDetector) replayCycle(cycle []string, table domain.PriceTable) float64 {
	amount := 1.0
	for i := range cycle {
		x := cycle[i]
		y := cycle[(i+1)%len(cycle)]

		rate, ok := ResolveRate(x, y, table)
		if !ok {
			rate = 1
		}
		amount = amount * rate * (1 - d.feeRate)
	}
	return amount
}
