package engine

import (
	"time"

	"arb_go/internal/domain"
)

// TriangularScanner evaluates a fixed list of 3-currency triplets for
// round-trip profitability against a table snapshot.
type TriangularScanner struct {
	triplets []domain.Triplet
	feeRate  float64
}

// NewTriangularScanner creates a scanner over the configured triplets.
func NewTriangularScanner(triplets []domain.Triplet, feeRate float64) *TriangularScanner {
	return &TriangularScanner{
		triplets: triplets,
		feeRate:  feeRate,
	}
}

// Scan evaluates every triplet (A, B, C) in configuration order and returns
// one Opportunity per profitable round trip A -> B -> C -> A. A triplet with
// any unresolvable leg is skipped; missing market data is routine, not an
// error. Profitability is strict: an effective product of exactly 1 does
// not qualify.
func (s *TriangularScanner) Scan(table domain.PriceTable) []domain.Opportunity {
	var opps []domain.Opportunity

	feeAdjustment := (1 - s.feeRate) * (1 - s.feeRate) * (1 - s.feeRate)

	for _, triplet := range s.triplets {
		a, b, c := triplet[0], triplet[1], triplet[2]

		rateAB, ok := ResolveRate(a, b, table)
		if !ok {
			continue
		}
		rateBC, ok := ResolveRate(b, c, table)
		if !ok {
			continue
		}
		rateCA, ok := ResolveRate(c, a, table)
		if !ok {
			continue
		}

		rawProduct := rateAB * rateBC * rateCA
		effectiveProduct := rawProduct * feeAdjustment

		if effectiveProduct > 1 {
			opps = append(opps, domain.Opportunity{
				Strategy:          domain.StrategyTriangular,
				Path:              []string{a, b, c},
				Legs:              []float64{rateAB, rateBC, rateCA},
				NetProfitFraction: effectiveProduct - 1,
				DetectedAt:        time.Now().UnixMilli(),
			})
		}
	}

	return opps
}
