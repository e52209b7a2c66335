package engine

import "arb_go/internal/domain"

// ResolveRate returns the directional conversion rate from base to quote.
// It looks up the direct symbol first and falls back to the reciprocal of
// the inverse symbol. A rate is only ever derived from a positive price;
// missing or non-positive quotes resolve to absent, never to an error.
func ResolveRate(base, quote string, table domain.PriceTable) (float64, bool) {
	if q, ok := table[base+quote]; ok {
		if q.Price <= 0 {
			return 0, false
		}
		return q.Price, true
	}
	if q, ok := table[quote+base]; ok {
		if q.Price <= 0 {
			return 0, false
		}
		return 1 / q.Price, true
	}
	return 0, false
}
