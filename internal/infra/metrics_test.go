package infra

import (
	"testing"

	"arb_go/internal/domain"
)

func TestMetrics_Counters(t *testing.T) {
	m := &Metrics{}

	m.RecordTick()
	m.RecordTick()
	m.RecordTickFailure()
	m.RecordOpportunity(domain.StrategyTriangular)
	m.RecordOpportunity(domain.StrategyCycle)
	m.RecordOpportunity(domain.StrategyCycle)
	m.RecordTradeAccepted()
	m.RecordTradeRejected()
	m.RecordFeedMessage()
	m.RecordFeedReconnect()

	snap := m.Snapshot()
	if snap.TicksCompleted != 2 {
		t.Errorf("Expected 2 ticks, got %d", snap.TicksCompleted)
	}
	if snap.TicksFailed != 1 {
		t.Errorf("Expected 1 failed tick, got %d", snap.TicksFailed)
	}
	if snap.TriangularFound != 1 || snap.CyclesFound != 2 {
		t.Errorf("Unexpected opportunity counts: %d/%d", snap.TriangularFound, snap.CyclesFound)
	}
	if snap.TradesAccepted != 1 || snap.TradesRejected != 1 {
		t.Errorf("Unexpected trade counts: %d/%d", snap.TradesAccepted, snap.TradesRejected)
	}
	if snap.FeedMessages != 1 || snap.FeedReconnects != 1 {
		t.Errorf("Unexpected feed counts: %d/%d", snap.FeedMessages, snap.FeedReconnects)
	}
}

func TestMetrics_Reset(t *testing.T) {
	m := &Metrics{}
	m.RecordTick()
	m.RecordFeedMessage()

	m.Reset()

	snap := m.Snapshot()
	if snap.TicksCompleted != 0 || snap.FeedMessages != 0 {
		t.Errorf("Reset should zero counters: %+v", snap)
	}
}
