package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartnerBalance_Apply(t *testing.T) {
	bal := PartnerBalance{
		PartnerID:         "p1",
		CashPoints:        100,
		CashPointsService: 50,
		BidTickets:        BidTickets{General: 3, Service: 1},
	}

	t.Run("credit and debit across pools", func(t *testing.T) {
		next := bal.Apply(Deltas{Cash: -100, CashService: -20, TicketsGeneral: 2})
		assert.Equal(t, int64(0), next.CashPoints)
		assert.Equal(t, int64(30), next.CashPointsService)
		assert.Equal(t, int64(5), next.BidTickets.General)
		assert.False(t, next.Negative())
		// receiver untouched
		assert.Equal(t, int64(100), bal.CashPoints)
	})

	t.Run("overdraw is negative", func(t *testing.T) {
		assert.True(t, bal.Apply(Deltas{TicketsService: -2}).Negative())
	})
}

func TestDeltaFor(t *testing.T) {
	tests := []struct {
		pool Pool
		want Deltas
	}{
		{PoolCash, Deltas{Cash: 7}},
		{PoolCashService, Deltas{CashService: 7}},
		{PoolTicketsGeneral, Deltas{TicketsGeneral: 7}},
		{PoolTicketsService, Deltas{TicketsService: 7}},
		{Pool("bogus"), Deltas{}},
	}

	for _, tt := range tests {
		t.Run(string(tt.pool), func(t *testing.T) {
			d := DeltaFor(tt.pool, 7)
			assert.Equal(t, tt.want, d)
			bal := PartnerBalance{}.Apply(d)
			if tt.pool.Valid() {
				assert.Equal(t, int64(7), bal.Get(tt.pool))
			}
		})
	}
}

func TestRegionKey(t *testing.T) {
	assert.Equal(t, "seoul/gangnam", RegionKey("seoul", "gangnam"))
	assert.NotEqual(t, RegionKey("seoul", "jung"), RegionKey("busan", "jung"))
	assert.Equal(t, "seoul", RegionKey("seoul", ""))
}
