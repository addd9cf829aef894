package services

import (
	"sort"
	"time"

	"github.com/partnerhub/backend/internal/models"
)

// Outcome is the final state settlement assigns to one pending bid.
type Outcome struct {
	Bid    models.AdBid
	Status models.BidStatus
	Rank   int
}

type groupKey struct {
	category  string
	regionKey string
}

func bidGroup(b models.AdBid) groupKey {
	key := b.RegionKey
	if key == "" {
		key = models.RegionKey(b.Region, b.RegionDetail)
	}
	return groupKey{category: b.Category, regionKey: key}
}

// rankLess orders bids by amount desc, then earlier createdAt, then id.
func rankLess(a, b models.AdBid) bool {
	if a.Amount != b.Amount {
		return a.Amount > b.Amount
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID < b.ID
}

// PlanSettlement decides the outcome of every pending bid of one week.
//
// bids must hold every bid of the week regardless of status: ranks are
// computed over the whole group so a run resuming after a partial failure
// assigns the same ranks the earlier run did. Only pending bids produce an
// Outcome. Bids created after cutoff are late and never ranked.
func PlanSettlement(bids []models.AdBid, winners int, cutoff time.Time) []Outcome {
	groups := make(map[groupKey][]models.AdBid)
	var late []Outcome

	for _, b := range bids {
		if b.CreatedAt.After(cutoff) {
			if b.Status == models.BidPending {
				late = append(late, Outcome{Bid: b, Status: models.BidLate})
			}
			continue
		}
		k := bidGroup(b)
		groups[k] = append(groups[k], b)
	}

	keys := make([]groupKey, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].category != keys[j].category {
			return keys[i].category < keys[j].category
		}
		return keys[i].regionKey < keys[j].regionKey
	})

	var outcomes []Outcome
	for _, k := range keys {
		group := groups[k]
		sort.Slice(group, func(i, j int) bool { return rankLess(group[i], group[j]) })

		for i, b := range group {
			if b.Status != models.BidPending {
				continue
			}
			if i < winners {
				outcomes = append(outcomes, Outcome{Bid: b, Status: models.BidWon, Rank: i + 1})
			} else {
				outcomes = append(outcomes, Outcome{Bid: b, Status: models.BidLost})
			}
		}
	}

	sort.Slice(late, func(i, j int) bool { return late[i].Bid.ID < late[j].Bid.ID })
	return append(outcomes, late...)
}

// writeCost is the number of row writes an outcome needs.
func writeCost(o Outcome) int {
	switch o.Status {
	case models.BidWon:
		return 3 // bid, placement, notification
	case models.BidLost:
		return 4 // ledger entry, balance, bid, notification
	}
	return 2 // bid, notification
}

// chunkOutcomes splits outcomes so no chunk exceeds limit writes.
func chunkOutcomes(outcomes []Outcome, limit int) [][]Outcome {
	var chunks [][]Outcome
	var current []Outcome
	used := 0

	for _, o := range outcomes {
		cost := writeCost(o)
		if len(current) > 0 && used+cost > limit {
			chunks = append(chunks, current)
			current, used = nil, 0
		}
		current = append(current, o)
		used += cost
	}
	if len(current) > 0 {
		chunks = append(chunks, current)
	}
	return chunks
}
