package aggregate

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"tu-inventario/internal/models"
)

// rotationWindowDays is the trailing window used for the most-rotated
// product metric.
const rotationWindowDays = 30

// RotationStat is the consumption total of one product over the trailing
// rotation window.
type RotationStat struct {
	ProductID   string
	ProductName string
	Quantity    decimal.Decimal
}

// ReportStats are the aggregated numbers of the reports dashboard.
// Quantity metrics sum batch quantities, not batch counts. MostStocked,
// LeastStocked and MostRotated are nil when no view or record qualifies.
type ReportStats struct {
	TotalItems           decimal.Decimal
	ExpiringSoonQuantity decimal.Decimal
	ExpiredQuantity      decimal.Decimal
	ExpiredThisMonth     decimal.Decimal
	MostStocked          *ProductView
	LeastStocked         *ProductView
	MostRotated          *RotationStat
}

// ComputeReportStats walks every batch of every view once and the
// consumption history once. Stock ties resolve to the first view in input
// order. Rotation ties resolve to the lexicographically smallest product
// id: candidates are scanned in sorted id order and only a strictly
// greater total replaces the leader.
func ComputeReportStats(views []ProductView, records []models.ConsumptionRecord, now time.Time) ReportStats {
	stats := ReportStats{
		TotalItems:           decimal.Zero,
		ExpiringSoonQuantity: decimal.Zero,
		ExpiredQuantity:      decimal.Zero,
		ExpiredThisMonth:     decimal.Zero,
	}
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	for i := range views {
		v := views[i]
		stats.TotalItems = stats.TotalItems.Add(v.TotalQuantity)

		if stats.MostStocked == nil || v.TotalQuantity.GreaterThan(stats.MostStocked.TotalQuantity) {
			most := v
			stats.MostStocked = &most
		}
		if stats.LeastStocked == nil || v.TotalQuantity.LessThan(stats.LeastStocked.TotalQuantity) {
			least := v
			stats.LeastStocked = &least
		}

		for _, b := range v.Batches {
			switch Classify(b.ExpiryDate, now) {
			case StatusExpired:
				stats.ExpiredQuantity = stats.ExpiredQuantity.Add(b.Quantity)
				if !b.ExpiryDate.Before(monthStart) && !b.ExpiryDate.After(now) {
					stats.ExpiredThisMonth = stats.ExpiredThisMonth.Add(b.Quantity)
				}
			case StatusExpiringSoon:
				stats.ExpiringSoonQuantity = stats.ExpiringSoonQuantity.Add(b.Quantity)
			}
		}
	}

	stats.MostRotated = mostRotated(records, now)
	return stats
}

func mostRotated(records []models.ConsumptionRecord, now time.Time) *RotationStat {
	totals := make(map[string]decimal.Decimal)
	names := make(map[string]string)
	for _, r := range records {
		if r.ConsumedAt.After(now) {
			continue
		}
		if DaysUntil(now, r.ConsumedAt) > rotationWindowDays {
			continue
		}
		totals[r.ProductID] = totals[r.ProductID].Add(r.Quantity)
		names[r.ProductID] = r.ProductName
	}
	if len(totals) == 0 {
		return nil
	}

	ids := make([]string, 0, len(totals))
	for id := range totals {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var top *RotationStat
	for _, id := range ids {
		if top == nil || totals[id].GreaterThan(top.Quantity) {
			top = &RotationStat{ProductID: id, ProductName: names[id], Quantity: totals[id]}
		}
	}
	return top
}
