package aggregate

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"tu-inventario/internal/models"
)

// ProductView is a product enriched with its active batches, ordered by
// ascending expiry date, and the derived total quantity. It is recomputed
// from a store snapshot on every read and never persisted.
type ProductView struct {
	Product       models.Product
	Batches       []models.InventoryBatch
	TotalQuantity decimal.Decimal
}

// NextExpiry returns the expiry date of the earliest-expiring batch.
// ok is false when the view has no batches.
func (v ProductView) NextExpiry() (time.Time, bool) {
	if len(v.Batches) == 0 {
		return time.Time{}, false
	}
	return v.Batches[0].ExpiryDate, true
}

// Status classifies the view by its earliest-expiring batch. A view with
// no batches is Fresh by convention.
func (v ProductView) Status(now time.Time) Status {
	next, ok := v.NextExpiry()
	if !ok {
		return StatusFresh
	}
	return Classify(next, now)
}

// BuildProductViews groups batches by product, sorts each product's
// batches ascending by expiry date (stable, ties keep insertion order) and
// sums quantities. Products with no remaining stock are dropped; batches
// referencing an unknown product are skipped. Output order follows the
// input product order; callers sort separately.
func BuildProductViews(products []models.Product, batches []models.InventoryBatch) []ProductView {
	byProduct := make(map[string][]models.InventoryBatch, len(products))
	for _, b := range batches {
		byProduct[b.ProductID] = append(byProduct[b.ProductID], b)
	}

	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		items := byProduct[p.ID]
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].ExpiryDate.Before(items[j].ExpiryDate)
		})
		total := decimal.Zero
		for _, item := range items {
			total = total.Add(item.Quantity)
		}
		if !total.IsPositive() {
			continue
		}
		views = append(views, ProductView{Product: p, Batches: items, TotalQuantity: total})
	}
	return views
}

// StatusCounts are the headline dashboard numbers, counted per product
// using each product's aggregate status.
type StatusCounts struct {
	Total        int
	ExpiringSoon int
	Expired      int
}

func CountByStatus(views []ProductView, now time.Time) StatusCounts {
	counts := StatusCounts{Total: len(views)}
	for _, v := range views {
		switch v.Status(now) {
		case StatusExpired:
			counts.Expired++
		case StatusExpiringSoon:
			counts.ExpiringSoon++
		}
	}
	return counts
}
