package aggregate

import (
	"sort"
	"strings"
)

type SortKey string

const (
	SortByName          SortKey = "name"
	SortByTotalQuantity SortKey = "totalQuantity"
	SortByNextExpiry    SortKey = "nextExpiryDate"
)

type SortDirection string

const (
	Ascending  SortDirection = "ascending"
	Descending SortDirection = "descending"
)

type SortConfig struct {
	Key       SortKey
	Direction SortDirection
}

// FilterAndSort keeps the views whose product name contains term as a
// case-insensitive substring (empty term keeps all) and stable-sorts them
// by the configured key. Equal keys preserve relative input order. A view
// without batches has no next expiry and compares as +infinity, so it
// sorts last ascending and first descending.
func FilterAndSort(views []ProductView, term string, cfg SortConfig) []ProductView {
	needle := strings.ToLower(strings.TrimSpace(term))
	out := make([]ProductView, 0, len(views))
	for _, v := range views {
		if needle == "" || strings.Contains(strings.ToLower(v.Product.Name), needle) {
			out = append(out, v)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		c := compareViews(out[i], out[j], cfg.Key)
		if cfg.Direction == Descending {
			c = -c
		}
		return c < 0
	})
	return out
}

func compareViews(a, b ProductView, key SortKey) int {
	switch key {
	case SortByName:
		return strings.Compare(strings.ToLower(a.Product.Name), strings.ToLower(b.Product.Name))
	case SortByTotalQuantity:
		return a.TotalQuantity.Cmp(b.TotalQuantity)
	case SortByNextExpiry:
		at, aok := a.NextExpiry()
		bt, bok := b.NextExpiry()
		switch {
		case !aok && !bok:
			return 0
		case !aok:
			return 1
		case !bok:
			return -1
		case at.Before(bt):
			return -1
		case at.After(bt):
			return 1
		}
	}
	return 0
}
