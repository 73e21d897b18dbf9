package aggregate

import (
	"testing"

	"tu-inventario/internal/models"
)

func view(id, name, total string, expiries ...int) ProductView {
	v := ProductView{
		Product:       models.Product{ID: id, Name: name},
		TotalQuantity: qty(total),
	}
	for _, e := range expiries {
		v.Batches = append(v.Batches, models.InventoryBatch{ProductID: id, ExpiryDate: day(e)})
	}
	return v
}

func assertOrder(t *testing.T, views []ProductView, want ...string) {
	t.Helper()
	if len(views) != len(want) {
		t.Fatalf("expected %d views got %d", len(want), len(views))
	}
	for i, id := range want {
		if views[i].Product.ID != id {
			t.Errorf("index %d: expected %s got %s", i, id, views[i].Product.ID)
		}
	}
}

func TestFilterCaseInsensitiveSubstring(t *testing.T) {
	views := []ProductView{
		view("p1", "Leche Entera", "1"),
		view("p2", "Queso", "1"),
		view("p3", "leche de avena", "1"),
	}
	cfg := SortConfig{Key: SortByName, Direction: Ascending}

	got := FilterAndSort(views, "LECHE", cfg)
	assertOrder(t, got, "p3", "p1")

	all := FilterAndSort(views, "", cfg)
	if len(all) != 3 {
		t.Errorf("empty term must keep all views, got %d", len(all))
	}
}

func TestSortByQuantityDescendingIsStable(t *testing.T) {
	views := []ProductView{
		view("a", "A", "5"),
		view("b", "B", "10"),
		view("c", "C", "5"),
	}
	got := FilterAndSort(views, "", SortConfig{Key: SortByTotalQuantity, Direction: Descending})
	// B first; A and C tie and keep their relative input order.
	assertOrder(t, got, "b", "a", "c")
}

func TestSortByNameIgnoresCase(t *testing.T) {
	views := []ProductView{
		view("p1", "naranjas", "1"),
		view("p2", "Aceite", "1"),
		view("p3", "MANZANAS", "1"),
	}
	got := FilterAndSort(views, "", SortConfig{Key: SortByName, Direction: Ascending})
	assertOrder(t, got, "p2", "p3", "p1")
}

func TestSortByNextExpiry(t *testing.T) {
	views := []ProductView{
		view("late", "Tarde", "1", 20),
		view("early", "Pronto", "1", 2),
		view("mid", "Medio", "1", 7, 30),
	}
	asc := FilterAndSort(views, "", SortConfig{Key: SortByNextExpiry, Direction: Ascending})
	assertOrder(t, asc, "early", "mid", "late")

	desc := FilterAndSort(views, "", SortConfig{Key: SortByNextExpiry, Direction: Descending})
	assertOrder(t, desc, "late", "mid", "early")
}

func TestSortByNextExpiryNoBatchesSortsAsInfinity(t *testing.T) {
	views := []ProductView{
		view("none", "Sin lotes", "1"),
		view("soon", "Pronto", "1", 1),
	}
	asc := FilterAndSort(views, "", SortConfig{Key: SortByNextExpiry, Direction: Ascending})
	assertOrder(t, asc, "soon", "none")

	desc := FilterAndSort(views, "", SortConfig{Key: SortByNextExpiry, Direction: Descending})
	assertOrder(t, desc, "none", "soon")
}

func TestFilterAndSortDoesNotMutateInput(t *testing.T) {
	views := []ProductView{
		view("b", "B", "1"),
		view("a", "A", "1"),
	}
	_ = FilterAndSort(views, "", SortConfig{Key: SortByName, Direction: Ascending})
	assertOrder(t, views, "b", "a")
}
