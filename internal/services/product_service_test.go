package services

import (
	"errors"
	"testing"
	"time"

	"tu-inventario/internal/models"
)

func seedProductWithHistory(t *testing.T, svc *InventoryService) (productID, batchID string, consumedAt time.Time) {
	t.Helper()
	added, err := svc.AddBatch(AddBatchInput{
		Product:    ProductRef{Name: "Milk", Unit: models.UnitLitro},
		Quantity:   qty("4"),
		ExpiryDate: expiry(6),
	})
	if err != nil {
		t.Fatalf("add batch: %v", err)
	}
	if _, err := svc.ConsumeBatch(added.BatchID, qty("1")); err != nil {
		t.Fatalf("consume: %v", err)
	}
	var record models.ConsumptionRecord
	if err := svc.DB.First(&record, "product_id = ?", added.ProductID).Error; err != nil {
		t.Fatalf("load record: %v", err)
	}
	return added.ProductID, added.BatchID, record.ConsumedAt
}

func TestUpdateProductCascades(t *testing.T) {
	db := setupTestDB(t)
	inv := NewInventoryService(db, nil)
	svc := NewProductService(db, nil)

	productID, batchID, consumedAt := seedProductWithHistory(t, inv)

	if err := svc.UpdateProduct(productID, "Almond Milk", models.UnitMililitro); err != nil {
		t.Fatalf("update: %v", err)
	}

	var product models.Product
	if err := db.First(&product, "id = ?", productID).Error; err != nil {
		t.Fatalf("load product: %v", err)
	}
	if product.Name != "Almond Milk" || product.Unit != models.UnitMililitro {
		t.Errorf("product not updated: %+v", product)
	}

	var batch models.InventoryBatch
	if err := db.First(&batch, "id = ?", batchID).Error; err != nil {
		t.Fatalf("load batch: %v", err)
	}
	if batch.Unit != models.UnitMililitro {
		t.Errorf("batch unit not cascaded: %s", batch.Unit)
	}
	if !batch.Quantity.Equal(qty("3")) {
		t.Errorf("batch quantity must be untouched, got %s", batch.Quantity)
	}

	var record models.ConsumptionRecord
	if err := db.First(&record, "product_id = ?", productID).Error; err != nil {
		t.Fatalf("load record: %v", err)
	}
	if record.ProductName != "Almond Milk" || record.Unit != models.UnitMililitro {
		t.Errorf("record not cascaded: %+v", record)
	}
	if !record.Quantity.Equal(qty("1")) {
		t.Errorf("record quantity must be untouched, got %s", record.Quantity)
	}
	if !record.ConsumedAt.Equal(consumedAt) {
		t.Errorf("consumed date must be untouched: %s vs %s", record.ConsumedAt, consumedAt)
	}
}

func TestUpdateProductValidation(t *testing.T) {
	db := setupTestDB(t)
	inv := NewInventoryService(db, nil)
	svc := NewProductService(db, nil)

	productID, _, _ := seedProductWithHistory(t, inv)

	if err := svc.UpdateProduct(productID, "  ", models.UnitLitro); !errors.Is(err, ErrEmptyName) {
		t.Errorf("expected ErrEmptyName got %v", err)
	}
	if err := svc.UpdateProduct(productID, "Milk", models.Unit("botellas")); !errors.Is(err, ErrInvalidUnit) {
		t.Errorf("expected ErrInvalidUnit got %v", err)
	}
	if err := svc.UpdateProduct("missing", "Milk", models.UnitLitro); !errors.Is(err, ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound got %v", err)
	}
}

func TestUpdateProductRejectsDuplicateName(t *testing.T) {
	db := setupTestDB(t)
	inv := NewInventoryService(db, nil)
	svc := NewProductService(db, nil)

	first, err := inv.AddBatch(AddBatchInput{
		Product:    ProductRef{Name: "Leche", Unit: models.UnitLitro},
		Quantity:   qty("1"),
		ExpiryDate: expiry(5),
	})
	if err != nil {
		t.Fatalf("add first: %v", err)
	}
	if _, err := inv.AddBatch(AddBatchInput{
		Product:    ProductRef{Name: "Pan", Unit: models.UnitUnidades},
		Quantity:   qty("1"),
		ExpiryDate: expiry(2),
	}); err != nil {
		t.Fatalf("add second: %v", err)
	}

	// Renaming Leche to PAN collides case-insensitively.
	if err := svc.UpdateProduct(first.ProductID, "PAN", models.UnitLitro); !errors.Is(err, ErrDuplicateProduct) {
		t.Errorf("expected ErrDuplicateProduct got %v", err)
	}
	// Renaming to its own name (case change only) is allowed.
	if err := svc.UpdateProduct(first.ProductID, "LECHE", models.UnitLitro); err != nil {
		t.Errorf("self rename: %v", err)
	}
}

func TestDeleteProductWithActiveStockFails(t *testing.T) {
	db := setupTestDB(t)
	inv := NewInventoryService(db, nil)
	svc := NewProductService(db, nil)

	productID, _, _ := seedProductWithHistory(t, inv)

	if err := svc.DeleteProduct(productID); !errors.Is(err, ErrProductHasStock) {
		t.Fatalf("expected ErrProductHasStock got %v", err)
	}
	var count int64
	db.Model(&models.Product{}).Count(&count)
	if count != 1 {
		t.Errorf("product must survive the failed delete, got %d rows", count)
	}
}

func TestDeleteProductKeepsHistory(t *testing.T) {
	db := setupTestDB(t)
	inv := NewInventoryService(db, nil)
	svc := NewProductService(db, nil)

	productID, batchID, _ := seedProductWithHistory(t, inv)
	if _, err := inv.ConsumeBatch(batchID, qty("3")); err != nil {
		t.Fatalf("deplete: %v", err)
	}

	if err := svc.DeleteProduct(productID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var products int64
	db.Model(&models.Product{}).Count(&products)
	if products != 0 {
		t.Errorf("expected product row removed, got %d", products)
	}
	var records int64
	db.Model(&models.ConsumptionRecord{}).Where("product_id = ?", productID).Count(&records)
	if records != 2 {
		t.Errorf("history must be retained after product deletion, got %d records", records)
	}

	if err := svc.DeleteProduct(productID); !errors.Is(err, ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound got %v", err)
	}
}

func TestListAndGet(t *testing.T) {
	db := setupTestDB(t)
	inv := NewInventoryService(db, nil)
	svc := NewProductService(db, nil)

	for _, name := range []string{"Queso", "Aceite", "Leche"} {
		if _, err := inv.AddBatch(AddBatchInput{
			Product:    ProductRef{Name: name, Unit: models.UnitUnidades},
			Quantity:   qty("1"),
			ExpiryDate: expiry(10),
		}); err != nil {
			t.Fatalf("add %s: %v", name, err)
		}
	}

	products, err := svc.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(products) != 3 {
		t.Fatalf("expected 3 products got %d", len(products))
	}
	if products[0].Name != "Aceite" {
		t.Errorf("expected name ordering, got %s first", products[0].Name)
	}

	got, err := svc.Get(products[0].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Aceite" {
		t.Errorf("unexpected product %+v", got)
	}
	if _, err := svc.Get("missing"); !errors.Is(err, ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound got %v", err)
	}
}
