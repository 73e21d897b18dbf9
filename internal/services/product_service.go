package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"tu-inventario/internal/events"
	"tu-inventario/internal/models"
)

// ProductService manages the product master records and the cascades that
// keep denormalized batch/history fields in sync with them.
type ProductService struct {
	DB  *gorm.DB
	Bus *events.Bus
}

func NewProductService(db *gorm.DB, bus *events.Bus) *ProductService {
	return &ProductService{DB: db, Bus: bus}
}

func (s *ProductService) publish(cols ...events.Collection) {
	if s.Bus == nil {
		return
	}
	for _, c := range cols {
		s.Bus.Publish(c)
	}
}

func (s *ProductService) List() ([]models.Product, error) {
	var products []models.Product
	if err := s.DB.Order("name asc").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (s *ProductService) Get(id string) (*models.Product, error) {
	var product models.Product
	err := s.DB.First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load product: %w", err)
	}
	return &product, nil
}

// UpdateProduct renames a product and/or changes its unit, cascading to
// every batch (unit) and every consumption record (name and unit) in one
// transaction, so a reader never observes a half-applied rename. Quantity
// and dates of the dependent rows are untouched.
func (s *ProductService) UpdateProduct(id, newName string, newUnit models.Unit) error {
	name := strings.TrimSpace(newName)
	if name == "" {
		return ErrEmptyName
	}
	if !newUnit.Valid() {
		return ErrInvalidUnit
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return fmt.Errorf("load product: %w", err)
		}

		var clash int64
		if err := tx.Model(&models.Product{}).
			Where("lower(name) = lower(?) AND id <> ?", name, id).
			Count(&clash).Error; err != nil {
			return fmt.Errorf("check name collision: %w", err)
		}
		if clash > 0 {
			return ErrDuplicateProduct
		}

		if err := tx.Model(&models.Product{}).Where("id = ?", id).
			Updates(map[string]any{"name": name, "unit": newUnit}).Error; err != nil {
			return fmt.Errorf("update product: %w", err)
		}
		if err := tx.Model(&models.InventoryBatch{}).Where("product_id = ?", id).
			Update("unit", newUnit).Error; err != nil {
			return fmt.Errorf("cascade batch unit: %w", err)
		}
		if err := tx.Model(&models.ConsumptionRecord{}).Where("product_id = ?", id).
			Updates(map[string]any{"product_name": name, "unit": newUnit}).Error; err != nil {
			return fmt.Errorf("cascade consumption records: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.publish(events.Products, events.InventoryBatches, events.ConsumptionRecords)
	return nil
}

// DeleteProduct removes the master record only. It refuses while any batch
// still references the product; consumption history is deliberately kept
// so past reports stay complete.
func (s *ProductService) DeleteProduct(id string) error {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return fmt.Errorf("load product: %w", err)
		}

		var active int64
		if err := tx.Model(&models.InventoryBatch{}).
			Where("product_id = ?", id).Count(&active).Error; err != nil {
			return fmt.Errorf("count active batches: %w", err)
		}
		if active > 0 {
			return ErrProductHasStock
		}

		if err := tx.Delete(&models.Product{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("delete product: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.publish(events.Products)
	return nil
}
