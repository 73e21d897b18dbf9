package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"tu-inventario/internal/events"
	"tu-inventario/internal/models"
)

// InventoryService owns the write path for batches and the snapshot read
// used by the aggregation engine. Every multi-step write runs in one
// transaction; change events are published only after commit.
type InventoryService struct {
	DB  *gorm.DB
	Bus *events.Bus
}

func NewInventoryService(db *gorm.DB, bus *events.Bus) *InventoryService {
	return &InventoryService{DB: db, Bus: bus}
}

func (s *InventoryService) publish(cols ...events.Collection) {
	if s.Bus == nil {
		return
	}
	for _, c := range cols {
		s.Bus.Publish(c)
	}
}

// ProductRef identifies the product a new batch belongs to. With an ID the
// product must exist. Without one, the name is matched case-insensitively
// against existing products; on a match the stored product wins (including
// its unit), otherwise a new product is created with the given name and
// unit.
type ProductRef struct {
	ID   string
	Name string
	Unit models.Unit
}

type AddBatchInput struct {
	Product    ProductRef
	Quantity   decimal.Decimal
	ExpiryDate time.Time
}

type AddBatchResult struct {
	ProductID      string
	BatchID        string
	ProductName    string
	Unit           models.Unit
	ProductCreated bool
}

func (s *InventoryService) AddBatch(in AddBatchInput) (AddBatchResult, error) {
	if !in.Quantity.IsPositive() {
		return AddBatchResult{}, ErrInvalidQuantity
	}

	var res AddBatchResult
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		product, created, err := resolveProduct(tx, in.Product)
		if err != nil {
			return err
		}
		// The product's canonical unit wins over whatever the caller sent.
		batch := models.InventoryBatch{
			ID:         uuid.NewString(),
			ProductID:  product.ID,
			Quantity:   in.Quantity,
			Unit:       product.Unit,
			ExpiryDate: in.ExpiryDate,
		}
		if err := tx.Create(&batch).Error; err != nil {
			return fmt.Errorf("create batch: %w", err)
		}
		res = AddBatchResult{
			ProductID:      product.ID,
			BatchID:        batch.ID,
			ProductName:    product.Name,
			Unit:           product.Unit,
			ProductCreated: created,
		}
		return nil
	})
	if err != nil {
		return AddBatchResult{}, err
	}
	if res.ProductCreated {
		s.publish(events.Products)
	}
	s.publish(events.InventoryBatches)
	return res, nil
}

func resolveProduct(tx *gorm.DB, ref ProductRef) (models.Product, bool, error) {
	var product models.Product
	if ref.ID != "" {
		err := tx.First(&product, "id = ?", ref.ID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return product, false, ErrProductNotFound
		}
		if err != nil {
			return product, false, fmt.Errorf("load product: %w", err)
		}
		return product, false, nil
	}

	name := strings.TrimSpace(ref.Name)
	if name == "" {
		return product, false, ErrEmptyName
	}
	err := tx.Where("lower(name) = lower(?)", name).First(&product).Error
	if err == nil {
		return product, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return product, false, fmt.Errorf("lookup product: %w", err)
	}

	if !ref.Unit.Valid() {
		return product, false, ErrInvalidUnit
	}
	product = models.Product{ID: uuid.NewString(), Name: name, Unit: ref.Unit, CreatedAt: time.Now()}
	if err := tx.Create(&product).Error; err != nil {
		return product, false, fmt.Errorf("create product: %w", err)
	}
	return product, true, nil
}

type ConsumeResult struct {
	ProductID   string
	ProductName string
	Consumed    decimal.Decimal
	Remaining   decimal.Decimal
	Unit        models.Unit
	Depleted    bool
}

// ConsumeBatch records usage against one batch. Consuming the full
// remaining quantity deletes the batch; a partial consumption updates it
// in place. Exactly one of the two happens, together with the history
// append, or nothing does.
func (s *InventoryService) ConsumeBatch(batchID string, quantity decimal.Decimal) (ConsumeResult, error) {
	if !quantity.IsPositive() {
		return ConsumeResult{}, ErrInvalidQuantity
	}

	var res ConsumeResult
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var batch models.InventoryBatch
		if err := tx.First(&batch, "id = ?", batchID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBatchNotFound
			}
			return fmt.Errorf("load batch: %w", err)
		}

		var product models.Product
		if err := tx.First(&product, "id = ?", batch.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Data-integrity violation: the batch points at nothing.
				return ErrProductNotFound
			}
			return fmt.Errorf("load product: %w", err)
		}

		if quantity.GreaterThan(batch.Quantity) {
			return ErrInsufficientStock
		}

		record := models.ConsumptionRecord{
			ID:          uuid.NewString(),
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    quantity,
			Unit:        batch.Unit,
			ConsumedAt:  time.Now(),
		}
		if err := tx.Create(&record).Error; err != nil {
			return fmt.Errorf("create consumption record: %w", err)
		}

		remaining := batch.Quantity.Sub(quantity)
		if remaining.IsPositive() {
			if err := tx.Model(&models.InventoryBatch{}).Where("id = ?", batch.ID).
				Update("quantity", remaining).Error; err != nil {
				return fmt.Errorf("update batch quantity: %w", err)
			}
		} else {
			if err := tx.Delete(&models.InventoryBatch{}, "id = ?", batch.ID).Error; err != nil {
				return fmt.Errorf("delete depleted batch: %w", err)
			}
		}

		res = ConsumeResult{
			ProductID:   product.ID,
			ProductName: product.Name,
			Consumed:    quantity,
			Remaining:   remaining,
			Unit:        batch.Unit,
			Depleted:    !remaining.IsPositive(),
		}
		return nil
	})
	if err != nil {
		return ConsumeResult{}, err
	}
	s.publish(events.InventoryBatches, events.ConsumptionRecords)
	return res, nil
}

type DeleteBatchResult struct {
	Deleted     bool
	ProductName string
}

// DeleteBatch removes the batch if present. An unknown id is a no-op, not
// an error; history is never touched.
func (s *InventoryService) DeleteBatch(batchID string) (DeleteBatchResult, error) {
	var res DeleteBatchResult
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var batch models.InventoryBatch
		if err := tx.First(&batch, "id = ?", batchID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return fmt.Errorf("load batch: %w", err)
		}

		var product models.Product
		if err := tx.First(&product, "id = ?", batch.ProductID).Error; err == nil {
			res.ProductName = product.Name
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("load product: %w", err)
		}

		if err := tx.Delete(&models.InventoryBatch{}, "id = ?", batchID).Error; err != nil {
			return fmt.Errorf("delete batch: %w", err)
		}
		res.Deleted = true
		return nil
	})
	if err != nil {
		return DeleteBatchResult{}, err
	}
	if res.Deleted {
		s.publish(events.InventoryBatches)
	}
	return res, nil
}

// Snapshot is the in-memory copy of the collections the aggregation
// engine works on.
type Snapshot struct {
	Products []models.Product
	Batches  []models.InventoryBatch
	Records  []models.ConsumptionRecord
}

func (s *InventoryService) Snapshot() (Snapshot, error) {
	var snap Snapshot
	if err := s.DB.Order("created_at asc").Find(&snap.Products).Error; err != nil {
		return Snapshot{}, fmt.Errorf("load products: %w", err)
	}
	if err := s.DB.Find(&snap.Batches).Error; err != nil {
		return Snapshot{}, fmt.Errorf("load batches: %w", err)
	}
	if err := s.DB.Order("consumed_at asc").Find(&snap.Records).Error; err != nil {
		return Snapshot{}, fmt.Errorf("load consumption records: %w", err)
	}
	return snap, nil
}
