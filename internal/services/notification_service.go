package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tu-inventario/internal/aggregate"
	"tu-inventario/internal/events"
	"tu-inventario/internal/models"
)

// NotificationService keeps the notifications collection consistent with
// the current batches. Scheduling is the caller's concern; Refresh is the
// unit a periodic recheck invokes.
type NotificationService struct {
	DB  *gorm.DB
	Bus *events.Bus
}

func NewNotificationService(db *gorm.DB, bus *events.Bus) *NotificationService {
	return &NotificationService{DB: db, Bus: bus}
}

func (s *NotificationService) publish() {
	if s.Bus != nil {
		s.Bus.Publish(events.Notifications)
	}
}

// Refresh reconciles notifications against the batches as of now: a batch
// inside the expiring-soon window gets one notification, its remaining-day
// count tracks the clock, and notifications for vanished or recovered
// batches are removed. Runs as a single transaction.
func (s *NotificationService) Refresh(now time.Time) error {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var products []models.Product
		if err := tx.Find(&products).Error; err != nil {
			return fmt.Errorf("load products: %w", err)
		}
		names := make(map[string]string, len(products))
		for _, p := range products {
			names[p.ID] = p.Name
		}

		var batches []models.InventoryBatch
		if err := tx.Find(&batches).Error; err != nil {
			return fmt.Errorf("load batches: %w", err)
		}

		var existing []models.Notification
		if err := tx.Find(&existing).Error; err != nil {
			return fmt.Errorf("load notifications: %w", err)
		}
		byBatch := make(map[string]models.Notification, len(existing))
		for _, n := range existing {
			byBatch[n.InventoryBatchID] = n
		}

		live := make(map[string]bool, len(batches))
		for _, b := range batches {
			live[b.ID] = true
			name, ok := names[b.ProductID]
			if !ok {
				continue
			}
			days := aggregate.DaysUntil(b.ExpiryDate, now)
			current, seen := byBatch[b.ID]

			if days <= aggregate.ExpiringSoonDays {
				if !seen {
					n := models.Notification{
						ID:               uuid.NewString(),
						InventoryBatchID: b.ID,
						ProductName:      name,
						Quantity:         b.Quantity,
						ExpiryDate:       b.ExpiryDate,
						DaysUntilExpiry:  days,
					}
					if err := tx.Create(&n).Error; err != nil {
						return fmt.Errorf("create notification: %w", err)
					}
				} else if current.DaysUntilExpiry != days {
					if err := tx.Model(&models.Notification{}).Where("id = ?", current.ID).
						Update("days_until_expiry", days).Error; err != nil {
						return fmt.Errorf("update notification: %w", err)
					}
				}
			} else if seen {
				if err := tx.Delete(&models.Notification{}, "id = ?", current.ID).Error; err != nil {
					return fmt.Errorf("delete notification: %w", err)
				}
			}
		}

		// Notifications whose batch no longer exists.
		for _, n := range existing {
			if !live[n.InventoryBatchID] {
				if err := tx.Delete(&models.Notification{}, "id = ?", n.ID).Error; err != nil {
					return fmt.Errorf("delete stale notification: %w", err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.publish()
	return nil
}

func (s *NotificationService) List() ([]models.Notification, error) {
	var notifications []models.Notification
	if err := s.DB.Order("expiry_date asc").Find(&notifications).Error; err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return notifications, nil
}

// MarkRead flags one notification as read. Marking an already-removed
// notification is a no-op.
func (s *NotificationService) MarkRead(id string) error {
	res := s.DB.Model(&models.Notification{}).Where("id = ?", id).Update("read", true)
	if res.Error != nil {
		return fmt.Errorf("mark notification read: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		s.publish()
	}
	return nil
}

// ClearRead deletes every notification already marked read.
func (s *NotificationService) ClearRead() error {
	res := s.DB.Where("read = ?", true).Delete(&models.Notification{})
	if res.Error != nil {
		return fmt.Errorf("clear read notifications: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		s.publish()
	}
	return nil
}
