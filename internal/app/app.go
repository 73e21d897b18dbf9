package app

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"tu-inventario/internal/aggregate"
	"tu-inventario/internal/events"
	"tu-inventario/internal/models"
	"tu-inventario/internal/services"
)

// App bundles the services behind the surface the presentation layer
// consumes: mutations that come back as a result plus Feedback, and pure
// reads computed from a fresh snapshot.
type App struct {
	DB            *gorm.DB
	Bus           *events.Bus
	Inventory     *services.InventoryService
	Products      *services.ProductService
	Notifications *services.NotificationService
}

func New(db *gorm.DB) *App {
	bus := events.NewBus()
	return &App{
		DB:            db,
		Bus:           bus,
		Inventory:     services.NewInventoryService(db, bus),
		Products:      services.NewProductService(db, bus),
		Notifications: services.NewNotificationService(db, bus),
	}
}

func (a *App) AddBatch(in services.AddBatchInput) (services.AddBatchResult, Feedback) {
	res, err := a.Inventory.AddBatch(in)
	if err != nil {
		return res, fail(err)
	}
	return res, ok(fmt.Sprintf("%s x %s añadido a tu inventario.", in.Quantity, res.ProductName))
}

func (a *App) ConsumeBatch(batchID string, quantity decimal.Decimal) (services.ConsumeResult, Feedback) {
	res, err := a.Inventory.ConsumeBatch(batchID, quantity)
	if err != nil {
		return res, fail(err)
	}
	return res, ok(fmt.Sprintf("Has usado %s %s de %s.", res.Consumed, res.Unit, res.ProductName))
}

func (a *App) DeleteBatch(batchID string) (services.DeleteBatchResult, Feedback) {
	res, err := a.Inventory.DeleteBatch(batchID)
	if err != nil {
		return res, fail(err)
	}
	if !res.Deleted {
		return res, ok("El lote ya no existe.")
	}
	name := res.ProductName
	if name == "" {
		name = "producto"
	}
	return res, ok(fmt.Sprintf("El lote de %s ha sido eliminado.", name))
}

func (a *App) UpdateProduct(id, newName string, newUnit models.Unit) Feedback {
	if err := a.Products.UpdateProduct(id, newName, newUnit); err != nil {
		return fail(err)
	}
	return ok("Producto actualizado.")
}

func (a *App) DeleteProduct(id string) Feedback {
	if err := a.Products.DeleteProduct(id); err != nil {
		return fail(err)
	}
	return ok("Producto eliminado.")
}

func (a *App) RefreshNotifications(now time.Time) Feedback {
	if err := a.Notifications.Refresh(now); err != nil {
		return fail(err)
	}
	return ok("Notificaciones actualizadas.")
}

// Views rebuilds the aggregate product views from the current store
// snapshot.
func (a *App) Views() ([]aggregate.ProductView, error) {
	snap, err := a.Inventory.Snapshot()
	if err != nil {
		return nil, err
	}
	return aggregate.BuildProductViews(snap.Products, snap.Batches), nil
}

// Sorted is Views followed by FilterAndSort with the given search term and
// sort configuration.
func (a *App) Sorted(term string, cfg aggregate.SortConfig) ([]aggregate.ProductView, error) {
	views, err := a.Views()
	if err != nil {
		return nil, err
	}
	return aggregate.FilterAndSort(views, term, cfg), nil
}

func (a *App) Report(now time.Time) (aggregate.ReportStats, error) {
	snap, err := a.Inventory.Snapshot()
	if err != nil {
		return aggregate.ReportStats{}, err
	}
	views := aggregate.BuildProductViews(snap.Products, snap.Batches)
	return aggregate.ComputeReportStats(views, snap.Records, now), nil
}

func (a *App) StatusCounts(now time.Time) (aggregate.StatusCounts, error) {
	views, err := a.Views()
	if err != nil {
		return aggregate.StatusCounts{}, err
	}
	return aggregate.CountByStatus(views, now), nil
}
