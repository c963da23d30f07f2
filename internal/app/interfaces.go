package app

import (
	"github.com/robfig/cron/v3"
	"github.com/stockpilehq/stockpile/config"
	"github.com/stockpilehq/stockpile/internal/inventory"
	"gorm.io/gorm"
)

// DBProvider provides database access
type DBProvider interface {
	DB() *gorm.DB
}

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// SchedulerProvider provides task scheduling capability
type SchedulerProvider interface {
	Scheduler() *cron.Cron
}

// InventoryProvider provides the catalog service and the bulk
// import/export engine built over it
type InventoryProvider interface {
	Inventory() *inventory.Service
	Port() *inventory.Port
}

// AppContext combines all provider interfaces for full application context
// Handlers should depend on specific providers or this combined interface
type AppContext interface {
	DBProvider
	ConfigProvider
	SchedulerProvider
	InventoryProvider

	// Application lifecycle methods
	MigrateDB(track bool) error
	InitDb()
	DropAll()
}

// Ensure Application implements all interfaces
var (
	_ DBProvider        = (*Application)(nil)
	_ ConfigProvider    = (*Application)(nil)
	_ SchedulerProvider = (*Application)(nil)
	_ InventoryProvider = (*Application)(nil)
	_ AppContext        = (*Application)(nil)
)
