package app

import (
	"github.com/stockpilehq/stockpile/internal/domain"
	"go.uber.org/zap"
)

// checkProducts seeds a small demo catalog on first boot. Existing
// names are left untouched.
func (a *Application) checkProducts() {
	defaultProducts := []domain.Product{
		{Name: "demo-widget-basic", Unit: "pcs", Category: "widgets", Brand: "Acme", Stock: 100},
		{Name: "demo-widget-pro", Unit: "pcs", Category: "widgets", Brand: "Acme", Stock: 50},
		{Name: "demo-cable-usb", Unit: "pcs", Category: "cables", Brand: "Generic", Stock: 0},
		{Name: "demo-paint-white", Unit: "ltr", Category: "paint", Brand: "Coats", Stock: 12},
	}

	for _, p := range defaultProducts {
		var count int64
		a.gormDB.Model(&domain.Product{}).Where("name = ?", p.Name).Count(&count)
		if count == 0 {
			p.Status = domain.StatusForStock(p.Stock)
			if err := a.gormDB.Create(&p).Error; err != nil {
				zap.L().Error("failed to create default product", zap.String("name", p.Name), zap.Error(err))
			} else {
				zap.L().Info("initialized default product", zap.String("name", p.Name))
			}
		}
	}
}
