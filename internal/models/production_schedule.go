package models

// ProductionSchedule - Ürünün atölyelerden geçiş sırası.
// Bir üründe aynı sıra numarası en fazla bir kez kullanılabilir.
type ProductionSchedule struct {
	ID              uint `gorm:"primaryKey"`
	ProductID       uint `gorm:"index;not null;uniqueIndex:idx_product_order"`
	Product         Product
	WorkshopID      uint `gorm:"index;not null"`
	Workshop        Workshop
	ProcessingOrder int `gorm:"not null;uniqueIndex:idx_product_order"` // > 0
}
