package models

// ProductType - Ürün tipi (Modern sandalye, Klasik masa vs.)
type ProductType struct {
	ID                    uint    `gorm:"primaryKey"`
	Name                  string  `gorm:"size:50;not null;unique"`
	ProductionCoefficient float64 `gorm:"not null"` // hammadde tüketim katsayısı, > 0
}
