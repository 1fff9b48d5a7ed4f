package models

import "time"

type Product struct {
	ID              uint   `gorm:"primaryKey"`
	Article         string `gorm:"size:50;not null"` // artikel kodu, unique değil
	ProductTypeID   uint   `gorm:"index;not null"`
	ProductType     ProductType
	Name            string  `gorm:"size:200;not null"`
	MinPartnerPrice float64 `gorm:"not null"` // minimum partner fiyatı, 2 ondalık basamak
	MainMaterialID  uint    `gorm:"index;not null"`
	MainMaterial    Material
	Param1          float64 `gorm:"not null"` // fiziksel boyut/miktar, > 0
	Param2          float64 `gorm:"not null"` // fiziksel boyut/miktar, > 0
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
