package models

// Material - Ana hammadde (Meşe, Kayın, MDF vs.)
type Material struct {
	ID             uint    `gorm:"primaryKey"`
	Name           string  `gorm:"size:100;not null;unique"`
	LossPercentage float64 `gorm:"not null"` // işleme sırasındaki fire oranı, [0,100]
}
