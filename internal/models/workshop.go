package models

// Workshop - Üretim atölyesi
type Workshop struct {
	ID             uint   `gorm:"primaryKey"`
	Name           string `gorm:"size:100;not null;unique"`
	WorkerCount    int    `gorm:"not null"` // > 0
	ProcessingTime int    `gorm:"not null"` // saat cinsinden, > 0
}
