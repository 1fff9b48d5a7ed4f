package database

import (
	"fmt"
	"log"

	"mobilya-backend/internal/config"
	"mobilya-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open: Postgres bağlantısını açar ve migration'ı çalıştırır.
// Global singleton yok; handle çağırana döner, her bileşen kendi
// referansını constructor'dan alır.
func Open(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("veritabanına bağlanılamadı: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Veritabanı bağlantısı başarılı. Migration tamamlandı.")
	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.ProductType{},
		&models.Material{},
		&models.Workshop{},
		&models.Product{},
		&models.ProductionSchedule{},
	)
	if err != nil {
		return fmt.Errorf("AutoMigrate hatası: %w", err)
	}
	return nil
}

// Seed: referans verilerini boş tablolara yükler. Dolu tablolara dokunmaz,
// tekrar çalıştırmak güvenlidir.
func Seed(db *gorm.DB) error {
	var typeCount int64
	db.Model(&models.ProductType{}).Count(&typeCount)
	if typeCount == 0 {
		types := []models.ProductType{
			{Name: "Modern sandalye", ProductionCoefficient: 1.2},
			{Name: "Klasik masa", ProductionCoefficient: 1.5},
			{Name: "Modern dolap", ProductionCoefficient: 1.8},
			{Name: "Klasik koltuk", ProductionCoefficient: 1.3},
		}
		if err := db.Create(&types).Error; err != nil {
			return fmt.Errorf("ürün tipleri yüklenemedi: %w", err)
		}
	}

	var materialCount int64
	db.Model(&models.Material{}).Count(&materialCount)
	if materialCount == 0 {
		materials := []models.Material{
			{Name: "Meşe", LossPercentage: 5.0},
			{Name: "Kayın", LossPercentage: 4.5},
			{Name: "Çam", LossPercentage: 6.0},
			{Name: "MDF", LossPercentage: 3.0},
			{Name: "Dişbudak masif", LossPercentage: 4.0},
		}
		if err := db.Create(&materials).Error; err != nil {
			return fmt.Errorf("malzemeler yüklenemedi: %w", err)
		}
	}

	var workshopCount int64
	db.Model(&models.Workshop{}).Count(&workshopCount)
	if workshopCount == 0 {
		workshops := []models.Workshop{
			{Name: "Kesim atölyesi", WorkerCount: 8, ProcessingTime: 2},
			{Name: "Zımpara atölyesi", WorkerCount: 6, ProcessingTime: 3},
			{Name: "Montaj atölyesi", WorkerCount: 10, ProcessingTime: 5},
			{Name: "Boya atölyesi", WorkerCount: 7, ProcessingTime: 4},
			{Name: "Paketleme atölyesi", WorkerCount: 4, ProcessingTime: 1},
		}
		if err := db.Create(&workshops).Error; err != nil {
			return fmt.Errorf("atölyeler yüklenemedi: %w", err)
		}
	}

	var productCount int64
	db.Model(&models.Product{}).Count(&productCount)
	if productCount == 0 {
		product := models.Product{
			Article:         "CHAIR-001",
			ProductTypeID:   1,
			Name:            "Modern sandalye \"Eko\"",
			MinPartnerPrice: 4500.00,
			MainMaterialID:  1,
			Param1:          0.5,
			Param2:          0.5,
		}
		if err := db.Create(&product).Error; err != nil {
			return fmt.Errorf("örnek ürün yüklenemedi: %w", err)
		}

		entries := []models.ProductionSchedule{
			{ProductID: product.ID, WorkshopID: 1, ProcessingOrder: 1},
			{ProductID: product.ID, WorkshopID: 2, ProcessingOrder: 2},
			{ProductID: product.ID, WorkshopID: 3, ProcessingOrder: 3},
		}
		if err := db.Create(&entries).Error; err != nil {
			return fmt.Errorf("örnek üretim planı yüklenemedi: %w", err)
		}
	}

	return nil
}
