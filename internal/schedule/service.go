package schedule

import (
	"errors"
	"fmt"

	"mobilya-backend/internal/apperr"
	"mobilya-backend/internal/models"

	"gorm.io/gorm"
)

// Service - ürünlerin atölyelere sıralı atanması ve toplam işleme süresi.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) productExists(tx *gorm.DB, productID uint) error {
	var p models.Product
	if err := tx.Select("id").First(&p, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: ürün %d", apperr.ErrNotFound, productID)
		}
		return fmt.Errorf("%w: ürün okuma: %v", apperr.ErrStorage, err)
	}
	return nil
}

// Assign: atölyeyi ürünün üretim planına verilen sıra numarasıyla ekler.
// Aynı üründe sıra numarası tekrar kullanılamaz; kontrol ve ekleme tek
// transaction içinde yapılır.
func (s *Service) Assign(productID, workshopID uint, order int) (*models.ProductionSchedule, error) {
	if order <= 0 {
		return nil, fmt.Errorf("%w: sıra numarası pozitif olmalı", apperr.ErrInvalidInput)
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("%w: transaction başlatma: %v", apperr.ErrStorage, tx.Error)
	}

	if err := s.productExists(tx, productID); err != nil {
		tx.Rollback()
		return nil, err
	}

	var w models.Workshop
	if err := tx.Select("id").First(&w, "id = ?", workshopID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: atölye %d", apperr.ErrNotFound, workshopID)
		}
		return nil, fmt.Errorf("%w: atölye okuma: %v", apperr.ErrStorage, err)
	}

	var taken int64
	err := tx.Model(&models.ProductionSchedule{}).
		Where("product_id = ? AND processing_order = ?", productID, order).
		Count(&taken).Error
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("%w: sıra kontrolü: %v", apperr.ErrStorage, err)
	}
	if taken > 0 {
		tx.Rollback()
		return nil, fmt.Errorf("%w: ürün %d için %d numaralı sıra dolu", apperr.ErrConstraint, productID, order)
	}

	entry := models.ProductionSchedule{
		ProductID:       productID,
		WorkshopID:      workshopID,
		ProcessingOrder: order,
	}
	if err := tx.Create(&entry).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("%w: plan satırı oluşturma: %v", apperr.ErrStorage, err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("%w: transaction commit: %v", apperr.ErrStorage, err)
	}
	return &entry, nil
}

// SequenceFor: ürünün plan satırlarını sıra numarasına göre artan döner.
// Sıra numarası ürün başına unique olduğundan eşitlik mümkün değildir.
func (s *Service) SequenceFor(productID uint) ([]models.ProductionSchedule, error) {
	if err := s.productExists(s.db, productID); err != nil {
		return nil, err
	}

	var entries []models.ProductionSchedule
	err := s.db.Preload("Workshop").
		Where("product_id = ?", productID).
		Order("processing_order ASC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("%w: plan okuma: %v", apperr.ErrStorage, err)
	}
	return entries, nil
}

// TotalProcessingTime: plandaki tüm atölyelerin işleme sürelerinin toplamı.
// Atölye atanmamışsa sonuç 0'dır, hata değildir.
func (s *Service) TotalProcessingTime(productID uint) (int, error) {
	if err := s.productExists(s.db, productID); err != nil {
		return 0, err
	}

	var total int
	err := s.db.Raw(`
		SELECT COALESCE(SUM(w.processing_time), 0)
		FROM production_schedules ps
		JOIN workshops w ON w.id = ps.workshop_id
		WHERE ps.product_id = ?
	`, productID).Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("%w: toplam süre sorgusu: %v", apperr.ErrStorage, err)
	}
	return total, nil
}
