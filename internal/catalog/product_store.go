package catalog

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"mobilya-backend/internal/apperr"
	"mobilya-backend/internal/models"

	"gorm.io/gorm"
)

type ProductInput struct {
	Article         string
	ProductTypeID   uint
	Name            string
	MinPartnerPrice float64
	MainMaterialID  uint
	Param1          float64
	Param2          float64
}

// ProductUpdate - kısmi güncelleme. nil alanlar dokunulmadan bırakılır.
type ProductUpdate struct {
	Article         *string
	ProductTypeID   *uint
	Name            *string
	MinPartnerPrice *float64
	MainMaterialID  *uint
	Param1          *float64
	Param2          *float64
}

func (u ProductUpdate) empty() bool {
	return u.Article == nil && u.ProductTypeID == nil && u.Name == nil &&
		u.MinPartnerPrice == nil && u.MainMaterialID == nil &&
		u.Param1 == nil && u.Param2 == nil
}

// Fiyat 2 ondalık basamakta tutulur
func roundPrice(v float64) float64 {
	return math.Round(v*100) / 100
}

func (s *Store) validateProductInput(in *ProductInput) error {
	in.Article = strings.TrimSpace(in.Article)
	in.Name = strings.TrimSpace(in.Name)

	if len([]rune(in.Article)) > 50 {
		return fmt.Errorf("%w: artikel en fazla 50 karakter olmalı", apperr.ErrInvalidInput)
	}
	if in.Name == "" || len([]rune(in.Name)) > 200 {
		return fmt.Errorf("%w: ürün adı zorunlu ve en fazla 200 karakter olmalı", apperr.ErrInvalidInput)
	}
	if in.MinPartnerPrice < 0 {
		return fmt.Errorf("%w: minimum partner fiyatı negatif olamaz", apperr.ErrInvalidInput)
	}
	if in.Param1 <= 0 || in.Param2 <= 0 {
		return fmt.Errorf("%w: param1 ve param2 pozitif olmalı", apperr.ErrInvalidInput)
	}

	// Referanslar mevcut olmalı
	if _, err := s.GetProductType(in.ProductTypeID); err != nil {
		return err
	}
	if _, err := s.GetMaterial(in.MainMaterialID); err != nil {
		return err
	}
	return nil
}

func (s *Store) CreateProduct(in ProductInput) (*models.Product, error) {
	if err := s.validateProductInput(&in); err != nil {
		return nil, err
	}

	p := models.Product{
		Article:         in.Article,
		ProductTypeID:   in.ProductTypeID,
		Name:            in.Name,
		MinPartnerPrice: roundPrice(in.MinPartnerPrice),
		MainMaterialID:  in.MainMaterialID,
		Param1:          in.Param1,
		Param2:          in.Param2,
	}
	if err := s.db.Create(&p).Error; err != nil {
		return nil, storageErr("ürün oluşturma", err)
	}
	return &p, nil
}

func (s *Store) GetProduct(id uint) (*models.Product, error) {
	var p models.Product
	err := s.db.Preload("ProductType").Preload("MainMaterial").First(&p, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: ürün %d", apperr.ErrNotFound, id)
		}
		return nil, storageErr("ürün okuma", err)
	}
	return &p, nil
}

func (s *Store) ListProducts(order string) ([]models.Product, error) {
	clause, err := orderClause(productOrders, order)
	if err != nil {
		return nil, err
	}
	var products []models.Product
	err = s.db.Preload("ProductType").Preload("MainMaterial").Order(clause).Find(&products).Error
	if err != nil {
		return nil, storageErr("ürün listeleme", err)
	}
	return products, nil
}

// UpdateProduct: yalnızca gönderilen alanları değiştirir. updated_at burada,
// uygulama kodunda yenilenir; şema trigger'ı yok.
func (s *Store) UpdateProduct(id uint, upd ProductUpdate) (*models.Product, error) {
	if upd.empty() {
		return nil, fmt.Errorf("%w: güncellenecek alan yok", apperr.ErrInvalidInput)
	}

	// İlişkiler preload edilmeden okunur; Save sırasında eski ilişki
	// struct'ının foreign key'i ezmesine izin verilmez.
	var p models.Product
	if err := s.db.First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: ürün %d", apperr.ErrNotFound, id)
		}
		return nil, storageErr("ürün okuma", err)
	}

	if upd.Article != nil {
		article := strings.TrimSpace(*upd.Article)
		if len([]rune(article)) > 50 {
			return nil, fmt.Errorf("%w: artikel en fazla 50 karakter olmalı", apperr.ErrInvalidInput)
		}
		p.Article = article
	}
	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" || len([]rune(name)) > 200 {
			return nil, fmt.Errorf("%w: ürün adı zorunlu ve en fazla 200 karakter olmalı", apperr.ErrInvalidInput)
		}
		p.Name = name
	}
	if upd.ProductTypeID != nil {
		if _, err := s.GetProductType(*upd.ProductTypeID); err != nil {
			return nil, err
		}
		p.ProductTypeID = *upd.ProductTypeID
	}
	if upd.MainMaterialID != nil {
		if _, err := s.GetMaterial(*upd.MainMaterialID); err != nil {
			return nil, err
		}
		p.MainMaterialID = *upd.MainMaterialID
	}
	if upd.MinPartnerPrice != nil {
		if *upd.MinPartnerPrice < 0 {
			return nil, fmt.Errorf("%w: minimum partner fiyatı negatif olamaz", apperr.ErrInvalidInput)
		}
		p.MinPartnerPrice = roundPrice(*upd.MinPartnerPrice)
	}
	if upd.Param1 != nil {
		if *upd.Param1 <= 0 {
			return nil, fmt.Errorf("%w: param1 pozitif olmalı", apperr.ErrInvalidInput)
		}
		p.Param1 = *upd.Param1
	}
	if upd.Param2 != nil {
		if *upd.Param2 <= 0 {
			return nil, fmt.Errorf("%w: param2 pozitif olmalı", apperr.ErrInvalidInput)
		}
		p.Param2 = *upd.Param2
	}

	p.UpdatedAt = time.Now()
	if err := s.db.Save(&p).Error; err != nil {
		return nil, storageErr("ürün güncelleme", err)
	}

	// İlişkileri tazele
	return s.GetProduct(id)
}

// DeleteProduct: ürünü ve üretim planı satırlarını tek transaction içinde siler.
func (s *Store) DeleteProduct(id uint) error {
	var p models.Product
	if err := s.db.First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: ürün %d", apperr.ErrNotFound, id)
		}
		return storageErr("ürün okuma", err)
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return storageErr("transaction başlatma", tx.Error)
	}

	if err := tx.Where("product_id = ?", id).Delete(&models.ProductionSchedule{}).Error; err != nil {
		tx.Rollback()
		return storageErr("üretim planı silme", err)
	}
	if err := tx.Delete(&models.Product{}, "id = ?", id).Error; err != nil {
		tx.Rollback()
		return storageErr("ürün silme", err)
	}
	if err := tx.Commit().Error; err != nil {
		return storageErr("transaction commit", err)
	}
	return nil
}

// DeleteProductsBatch: verilen id'leri tek transaction içinde siler ve gerçekten
// silinen ürün sayısını döner. Var olmayan id'ler hata değildir, sadece sayıma
// girmez.
func (s *Store) DeleteProductsBatch(ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, fmt.Errorf("%w: silinecek id listesi boş", apperr.ErrInvalidInput)
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return 0, storageErr("transaction başlatma", tx.Error)
	}

	if err := tx.Where("product_id IN ?", ids).Delete(&models.ProductionSchedule{}).Error; err != nil {
		tx.Rollback()
		return 0, storageErr("üretim planı toplu silme", err)
	}

	res := tx.Where("id IN ?", ids).Delete(&models.Product{})
	if res.Error != nil {
		tx.Rollback()
		return 0, storageErr("ürün toplu silme", res.Error)
	}
	deleted := res.RowsAffected

	if err := tx.Commit().Error; err != nil {
		return 0, storageErr("transaction commit", err)
	}
	return deleted, nil
}
