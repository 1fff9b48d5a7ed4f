package catalog

import (
	"errors"
	"fmt"
	"strings"

	"mobilya-backend/internal/apperr"
	"mobilya-backend/internal/models"

	"gorm.io/gorm"
)

// Store - katalog varlıkları (ürün tipi, malzeme, atölye, ürün) için CRUD katmanı.
// Bütünlük kuralları burada, uygulama kodunda uygulanır; şema trigger'larına
// bırakılmaz.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Sıralama anahtarları whitelist'ten geçer, SQL'e ham string girmez.
var (
	refOrders = map[string]string{
		"":     "id ASC",
		"id":   "id ASC",
		"name": "name ASC",
	}
	productOrders = map[string]string{
		"":           "id ASC",
		"id":         "id ASC",
		"name":       "name ASC",
		"created_at": "created_at DESC",
	}
)

func orderClause(allowed map[string]string, key string) (string, error) {
	clause, ok := allowed[strings.TrimSpace(key)]
	if !ok {
		return "", fmt.Errorf("%w: geçersiz sıralama anahtarı: %q", apperr.ErrInvalidInput, key)
	}
	return clause, nil
}

func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", apperr.ErrStorage, op, err)
}

// -------------------------
// Ürün tipleri
// -------------------------

func (s *Store) CreateProductType(name string, coefficient float64) (*models.ProductType, error) {
	name = strings.TrimSpace(name)
	if name == "" || len([]rune(name)) > 50 {
		return nil, fmt.Errorf("%w: tip adı zorunlu ve en fazla 50 karakter olmalı", apperr.ErrInvalidInput)
	}
	if coefficient <= 0 {
		return nil, fmt.Errorf("%w: üretim katsayısı pozitif olmalı", apperr.ErrInvalidInput)
	}

	var existing models.ProductType
	if err := s.db.Where("name = ?", name).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("%w: bu tip adı zaten kullanılıyor", apperr.ErrConstraint)
	}

	pt := models.ProductType{Name: name, ProductionCoefficient: coefficient}
	if err := s.db.Create(&pt).Error; err != nil {
		return nil, storageErr("ürün tipi oluşturma", err)
	}
	return &pt, nil
}

func (s *Store) GetProductType(id uint) (*models.ProductType, error) {
	var pt models.ProductType
	if err := s.db.First(&pt, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: ürün tipi %d", apperr.ErrNotFound, id)
		}
		return nil, storageErr("ürün tipi okuma", err)
	}
	return &pt, nil
}

func (s *Store) ListProductTypes(order string) ([]models.ProductType, error) {
	clause, err := orderClause(refOrders, order)
	if err != nil {
		return nil, err
	}
	var types []models.ProductType
	if err := s.db.Order(clause).Find(&types).Error; err != nil {
		return nil, storageErr("ürün tipi listeleme", err)
	}
	return types, nil
}

func (s *Store) DeleteProductType(id uint) error {
	if _, err := s.GetProductType(id); err != nil {
		return err
	}

	// Referans bütünlüğü: tipe bağlı ürün varsa silinemez
	var inUse int64
	if err := s.db.Model(&models.Product{}).Where("product_type_id = ?", id).Count(&inUse).Error; err != nil {
		return storageErr("ürün tipi referans kontrolü", err)
	}
	if inUse > 0 {
		return fmt.Errorf("%w: tip %d ürünler tarafından kullanılıyor", apperr.ErrConstraint, id)
	}

	if err := s.db.Delete(&models.ProductType{}, "id = ?", id).Error; err != nil {
		return storageErr("ürün tipi silme", err)
	}
	return nil
}

// -------------------------
// Malzemeler
// -------------------------

func (s *Store) CreateMaterial(name string, lossPercentage float64) (*models.Material, error) {
	name = strings.TrimSpace(name)
	if name == "" || len([]rune(name)) > 100 {
		return nil, fmt.Errorf("%w: malzeme adı zorunlu ve en fazla 100 karakter olmalı", apperr.ErrInvalidInput)
	}
	if lossPercentage < 0 || lossPercentage > 100 {
		return nil, fmt.Errorf("%w: fire oranı 0-100 aralığında olmalı", apperr.ErrInvalidInput)
	}

	var existing models.Material
	if err := s.db.Where("name = ?", name).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("%w: bu malzeme adı zaten kullanılıyor", apperr.ErrConstraint)
	}

	m := models.Material{Name: name, LossPercentage: lossPercentage}
	if err := s.db.Create(&m).Error; err != nil {
		return nil, storageErr("malzeme oluşturma", err)
	}
	return &m, nil
}

func (s *Store) GetMaterial(id uint) (*models.Material, error) {
	var m models.Material
	if err := s.db.First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: malzeme %d", apperr.ErrNotFound, id)
		}
		return nil, storageErr("malzeme okuma", err)
	}
	return &m, nil
}

func (s *Store) ListMaterials(order string) ([]models.Material, error) {
	clause, err := orderClause(refOrders, order)
	if err != nil {
		return nil, err
	}
	var materials []models.Material
	if err := s.db.Order(clause).Find(&materials).Error; err != nil {
		return nil, storageErr("malzeme listeleme", err)
	}
	return materials, nil
}

func (s *Store) DeleteMaterial(id uint) error {
	if _, err := s.GetMaterial(id); err != nil {
		return err
	}

	var inUse int64
	if err := s.db.Model(&models.Product{}).Where("main_material_id = ?", id).Count(&inUse).Error; err != nil {
		return storageErr("malzeme referans kontrolü", err)
	}
	if inUse > 0 {
		return fmt.Errorf("%w: malzeme %d ürünler tarafından kullanılıyor", apperr.ErrConstraint, id)
	}

	if err := s.db.Delete(&models.Material{}, "id = ?", id).Error; err != nil {
		return storageErr("malzeme silme", err)
	}
	return nil
}

// -------------------------
// Atölyeler
// -------------------------

func (s *Store) CreateWorkshop(name string, workerCount, processingTime int) (*models.Workshop, error) {
	name = strings.TrimSpace(name)
	if name == "" || len([]rune(name)) > 100 {
		return nil, fmt.Errorf("%w: atölye adı zorunlu ve en fazla 100 karakter olmalı", apperr.ErrInvalidInput)
	}
	if workerCount <= 0 {
		return nil, fmt.Errorf("%w: çalışan sayısı pozitif olmalı", apperr.ErrInvalidInput)
	}
	if processingTime <= 0 {
		return nil, fmt.Errorf("%w: işleme süresi pozitif olmalı", apperr.ErrInvalidInput)
	}

	var existing models.Workshop
	if err := s.db.Where("name = ?", name).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("%w: bu atölye adı zaten kullanılıyor", apperr.ErrConstraint)
	}

	w := models.Workshop{Name: name, WorkerCount: workerCount, ProcessingTime: processingTime}
	if err := s.db.Create(&w).Error; err != nil {
		return nil, storageErr("atölye oluşturma", err)
	}
	return &w, nil
}

func (s *Store) GetWorkshop(id uint) (*models.Workshop, error) {
	var w models.Workshop
	if err := s.db.First(&w, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: atölye %d", apperr.ErrNotFound, id)
		}
		return nil, storageErr("atölye okuma", err)
	}
	return &w, nil
}

func (s *Store) ListWorkshops(order string) ([]models.Workshop, error) {
	clause, err := orderClause(refOrders, order)
	if err != nil {
		return nil, err
	}
	var workshops []models.Workshop
	if err := s.db.Order(clause).Find(&workshops).Error; err != nil {
		return nil, storageErr("atölye listeleme", err)
	}
	return workshops, nil
}

func (s *Store) DeleteWorkshop(id uint) error {
	if _, err := s.GetWorkshop(id); err != nil {
		return err
	}

	var inUse int64
	if err := s.db.Model(&models.ProductionSchedule{}).Where("workshop_id = ?", id).Count(&inUse).Error; err != nil {
		return storageErr("atölye referans kontrolü", err)
	}
	if inUse > 0 {
		return fmt.Errorf("%w: atölye %d üretim planında kullanılıyor", apperr.ErrConstraint, id)
	}

	if err := s.db.Delete(&models.Workshop{}, "id = ?", id).Error; err != nil {
		return storageErr("atölye silme", err)
	}
	return nil
}
