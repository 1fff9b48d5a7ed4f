package calc

import (
	"errors"
	"fmt"
	"math"

	"mobilya-backend/internal/apperr"
	"mobilya-backend/internal/models"

	"gorm.io/gorm"
)

// Calculator - üretim için gereken hammadde miktarını hesaplar.
// Salt okunur: iki lookup dışında veri deposuna dokunmaz.
type Calculator struct {
	db *gorm.DB
}

func NewCalculator(db *gorm.DB) *Calculator {
	return &Calculator{db: db}
}

// Calculation - hesap detayları, rapor/endpoint cevabında kullanılır.
type Calculation struct {
	ProductionCoefficient float64 `json:"production_coefficient"`
	LossPercentage        float64 `json:"loss_percentage"`
	MaterialPerUnit       float64 `json:"material_per_unit"`
	RawBeforeCeiling      float64 `json:"raw_before_ceiling"`
	RawMaterialNeeded     int     `json:"raw_material_needed"`
}

// MaterialNeeded: hammadde = ceil(param1 * param2 * katsayı * adet * (1 + fire/100)).
// Yukarı yuvarlanır; sistem hiçbir zaman eksik hammadde planlamaz.
// Eski -1 sentinel'i yerine açık hata döner.
func (c *Calculator) MaterialNeeded(productTypeID, materialID uint, quantity int, param1, param2 float64) (int, error) {
	calc, err := c.Calculate(productTypeID, materialID, quantity, param1, param2)
	if err != nil {
		return 0, err
	}
	return calc.RawMaterialNeeded, nil
}

func (c *Calculator) Calculate(productTypeID, materialID uint, quantity int, param1, param2 float64) (*Calculation, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: adet pozitif olmalı", apperr.ErrInvalidInput)
	}
	if param1 <= 0 || param2 <= 0 {
		return nil, fmt.Errorf("%w: param1 ve param2 pozitif olmalı", apperr.ErrInvalidInput)
	}

	var pt models.ProductType
	if err := c.db.First(&pt, "id = ?", productTypeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: ürün tipi %d", apperr.ErrNotFound, productTypeID)
		}
		return nil, fmt.Errorf("%w: ürün tipi okuma: %v", apperr.ErrStorage, err)
	}

	var m models.Material
	if err := c.db.First(&m, "id = ?", materialID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: malzeme %d", apperr.ErrNotFound, materialID)
		}
		return nil, fmt.Errorf("%w: malzeme okuma: %v", apperr.ErrStorage, err)
	}

	perUnit := param1 * param2 * pt.ProductionCoefficient
	raw := perUnit * float64(quantity) * (1 + m.LossPercentage/100)

	return &Calculation{
		ProductionCoefficient: pt.ProductionCoefficient,
		LossPercentage:        m.LossPercentage,
		MaterialPerUnit:       perUnit,
		RawBeforeCeiling:      raw,
		RawMaterialNeeded:     int(math.Ceil(raw)),
	}, nil
}
