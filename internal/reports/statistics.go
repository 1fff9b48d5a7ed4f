package reports

import (
	"fmt"
	"math"
	"sort"
	"time"

	"mobilya-backend/internal/apperr"
	"mobilya-backend/internal/models"

	"gorm.io/gorm"
)

// Aggregator - raporlama istatistikleri. Her çağrıda yeniden hesaplanır,
// cache yok; maliyet satır sayısıyla doğrusal.
type Aggregator struct {
	db *gorm.DB
}

func NewAggregator(db *gorm.DB) *Aggregator {
	return &Aggregator{db: db}
}

type DistributionItem struct {
	Name  string `json:"name" gorm:"column:name"`
	Count int64  `json:"count" gorm:"column:count"`
}

type RecentProduct struct {
	Article   string    `json:"article"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"created_at"`
}

type WorkshopStat struct {
	Name           string  `json:"name"`
	WorkerCount    int     `json:"worker_count"`
	ProcessingTime int     `json:"processing_time"`
	Productivity   float64 `json:"productivity"`
}

type Statistics struct {
	TotalProducts        int64              `json:"total_products"`
	TotalProductTypes    int64              `json:"total_types"`
	TotalMaterials       int64              `json:"total_materials"`
	TotalWorkshops       int64              `json:"total_workshops"`
	PriceAvg             float64            `json:"price_avg"`
	PriceMin             float64            `json:"price_min"`
	PriceMax             float64            `json:"price_max"`
	TypeDistribution     []DistributionItem `json:"type_distribution"`
	MaterialDistribution []DistributionItem `json:"material_distribution"`
	RecentProducts       []RecentProduct    `json:"recent_products"`
	WorkshopStats        []WorkshopStat     `json:"workshop_stats"`
}

func (a *Aggregator) Statistics() (*Statistics, error) {
	stats := &Statistics{
		TypeDistribution:     []DistributionItem{},
		MaterialDistribution: []DistributionItem{},
		RecentProducts:       []RecentProduct{},
		WorkshopStats:        []WorkshopStat{},
	}

	counts := []struct {
		model any
		dst   *int64
	}{
		{&models.Product{}, &stats.TotalProducts},
		{&models.ProductType{}, &stats.TotalProductTypes},
		{&models.Material{}, &stats.TotalMaterials},
		{&models.Workshop{}, &stats.TotalWorkshops},
	}
	for _, c := range counts {
		if err := a.db.Model(c.model).Count(c.dst).Error; err != nil {
			return nil, fmt.Errorf("%w: sayım sorgusu: %v", apperr.ErrStorage, err)
		}
	}

	// Boş tabloda AVG/MIN/MAX NULL döner, COALESCE ile 0'a çekilir
	type priceRow struct {
		Avg float64 `gorm:"column:avg"`
		Min float64 `gorm:"column:min"`
		Max float64 `gorm:"column:max"`
	}
	var prices priceRow
	err := a.db.Raw(`
		SELECT COALESCE(AVG(min_partner_price), 0) AS avg,
		       COALESCE(MIN(min_partner_price), 0) AS min,
		       COALESCE(MAX(min_partner_price), 0) AS max
		FROM products
	`).Scan(&prices).Error
	if err != nil {
		return nil, fmt.Errorf("%w: fiyat istatistiği: %v", apperr.ErrStorage, err)
	}
	stats.PriceAvg = prices.Avg
	stats.PriceMin = prices.Min
	stats.PriceMax = prices.Max

	// Dağılımlarda eşitlik, referans kaydın ekleniş sırasına (id) göre bozulur
	err = a.db.Raw(`
		SELECT pt.name AS name, COUNT(p.id) AS count
		FROM products p
		JOIN product_types pt ON pt.id = p.product_type_id
		GROUP BY pt.id, pt.name
		ORDER BY count DESC, pt.id ASC
	`).Scan(&stats.TypeDistribution).Error
	if err != nil {
		return nil, fmt.Errorf("%w: tip dağılımı: %v", apperr.ErrStorage, err)
	}

	err = a.db.Raw(`
		SELECT m.name AS name, COUNT(p.id) AS count
		FROM products p
		JOIN materials m ON m.id = p.main_material_id
		GROUP BY m.id, m.name
		ORDER BY count DESC, m.id ASC
	`).Scan(&stats.MaterialDistribution).Error
	if err != nil {
		return nil, fmt.Errorf("%w: malzeme dağılımı: %v", apperr.ErrStorage, err)
	}

	var recent []models.Product
	err = a.db.Order("created_at DESC, id DESC").Limit(10).Find(&recent).Error
	if err != nil {
		return nil, fmt.Errorf("%w: son ürünler: %v", apperr.ErrStorage, err)
	}
	for _, p := range recent {
		stats.RecentProducts = append(stats.RecentProducts, RecentProduct{
			Article:   p.Article,
			Name:      p.Name,
			Price:     p.MinPartnerPrice,
			CreatedAt: p.CreatedAt,
		})
	}

	var workshops []models.Workshop
	if err := a.db.Order("id ASC").Find(&workshops).Error; err != nil {
		return nil, fmt.Errorf("%w: atölye listesi: %v", apperr.ErrStorage, err)
	}
	for _, w := range workshops {
		// processing_time > 0 model kısıtıyla garanti, sıfıra bölme yok
		productivity := math.Round(float64(w.WorkerCount)*100/float64(w.ProcessingTime)*100) / 100
		stats.WorkshopStats = append(stats.WorkshopStats, WorkshopStat{
			Name:           w.Name,
			WorkerCount:    w.WorkerCount,
			ProcessingTime: w.ProcessingTime,
			Productivity:   productivity,
		})
	}
	sort.SliceStable(stats.WorkshopStats, func(i, j int) bool {
		return stats.WorkshopStats[i].Productivity > stats.WorkshopStats[j].Productivity
	})

	return stats, nil
}
