package reports

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"mobilya-backend/internal/apperr"
	"mobilya-backend/internal/database"
	"mobilya-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedRefs(t *testing.T, db *gorm.DB) ([]models.ProductType, []models.Material) {
	t.Helper()
	types := []models.ProductType{
		{Name: "Modern sandalye", ProductionCoefficient: 1.2},
		{Name: "Klasik masa", ProductionCoefficient: 1.5},
	}
	require.NoError(t, db.Create(&types).Error)
	materials := []models.Material{
		{Name: "Meşe", LossPercentage: 5.0},
		{Name: "Kayın", LossPercentage: 4.5},
	}
	require.NoError(t, db.Create(&materials).Error)
	return types, materials
}

func addProduct(t *testing.T, db *gorm.DB, typeID, materialID uint, price float64, createdAt time.Time) {
	t.Helper()
	p := models.Product{
		Article:         fmt.Sprintf("ART-%d", createdAt.UnixNano()),
		ProductTypeID:   typeID,
		Name:            "Test ürünü",
		MinPartnerPrice: price,
		MainMaterialID:  materialID,
		Param1:          0.5,
		Param2:          0.5,
		CreatedAt:       createdAt,
		UpdatedAt:       createdAt,
	}
	require.NoError(t, db.Create(&p).Error)
}

// Boş depoda sayılar 0, listeler boş döner; sıfıra bölme yoktur.
func TestStatisticsEmptyStore(t *testing.T) {
	agg := NewAggregator(newTestDB(t))

	stats, err := agg.Statistics()
	require.NoError(t, err)

	assert.Zero(t, stats.TotalProducts)
	assert.Zero(t, stats.TotalProductTypes)
	assert.Zero(t, stats.TotalMaterials)
	assert.Zero(t, stats.TotalWorkshops)
	assert.Zero(t, stats.PriceAvg)
	assert.Zero(t, stats.PriceMin)
	assert.Zero(t, stats.PriceMax)
	assert.Empty(t, stats.TypeDistribution)
	assert.Empty(t, stats.MaterialDistribution)
	assert.Empty(t, stats.RecentProducts)
	assert.Empty(t, stats.WorkshopStats)
}

func TestStatisticsCountsAndPrices(t *testing.T) {
	db := newTestDB(t)
	types, materials := seedRefs(t, db)

	now := time.Now()
	addProduct(t, db, types[0].ID, materials[0].ID, 100, now.Add(-4*time.Hour))
	addProduct(t, db, types[0].ID, materials[0].ID, 200, now.Add(-3*time.Hour))
	addProduct(t, db, types[1].ID, materials[0].ID, 300, now.Add(-2*time.Hour))
	addProduct(t, db, types[1].ID, materials[1].ID, 400, now.Add(-1*time.Hour))

	stats, err := NewAggregator(db).Statistics()
	require.NoError(t, err)

	assert.Equal(t, int64(4), stats.TotalProducts)
	assert.Equal(t, int64(2), stats.TotalProductTypes)
	assert.Equal(t, int64(2), stats.TotalMaterials)
	assert.Equal(t, int64(0), stats.TotalWorkshops)

	assert.InDelta(t, 250, stats.PriceAvg, 1e-9)
	assert.InDelta(t, 100, stats.PriceMin, 1e-9)
	assert.InDelta(t, 400, stats.PriceMax, 1e-9)
}

func TestStatisticsDistributions(t *testing.T) {
	db := newTestDB(t)
	types, materials := seedRefs(t, db)

	now := time.Now()
	// Tipler eşit sayıda: eşitlik ekleniş sırasına göre bozulur
	addProduct(t, db, types[0].ID, materials[0].ID, 100, now.Add(-4*time.Hour))
	addProduct(t, db, types[0].ID, materials[0].ID, 200, now.Add(-3*time.Hour))
	addProduct(t, db, types[1].ID, materials[0].ID, 300, now.Add(-2*time.Hour))
	addProduct(t, db, types[1].ID, materials[1].ID, 400, now.Add(-1*time.Hour))

	stats, err := NewAggregator(db).Statistics()
	require.NoError(t, err)

	require.Len(t, stats.TypeDistribution, 2)
	assert.Equal(t, "Modern sandalye", stats.TypeDistribution[0].Name)
	assert.Equal(t, int64(2), stats.TypeDistribution[0].Count)
	assert.Equal(t, "Klasik masa", stats.TypeDistribution[1].Name)

	// Malzemelerde sayılar farklı: çoğunluk önce gelir
	require.Len(t, stats.MaterialDistribution, 2)
	assert.Equal(t, "Meşe", stats.MaterialDistribution[0].Name)
	assert.Equal(t, int64(3), stats.MaterialDistribution[0].Count)
	assert.Equal(t, "Kayın", stats.MaterialDistribution[1].Name)
	assert.Equal(t, int64(1), stats.MaterialDistribution[1].Count)
}

func TestStatisticsRecentProducts(t *testing.T) {
	db := newTestDB(t)
	types, materials := seedRefs(t, db)

	base := time.Now().Add(-24 * time.Hour)
	for i := 0; i < 12; i++ {
		addProduct(t, db, types[0].ID, materials[0].ID, float64(100+i), base.Add(time.Duration(i)*time.Hour))
	}

	stats, err := NewAggregator(db).Statistics()
	require.NoError(t, err)

	// En fazla 10, en yeniden eskiye
	require.Len(t, stats.RecentProducts, 10)
	assert.InDelta(t, 111, stats.RecentProducts[0].Price, 1e-9)
	assert.InDelta(t, 102, stats.RecentProducts[9].Price, 1e-9)
	for i := 1; i < len(stats.RecentProducts); i++ {
		assert.False(t, stats.RecentProducts[i].CreatedAt.After(stats.RecentProducts[i-1].CreatedAt))
	}
}

func TestStatisticsWorkshopProductivity(t *testing.T) {
	db := newTestDB(t)

	workshops := []models.Workshop{
		{Name: "Kesim atölyesi", WorkerCount: 8, ProcessingTime: 2},    // 400
		{Name: "Boya atölyesi", WorkerCount: 7, ProcessingTime: 4},     // 175
		{Name: "Zımpara atölyesi", WorkerCount: 6, ProcessingTime: 3},  // 200
		{Name: "Paketleme atölyesi", WorkerCount: 1, ProcessingTime: 3}, // 33.33
	}
	require.NoError(t, db.Create(&workshops).Error)

	stats, err := NewAggregator(db).Statistics()
	require.NoError(t, err)

	require.Len(t, stats.WorkshopStats, 4)
	assert.Equal(t, "Kesim atölyesi", stats.WorkshopStats[0].Name)
	assert.InDelta(t, 400, stats.WorkshopStats[0].Productivity, 1e-9)
	assert.Equal(t, "Zımpara atölyesi", stats.WorkshopStats[1].Name)
	assert.Equal(t, "Boya atölyesi", stats.WorkshopStats[2].Name)
	assert.Equal(t, "Paketleme atölyesi", stats.WorkshopStats[3].Name)
	assert.InDelta(t, 33.33, stats.WorkshopStats[3].Productivity, 1e-9)
}

func TestExport(t *testing.T) {
	db := newTestDB(t)
	types, materials := seedRefs(t, db)
	addProduct(t, db, types[0].ID, materials[0].ID, 4500, time.Now())

	agg := NewAggregator(db)

	rows, err := agg.Export("products")
	require.NoError(t, err)
	require.Len(t, rows, 2) // başlık + 1 ürün
	assert.Equal(t, "Artikel", rows[0][0])
	assert.Equal(t, "4500.00", rows[1][4])

	rows, err = agg.Export("materials")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Meşe", rows[1][0])

	rows, err = agg.Export("workshops")
	require.NoError(t, err)
	assert.Len(t, rows, 1) // sadece başlık

	_, err = agg.Export("users")
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}
