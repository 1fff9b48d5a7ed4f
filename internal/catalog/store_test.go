package catalog

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

// Ürün oluşturmak için gereken referans kayıtları
func seedRefs(t *testing.T, store *Store) (*models.ProductType, *models.Material) {
	t.Helper()
	pt, err := store.CreateProductType("Modern sandalye", 1.2)
	require.NoError(t, err)
	m, err := store.CreateMaterial("Meşe", 5.0)
	require.NoError(t, err)
	return pt, m
}

func validProductInput(pt *models.ProductType, m *models.Material) ProductInput {
	return ProductInput{
		Article:         "CHAIR-001",
		ProductTypeID:   pt.ID,
		Name:            "Modern sandalye \"Eko\"",
		MinPartnerPrice: 4500.00,
		MainMaterialID:  m.ID,
		Param1:          0.5,
		Param2:          0.5,
	}
}

func TestCreateProductTypeValidation(t *testing.T) {
	store := NewStore(newTestDB(t))

	_, err := store.CreateProductType("", 1.2)
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	_, err = store.CreateProductType("Klasik masa", 0)
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	_, err = store.CreateProductType(strings.Repeat("a", 51), 1.2)
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	_, err = store.CreateProductType("Klasik masa", 1.5)
	require.NoError(t, err)

	_, err = store.CreateProductType("Klasik masa", 1.5)
	assert.ErrorIs(t, err, apperr.ErrConstraint)
}

func TestCreateMaterialValidation(t *testing.T) {
	store := NewStore(newTestDB(t))

	_, err := store.CreateMaterial("Kayın", -0.1)
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	_, err = store.CreateMaterial("Kayın", 100.1)
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	m, err := store.CreateMaterial("Kayın", 0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, m.LossPercentage)

	_, err = store.CreateMaterial("Kayın", 4.5)
	assert.ErrorIs(t, err, apperr.ErrConstraint)
}

func TestCreateWorkshopValidation(t *testing.T) {
	store := NewStore(newTestDB(t))

	_, err := store.CreateWorkshop("Kesim atölyesi", 0, 2)
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	_, err = store.CreateWorkshop("Kesim atölyesi", 8, 0)
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	w, err := store.CreateWorkshop("Kesim atölyesi", 8, 2)
	require.NoError(t, err)
	assert.NotZero(t, w.ID)

	_, err = store.CreateWorkshop("Kesim atölyesi", 4, 1)
	assert.ErrorIs(t, err, apperr.ErrConstraint)
}

func TestCreateProduct(t *testing.T) {
	store := NewStore(newTestDB(t))
	pt, m := seedRefs(t, store)

	p, err := store.CreateProduct(validProductInput(pt, m))
	require.NoError(t, err)
	assert.NotZero(t, p.ID)
	assert.False(t, p.CreatedAt.IsZero())

	got, err := store.GetProduct(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Modern sandalye", got.ProductType.Name)
	assert.Equal(t, "Meşe", got.MainMaterial.Name)
}

func TestCreateProductUnknownReferences(t *testing.T) {
	store := NewStore(newTestDB(t))
	pt, m := seedRefs(t, store)

	in := validProductInput(pt, m)
	in.ProductTypeID = 999
	_, err := store.CreateProduct(in)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	in = validProductInput(pt, m)
	in.MainMaterialID = 999
	_, err = store.CreateProduct(in)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCreateProductValidation(t *testing.T) {
	store := NewStore(newTestDB(t))
	pt, m := seedRefs(t, store)

	in := validProductInput(pt, m)
	in.Name = ""
	_, err := store.CreateProduct(in)
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	in = validProductInput(pt, m)
	in.Param1 = 0
	_, err = store.CreateProduct(in)
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	in = validProductInput(pt, m)
	in.MinPartnerPrice = -1
	_, err = store.CreateProduct(in)
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestProductPriceRounding(t *testing.T) {
	store := NewStore(newTestDB(t))
	pt, m := seedRefs(t, store)

	in := validProductInput(pt, m)
	in.MinPartnerPrice = 4500.456
	p, err := store.CreateProduct(in)
	require.NoError(t, err)
	assert.Equal(t, 4500.46, p.MinPartnerPrice)
}

func TestUpdateProductSparse(t *testing.T) {
	store := NewStore(newTestDB(t))
	pt, m := seedRefs(t, store)

	p, err := store.CreateProduct(validProductInput(pt, m))
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	newPrice := 4999.99
	upd, err := store.UpdateProduct(p.ID, ProductUpdate{MinPartnerPrice: &newPrice})
	require.NoError(t, err)

	// Gönderilmeyen alanlar değişmemeli
	assert.Equal(t, 4999.99, upd.MinPartnerPrice)
	assert.Equal(t, p.Article, upd.Article)
	assert.Equal(t, p.Name, upd.Name)
	assert.Equal(t, p.Param1, upd.Param1)

	// updated_at yenilenir, created_at sabittir
	assert.True(t, upd.UpdatedAt.After(p.UpdatedAt))
	assert.Equal(t, p.CreatedAt.Unix(), upd.CreatedAt.Unix())
}

func TestUpdateProductEmptySet(t *testing.T) {
	store := NewStore(newTestDB(t))
	pt, m := seedRefs(t, store)

	p, err := store.CreateProduct(validProductInput(pt, m))
	require.NoError(t, err)

	_, err = store.UpdateProduct(p.ID, ProductUpdate{})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestUpdateProductInvalidValues(t *testing.T) {
	store := NewStore(newTestDB(t))
	pt, m := seedRefs(t, store)

	p, err := store.CreateProduct(validProductInput(pt, m))
	require.NoError(t, err)

	badParam := 0.0
	_, err = store.UpdateProduct(p.ID, ProductUpdate{Param1: &badParam})
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	unknownType := uint(999)
	_, err = store.UpdateProduct(p.ID, ProductUpdate{ProductTypeID: &unknownType})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestDeleteProductCascade(t *testing.T) {
	db := newTestDB(t)
	store := NewStore(db)
	pt, m := seedRefs(t, store)

	w, err := store.CreateWorkshop("Montaj atölyesi", 10, 5)
	require.NoError(t, err)

	p, err := store.CreateProduct(validProductInput(pt, m))
	require.NoError(t, err)

	entries := []models.ProductionSchedule{
		{ProductID: p.ID, WorkshopID: w.ID, ProcessingOrder: 1},
		{ProductID: p.ID, WorkshopID: w.ID, ProcessingOrder: 2},
	}
	require.NoError(t, db.Create(&entries).Error)

	require.NoError(t, store.DeleteProduct(p.ID))

	_, err = store.GetProduct(p.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	var remaining int64
	db.Model(&models.ProductionSchedule{}).Where("product_id = ?", p.ID).Count(&remaining)
	assert.Zero(t, remaining)
}

func TestDeleteProductNotFound(t *testing.T) {
	store := NewStore(newTestDB(t))
	err := store.DeleteProduct(999)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestDeleteProductsBatch(t *testing.T) {
	store := NewStore(newTestDB(t))
	pt, m := seedRefs(t, store)

	p1, err := store.CreateProduct(validProductInput(pt, m))
	require.NoError(t, err)
	p2, err := store.CreateProduct(validProductInput(pt, m))
	require.NoError(t, err)

	// Var olmayan id hata değildir, sadece sayıma girmez
	deleted, err := store.DeleteProductsBatch([]uint{p1.ID, p2.ID, 999})
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	products, err := store.ListProducts("")
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestDeleteProductsBatchEmpty(t *testing.T) {
	store := NewStore(newTestDB(t))
	_, err := store.DeleteProductsBatch(nil)
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestDeleteReferencedTypeAndMaterial(t *testing.T) {
	store := NewStore(newTestDB(t))
	pt, m := seedRefs(t, store)

	_, err := store.CreateProduct(validProductInput(pt, m))
	require.NoError(t, err)

	assert.ErrorIs(t, store.DeleteProductType(pt.ID), apperr.ErrConstraint)
	assert.ErrorIs(t, store.DeleteMaterial(m.ID), apperr.ErrConstraint)

	assert.ErrorIs(t, store.DeleteProductType(999), apperr.ErrNotFound)
	assert.ErrorIs(t, store.DeleteMaterial(999), apperr.ErrNotFound)
}

func TestListInvalidOrderKey(t *testing.T) {
	store := NewStore(newTestDB(t))

	_, err := store.ListProducts("1; DROP TABLE products")
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)

	_, err = store.ListProductTypes("price")
	assert.ErrorIs(t, err, apperr.ErrInvalidInput)
}

func TestListProductTypesOrder(t *testing.T) {
	store := NewStore(newTestDB(t))

	_, err := store.CreateProductType("Modern dolap", 1.8)
	require.NoError(t, err)
	_, err = store.CreateProductType("Klasik masa", 1.5)
	require.NoError(t, err)

	byName, err := store.ListProductTypes("name")
	require.NoError(t, err)
	require.Len(t, byName, 2)
	assert.Equal(t, "Klasik masa", byName[0].Name)

	byID, err := store.ListProductTypes("")
	require.NoError(t, err)
	assert.Equal(t, "Modern dolap", byID[0].Name)
}
