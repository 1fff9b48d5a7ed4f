package reports

import (
	"fmt"
	"strconv"
	"time"

	"mobilya-backend/internal/apperr"
	"mobilya-backend/internal/models"
)

// Export: istenen veri setini CSV satırları olarak döner (ilk satır başlık).
func (a *Aggregator) Export(dataType string) ([][]string, error) {
	switch dataType {
	case "products":
		var products []models.Product
		err := a.db.Preload("ProductType").Preload("MainMaterial").
			Order("id ASC").Find(&products).Error
		if err != nil {
			return nil, fmt.Errorf("%w: ürün export sorgusu: %v", apperr.ErrStorage, err)
		}
		rows := [][]string{{"Artikel", "Ürün adı", "Tip", "Malzeme", "Fiyat", "Param1", "Param2", "Oluşturma tarihi"}}
		for _, p := range products {
			rows = append(rows, []string{
				p.Article,
				p.Name,
				p.ProductType.Name,
				p.MainMaterial.Name,
				strconv.FormatFloat(p.MinPartnerPrice, 'f', 2, 64),
				strconv.FormatFloat(p.Param1, 'f', -1, 64),
				strconv.FormatFloat(p.Param2, 'f', -1, 64),
				p.CreatedAt.Format(time.RFC3339),
			})
		}
		return rows, nil

	case "workshops":
		var workshops []models.Workshop
		if err := a.db.Order("id ASC").Find(&workshops).Error; err != nil {
			return nil, fmt.Errorf("%w: atölye export sorgusu: %v", apperr.ErrStorage, err)
		}
		rows := [][]string{{"Atölye adı", "Çalışan sayısı", "İşleme süresi (saat)"}}
		for _, w := range workshops {
			rows = append(rows, []string{
				w.Name,
				strconv.Itoa(w.WorkerCount),
				strconv.Itoa(w.ProcessingTime),
			})
		}
		return rows, nil

	case "materials":
		var materials []models.Material
		if err := a.db.Order("id ASC").Find(&materials).Error; err != nil {
			return nil, fmt.Errorf("%w: malzeme export sorgusu: %v", apperr.ErrStorage, err)
		}
		rows := [][]string{{"Malzeme", "Fire oranı (%)"}}
		for _, m := range materials {
			rows = append(rows, []string{
				m.Name,
				strconv.FormatFloat(m.LossPercentage, 'f', -1, 64),
			})
		}
		return rows, nil

	default:
		return nil, fmt.Errorf("%w: bilinmeyen veri tipi: %q", apperr.ErrInvalidInput, dataType)
	}
}
