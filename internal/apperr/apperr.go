package apperr

import "errors"

// Çekirdek hata sınıfları. Handler'lar errors.Is ile ayırt eder,
// sarmalama fmt.Errorf + %w ile yapılır.
var (
	ErrInvalidInput = errors.New("geçersiz girdi")
	ErrNotFound     = errors.New("kayıt bulunamadı")
	ErrConstraint   = errors.New("kısıt ihlali")
	ErrStorage      = errors.New("veri deposuna erişilemedi")
)

// StatusCode: hata sınıfını HTTP durum koduna çevirir.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return 400
	case errors.Is(err, ErrNotFound):
		return 404
	case errors.Is(err, ErrConstraint):
		return 409
	default:
		return 500
	}
}
