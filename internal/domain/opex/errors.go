package opex

import "github.com/isletme/backend/internal/domain/shared"

var (
	ErrUnknownCategory    = shared.NewDomainError("OPEX_UNKNOWN_CATEGORY", "Bilinmeyen gider kategorisi")
	ErrUnknownSubcategory = shared.NewDomainError("OPEX_UNKNOWN_SUBCATEGORY", "Bilinmeyen alt kategori")
	ErrAutoCategory       = shared.NewDomainError("OPEX_AUTO_CATEGORY", "Personel giderleri bordrodan otomatik hesaplanır ve düzenlenemez")
	ErrInvalidMonth       = shared.NewDomainError("OPEX_INVALID_MONTH", "Ay 1 ile 12 arasında olmalıdır")
	ErrInvalidYear        = shared.NewDomainError("OPEX_INVALID_YEAR", "Geçersiz yıl")
	ErrNegativeAmount     = shared.NewDomainError("OPEX_NEGATIVE_AMOUNT", "Tutar negatif olamaz")
)
