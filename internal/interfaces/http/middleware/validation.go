package middleware

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/isletme/backend/internal/domain/crm"
	"github.com/isletme/backend/internal/domain/finance"
	"github.com/isletme/backend/internal/interfaces/http/dto"
)

// SetupValidator registers the custom tags on gin's validator and makes
// errors report JSON field names.
func SetupValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterValidations(v)
	}
}

// RegisterValidations adds iban, tckn and opex_month to v
func RegisterValidations(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		return name
	})
	_ = v.RegisterValidation("iban", func(fl validator.FieldLevel) bool {
		return finance.ValidIBAN(fl.Field().String())
	})
	_ = v.RegisterValidation("tckn", func(fl validator.FieldLevel) bool {
		return crm.ValidTCKN(fl.Field().String())
	})
	_ = v.RegisterValidation("opex_month", func(fl validator.FieldLevel) bool {
		m := fl.Field().Int()
		return m >= 1 && m <= 12
	})
}

// FormatValidationErrors formats validation errors into a standard response
func FormatValidationErrors(err error, requestID string) dto.Response {
	var details []dto.ValidationDetail

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, e := range validationErrors {
			details = append(details, dto.ValidationDetail{
				Field:   e.Field(),
				Message: validationMessage(e),
			})
		}
	}

	return dto.NewValidationErrorResponse("İstek doğrulanamadı", requestID, details)
}

// HandleValidationError writes a 400 for a binding error. Malformed JSON is
// reported as ERR_INVALID_JSON, validator failures list the fields.
func HandleValidationError(c *gin.Context, err error) {
	requestID := c.GetString(RequestIDKey)
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeInvalidJSON, "İstek gövdesi okunamadı", requestID))
		return
	}
	c.JSON(http.StatusBadRequest, FormatValidationErrors(err, requestID))
}

func validationMessage(e validator.FieldError) string {
	isString := e.Kind() == reflect.String
	switch e.Tag() {
	case "required":
		return "Bu alan zorunludur"
	case "email":
		return "Geçerli bir e-posta adresi olmalıdır"
	case "iban":
		return "Geçerli bir IBAN olmalıdır"
	case "tckn":
		return "Geçerli bir T.C. kimlik numarası olmalıdır"
	case "opex_month":
		return "Ay 1 ile 12 arasında olmalıdır"
	case "min":
		if isString {
			return "En az " + e.Param() + " karakter olmalıdır"
		}
		return "En az " + e.Param() + " olmalıdır"
	case "max":
		if isString {
			return "En fazla " + e.Param() + " karakter olmalıdır"
		}
		return "En fazla " + e.Param() + " olmalıdır"
	case "len":
		return "Tam olarak " + e.Param() + " karakter olmalıdır"
	case "uuid":
		return "Geçersiz UUID biçimi"
	case "oneof":
		return "Şunlardan biri olmalıdır: " + e.Param()
	case "gte":
		return e.Param() + " veya daha büyük olmalıdır"
	case "lte":
		return e.Param() + " veya daha küçük olmalıdır"
	case "gt":
		return e.Param() + " değerinden büyük olmalıdır"
	case "numeric":
		return "Yalnızca rakam içermelidir"
	case "datetime":
		return "Tarih biçimi " + e.Param() + " olmalıdır"
	default:
		return "Geçersiz değer"
	}
}
