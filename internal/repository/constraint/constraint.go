// Package constraint проверяет правила схемы каталога в момент записи.
// Вызывается всеми реализациями хранилища до обращения к движку.
package constraint

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const (
	// Точность цены: NUMERIC(18,2)
	PricePrecision = 18
	PriceScale     = 2
)

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("notblank", notBlank)
	})

	return validate
}

// CheckProducts проверяет пакет товаров целиком: правила полей и уникальность
// идентификаторов внутри пакета. Нулевой ID означает, что его назначит хранилище.
func CheckProducts(products []domain.Product) error {
	seen := make(map[int64]struct{}, len(products))
	for i := range products {
		if err := checkStruct(domain.KindProduct, i, &products[i]); err != nil {
			return err
		}
		if !FitsPrice(products[i].Price) {
			return e.Violation("%s[%d]: Price %s must fit NUMERIC(%d,%d) and be non-negative",
				domain.KindProduct, i, products[i].Price, PricePrecision, PriceScale)
		}
		if err := checkID(domain.KindProduct, products[i].ID, seen); err != nil {
			return err
		}
	}

	return nil
}

// CheckStores проверяет пакет магазинов целиком.
func CheckStores(stores []domain.StoreInfo) error {
	seen := make(map[int64]struct{}, len(stores))
	for i := range stores {
		if err := checkStruct(domain.KindStoreInfo, i, &stores[i]); err != nil {
			return err
		}
		if err := checkID(domain.KindStoreInfo, stores[i].ID, seen); err != nil {
			return err
		}
	}

	return nil
}

// DuplicateID формирует ошибку коллизии идентификатора с уже сохраненной строкой.
func DuplicateID(kind domain.EntityKind, id int64) error {
	return e.Violation("%s: id %d already exists", kind, id)
}

func checkID(kind domain.EntityKind, id int64, seen map[int64]struct{}) error {
	if id < 0 {
		return e.Violation("%s: id must not be negative, got %d", kind, id)
	}
	if id == 0 {
		return nil
	}
	if _, ok := seen[id]; ok {
		return e.Violation("%s: id %d is duplicated in batch", kind, id)
	}
	seen[id] = struct{}{}

	return nil
}

func checkStruct(kind domain.EntityKind, idx int, record any) error {
	err := instance().Struct(record)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return e.Violation("%s[%d]: %v", kind, idx, err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
	}

	return e.Violation("%s[%d]: %s", kind, idx, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s is required", fe.Field())
	case "max":
		return fmt.Sprintf("%s exceeds %s characters", fe.Field(), fe.Param())
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag())
	}
}

func notBlank(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}

	return strings.TrimSpace(fl.Field().String()) != ""
}

// FitsPrice сообщает, помещается ли значение в NUMERIC(18,2) без округления.
func FitsPrice(d decimal.Decimal) bool {
	if d.IsNegative() {
		return false
	}
	if !d.Equal(d.Truncate(PriceScale)) {
		return false
	}

	intDigits := len(d.Truncate(0).Abs().String())
	if d.Truncate(0).IsZero() {
		intDigits = 0
	}

	return intDigits <= PricePrecision-PriceScale
}
