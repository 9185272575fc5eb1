package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/internal/repository/constraint"
	"github.com/DRSN-tech/storefront/pkg/e"
)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ProductResponse — товар в ответе API. Цена передается строкой с двумя знаками.
type ProductResponse struct {
	ID          int64  `json:"id" example:"1"`
	Name        string `json:"name" example:"Solar Powered Flashlight"`
	Description string `json:"description" example:"A fantastic product for outdoor enthusiasts"`
	Price       string `json:"price" example:"19.99"`
	ImageURL    string `json:"imageUrl" example:"product1.png"`
}

type StoreInfoResponse struct {
	ID    int64  `json:"id" example:"1"`
	Name  string `json:"name" example:"Outdoor Store"`
	City  string `json:"city" example:"Seattle"`
	State string `json:"state" example:"WA"`
	Hours string `json:"hours" example:"9am - 5pm"`
}

// CatalogResponse — товары и магазины одним ответом.
type CatalogResponse struct {
	Products []ProductResponse   `json:"products"`
	Stores   []StoreInfoResponse `json:"stores"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

func ToHTTPResponse(err error) (int, string) {
	switch {
	case errors.Is(err, e.ErrStorageUnavailable):
		return http.StatusServiceUnavailable, e.ErrServiceUnavailable.Error()
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(NewErrorResponse(code, msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func toProductResponses(products []domain.Product) []ProductResponse {
	res := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		res = append(res, ProductResponse{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price.StringFixed(constraint.PriceScale),
			ImageURL:    p.ImageURL,
		})
	}

	return res
}

func toStoreResponses(stores []domain.StoreInfo) []StoreInfoResponse {
	res := make([]StoreInfoResponse, 0, len(stores))
	for _, s := range stores {
		res = append(res, StoreInfoResponse{
			ID:    s.ID,
			Name:  s.Name,
			City:  s.City,
			State: s.State,
			Hours: s.Hours,
		})
	}

	return res
}
