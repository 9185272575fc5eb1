package converter

import (
	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/shopspring/decimal"
)

// ProductConverter преобразует сущности Product между domain и моделью PostgreSQL.
type ProductConverter interface {
	ToModel(entity *domain.Product) *ProductModel
	ToEntity(model *ProductModel) (*domain.Product, error)
}

// StoreInfoConverter преобразует сущности StoreInfo между domain и моделью PostgreSQL.
type StoreInfoConverter interface {
	ToModel(entity *domain.StoreInfo) *StoreInfoModel
	ToEntity(model *StoreInfoModel) *domain.StoreInfo
}

type ProductConverterImpl struct{}

func NewProductConverterImpl() *ProductConverterImpl {
	return &ProductConverterImpl{}
}

func (c *ProductConverterImpl) ToModel(entity *domain.Product) *ProductModel {
	if entity == nil {
		return nil
	}

	return &ProductModel{
		ID:          entity.ID,
		Name:        entity.Name,
		Description: entity.Description,
		Price:       entity.Price.StringFixed(2),
		ImageURL:    entity.ImageURL,
	}
}

func (c *ProductConverterImpl) ToEntity(model *ProductModel) (*domain.Product, error) {
	if model == nil {
		return nil, nil
	}

	price, err := decimal.NewFromString(model.Price)
	if err != nil {
		return nil, err
	}

	return domain.NewProduct(model.ID, model.Name, model.Description, price, model.ImageURL), nil
}

type StoreInfoConverterImpl struct{}

func NewStoreInfoConverterImpl() *StoreInfoConverterImpl {
	return &StoreInfoConverterImpl{}
}

func (c *StoreInfoConverterImpl) ToModel(entity *domain.StoreInfo) *StoreInfoModel {
	if entity == nil {
		return nil
	}

	return &StoreInfoModel{
		ID:    entity.ID,
		Name:  entity.Name,
		City:  entity.City,
		State: entity.State,
		Hours: entity.Hours,
	}
}

func (c *StoreInfoConverterImpl) ToEntity(model *StoreInfoModel) *domain.StoreInfo {
	if model == nil {
		return nil
	}

	return domain.NewStoreInfo(model.ID, model.Name, model.City, model.State, model.Hours)
}
