package http

import (
	"net/http"

	"github.com/DRSN-tech/storefront/internal/domain"
	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/logger"
	"golang.org/x/sync/errgroup"
)

type CatalogHandler struct {
	catalogUsecase usecase.CatalogUC
	logger         logger.Logger
}

func NewCatalogHandler(catalogUsecase usecase.CatalogUC, logger logger.Logger) *CatalogHandler {
	return &CatalogHandler{catalogUsecase: catalogUsecase, logger: logger}
}

// getProducts
//
//	@Summary		Список товаров
//	@Description	Возвращает все товары каталога в порядке идентификаторов
//	@Tags			catalog
//	@Produce		json
//	@Success		200	{array}		ProductResponse
//	@Failure		503	{object}	ErrorResponse	"Хранилище недоступно"
//	@Failure		500	{object}	ErrorResponse
//	@Router			/products [get]
func (c *CatalogHandler) getProducts(w http.ResponseWriter, r *http.Request) {
	products, err := c.catalogUsecase.GetProducts(r.Context())
	if err != nil {
		c.logger.Errorf(err, "failed to get products")
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toProductResponses(products))
}

// getStores
//
//	@Summary		Список магазинов
//	@Description	Возвращает все магазины в порядке идентификаторов
//	@Tags			catalog
//	@Produce		json
//	@Success		200	{array}		StoreInfoResponse
//	@Failure		503	{object}	ErrorResponse	"Хранилище недоступно"
//	@Failure		500	{object}	ErrorResponse
//	@Router			/stores [get]
func (c *CatalogHandler) getStores(w http.ResponseWriter, r *http.Request) {
	stores, err := c.catalogUsecase.GetStores(r.Context())
	if err != nil {
		c.logger.Errorf(err, "failed to get stores")
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toStoreResponses(stores))
}

// getCatalog
//
//	@Summary		Каталог целиком
//	@Description	Читает товары и магазины параллельно и отдает одним ответом
//	@Tags			catalog
//	@Produce		json
//	@Success		200	{object}	CatalogResponse
//	@Failure		503	{object}	ErrorResponse	"Хранилище недоступно"
//	@Failure		500	{object}	ErrorResponse
//	@Router			/catalog [get]
func (c *CatalogHandler) getCatalog(w http.ResponseWriter, r *http.Request) {
	var (
		products []domain.Product
		stores   []domain.StoreInfo
	)

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		res := <-c.catalogUsecase.GetProductsAsync(ctx)
		products = res.Value
		return res.Err
	})
	g.Go(func() error {
		res := <-c.catalogUsecase.GetStoresAsync(ctx)
		stores = res.Value
		return res.Err
	})

	if err := g.Wait(); err != nil {
		c.logger.Errorf(err, "failed to get catalog")
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, CatalogResponse{
		Products: toProductResponses(products),
		Stores:   toStoreResponses(stores),
	})
}
