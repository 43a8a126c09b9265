package handler

import (
	"net/http"

	"github.com/RoyceAzure/lab/shop/internal/api/dto"
	"github.com/RoyceAzure/lab/shop/internal/pkg/api"
	"github.com/RoyceAzure/lab/shop/internal/service"
)

type ProductHandler struct {
	productService service.IProductService
}

func NewProductHandler(productService service.IProductService) *ProductHandler {
	if productService == nil {
		panic("productService cannot be nil")
	}
	return &ProductHandler{productService: productService}
}

// @Summary create product
// @Tags products
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param product body dto.CreateProductDTO true "product"
// @Success 201 {object} api.Response{data=dto.ProductResponse} "created"
// @Failure 403 {object} api.ResponseError "UnauthorizedCode"
// @Failure 422 {object} api.ResponseError{errors=[]api.FieldError} "UnprocessableEntityCode"
// @Router /products [post]
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateProductDTO
	if err := api.DecodeAndValidate(r, &req); err != nil {
		api.ErrorJSON(w, err)
		return
	}

	product, err := h.productService.CreateProduct(r.Context(), service.ProductParams{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Tags:        req.Tags,
	})
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	api.CreatedJSON(w, dto.NewProductResponse(product))
}

// @Summary update product
// @Description 部分更新，會清除商品快取
// @Tags products
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "product id"
// @Param product body dto.UpdateProductDTO true "fields to update"
// @Success 200 {object} api.Response{data=dto.ProductResponse} "success"
// @Failure 404 {object} api.ResponseError "ProductNotFoundCode"
// @Router /products/{id} [put]
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	var req dto.UpdateProductDTO
	if err := api.DecodeAndValidate(r, &req); err != nil {
		api.ErrorJSON(w, err)
		return
	}

	product, err := h.productService.UpdateProduct(r.Context(), id, service.UpdateProductParams{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Tags:        req.Tags,
	})
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	api.SuccessJSON(w, dto.NewProductResponse(product), "")
}

// @Summary delete product
// @Description 軟刪除商品，並從所有購物車移除
// @Tags products
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "product id"
// @Success 200 {object} api.Response "success"
// @Failure 404 {object} api.ResponseError "ProductNotFoundCode"
// @Router /products/{id} [delete]
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	if err := h.productService.DeleteProduct(r.Context(), id); err != nil {
		api.ErrorJSON(w, err)
		return
	}
	api.SuccessJSON(w, nil, "")
}

// @Summary get product
// @Tags products
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "product id"
// @Success 200 {object} api.Response{data=dto.ProductResponse} "success"
// @Failure 404 {object} api.ResponseError "ProductNotFoundCode"
// @Router /products/{id} [get]
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	product, err := h.productService.GetProduct(r.Context(), id)
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	api.SuccessJSON(w, dto.NewProductResponse(product), "")
}

// @Summary list products
// @Tags products
// @Produce json
// @Security ApiKeyAuth
// @Param skip query int false "skip" default(0)
// @Param take query int false "take" default(5)
// @Success 200 {object} api.Response{data=dto.PageResponse[dto.ProductResponse]} "success"
// @Router /products [get]
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	skip, take, err := parsePaging(r)
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	page, err := h.productService.ListProducts(r.Context(), skip, take)
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	api.SuccessJSON(w, toPageResponse(page, dto.NewProductResponses), "")
}

// @Summary search products
// @Description 全文檢索 name, description, tags
// @Tags products
// @Produce json
// @Security ApiKeyAuth
// @Param q query string true "search text"
// @Param skip query int false "skip" default(0)
// @Param take query int false "take" default(5)
// @Success 200 {object} api.Response{data=dto.PageResponse[dto.ProductResponse]} "success"
// @Router /products/search [get]
func (h *ProductHandler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	skip, take, err := parsePaging(r)
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	page, err := h.productService.SearchProducts(r.Context(), r.URL.Query().Get("q"), skip, take)
	if err != nil {
		api.ErrorJSON(w, err)
		return
	}
	api.SuccessJSON(w, toPageResponse(page, dto.NewProductResponses), "")
}
