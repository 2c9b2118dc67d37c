package product

import (
	"context"
	"net/http"

	"github.com/dinerozz/datahive-backend/internal/entity"
	"github.com/dinerozz/datahive-backend/internal/handler/respond"
	"github.com/dinerozz/datahive-backend/internal/model/response/wrapper"
	"github.com/gin-gonic/gin"
)

type ProductService interface {
	Resolve(ctx context.Context, id string) (entity.Product, error)
	ProductsInCategory(ctx context.Context, category string) ([]entity.Product, error)
}

type ProductHandler struct {
	srv ProductService
}

func NewProductHandler(srv ProductService) *ProductHandler {
	return &ProductHandler{srv: srv}
}

// GetProduct godoc
// @Summary      Product referenced by add-to-cart clicks
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  wrapper.ResponseWrapper{data=entity.Product}
// @Failure      404  {object}  wrapper.ErrorWrapper
// @Failure      502  {object}  wrapper.ErrorWrapper
// @Router       /products/{id} [get]
func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.srv.Resolve(c.Request.Context(), c.Param("id"))
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{Data: product, Success: true})
}

// GetProductsByCategory godoc
// @Summary      Products of a category
// @Tags         products
// @Produce      json
// @Param        category  query     string  true  "One of the dashboard categories"
// @Success      200  {object}  wrapper.ResponseWrapper{data=[]entity.Product}
// @Failure      400  {object}  wrapper.ErrorWrapper
// @Failure      404  {object}  wrapper.ErrorWrapper
// @Failure      502  {object}  wrapper.ErrorWrapper
// @Router       /products [get]
func (h *ProductHandler) GetProductsByCategory(c *gin.Context) {
	category := c.Query("category")
	if category == "" {
		respond.BadRequest(c, "category is required")
		return
	}

	products, err := h.srv.ProductsInCategory(c.Request.Context(), category)
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, wrapper.ResponseWrapper{Data: products, Success: true})
}

func (h *ProductHandler) RegisterRoutes(router *gin.RouterGroup) {
	products := router.Group("/products")
	{
		products.GET("", h.GetProductsByCategory)
		products.GET("/:id", h.GetProduct)
	}
}
