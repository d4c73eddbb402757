package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"storefront/internal/store"
)

type productCreateRequest struct {
	Name         string   `json:"name" binding:"required"`
	Slug         string   `json:"slug"`
	Description  string   `json:"description"`
	Price        float64  `json:"price"`
	ComparePrice *float64 `json:"compare_price"`
	SKU          string   `json:"sku"`
	Quantity     int      `json:"quantity"`
	IsAvailable  *bool    `json:"is_available"`
	CategoryID   string   `json:"category_id"`
	Tags         []string `json:"tags"`
	Images       []string `json:"images"`
}

type productUpdateRequest struct {
	Name         *string   `json:"name"`
	Slug         *string   `json:"slug"`
	Description  *string   `json:"description"`
	Price        *float64  `json:"price"`
	ComparePrice *float64  `json:"compare_price"`
	SKU          *string   `json:"sku"`
	Quantity     *int      `json:"quantity"`
	IsAvailable  *bool     `json:"is_available"`
	CategoryID   *string   `json:"category_id"`
	Tags         *[]string `json:"tags"`
	Images       *[]string `json:"images"`
}

func AdminCreateProduct(s *store.Store, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req productCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		product, err := s.CreateProduct(ctx, store.ProductInput{
			Name:         req.Name,
			Slug:         req.Slug,
			Description:  req.Description,
			Price:        req.Price,
			ComparePrice: req.ComparePrice,
			SKU:          req.SKU,
			Quantity:     req.Quantity,
			IsAvailable:  req.IsAvailable,
			CategoryID:   req.CategoryID,
			Tags:         req.Tags,
			Images:       req.Images,
		})
		if err != nil {
			respondStoreError(c, logger, "POST /admin/products", err)
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}

func AdminUpdateProduct(s *store.Store, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req productUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		product, err := s.UpdateProduct(ctx, c.Param("id"), store.ProductUpdate{
			Name:         req.Name,
			Slug:         req.Slug,
			Description:  req.Description,
			Price:        req.Price,
			ComparePrice: req.ComparePrice,
			SKU:          req.SKU,
			Quantity:     req.Quantity,
			IsAvailable:  req.IsAvailable,
			CategoryID:   req.CategoryID,
			Tags:         req.Tags,
			Images:       req.Images,
		})
		if err != nil {
			respondStoreError(c, logger, "PUT /admin/products/:id", err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

func AdminDeleteProduct(s *store.Store, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		if err := s.DeleteProduct(ctx, c.Param("id")); err != nil {
			respondStoreError(c, logger, "DELETE /admin/products/:id", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": true})
	}
}
