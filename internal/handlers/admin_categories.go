package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"storefront/internal/store"
)

type categoryCreateRequest struct {
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Image       string `json:"image"`
	ParentID    string `json:"parent_id"`
	IsActive    *bool  `json:"is_active"`
	SortOrder   int    `json:"sort_order"`
}

type categoryUpdateRequest struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	ParentID    *string `json:"parent_id"`
	IsActive    *bool   `json:"is_active"`
	SortOrder   *int    `json:"sort_order"`
}

func AdminCreateCategory(s *store.Store, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req categoryCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		category, err := s.CreateCategory(ctx, store.CategoryInput{
			Name:        req.Name,
			Slug:        req.Slug,
			Description: req.Description,
			Image:       req.Image,
			ParentID:    req.ParentID,
			IsActive:    req.IsActive,
			SortOrder:   req.SortOrder,
		})
		if err != nil {
			respondStoreError(c, logger, "POST /admin/categories", err)
			return
		}
		c.JSON(http.StatusCreated, category)
	}
}

func AdminGetCategory(s *store.Store, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		category, err := s.GetCategory(ctx, c.Param("id"))
		if err != nil {
			respondStoreError(c, logger, "GET /admin/categories/:id", err)
			return
		}
		c.JSON(http.StatusOK, category)
	}
}

func AdminUpdateCategory(s *store.Store, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req categoryUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		category, err := s.UpdateCategory(ctx, c.Param("id"), store.CategoryUpdate{
			Name:        req.Name,
			Slug:        req.Slug,
			Description: req.Description,
			Image:       req.Image,
			ParentID:    req.ParentID,
			IsActive:    req.IsActive,
			SortOrder:   req.SortOrder,
		})
		if err != nil {
			respondStoreError(c, logger, "PUT /admin/categories/:id", err)
			return
		}
		c.JSON(http.StatusOK, category)
	}
}

func AdminDeleteCategory(s *store.Store, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		if err := s.DeleteCategory(ctx, c.Param("id")); err != nil {
			respondStoreError(c, logger, "DELETE /admin/categories/:id", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": true})
	}
}
