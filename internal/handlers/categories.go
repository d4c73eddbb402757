package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"storefront/internal/store"
)

func GetCategories(s *store.Store, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := store.CategoryFilter{
			ParentID:     c.Query("parent_id"),
			TopLevelOnly: c.Query("top_level") == "true",
		}
		if raw := c.Query("is_active"); raw != "" {
			if active, err := strconv.ParseBool(raw); err == nil {
				filter.IsActive = &active
			}
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		categories, err := s.ListCategories(ctx, filter)
		if err != nil {
			respondStoreError(c, logger, "GET /categories", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": categories})
	}
}

func GetCategoryTree(s *store.Store, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		tree, err := s.CategoryTree(ctx)
		if err != nil {
			respondStoreError(c, logger, "GET /categories/tree", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": tree})
	}
}
