package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"storefront/internal/store"
)

type sliderCreateRequest struct {
	Title       string `json:"title" binding:"required"`
	Subtitle    string `json:"subtitle"`
	Description string `json:"description"`
	Img         string `json:"img"`
	Link        string `json:"link"`
	Status      string `json:"status"`
	Order       *int   `json:"order"`
}

type sliderUpdateRequest struct {
	Title       *string `json:"title"`
	Subtitle    *string `json:"subtitle"`
	Description *string `json:"description"`
	Img         *string `json:"img"`
	Link        *string `json:"link"`
	Status      *string `json:"status"`
	Order       *int    `json:"order"`
}

type sliderReorderRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

func AdminGetSliders(s *store.Store, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		sliders, err := s.ListSliders(ctx, false)
		if err != nil {
			respondStoreError(c, logger, "GET /admin/sliders", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": sliders})
	}
}

func AdminGetSlider(s *store.Store, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		slider, err := s.GetSlider(ctx, c.Param("id"))
		if err != nil {
			respondStoreError(c, logger, "GET /admin/sliders/:id", err)
			return
		}
		c.JSON(http.StatusOK, slider)
	}
}

func AdminCreateSlider(s *store.Store, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req sliderCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		slider, err := s.CreateSlider(ctx, store.SliderInput{
			Title:       req.Title,
			Subtitle:    req.Subtitle,
			Description: req.Description,
			Img:         req.Img,
			Link:        req.Link,
			Status:      req.Status,
			Order:       req.Order,
		})
		if err != nil {
			respondStoreError(c, logger, "POST /admin/sliders", err)
			return
		}
		c.JSON(http.StatusCreated, slider)
	}
}

func AdminUpdateSlider(s *store.Store, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req sliderUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		slider, err := s.UpdateSlider(ctx, c.Param("id"), store.SliderUpdate{
			Title:       req.Title,
			Subtitle:    req.Subtitle,
			Description: req.Description,
			Img:         req.Img,
			Link:        req.Link,
			Status:      req.Status,
			Order:       req.Order,
		})
		if err != nil {
			respondStoreError(c, logger, "PUT /admin/sliders/:id", err)
			return
		}
		c.JSON(http.StatusOK, slider)
	}
}

func AdminDeleteSlider(s *store.Store, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		if err := s.DeleteSlider(ctx, c.Param("id")); err != nil {
			respondStoreError(c, logger, "DELETE /admin/sliders/:id", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"deleted": true})
	}
}

// AdminReorderSliders rewrites the display order to match the posted id
// list: first id becomes order 1, and so on.
func AdminReorderSliders(s *store.Store, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req sliderReorderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		if err := s.ReorderSliders(ctx, req.IDs); err != nil {
			respondStoreError(c, logger, "POST /admin/sliders/reorder", err)
			return
		}

		sliders, err := s.ListSliders(ctx, false)
		if err != nil {
			respondStoreError(c, logger, "POST /admin/sliders/reorder", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": sliders})
	}
}

func AdminToggleSliderStatus(s *store.Store, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		slider, err := s.ToggleSliderStatus(ctx, c.Param("id"))
		if err != nil {
			respondStoreError(c, logger, "POST /admin/sliders/:id/toggle-status", err)
			return
		}
		c.JSON(http.StatusOK, slider)
	}
}
