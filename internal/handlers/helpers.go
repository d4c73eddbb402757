package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"storefront/internal/payments"
	"storefront/internal/store"
)

const dbTimeout = 5 * time.Second

func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), dbTimeout)
}

// respondStoreError maps store and provider errors onto HTTP statuses. The
// fallback is a plain 500 "db error" so internals never leak to clients.
func respondStoreError(c *gin.Context, logger zerolog.Logger, route string, err error) {
	var verr *store.ValidationError
	var perr *payments.ProviderError

	switch {
	case errors.Is(err, store.ErrNotFound), errors.Is(err, store.ErrInvalidID):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.As(err, &verr):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": verr.Fields})
	case errors.Is(err, store.ErrDuplicateUser), mongo.IsDuplicateKeyError(err):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "already exists"})
	case errors.As(err, &perr):
		logger.Error().Err(err).Str("route", route).Msg("payment provider error")
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "payment provider unavailable"})
	default:
		logger.Error().Err(err).Str("route", route).Msg("request failed")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "db error"})
	}
}

// respondBindError turns a binding failure into field-level messages when
// the validator produced them, and a generic 400 otherwise.
func respondBindError(c *gin.Context, err error) {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		details := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			field := snakeCase(fe.Field())
			switch fe.Tag() {
			case "required":
				details = append(details, fmt.Sprintf("%s is required", field))
			case "email":
				details = append(details, fmt.Sprintf("%s must be a valid email", field))
			case "min":
				details = append(details, fmt.Sprintf("%s is too short", field))
			default:
				details = append(details, fmt.Sprintf("%s is invalid", field))
			}
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": details})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
}

// snakeCase turns a struct field name into its wire form (ShippingAddress
// becomes shipping_address).
func snakeCase(field string) string {
	var b strings.Builder
	for i, r := range field {
		if unicode.IsUpper(r) {
			if i > 0 && !unicode.IsUpper(rune(field[i-1])) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// currentUserID reads the id the auth middleware stashed on the context.
func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	value, ok := c.Get("userId")
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return primitive.NilObjectID, false
	}
	id, ok := value.(primitive.ObjectID)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return primitive.NilObjectID, false
	}
	return id, true
}

// ownedBy reports whether a record's user reference matches the requester.
// Records without an owner never match; handlers answer 404 so the existence
// of another customer's record is not revealed.
func ownedBy(recordUserID *string, userID primitive.ObjectID) bool {
	return recordUserID != nil && *recordUserID == userID.Hex()
}

func queryInt64(c *gin.Context, key string, fallback int64) int64 {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}

func queryInt(c *gin.Context, key string, fallback int) int {
	return int(queryInt64(c, key, int64(fallback)))
}
