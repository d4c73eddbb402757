package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/payments"
	"storefront/internal/store"
)

func statusFor(t *testing.T, err error) (int, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

	respondStoreError(c, zerolog.Nop(), "GET /x", err)
	return w.Code, w.Body.String()
}

func TestRespondStoreErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", store.ErrNotFound, http.StatusNotFound},
		{"invalid id", store.ErrInvalidID, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("get product: %w", store.ErrNotFound), http.StatusNotFound},
		{"validation", &store.ValidationError{Fields: []store.FieldError{{Field: "name", Message: "is required"}}}, http.StatusBadRequest},
		{"duplicate user", store.ErrDuplicateUser, http.StatusConflict},
		{"provider", &payments.ProviderError{Provider: "paypal", Op: "token", Err: errors.New("boom")}, http.StatusBadGateway},
		{"unknown", errors.New("socket reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := statusFor(t, tt.err)
			if code != tt.want {
				t.Fatalf("status = %d (%s), want %d", code, body, tt.want)
			}
		})
	}
}

func TestRespondStoreErrorValidationBody(t *testing.T) {
	_, body := statusFor(t, &store.ValidationError{Fields: []store.FieldError{{Field: "price", Message: "must be zero or positive"}}})
	if want := `"field":"price"`; !strings.Contains(body, want) {
		t.Fatalf("body %q missing %q", body, want)
	}
}

func TestRespondStoreErrorOpaque500(t *testing.T) {
	_, body := statusFor(t, errors.New("connection to 10.0.0.3 refused"))
	if strings.Contains(body, "10.0.0.3") {
		t.Fatalf("internal details leaked: %q", body)
	}
	if !strings.Contains(body, "db error") {
		t.Fatalf("expected generic db error body, got %q", body)
	}
}

func TestQueryInt64(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/x?page=3&bad=oops&neg=-2", nil)

	if got := queryInt64(c, "page", 1); got != 3 {
		t.Fatalf("page = %d, want 3", got)
	}
	if got := queryInt64(c, "bad", 7); got != 7 {
		t.Fatalf("malformed value should fall back, got %d", got)
	}
	if got := queryInt64(c, "neg", 7); got != 7 {
		t.Fatalf("negative value should fall back, got %d", got)
	}
	if got := queryInt64(c, "missing", 5); got != 5 {
		t.Fatalf("missing value should fall back, got %d", got)
	}
}

func TestOwnedBy(t *testing.T) {
	userID := primitive.NewObjectID()
	mine := userID.Hex()
	theirs := primitive.NewObjectID().Hex()

	if !ownedBy(&mine, userID) {
		t.Fatal("own record should match")
	}
	if ownedBy(&theirs, userID) {
		t.Fatal("another user's record must not match")
	}
	// Ownerless records never match; a payment record reached through a
	// provider id must not be readable by whoever learns the id.
	if ownedBy(nil, userID) {
		t.Fatal("ownerless record must not match")
	}
}

func TestSnakeCase(t *testing.T) {
	tests := map[string]string{
		"Email":           "email",
		"FirstName":       "first_name",
		"ShippingAddress": "shipping_address",
		"ProductID":       "product_id",
		"IDs":             "ids",
	}
	for in, want := range tests {
		if got := snakeCase(in); got != want {
			t.Fatalf("snakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRespondBindErrorFieldDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(`{"email":"not-an-email"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	err := c.ShouldBindJSON(&req)
	if err == nil {
		t.Fatal("expected a binding failure")
	}
	respondBindError(c, err)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "email must be a valid email") {
		t.Fatalf("missing email detail in %s", body)
	}
	if !strings.Contains(body, "password is required") {
		t.Fatalf("missing password detail in %s", body)
	}
}

func TestRespondBindErrorMalformedJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(`{broken`))
	c.Request.Header.Set("Content-Type", "application/json")

	var req struct {
		Email string `json:"email" binding:"required"`
	}
	err := c.ShouldBindJSON(&req)
	if err == nil {
		t.Fatal("expected a binding failure")
	}
	respondBindError(c, err)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "invalid request body") {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
}
