package store

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/models"
)

// Transport-facing records. ObjectIDs are hex strings, timestamps RFC 3339,
// optional references nullable. One formatter per entity; handlers never see
// raw documents.

type ProductRecord struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Slug         string   `json:"slug"`
	Description  string   `json:"description"`
	Price        float64  `json:"price"`
	ComparePrice *float64 `json:"compare_price"`
	SKU          string   `json:"sku"`
	Quantity     int      `json:"quantity"`
	IsAvailable  bool     `json:"is_available"`
	CategoryID   *string  `json:"category_id"`
	Tags         []string `json:"tags"`
	Images       []string `json:"images"`
	MainImage    string   `json:"main_image"`
	CreatedAt    string   `json:"created_at"`
	UpdatedAt    string   `json:"updated_at"`
}

type CategoryRecord struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	ParentID    *string `json:"parent_id"`
	IsActive    bool    `json:"is_active"`
	SortOrder   int     `json:"sort_order"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// CategoryNode is a CategoryRecord with its resolved children, used by the
// tree endpoint.
type CategoryNode struct {
	CategoryRecord
	Children []*CategoryNode `json:"children"`
}

type OrderItemRecord struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image"`
}

type OrderRecord struct {
	ID              string                 `json:"id"`
	UserID          *string                `json:"user_id"`
	OrderNumber     string                 `json:"order_number"`
	Items           []OrderItemRecord      `json:"items"`
	Subtotal        float64                `json:"subtotal"`
	ShippingCost    float64                `json:"shipping_cost"`
	TaxAmount       float64                `json:"tax_amount"`
	TotalAmount     float64                `json:"total_amount"`
	Status          string                 `json:"status"`
	PaymentStatus   string                 `json:"payment_status"`
	ShippingAddress models.ShippingAddress `json:"shipping_address"`
	PaymentMethod   string                 `json:"payment_method"`
	Notes           string                 `json:"notes"`
	CreatedAt       string                 `json:"created_at"`
	UpdatedAt       string                 `json:"updated_at"`
}

type PaymentRecord struct {
	ID             string                 `json:"id"`
	OrderID        string                 `json:"order_id"`
	UserID         *string                `json:"user_id"`
	Amount         float64                `json:"amount"`
	Currency       string                 `json:"currency"`
	PaymentMethod  string                 `json:"payment_method"`
	Status         string                 `json:"status"`
	TransactionID  string                 `json:"transaction_id"`
	PaymentDetails map[string]interface{} `json:"payment_details"`
	CreatedAt      string                 `json:"created_at"`
	UpdatedAt      string                 `json:"updated_at"`
}

type SliderRecord struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Description string `json:"description"`
	Img         string `json:"img"`
	Link        string `json:"link"`
	Status      string `json:"status"`
	Order       int    `json:"order"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type AddressRecord struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	AddressType string `json:"address_type"`
	Label       string `json:"label"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Company     string `json:"company"`
	Line1       string `json:"address_line1"`
	Line2       string `json:"address_line2"`
	City        string `json:"city"`
	State       string `json:"state"`
	Country     string `json:"country"`
	PostalCode  string `json:"postal_code"`
	Phone       string `json:"phone"`
	IsDefault   bool   `json:"is_default"`
	IsActive    bool   `json:"is_active"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type FAQRecord struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Category string   `json:"category"`
	Keywords []string `json:"keywords"`
	Order    int      `json:"order"`
	IsActive bool     `json:"is_active"`
}

// mainImage picks the display image: the first local space-free path wins;
// failing that the first image with spaces percent-encoded; empty when the
// product has no images. Absolute URLs are never rewritten.
func mainImage(images []string) string {
	if len(images) == 0 {
		return ""
	}
	for _, img := range images {
		if !strings.Contains(img, "://") && !strings.Contains(img, " ") {
			return img
		}
	}
	return strings.ReplaceAll(images[0], " ", "%20")
}

// cleanImages trims entries and drops empty ones so the first element is a
// usable reference.
func cleanImages(images []string) []string {
	out := make([]string, 0, len(images))
	for _, img := range images {
		if trimmed := strings.TrimSpace(img); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func hexOrNil(id *primitive.ObjectID) *string {
	if id == nil || id.IsZero() {
		return nil
	}
	hex := id.Hex()
	return &hex
}

func formatProduct(p models.Product) ProductRecord {
	images := cleanImages(p.Images)
	tags := p.Tags
	if tags == nil {
		tags = make([]string, 0)
	}
	return ProductRecord{
		ID:           p.ID.Hex(),
		Name:         p.Name,
		Slug:         p.Slug,
		Description:  p.Description,
		Price:        p.Price,
		ComparePrice: p.ComparePrice,
		SKU:          p.SKU,
		Quantity:     p.Quantity,
		IsAvailable:  p.IsAvailable,
		CategoryID:   hexOrNil(p.CategoryID),
		Tags:         tags,
		Images:       images,
		MainImage:    mainImage(images),
		CreatedAt:    formatTime(p.CreatedAt),
		UpdatedAt:    formatTime(p.UpdatedAt),
	}
}

func formatCategory(c models.Category) CategoryRecord {
	return CategoryRecord{
		ID:          c.ID.Hex(),
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		Image:       c.Image,
		ParentID:    hexOrNil(c.ParentID),
		IsActive:    c.IsActive,
		SortOrder:   c.SortOrder,
		CreatedAt:   formatTime(c.CreatedAt),
		UpdatedAt:   formatTime(c.UpdatedAt),
	}
}

func formatOrder(o models.Order) OrderRecord {
	items := make([]OrderItemRecord, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemRecord{
			ProductID: it.ProductID.Hex(),
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  it.Quantity,
			Image:     it.Image,
		})
	}
	return OrderRecord{
		ID:              o.ID.Hex(),
		UserID:          hexOrNil(o.UserID),
		OrderNumber:     o.OrderNumber,
		Items:           items,
		Subtotal:        o.Subtotal,
		ShippingCost:    o.ShippingCost,
		TaxAmount:       o.TaxAmount,
		TotalAmount:     o.TotalAmount,
		Status:          o.Status,
		PaymentStatus:   o.PaymentStatus,
		ShippingAddress: o.ShippingAddress,
		PaymentMethod:   o.PaymentMethod,
		Notes:           o.Notes,
		CreatedAt:       formatTime(o.CreatedAt),
		UpdatedAt:       formatTime(o.UpdatedAt),
	}
}

func formatPayment(p models.Payment) PaymentRecord {
	details := map[string]interface{}(p.PaymentDetails)
	if details == nil {
		details = map[string]interface{}{}
	}
	return PaymentRecord{
		ID:             p.ID.Hex(),
		OrderID:        p.OrderID.Hex(),
		UserID:         hexOrNil(p.UserID),
		Amount:         p.Amount,
		Currency:       p.Currency,
		PaymentMethod:  p.PaymentMethod,
		Status:         p.Status,
		TransactionID:  p.TransactionID,
		PaymentDetails: details,
		CreatedAt:      formatTime(p.CreatedAt),
		UpdatedAt:      formatTime(p.UpdatedAt),
	}
}

func formatSlider(sl models.Slider) SliderRecord {
	return SliderRecord{
		ID:          sl.ID.Hex(),
		Title:       sl.Title,
		Subtitle:    sl.Subtitle,
		Description: sl.Description,
		Img:         sl.Img,
		Link:        sl.Link,
		Status:      sl.Status,
		Order:       sl.Order,
		CreatedAt:   formatTime(sl.CreatedAt),
		UpdatedAt:   formatTime(sl.UpdatedAt),
	}
}

func formatAddress(a models.Address) AddressRecord {
	return AddressRecord{
		ID:          a.ID.Hex(),
		UserID:      a.UserID.Hex(),
		AddressType: a.AddressType,
		Label:       a.Label,
		FirstName:   a.FirstName,
		LastName:    a.LastName,
		Company:     a.Company,
		Line1:       a.Line1,
		Line2:       a.Line2,
		City:        a.City,
		State:       a.State,
		Country:     a.Country,
		PostalCode:  a.PostalCode,
		Phone:       a.Phone,
		IsDefault:   a.IsDefault,
		IsActive:    a.IsActive,
		CreatedAt:   formatTime(a.CreatedAt),
		UpdatedAt:   formatTime(a.UpdatedAt),
	}
}

func formatFAQ(f models.FAQ) FAQRecord {
	keywords := f.Keywords
	if keywords == nil {
		keywords = make([]string, 0)
	}
	return FAQRecord{
		ID:       f.ID.Hex(),
		Question: f.Question,
		Answer:   f.Answer,
		Category: f.Category,
		Keywords: keywords,
		Order:    f.Order,
		IsActive: f.IsActive,
	}
}
