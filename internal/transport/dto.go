package transport

import (
	"time"

	"github.com/dustin/go-humanize"

	"github.com/Skotchmaster/coffee_shop/internal/cart"
	"github.com/Skotchmaster/coffee_shop/internal/catalog"
	"github.com/Skotchmaster/coffee_shop/internal/identity"
	"github.com/Skotchmaster/coffee_shop/internal/models"
	"github.com/Skotchmaster/coffee_shop/internal/service"
)

type AuthRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	State  identity.State `json:"state"`
	UserID uint           `json:"user_id,omitempty"`
	Email  string         `json:"email,omitempty"`
}

type AddItemRequest struct {
	ProductID int `json:"product_id"`
}

type SetQuantityRequest struct {
	Quantity *int `json:"quantity"`
}

type CheckoutRequest struct {
	PaymentMethod string `json:"payment_method"`
}

type ProfilePatch struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	ImageURI *string `json:"image_uri"`
}

func (p ProfilePatch) Fields() map[string]string {
	out := map[string]string{}
	set := func(k string, v *string) {
		if v != nil {
			out[k] = *v
		}
	}
	set(service.FieldName, p.Name)
	set(service.FieldEmail, p.Email)
	set(service.FieldPhone, p.Phone)
	set(service.FieldImageURI, p.ImageURI)
	return out
}

type Product struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Price       string  `json:"price"`
	Rating      float32 `json:"rating"`
	Image       string  `json:"image"`
	Temperature string  `json:"temperature"`
}

func FromProduct(p catalog.Product) Product {
	return Product{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price.StringFixed(2),
		Rating:      p.Rating,
		Image:       p.Image,
		Temperature: p.Temperature.String(),
	}
}

func FromProducts(ps []catalog.Product) []Product {
	out := make([]Product, 0, len(ps))
	for _, p := range ps {
		out = append(out, FromProduct(p))
	}
	return out
}

type CartLine struct {
	ProductID int    `json:"product_id"`
	Name      string `json:"name"`
	Image     string `json:"image"`
	UnitPrice string `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	LineTotal string `json:"line_total"`
}

type Cart struct {
	Items      []CartLine `json:"items"`
	TotalItems int        `json:"total_items"`
	TotalPrice string     `json:"total_price"`
}

func FromCart(v service.CartView) Cart {
	items := make([]CartLine, 0, len(v.Lines))
	for _, l := range v.Lines {
		items = append(items, fromLine(l))
	}
	return Cart{Items: items, TotalItems: v.TotalItems, TotalPrice: v.TotalPrice.StringFixed(2)}
}

func fromLine(l cart.Line) CartLine {
	return CartLine{
		ProductID: l.Product.ID,
		Name:      l.Product.Name,
		Image:     l.Product.Image,
		UnitPrice: l.Product.Price.StringFixed(2),
		Quantity:  l.Quantity,
		LineTotal: l.Total().StringFixed(2),
	}
}

type OrderItem struct {
	ProductID int    `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	LineTotal string `json:"line_total"`
}

type Order struct {
	ID            uint        `json:"id"`
	Status        string      `json:"status"`
	PaymentMethod string      `json:"payment_method"`
	Total         string      `json:"total"`
	CreatedAt     time.Time   `json:"created_at"`
	Items         []OrderItem `json:"items"`
}

func FromOrder(o models.Order) Order {
	items := make([]OrderItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			UnitPrice: it.UnitPrice.StringFixed(2),
			Quantity:  it.Quantity,
			LineTotal: it.LineTotal.StringFixed(2),
		})
	}
	return Order{
		ID:            o.ID,
		Status:        o.Status,
		PaymentMethod: o.PaymentMethod,
		Total:         o.Total.StringFixed(2),
		CreatedAt:     o.CreatedAt,
		Items:         items,
	}
}

type OrderList struct {
	Items []Order `json:"items"`
	Total int64   `json:"total"`
	Page  int     `json:"page"`
	Size  int     `json:"size"`
}

type Notification struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
	Time      string    `json:"time"`
}

type NotificationList struct {
	Items  []Notification `json:"items"`
	Total  int64          `json:"total"`
	Unread int64          `json:"unread"`
	Page   int            `json:"page"`
	Size   int            `json:"size"`
}

// FromNotifications renders the relative time against now, e.g. "2 minutes ago".
func FromNotifications(p *service.NotificationPage, now time.Time) NotificationList {
	items := make([]Notification, 0, len(p.Items))
	for _, n := range p.Items {
		items = append(items, Notification{
			ID:        n.ID,
			Title:     n.Title,
			Message:   n.Message,
			Type:      string(n.Type),
			Read:      n.Read,
			CreatedAt: n.CreatedAt,
			Time:      humanize.RelTime(n.CreatedAt, now, "ago", "from now"),
		})
	}
	return NotificationList{Items: items, Total: p.Total, Unread: p.Unread, Page: p.Page, Size: p.Size}
}

type SearchResult struct {
	Items []Product `json:"items"`
	Total int64     `json:"total"`
	Page  int       `json:"page"`
	Size  int       `json:"size"`
}
