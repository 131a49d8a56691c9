package mongodb

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

type userDoc struct {
	ID           string    `bson:"_id"`
	Name         string    `bson:"name"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"passwordHash"`
	IsAdmin      bool      `bson:"isAdmin"`
	CreatedAt    time.Time `bson:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt"`
}

type productDoc struct {
	ID          string               `bson:"_id"`
	Name        string               `bson:"name"`
	Description string               `bson:"description"`
	Price       primitive.Decimal128 `bson:"price"`
	Category    string               `bson:"category"`
	Currency    string               `bson:"currency"`
	Stock       int                  `bson:"stock"`
	Image       string               `bson:"image"`
	Images      []string             `bson:"images"`
	InStock     bool                 `bson:"inStock"`
	IsApproved  bool                 `bson:"isApproved"`
	CreatedBy   string               `bson:"createdBy,omitempty"`
	CreatedAt   time.Time            `bson:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt"`
}

type orderItemDoc struct {
	ID        string               `bson:"id"`
	ProductID string               `bson:"product"`
	Name      string               `bson:"name"`
	Quantity  int                  `bson:"quantity"`
	Price     primitive.Decimal128 `bson:"price"`
	Currency  string               `bson:"currency"`
}

type shippingDoc struct {
	Address    string `bson:"address"`
	City       string `bson:"city"`
	PostalCode string `bson:"postalCode"`
	Country    string `bson:"country"`
}

type orderDoc struct {
	ID              string               `bson:"_id"`
	UserID          string               `bson:"userId"`
	Items           []orderItemDoc       `bson:"orderItems"`
	ShippingAddress shippingDoc          `bson:"shippingAddress"`
	PaymentMethod   string               `bson:"paymentMethod"`
	PaymentStatus   string               `bson:"paymentStatus"`
	TotalPrice      primitive.Decimal128 `bson:"totalPrice"`
	OrderStatus     string               `bson:"orderStatus"`
	DeliveredAt     *time.Time           `bson:"deliveredAt,omitempty"`
	CreatedAt       time.Time            `bson:"createdAt"`
	UpdatedAt       time.Time            `bson:"updatedAt"`
}

func toDecimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	v, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		return primitive.Decimal128{}, fmt.Errorf("decimal %s: %w", d.String(), err)
	}
	return v, nil
}

func fromDecimal128(v primitive.Decimal128) decimal.Decimal {
	d, err := decimal.NewFromString(v.String())
	if err != nil {
		return decimal.Zero
	}
	return d
}

func userToDoc(u *entity.User) userDoc {
	return userDoc{
		ID: u.ID, Name: u.Name, Email: u.Email, PasswordHash: u.PasswordHash,
		IsAdmin: u.IsAdmin, CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt,
	}
}

func (d userDoc) toEntity() *entity.User {
	return &entity.User{
		ID: d.ID, Name: d.Name, Email: d.Email, PasswordHash: d.PasswordHash,
		IsAdmin: d.IsAdmin, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt,
	}
}

func productToDoc(p *entity.Product) (productDoc, error) {
	price, err := toDecimal128(p.Price)
	if err != nil {
		return productDoc{}, err
	}
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return productDoc{
		ID: p.ID, Name: p.Name, Description: p.Description, Price: price, Category: p.Category,
		Currency: p.Currency, Stock: p.Stock, Image: p.Image, Images: images, InStock: p.InStock,
		IsApproved: p.IsApproved, CreatedBy: p.CreatedBy, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt,
	}, nil
}

func (d productDoc) toEntity() *entity.Product {
	return &entity.Product{
		ID: d.ID, Name: d.Name, Description: d.Description, Price: fromDecimal128(d.Price), Category: d.Category,
		Currency: d.Currency, Stock: d.Stock, Image: d.Image, Images: d.Images, InStock: d.InStock,
		IsApproved: d.IsApproved, CreatedBy: d.CreatedBy, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt,
	}
}

func orderToDoc(o *entity.Order) (orderDoc, error) {
	total, err := toDecimal128(o.TotalPrice)
	if err != nil {
		return orderDoc{}, err
	}
	items := make([]orderItemDoc, 0, len(o.Items))
	for _, it := range o.Items {
		price, err := toDecimal128(it.Price)
		if err != nil {
			return orderDoc{}, err
		}
		items = append(items, orderItemDoc{
			ID: it.ID, ProductID: it.ProductID, Name: it.Name, Quantity: it.Quantity, Price: price, Currency: it.Currency,
		})
	}
	return orderDoc{
		ID:     o.ID,
		UserID: o.UserID,
		Items:  items,
		ShippingAddress: shippingDoc{
			Address: o.ShippingAddress.Address, City: o.ShippingAddress.City,
			PostalCode: o.ShippingAddress.PostalCode, Country: o.ShippingAddress.Country,
		},
		PaymentMethod: o.PaymentMethod,
		PaymentStatus: o.PaymentStatus,
		TotalPrice:    total,
		OrderStatus:   o.OrderStatus,
		DeliveredAt:   o.DeliveredAt,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}, nil
}

func (d orderDoc) toEntity() *entity.Order {
	items := make([]entity.OrderItem, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, entity.OrderItem{
			ID: it.ID, OrderID: d.ID, ProductID: it.ProductID, Name: it.Name,
			Quantity: it.Quantity, Price: fromDecimal128(it.Price), Currency: it.Currency,
		})
	}
	return &entity.Order{
		ID:     d.ID,
		UserID: d.UserID,
		Items:  items,
		ShippingAddress: entity.ShippingAddress{
			Address: d.ShippingAddress.Address, City: d.ShippingAddress.City,
			PostalCode: d.ShippingAddress.PostalCode, Country: d.ShippingAddress.Country,
		},
		PaymentMethod: d.PaymentMethod,
		PaymentStatus: d.PaymentStatus,
		TotalPrice:    fromDecimal128(d.TotalPrice),
		OrderStatus:   d.OrderStatus,
		DeliveredAt:   d.DeliveredAt,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}
