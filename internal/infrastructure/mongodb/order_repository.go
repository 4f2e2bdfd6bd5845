package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/likeus-api/internal/domain/entity"
	"github.com/jhoicas/likeus-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación del puerto OrderRepository sobre MongoDB.
type OrderRepo struct {
	coll *mongo.Collection
}

// NewOrderRepository construye el adaptador de persistencia para órdenes.
func NewOrderRepository(db *mongo.Database) *OrderRepo {
	return &OrderRepo{coll: db.Collection("orders")}
}

type orderItemDoc struct {
	ProductID string `bson:"productId"`
	Quantity  int    `bson:"quantity"`
	Color     string `bson:"color"`
	Size      string `bson:"size"`
	Price     string `bson:"price"`
	Name      string `bson:"name"`
	Image     string `bson:"image"`
}

type addressDoc struct {
	FirstName  string `bson:"firstName"`
	LastName   string `bson:"lastName"`
	Address1   string `bson:"address1"`
	Address2   string `bson:"address2,omitempty"`
	City       string `bson:"city"`
	State      string `bson:"state"`
	PostalCode string `bson:"postalCode"`
	Country    string `bson:"country"`
	Phone      string `bson:"phone"`
}

type orderDoc struct {
	ID              string         `bson:"_id"`
	UserID          string         `bson:"userId"`
	Items           []orderItemDoc `bson:"items"`
	Total           string         `bson:"total"`
	Status          string         `bson:"status"`
	ShippingAddress addressDoc     `bson:"shippingAddress"`
	PaymentMethod   string         `bson:"paymentMethod"`
	PaymentStatus   string         `bson:"paymentStatus"`
	PaymentIntentID string         `bson:"paymentIntentId,omitempty"`
	CreatedAt       time.Time      `bson:"createdAt"`
	UpdatedAt       time.Time      `bson:"updatedAt"`
}

// Create persiste una nueva orden.
func (r *OrderRepo) Create(ctx context.Context, order *entity.Order) error {
	if _, err := r.coll.InsertOne(ctx, toOrderDoc(order)); err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByID obtiene una orden por ID. Devuelve (nil, nil) si no existe.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	var doc orderDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return fromOrderDoc(&doc), nil
}

// List lista órdenes con el filtro dado, ordenadas por createdAt descendente.
func (r *OrderRepo) List(ctx context.Context, filter repository.OrderFilter) ([]*entity.Order, error) {
	query := bson.M{}
	if filter.UserID != "" {
		query["userId"] = filter.UserID
	}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.UpdatedAfter != nil {
		query["updatedAt"] = bson.M{"$gt": *filter.UpdatedAfter}
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []orderDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	orders := make([]*entity.Order, 0, len(docs))
	for i := range docs {
		orders = append(orders, fromOrderDoc(&docs[i]))
	}
	return orders, nil
}

// Update reemplaza los campos mutables de la orden. Devuelve el conteo modificado (0 o 1).
func (r *OrderRepo) Update(ctx context.Context, order *entity.Order) (int64, error) {
	update := bson.M{"$set": bson.M{
		"status":        order.Status,
		"paymentStatus": order.PaymentStatus,
		"updatedAt":     order.UpdatedAt,
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": order.ID}, update)
	if err != nil {
		return 0, fmt.Errorf("update order: %w", err)
	}
	return res.ModifiedCount, nil
}

func toOrderDoc(o *entity.Order) *orderDoc {
	items := make([]orderItemDoc, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, orderItemDoc{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Color:     it.Color,
			Size:      it.Size,
			Price:     decToStr(it.Price),
			Name:      it.Name,
			Image:     it.Image,
		})
	}
	return &orderDoc{
		ID:              o.ID,
		UserID:          o.UserID,
		Items:           items,
		Total:           decToStr(o.Total),
		Status:          o.Status,
		ShippingAddress: addressDoc(o.ShippingAddress),
		PaymentMethod:   o.PaymentMethod,
		PaymentStatus:   o.PaymentStatus,
		PaymentIntentID: o.PaymentIntentID,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

func fromOrderDoc(d *orderDoc) *entity.Order {
	items := make([]entity.OrderItem, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, entity.OrderItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Color:     it.Color,
			Size:      it.Size,
			Price:     strToDec(it.Price),
			Name:      it.Name,
			Image:     it.Image,
		})
	}
	return &entity.Order{
		ID:              d.ID,
		UserID:          d.UserID,
		Items:           items,
		Total:           strToDec(d.Total),
		Status:          d.Status,
		ShippingAddress: entity.ShippingAddress(d.ShippingAddress),
		PaymentMethod:   d.PaymentMethod,
		PaymentStatus:   d.PaymentStatus,
		PaymentIntentID: d.PaymentIntentID,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}
