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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre MongoDB.
type ProductRepo struct {
	coll *mongo.Collection
}

// NewProductRepository construye el adaptador de persistencia para productos.
func NewProductRepository(db *mongo.Database) *ProductRepo {
	return &ProductRepo{coll: db.Collection("products")}
}

type productDoc struct {
	ID          string    `bson:"_id"`
	Name        string    `bson:"name"`
	Description string    `bson:"description"`
	Price       string    `bson:"price"`
	Images      []string  `bson:"images"`
	Colors      []string  `bson:"colors"`
	Sizes       []string  `bson:"sizes"`
	Category    string    `bson:"category"`
	Featured    bool      `bson:"featured"`
	BestSeller  bool      `bson:"bestSeller"`
	IsNew       bool      `bson:"new"`
	Stock       int       `bson:"stock"`
	CreatedAt   time.Time `bson:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt"`
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	if _, err := r.coll.InsertOne(ctx, toProductDoc(product)); err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID. Devuelve (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var doc productDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return fromProductDoc(&doc), nil
}

// List lista productos aplicando el filtro con semántica AND.
func (r *ProductRepo) List(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Featured != nil {
		query["featured"] = *filter.Featured
	}
	if filter.BestSeller != nil {
		query["bestSeller"] = *filter.BestSeller
	}
	if filter.IsNew != nil {
		query["new"] = *filter.IsNew
	}
	if filter.UpdatedAfter != nil {
		query["updatedAt"] = bson.M{"$gt": *filter.UpdatedAfter}
	}
	cursor, err := r.coll.Find(ctx, query, options.Find())
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []productDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	products := make([]*entity.Product, 0, len(docs))
	for i := range docs {
		products = append(products, fromProductDoc(&docs[i]))
	}
	return products, nil
}

// Update reemplaza los campos mutables del producto. Devuelve el conteo modificado (0 o 1).
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) (int64, error) {
	update := bson.M{"$set": bson.M{
		"name":        product.Name,
		"description": product.Description,
		"price":       decToStr(product.Price),
		"images":      product.Images,
		"colors":      product.Colors,
		"sizes":       product.Sizes,
		"category":    product.Category,
		"featured":    product.Featured,
		"bestSeller":  product.BestSeller,
		"new":         product.IsNew,
		"stock":       product.Stock,
		"updatedAt":   product.UpdatedAt,
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": product.ID}, update)
	if err != nil {
		return 0, fmt.Errorf("update product: %w", err)
	}
	return res.ModifiedCount, nil
}

// Delete elimina el producto. Devuelve el conteo eliminado (0 o 1).
func (r *ProductRepo) Delete(ctx context.Context, id string) (int64, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, fmt.Errorf("delete product: %w", err)
	}
	return res.DeletedCount, nil
}

func toProductDoc(p *entity.Product) *productDoc {
	return &productDoc{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       decToStr(p.Price),
		Images:      p.Images,
		Colors:      p.Colors,
		Sizes:       p.Sizes,
		Category:    p.Category,
		Featured:    p.Featured,
		BestSeller:  p.BestSeller,
		IsNew:       p.IsNew,
		Stock:       p.Stock,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func fromProductDoc(d *productDoc) *entity.Product {
	return &entity.Product{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Price:       strToDec(d.Price),
		Images:      d.Images,
		Colors:      d.Colors,
		Sizes:       d.Sizes,
		Category:    d.Category,
		Featured:    d.Featured,
		BestSeller:  d.BestSeller,
		IsNew:       d.IsNew,
		Stock:       d.Stock,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}
