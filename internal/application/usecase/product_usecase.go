package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/likeus-api/internal/application/dto"
	"github.com/jhoicas/likeus-api/internal/domain"
	"github.com/jhoicas/likeus-api/internal/domain/entity"
	"github.com/jhoicas/likeus-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD del catálogo de camisetas.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un producto nuevo: asigna ID (uuid) y timestamps de servidor.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*entity.Product, error) {
	if in.Name == "" || !in.Price.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	if in.Stock < 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now().UTC()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Images:      in.Images,
		Colors:      in.Colors,
		Sizes:       in.Sizes,
		Category:    in.Category,
		Featured:    in.Featured,
		BestSeller:  in.BestSeller,
		IsNew:       in.IsNew,
		Stock:       in.Stock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetByID obtiene un producto. Devuelve (nil, nil) si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return uc.repo.GetByID(ctx, id)
}

// List lista productos según el filtro (AND entre criterios).
func (uc *ProductUseCase) List(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	return uc.repo.List(ctx, filter)
}

// Update aplica un parche parcial y estampa updatedAt.
// Devuelve el conteo modificado: 0 si el producto no existe.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (int64, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if product == nil {
		return 0, nil
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		if !in.Price.IsPositive() {
			return 0, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	if in.Images != nil {
		product.Images = in.Images
	}
	if in.Colors != nil {
		product.Colors = in.Colors
	}
	if in.Sizes != nil {
		product.Sizes = in.Sizes
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.Featured != nil {
		product.Featured = *in.Featured
	}
	if in.BestSeller != nil {
		product.BestSeller = *in.BestSeller
	}
	if in.IsNew != nil {
		product.IsNew = *in.IsNew
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			return 0, domain.ErrInvalidInput
		}
		product.Stock = *in.Stock
	}
	product.UpdatedAt = time.Now().UTC()
	return uc.repo.Update(ctx, product)
}

// Delete elimina un producto. Devuelve el conteo eliminado (0 si no existía).
func (uc *ProductUseCase) Delete(ctx context.Context, id string) (int64, error) {
	return uc.repo.Delete(ctx, id)
}
