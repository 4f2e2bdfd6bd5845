package dto

import "github.com/shopspring/decimal"

// CreateProductRequest alta de producto (admin).
type CreateProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Images      []string        `json:"images"`
	Colors      []string        `json:"colors"`
	Sizes       []string        `json:"sizes"`
	Category    string          `json:"category"`
	Featured    bool            `json:"featured"`
	BestSeller  bool            `json:"bestSeller"`
	IsNew       bool            `json:"new"`
	Stock       int             `json:"stock"`
}

// UpdateProductRequest parche parcial de producto. Los punteros distinguen
// "no tocar" de "poner en cero"; cualquier campo fuera de este contrato se
// rechaza en el parseo en lugar de reenviarse a la base de datos.
type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Images      []string         `json:"images"`
	Colors      []string         `json:"colors"`
	Sizes       []string         `json:"sizes"`
	Category    *string          `json:"category"`
	Featured    *bool            `json:"featured"`
	BestSeller  *bool            `json:"bestSeller"`
	IsNew       *bool            `json:"new"`
	Stock       *int             `json:"stock"`
}
