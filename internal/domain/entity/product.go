package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa una camiseta del catálogo.
// Price usa decimal para que los totales del carrito y de las órdenes
// sean exactos (sin acumulación de error binario).
type Product struct {
	ID          string          `json:"_id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Images      []string        `json:"images"`
	Colors      []string        `json:"colors"` // códigos hex, ej. "#000000"
	Sizes       []string        `json:"sizes"`  // "S", "M", "L", ...
	Category    string          `json:"category"`
	Featured    bool            `json:"featured"`
	BestSeller  bool            `json:"bestSeller"`
	IsNew       bool            `json:"new"`
	Stock       int             `json:"stock"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
