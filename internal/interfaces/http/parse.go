package http

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
)

// strictParse decodifica el body JSON rechazando campos desconocidos.
// Los parches parciales pasan por aquí: un campo fuera del contrato tipado
// es un 400, nunca se reenvía a la base de datos tal cual.
func strictParse(c *fiber.Ctx, out any) error {
	dec := json.NewDecoder(bytes.NewReader(c.Body()))
	dec.DisallowUnknownFields()
	return dec.Decode(out)
}

// queryBool devuelve nil si el parámetro no viene; de lo contrario true solo
// para el literal "true" (misma semántica que el backend original).
func queryBool(c *fiber.Ctx, name string) *bool {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v := raw == "true"
	return &v
}

// queryTime parsea un parámetro RFC3339 (ej. updatedAfter). nil si no viene.
func queryTime(c *fiber.Ctx, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
