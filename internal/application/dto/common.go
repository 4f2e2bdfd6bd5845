package dto

// ErrorResponse cuerpo de error HTTP. El contrato de la API es {"error": "..."}.
type ErrorResponse struct {
	Error string `json:"error"`
}

// UpdateResult resultado de un PATCH: cuántos documentos se modificaron (0 o 1).
type UpdateResult struct {
	ModifiedCount int64 `json:"modifiedCount"`
}

// DeleteResult resultado de un DELETE: cuántos documentos se eliminaron (0 o 1).
type DeleteResult struct {
	DeletedCount int64 `json:"deletedCount"`
}
