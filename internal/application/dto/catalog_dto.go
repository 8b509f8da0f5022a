package dto

// CatalogItemDTO ítem activo de clasificaciones o instancias.
type CatalogItemDTO struct {
	ID     string `json:"id"`
	Nombre string `json:"nombre"`
}

// CreateCatalogItemRequest alta de ítem de catálogo.
type CreateCatalogItemRequest struct {
	Nombre string `json:"nombre" validate:"required,max=200"`
}
