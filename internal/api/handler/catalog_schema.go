package handler

// errorResponse is the standard error envelope returned on 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Category request types ---

type categoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// categoryPatchRequest uses pointers so absent fields are left unchanged.
type categoryPatchRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// --- Product request types ---

// Price and Stock are pointers so that a legitimate zero value can be told
// apart from an omitted field.
type productRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Stock       *int     `json:"stock" validate:"required,gte=0"`
	CategoryID  string   `json:"category_id" validate:"required"`
}

// productUpdateRequest is the PUT body. Unlike create, category_id may be
// omitted: the existing reference is kept.
type productUpdateRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Stock       *int     `json:"stock" validate:"required,gte=0"`
	CategoryID  string   `json:"category_id"`
}

type productPatchRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
	CategoryID  *string  `json:"category_id"`
}
