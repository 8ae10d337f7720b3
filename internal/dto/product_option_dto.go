package dto

type CreateProductOptionRequest struct {
	Category   string `json:"category"    validate:"required,max=50"`
	Label      string `json:"label"       validate:"required,max=120"`
	Value      string `json:"value"       validate:"required,max=120"`
	OrderIndex int    `json:"order_index" validate:"min=0"`
	IsActive   *bool  `json:"is_active"`
}

type UpdateProductOptionRequest struct {
	Category   *string `json:"category"    validate:"omitempty,max=50"`
	Label      *string `json:"label"       validate:"omitempty,max=120"`
	Value      *string `json:"value"       validate:"omitempty,max=120"`
	OrderIndex *int    `json:"order_index" validate:"omitempty,min=0"`
	IsActive   *bool   `json:"is_active"`
}

type ProductOptionResponse struct {
	ID         string `json:"id"`
	Category   string `json:"category"`
	Label      string `json:"label"`
	Value      string `json:"value"`
	OrderIndex int    `json:"order_index"`
	IsActive   bool   `json:"is_active"`
}

// ProductOptionsByCategory is the public shape: category → ordered options.
type ProductOptionsByCategory map[string][]ProductOptionResponse
