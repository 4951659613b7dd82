package dto

// CartAddRequest adds one unit of a product to the cart
type CartAddRequest struct {
	ProductID uint64 `json:"product_id"`
}

// CartUpdateRequest sets the quantity of an existing cart line
type CartUpdateRequest struct {
	ProductID uint64  `json:"product_id"`
	Quantity  *uint32 `json:"quantity"`
}

// CartRemoveRequest removes a cart line
type CartRemoveRequest struct {
	ProductID uint64 `json:"product_id"`
}

// CartItemDTO is one priced cart line
type CartItemDTO struct {
	ProductID uint64 `json:"product_id"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	Quantity  uint32 `json:"quantity"`
	LineTotal string `json:"line_total"`
}

// CartItemsResponse is the cart view returned to the client
type CartItemsResponse struct {
	Items []CartItemDTO `json:"items"`
	Total string        `json:"total"`
}

// CartMutationResponse acknowledges a cart change
type CartMutationResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
