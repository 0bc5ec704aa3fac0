package validation

// CreateOrderRequest is the payload for POST /orders.
type CreateOrderRequest struct {
	CustomerName    string  `json:"customerName" validate:"required"`
	CustomerEmail   string  `json:"customerEmail" validate:"required,email"`
	ProductName     string  `json:"productName" validate:"required"`
	Quantity        int     `json:"quantity" validate:"required,min=1"`
	UnitPrice       float64 `json:"unitPrice" validate:"min=0"`
	Status          string  `json:"status,omitempty" validate:"omitempty,oneof=pending confirmed shipped delivered cancelled"`
	ShippingAddress string  `json:"shippingAddress,omitempty"`
}

// UpdateOrderRequest is the payload for PATCH /orders/:id. Only supplied
// fields are applied; nil pointers mean "leave unchanged". omitnil (not
// omitempty) so that supplied zero values are still validated.
type UpdateOrderRequest struct {
	CustomerName    *string  `json:"customerName,omitempty" validate:"omitnil,min=1"`
	CustomerEmail   *string  `json:"customerEmail,omitempty" validate:"omitnil,email"`
	ProductName     *string  `json:"productName,omitempty" validate:"omitnil,min=1"`
	Quantity        *int     `json:"quantity,omitempty" validate:"omitnil,min=1"`
	UnitPrice       *float64 `json:"unitPrice,omitempty" validate:"omitnil,min=0"`
	Status          *string  `json:"status,omitempty" validate:"omitnil,oneof=pending confirmed shipped delivered cancelled"`
	ShippingAddress *string  `json:"shippingAddress,omitempty"`
	PDFFileName     *string  `json:"pdfFileName,omitempty"`
	PDFFilePath     *string  `json:"pdfFilePath,omitempty"`
	PDFFileSize     *int64   `json:"pdfFileSize,omitempty" validate:"omitnil,min=0"`
}
