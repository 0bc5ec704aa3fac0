package orders

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Patch enumerates the updatable fields of an order. Only non-nil fields
// are written. Identity and key attributes are not representable here, so
// a patch cannot overwrite them.
type Patch struct {
	CustomerName    *string
	CustomerEmail   *string
	ProductName     *string
	Quantity        *int
	UnitPrice       *float64
	TotalPrice      *float64
	Status          *string
	ShippingAddress *string
	PDFFileName     *string
	PDFFilePath     *string
	PDFFileSize     *int64
}

// fieldUpdate pairs a table attribute name with its new value.
type fieldUpdate struct {
	attr  string
	value any
}

// fields returns the set attributes in declaration order, which keeps the
// generated update expression deterministic.
func (p Patch) fields() []fieldUpdate {
	var out []fieldUpdate
	add := func(attr string, v any, set bool) {
		if set {
			out = append(out, fieldUpdate{attr: attr, value: v})
		}
	}
	add("customerName", ptrVal(p.CustomerName), p.CustomerName != nil)
	add("customerEmail", ptrVal(p.CustomerEmail), p.CustomerEmail != nil)
	add("productName", ptrVal(p.ProductName), p.ProductName != nil)
	add("quantity", ptrVal(p.Quantity), p.Quantity != nil)
	add("unitPrice", ptrVal(p.UnitPrice), p.UnitPrice != nil)
	add("totalPrice", ptrVal(p.TotalPrice), p.TotalPrice != nil)
	add("status", ptrVal(p.Status), p.Status != nil)
	add("shippingAddress", ptrVal(p.ShippingAddress), p.ShippingAddress != nil)
	add("pdfFileName", ptrVal(p.PDFFileName), p.PDFFileName != nil)
	add("pdfFilePath", ptrVal(p.PDFFilePath), p.PDFFilePath != nil)
	add("pdfFileSize", ptrVal(p.PDFFileSize), p.PDFFileSize != nil)
	return out
}

func ptrVal[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

// marshalFields converts the set fields to DynamoDB attribute values.
func (p Patch) marshalFields() ([]fieldUpdate, map[string]types.AttributeValue, error) {
	fields := p.fields()
	values := make(map[string]types.AttributeValue, len(fields))
	for i, f := range fields {
		av, err := attributevalue.Marshal(f.value)
		if err != nil {
			return nil, nil, fmt.Errorf("marshal %s: %w", f.attr, err)
		}
		values[fmt.Sprintf(":v%d", i)] = av
	}
	return fields, values, nil
}
