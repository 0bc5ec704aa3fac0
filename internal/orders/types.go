package orders

// Order statuses
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusShipped   = "shipped"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// keyPrefix namespaces order items in the table. Other entity types can
// share the table under their own prefix.
const keyPrefix = "ORDER#"

// orderKey derives the partition key for an order id.
func orderKey(id string) string {
	return keyPrefix + id
}

// Order represents the item stored in the orders DynamoDB table.
// PK is the storage key (ORDER#<id>) and is stripped before the record is
// returned to API clients. Timestamps are RFC3339 strings.
type Order struct {
	PK              string  `dynamodbav:"pk" json:"-"`
	ID              string  `dynamodbav:"id" json:"id"`
	CustomerName    string  `dynamodbav:"customerName" json:"customerName"`
	CustomerEmail   string  `dynamodbav:"customerEmail" json:"customerEmail"`
	ProductName     string  `dynamodbav:"productName" json:"productName"`
	Quantity        int     `dynamodbav:"quantity" json:"quantity"`
	UnitPrice       float64 `dynamodbav:"unitPrice" json:"unitPrice"`
	TotalPrice      float64 `dynamodbav:"totalPrice" json:"totalPrice"`
	Status          string  `dynamodbav:"status" json:"status"`
	ShippingAddress string  `dynamodbav:"shippingAddress,omitempty" json:"shippingAddress,omitempty"`
	PDFFileName     string  `dynamodbav:"pdfFileName,omitempty" json:"pdfFileName,omitempty"`
	PDFFilePath     string  `dynamodbav:"pdfFilePath,omitempty" json:"pdfFilePath,omitempty"`
	PDFFileSize     int64   `dynamodbav:"pdfFileSize,omitempty" json:"pdfFileSize,omitempty"`
	CreatedAt       string  `dynamodbav:"createdAt" json:"createdAt"`
	UpdatedAt       string  `dynamodbav:"updatedAt" json:"updatedAt"`
}
