package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/medsupply/orders-api/internal/aws"
)

// CreateInput carries the caller-supplied fields for a new order.
// Validation (email shape, quantity >= 1, known status) happens at the
// HTTP boundary before this type is constructed.
type CreateInput struct {
	CustomerName    string
	CustomerEmail   string
	ProductName     string
	Quantity        int
	UnitPrice       float64
	Status          string
	ShippingAddress string
}

// Service layers business rules on the Store: id generation, defaults,
// derived totals, and timestamps.
type Service struct {
	store   *Store
	metrics *aws.Metrics
	logger  *zap.Logger
	nowFunc func() time.Time
}

// NewService creates the order domain service. metrics may be nil.
func NewService(store *Store, metrics *aws.Metrics, logger *zap.Logger) *Service {
	return &Service{
		store:   store,
		metrics: metrics,
		logger:  logger,
		nowFunc: time.Now,
	}
}

// Create stores a new order with a fresh id, defaulted status, computed
// total, and createdAt == updatedAt.
func (s *Service) Create(ctx context.Context, input CreateInput) (*Order, error) {
	status := input.Status
	if status == "" {
		status = StatusPending
	}
	now := s.nowFunc().UTC().Format(time.RFC3339)

	order := Order{
		ID:              uuid.NewString(),
		CustomerName:    input.CustomerName,
		CustomerEmail:   input.CustomerEmail,
		ProductName:     input.ProductName,
		Quantity:        input.Quantity,
		UnitPrice:       input.UnitPrice,
		TotalPrice:      float64(input.Quantity) * input.UnitPrice,
		Status:          status,
		ShippingAddress: input.ShippingAddress,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	stored, err := s.store.Put(ctx, order)
	if err != nil {
		return nil, err
	}

	s.logger.Info("order created",
		zap.String("order_id", stored.ID),
		zap.Float64("total_price", stored.TotalPrice))
	s.metrics.Count(ctx, aws.MetricOrdersCreated, 1)
	return stored, nil
}

// FindAll returns every stored order.
func (s *Service) FindAll(ctx context.Context) ([]Order, error) {
	return s.store.List(ctx)
}

// FindOne returns the order or ErrNotFound.
func (s *Service) FindOne(ctx context.Context, id string) (*Order, error) {
	return s.store.Get(ctx, id)
}

// Update applies a partial update. When quantity or unitPrice changes,
// the total is recomputed from the new value where supplied and the
// stored value otherwise; the read exists only for that recomputation —
// the mutation itself is a single conditional write.
func (s *Service) Update(ctx context.Context, id string, patch Patch) (*Order, error) {
	if patch.Quantity != nil || patch.UnitPrice != nil {
		existing, err := s.store.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		quantity := existing.Quantity
		if patch.Quantity != nil {
			quantity = *patch.Quantity
		}
		unitPrice := existing.UnitPrice
		if patch.UnitPrice != nil {
			unitPrice = *patch.UnitPrice
		}
		total := float64(quantity) * unitPrice
		patch.TotalPrice = &total
	}

	return s.store.PartialUpdate(ctx, id, patch)
}

// Remove hard-deletes the order. ErrNotFound if the id is unknown.
func (s *Service) Remove(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}
