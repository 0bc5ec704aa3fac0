package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
	"go.uber.org/zap"

	"github.com/medsupply/orders-api/internal/aws"
)

// ErrNotFound indicates the requested order id has no stored item.
var ErrNotFound = errors.New("order not found")

// Store encapsulates operations on the orders table.
type Store struct {
	client    aws.DynamoDBAPI
	tableName string
	logger    *zap.Logger
	nowFunc   func() time.Time
}

// NewStore creates a new orders Store.
func NewStore(client aws.DynamoDBAPI, tableName string, logger *zap.Logger) *Store {
	return &Store{
		client:    client,
		tableName: tableName,
		logger:    logger,
		nowFunc:   time.Now,
	}
}

// Put writes the full order item under its derived key, overwriting any
// existing item. Last writer wins; there is no conditional guard.
func (s *Store) Put(ctx context.Context, order Order) (*Order, error) {
	order.PK = orderKey(order.ID)

	item, err := attributevalue.MarshalMap(order)
	if err != nil {
		return nil, fmt.Errorf("marshal order: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dyn.PutItemInput{
		TableName: &s.tableName,
		Item:      item,
	})
	if err != nil {
		return nil, fmt.Errorf("put item: %w", err)
	}

	s.logger.Info("order stored", zap.String("order_id", order.ID))
	return &order, nil
}

// Get fetches an order by id. Returns ErrNotFound for a missing key; a
// missing item is never a raw client error.
func (s *Store) Get(ctx context.Context, id string) (*Order, error) {
	out, err := s.client.GetItem(ctx, &dyn.GetItemInput{
		TableName: &s.tableName,
		Key:       s.key(id),
	})
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, ErrNotFound
	}
	var o Order
	if err := attributevalue.UnmarshalMap(out.Item, &o); err != nil {
		return nil, fmt.Errorf("unmarshal order: %w", err)
	}
	return &o, nil
}

// List returns every order in the table namespace in a single response.
// The table is assumed bounded; pagination is deliberately not supported.
func (s *Store) List(ctx context.Context) ([]Order, error) {
	out, err := s.client.Scan(ctx, &dyn.ScanInput{
		TableName:        &s.tableName,
		FilterExpression: awsString("begins_with(pk, :prefix)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":prefix": &types.AttributeValueMemberS{Value: keyPrefix},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("scan orders: %w", err)
	}

	result := make([]Order, 0, len(out.Items))
	for _, item := range out.Items {
		var o Order
		if err := attributevalue.UnmarshalMap(item, &o); err != nil {
			return nil, fmt.Errorf("unmarshal order: %w", err)
		}
		result = append(result, o)
	}
	return result, nil
}

// PartialUpdate applies the patch to an existing order in a single
// conditional UpdateItem. The attribute_exists(pk) condition replaces a
// separate existence read, so a concurrent delete cannot slip between
// check and write. updatedAt is always set. Returns the fully merged
// record; ErrNotFound if the id has no item.
func (s *Store) PartialUpdate(ctx context.Context, id string, patch Patch) (*Order, error) {
	fields, values, err := patch.marshalFields()
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(fields)+1)
	exprParts := make([]string, 0, len(fields)+1)
	for i, f := range fields {
		name := fmt.Sprintf("#f%d", i)
		names[name] = f.attr
		exprParts = append(exprParts, fmt.Sprintf("%s = :v%d", name, i))
	}

	// Always advance updatedAt, even for an empty patch.
	names["#updatedAt"] = "updatedAt"
	values[":updatedAt"] = &types.AttributeValueMemberS{Value: s.nowFunc().UTC().Format(time.RFC3339)}
	exprParts = append(exprParts, "#updatedAt = :updatedAt")

	out, err := s.client.UpdateItem(ctx, &dyn.UpdateItemInput{
		TableName:                 &s.tableName,
		Key:                       s.key(id),
		UpdateExpression:          awsString("SET " + strings.Join(exprParts, ", ")),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		ConditionExpression:       awsString("attribute_exists(pk)"),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update item: %w", err)
	}

	var o Order
	if err := attributevalue.UnmarshalMap(out.Attributes, &o); err != nil {
		return nil, fmt.Errorf("unmarshal updated order: %w", err)
	}
	s.logger.Info("order updated", zap.String("order_id", id))
	return &o, nil
}

// Delete removes the order item. The attribute_exists(pk) condition makes
// the existence check atomic with the delete; ErrNotFound if absent.
func (s *Store) Delete(ctx context.Context, id string) error {
	_, err := s.client.DeleteItem(ctx, &dyn.DeleteItemInput{
		TableName:           &s.tableName,
		Key:                 s.key(id),
		ConditionExpression: awsString("attribute_exists(pk)"),
	})
	if err != nil {
		if isConditionalCheckFailed(err) {
			return ErrNotFound
		}
		return fmt.Errorf("delete item: %w", err)
	}
	s.logger.Info("order deleted", zap.String("order_id", id))
	return nil
}

func (s *Store) key(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"pk": &types.AttributeValueMemberS{Value: orderKey(id)},
	}
}

func isConditionalCheckFailed(err error) bool {
	var ccf *types.ConditionalCheckFailedException
	if errors.As(err, &ccf) {
		return true
	}
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == "ConditionalCheckFailedException"
}

func awsString(s string) *string { return &s }
