package orders

import (
	"context"
	"errors"
	"strings"
	"sync"

	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// mockDynamo is a small in-memory DynamoDB stand-in keyed by the pk
// attribute. It understands just enough of the store's expressions:
// SET updates with #name/:value placeholders, attribute_exists(pk)
// conditions, and the begins_with scan filter.
type mockDynamo struct {
	mu    sync.Mutex
	items map[string]map[string]types.AttributeValue

	failNext error // when set, the next call returns this error once
}

func newMockDynamo() *mockDynamo {
	return &mockDynamo{items: map[string]map[string]types.AttributeValue{}}
}

func (m *mockDynamo) takeFailure() error {
	err := m.failNext
	m.failNext = nil
	return err
}

func pkOf(attrs map[string]types.AttributeValue) (string, error) {
	v, ok := attrs["pk"]
	if !ok {
		return "", errors.New("missing pk attribute")
	}
	s, ok := v.(*types.AttributeValueMemberS)
	if !ok {
		return "", errors.New("pk is not a string")
	}
	return s.Value, nil
}

func (m *mockDynamo) PutItem(ctx context.Context, params *dyn.PutItemInput, optFns ...func(*dyn.Options)) (*dyn.PutItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure(); err != nil {
		return nil, err
	}
	pk, err := pkOf(params.Item)
	if err != nil {
		return nil, err
	}
	m.items[pk] = params.Item
	return &dyn.PutItemOutput{}, nil
}

func (m *mockDynamo) GetItem(ctx context.Context, params *dyn.GetItemInput, optFns ...func(*dyn.Options)) (*dyn.GetItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure(); err != nil {
		return nil, err
	}
	pk, err := pkOf(params.Key)
	if err != nil {
		return nil, err
	}
	item, ok := m.items[pk]
	if !ok {
		return &dyn.GetItemOutput{}, nil
	}
	return &dyn.GetItemOutput{Item: item}, nil
}

func (m *mockDynamo) Scan(ctx context.Context, params *dyn.ScanInput, optFns ...func(*dyn.Options)) (*dyn.ScanOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure(); err != nil {
		return nil, err
	}
	prefix := ""
	if params.FilterExpression != nil && *params.FilterExpression == "begins_with(pk, :prefix)" {
		if v, ok := params.ExpressionAttributeValues[":prefix"].(*types.AttributeValueMemberS); ok {
			prefix = v.Value
		}
	}
	var out []map[string]types.AttributeValue
	for pk, item := range m.items {
		if strings.HasPrefix(pk, prefix) {
			out = append(out, item)
		}
	}
	return &dyn.ScanOutput{Items: out}, nil
}

func (m *mockDynamo) UpdateItem(ctx context.Context, params *dyn.UpdateItemInput, optFns ...func(*dyn.Options)) (*dyn.UpdateItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure(); err != nil {
		return nil, err
	}
	pk, err := pkOf(params.Key)
	if err != nil {
		return nil, err
	}
	item, exists := m.items[pk]
	if params.ConditionExpression != nil && *params.ConditionExpression == "attribute_exists(pk)" && !exists {
		return nil, &types.ConditionalCheckFailedException{}
	}
	if !exists {
		item = map[string]types.AttributeValue{"pk": &types.AttributeValueMemberS{Value: pk}}
	}

	// apply "SET #a = :x, #b = :y"
	updated := map[string]types.AttributeValue{}
	for k, v := range item {
		updated[k] = v
	}
	expr := strings.TrimPrefix(*params.UpdateExpression, "SET ")
	for _, assign := range strings.Split(expr, ", ") {
		parts := strings.SplitN(assign, " = ", 2)
		if len(parts) != 2 {
			return nil, errors.New("unsupported update expression: " + assign)
		}
		attr := parts[0]
		if strings.HasPrefix(attr, "#") {
			resolved, ok := params.ExpressionAttributeNames[attr]
			if !ok {
				return nil, errors.New("unresolved name: " + attr)
			}
			attr = resolved
		}
		value, ok := params.ExpressionAttributeValues[parts[1]]
		if !ok {
			return nil, errors.New("unresolved value: " + parts[1])
		}
		updated[attr] = value
	}
	m.items[pk] = updated
	return &dyn.UpdateItemOutput{Attributes: updated}, nil
}

func (m *mockDynamo) DeleteItem(ctx context.Context, params *dyn.DeleteItemInput, optFns ...func(*dyn.Options)) (*dyn.DeleteItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.takeFailure(); err != nil {
		return nil, err
	}
	pk, err := pkOf(params.Key)
	if err != nil {
		return nil, err
	}
	if _, exists := m.items[pk]; !exists {
		if params.ConditionExpression != nil && *params.ConditionExpression == "attribute_exists(pk)" {
			return nil, &types.ConditionalCheckFailedException{}
		}
	}
	delete(m.items, pk)
	return &dyn.DeleteItemOutput{}, nil
}
