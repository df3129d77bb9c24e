package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeDynamo is an in-memory DynamoAPI used by the service tests. Every
// operation holds the lock for its full duration, so conditional puts and
// list appends are atomic the way DynamoDB's are.
type fakeDynamo struct {
	mu     sync.Mutex
	tables map[string]map[string]map[string]types.AttributeValue

	// putIfAbsentHook, when set, runs before each conditional put and can
	// inject a store failure for a given table.
	putIfAbsentHook func(tableName string) error
}

// Partition key attribute per table.
var tableKeys = map[string]string{
	"Swipes":        "swipeId",
	"Matches":       "matchId",
	"Conversations": "conversationId",
	"UserProfiles":  "userId",
}

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{tables: make(map[string]map[string]map[string]types.AttributeValue)}
}

func (f *fakeDynamo) table(name string) map[string]map[string]types.AttributeValue {
	if f.tables[name] == nil {
		f.tables[name] = make(map[string]map[string]types.AttributeValue)
	}
	return f.tables[name]
}

func (f *fakeDynamo) itemKey(tableName string, item map[string]types.AttributeValue) (string, error) {
	keyAttr, ok := tableKeys[tableName]
	if !ok {
		return "", fmt.Errorf("unknown table %q", tableName)
	}
	s, ok := item[keyAttr].(*types.AttributeValueMemberS)
	if !ok {
		return "", fmt.Errorf("item in %q missing key attribute %q", tableName, keyAttr)
	}
	return s.Value, nil
}

func (f *fakeDynamo) count(tableName string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.table(tableName))
}

func (f *fakeDynamo) GetItem(_ context.Context, tableName string, key map[string]types.AttributeValue) (map[string]types.AttributeValue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id, err := f.itemKey(tableName, key)
	if err != nil {
		return nil, err
	}
	item, ok := f.table(tableName)[id]
	if !ok {
		return nil, ErrItemNotFound
	}
	return item, nil
}

func (f *fakeDynamo) PutItem(_ context.Context, tableName string, item interface{}) error {
	marshaled, err := attributevalue.MarshalMap(item)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	id, err := f.itemKey(tableName, marshaled)
	if err != nil {
		return err
	}
	f.table(tableName)[id] = marshaled
	return nil
}

func (f *fakeDynamo) PutItemIfAbsent(_ context.Context, tableName string, item interface{}, _ string) error {
	if f.putIfAbsentHook != nil {
		if err := f.putIfAbsentHook(tableName); err != nil {
			return err
		}
	}

	marshaled, err := attributevalue.MarshalMap(item)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	id, err := f.itemKey(tableName, marshaled)
	if err != nil {
		return err
	}
	if _, exists := f.table(tableName)[id]; exists {
		return ErrAlreadyExists
	}
	f.table(tableName)[id] = marshaled
	return nil
}

// UpdateItem supports the plain "SET #a = :a, #b = :b" expressions the
// services build.
func (f *fakeDynamo) UpdateItem(_ context.Context, tableName, updateExpression string, key map[string]types.AttributeValue, expressionAttributeValues map[string]types.AttributeValue, expressionAttributeNames map[string]string) (map[string]types.AttributeValue, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id, err := f.itemKey(tableName, key)
	if err != nil {
		return nil, err
	}
	item, ok := f.table(tableName)[id]
	if !ok {
		return nil, ErrItemNotFound
	}

	expr := strings.TrimPrefix(updateExpression, "SET ")
	for _, clause := range strings.Split(expr, ",") {
		parts := strings.SplitN(strings.TrimSpace(clause), " = ", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("unsupported update clause %q", clause)
		}
		attr := parts[0]
		if resolved, ok := expressionAttributeNames[attr]; ok {
			attr = resolved
		}
		value, ok := expressionAttributeValues[parts[1]]
		if !ok {
			return nil, fmt.Errorf("missing value for placeholder %q", parts[1])
		}
		item[attr] = value
	}

	return item, nil
}

func (f *fakeDynamo) AppendToList(_ context.Context, tableName string, key map[string]types.AttributeValue, attribute string, value types.AttributeValue, extraSets map[string]types.AttributeValue) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	id, err := f.itemKey(tableName, key)
	if err != nil {
		return err
	}
	item, ok := f.table(tableName)[id]
	if !ok {
		return ErrItemNotFound
	}

	list, _ := item[attribute].(*types.AttributeValueMemberL)
	if list == nil {
		list = &types.AttributeValueMemberL{}
	}
	item[attribute] = &types.AttributeValueMemberL{Value: append(append([]types.AttributeValue{}, list.Value...), value)}

	for attr, av := range extraSets {
		item[attr] = av
	}
	return nil
}

// queryByAttr backs both query variants: equality on a single attribute,
// which is the only shape the services use.
func (f *fakeDynamo) queryByAttr(tableName, keyConditionExpression string, expressionAttributeValues map[string]types.AttributeValue) ([]map[string]types.AttributeValue, error) {
	parts := strings.SplitN(keyConditionExpression, " = ", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("unsupported key condition %q", keyConditionExpression)
	}
	attr := strings.TrimPrefix(strings.TrimSpace(parts[0]), "#")
	want, ok := expressionAttributeValues[strings.TrimSpace(parts[1])].(*types.AttributeValueMemberS)
	if !ok {
		return nil, fmt.Errorf("missing value for %q", parts[1])
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	var results []map[string]types.AttributeValue
	for _, item := range f.table(tableName) {
		if s, ok := item[attr].(*types.AttributeValueMemberS); ok && s.Value == want.Value {
			results = append(results, item)
		}
	}
	return results, nil
}

func (f *fakeDynamo) QueryItems(_ context.Context, tableName, keyConditionExpression string, expressionAttributeValues map[string]types.AttributeValue, _ map[string]string, _ int32) ([]map[string]types.AttributeValue, error) {
	return f.queryByAttr(tableName, keyConditionExpression, expressionAttributeValues)
}

func (f *fakeDynamo) QueryItemsWithIndex(_ context.Context, tableName, _, keyConditionExpression string, expressionAttributeValues map[string]types.AttributeValue, _ map[string]string, _ int32) ([]map[string]types.AttributeValue, error) {
	return f.queryByAttr(tableName, keyConditionExpression, expressionAttributeValues)
}

func (f *fakeDynamo) ScanWithFilter(_ context.Context, tableName string, filterFunc func(map[string]types.AttributeValue) bool, excludeFields map[string]string, result interface{}) error {
	f.mu.Lock()
	var filtered []map[string]types.AttributeValue
	for _, item := range f.table(tableName) {
		excluded := false
		for attr, value := range excludeFields {
			if s, ok := item[attr].(*types.AttributeValueMemberS); ok && s.Value == value {
				excluded = true
				break
			}
		}
		if excluded {
			continue
		}
		if filterFunc == nil || filterFunc(item) {
			filtered = append(filtered, item)
		}
	}
	f.mu.Unlock()

	return attributevalue.UnmarshalListOfMaps(filtered, result)
}

func (f *fakeDynamo) DeleteItem(_ context.Context, tableName string, key map[string]types.AttributeValue) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	id, err := f.itemKey(tableName, key)
	if err != nil {
		return err
	}
	delete(f.table(tableName), id)
	return nil
}
