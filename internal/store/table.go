package store

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// Table is a typed accessor over a single DynamoDB table. T is marshalled
// with its dynamodbav tags.
type Table[T any] struct {
	client DynamoDBAPI
	schema Schema
}

// NewTable creates a table accessor for schema
func NewTable[T any](client DynamoDBAPI, schema Schema) *Table[T] {
	return &Table[T]{
		client: client,
		schema: schema,
	}
}

// Schema returns the table schema
func (t *Table[T]) Schema() Schema {
	return t.schema
}

// Get performs a point read by hash key. found is false when no item is
// stored under id.
func (t *Table[T]) Get(ctx context.Context, id string) (item *T, found bool, err error) {
	out, err := t.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(t.schema.TableName),
		Key:       t.schema.Key(id),
	})
	if err != nil {
		return nil, false, fmt.Errorf("get item from %s: %w", t.schema.TableName, err)
	}

	if out == nil || len(out.Item) == 0 {
		return nil, false, nil
	}

	item = new(T)
	if err := attributevalue.UnmarshalMap(out.Item, item); err != nil {
		return nil, false, fmt.Errorf("unmarshal item from %s: %w", t.schema.TableName, err)
	}

	return item, true, nil
}

// Put writes item unconditionally, replacing whatever is stored under the
// same key.
func (t *Table[T]) Put(ctx context.Context, item *T) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("marshal item for %s: %w", t.schema.TableName, err)
	}

	if err := t.schema.Check(av); err != nil {
		return err
	}

	if _, err := t.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(t.schema.TableName),
		Item:      av,
	}); err != nil {
		return fmt.Errorf("put item to %s: %w", t.schema.TableName, err)
	}

	return nil
}
