package store

import (
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// AttributeType is the scalar type of a stored attribute
type AttributeType string

const (
	AttributeString AttributeType = "S"
	AttributeNumber AttributeType = "N"
	AttributeBool   AttributeType = "BOOL"
)

// Schema describes a single key-value table: where it lives, which
// attribute is the hash key, and the type of every attribute it stores.
type Schema struct {
	TableName  string
	Region     string
	HashKey    string
	Attributes map[string]AttributeType
}

// UsersSchema returns the schema of the users table
func UsersSchema(tableName, region string) Schema {
	return Schema{
		TableName: tableName,
		Region:    region,
		HashKey:   "id",
		Attributes: map[string]AttributeType{
			"id":         AttributeString,
			"email":      AttributeString,
			"first_name": AttributeString,
			"last_name":  AttributeString,
			"address":    AttributeString,
		},
	}
}

// Columns returns the attribute names with the hash key first and the rest
// in lexical order
func (s Schema) Columns() []string {
	columns := make([]string, 0, len(s.Attributes))
	for name := range s.Attributes {
		if name != s.HashKey {
			columns = append(columns, name)
		}
	}
	sort.Strings(columns)
	return append([]string{s.HashKey}, columns...)
}

// Key builds the primary key of the item stored under id
func (s Schema) Key(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		s.HashKey: &types.AttributeValueMemberS{Value: id},
	}
}

// Check verifies that item carries a string hash key and only declared
// attributes of the declared types
func (s Schema) Check(item map[string]types.AttributeValue) error {
	key, ok := item[s.HashKey].(*types.AttributeValueMemberS)
	if !ok || key.Value == "" {
		return fmt.Errorf("%w: missing hash key %q", ErrSchemaMismatch, s.HashKey)
	}

	for name, value := range item {
		want, declared := s.Attributes[name]
		if !declared {
			return fmt.Errorf("%w: undeclared attribute %q", ErrSchemaMismatch, name)
		}
		if got := attributeTypeOf(value); got != want {
			return fmt.Errorf("%w: attribute %q has type %s, want %s", ErrSchemaMismatch, name, got, want)
		}
	}

	return nil
}

func attributeTypeOf(value types.AttributeValue) AttributeType {
	switch value.(type) {
	case *types.AttributeValueMemberS:
		return AttributeString
	case *types.AttributeValueMemberN:
		return AttributeNumber
	case *types.AttributeValueMemberBOOL:
		return AttributeBool
	default:
		return AttributeType(fmt.Sprintf("%T", value))
	}
}
