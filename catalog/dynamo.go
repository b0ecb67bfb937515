package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	attrCountry = "Country"
	attrCity    = "City"
	attrGraphID = "GraphId"
)

// DDBClient is the subset of the DynamoDB API used by DynamoCatalog.
type DDBClient interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

var _ DDBClient = (*dynamodb.Client)(nil)

// DynamoCatalog stores entries in a DynamoDB table.
//
// Table schema:
//   - Partition key: Country (string)
//   - Sort key: City (string)
//   - Attribute: GraphId (string)
type DynamoCatalog struct {
	client DDBClient
	table  string
}

var _ Catalog = (*DynamoCatalog)(nil)

// NewDynamoCatalog creates a catalog over table.
func NewDynamoCatalog(client DDBClient, table string) *DynamoCatalog {
	return &DynamoCatalog{client: client, table: table}
}

func itemKey(country, city string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		attrCountry: &types.AttributeValueMemberS{Value: country},
		attrCity:    &types.AttributeValueMemberS{Value: city},
	}
}

// Lookup issues a consistent GetItem for (country, city).
func (c *DynamoCatalog) Lookup(ctx context.Context, country, city string) (string, error) {
	resp, err := c.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(c.table),
		Key:            itemKey(country, city),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("catalog: get %s/%s: %w", country, city, err)
	}
	if len(resp.Item) == 0 {
		return "", ErrNotFound
	}

	e, err := decodeEntry(resp.Item)
	if err != nil {
		return "", err
	}
	return e.GraphID, nil
}

// Register writes e unless the city already has an entry.
func (c *DynamoCatalog) Register(ctx context.Context, e Entry) error {
	if err := e.validate(); err != nil {
		return err
	}

	item := itemKey(e.Country, e.City)
	item[attrGraphID] = &types.AttributeValueMemberS{Value: e.GraphID}

	_, err := c.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(c.table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(" + attrCity + ")"),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return ErrAlreadyExists
		}
		return fmt.Errorf("catalog: put %s/%s: %w", e.Country, e.City, err)
	}
	return nil
}

// List queries the Country partition, following pagination.
func (c *DynamoCatalog) List(ctx context.Context, country string) ([]Entry, error) {
	var out []Entry

	paginator := dynamodb.NewQueryPaginator(c.client, &dynamodb.QueryInput{
		TableName:              aws.String(c.table),
		KeyConditionExpression: aws.String(attrCountry + " = :country"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":country": &types.AttributeValueMemberS{Value: country},
		},
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("catalog: query %s: %w", country, err)
		}
		for _, item := range page.Items {
			e, err := decodeEntry(item)
			if err != nil {
				return nil, err
			}
			out = append(out, e)
		}
	}
	return out, nil
}

func decodeEntry(item map[string]types.AttributeValue) (Entry, error) {
	var e Entry
	for name, dst := range map[string]*string{
		attrCountry: &e.Country,
		attrCity:    &e.City,
		attrGraphID: &e.GraphID,
	} {
		v, ok := item[name].(*types.AttributeValueMemberS)
		if !ok {
			return Entry{}, fmt.Errorf("catalog: item attribute %s missing or not a string", name)
		}
		*dst = v.Value
	}
	return e, nil
}
