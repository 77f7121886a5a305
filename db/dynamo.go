package db

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
	"github.com/jsphweid/rhythmdex/model"
)

const (
	DefaultEndpoint = "http://localhost:8000"
	DefaultRegion   = "localhost"
	DefaultTable    = "rhythmdex-rounds"
)

type item struct {
	PK        string `dynamodbav:"PK"`
	StartedAt int64  `dynamodbav:"StartedAt"`
	Success   bool   `dynamodbav:"Success"`
	Result    string `dynamodbav:"Result"`
}

func toItem(r model.RoundResult) (map[string]*dynamodb.AttributeValue, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encoding round %s: %w", r.ID, err)
	}
	return dynamodbattribute.MarshalMap(item{
		PK:        r.ID,
		StartedAt: r.StartedAt.UnixMilli(),
		Success:   r.Verdict.Success,
		Result:    string(data),
	})
}

func fromItem(av map[string]*dynamodb.AttributeValue) (model.RoundResult, error) {
	var it item
	var r model.RoundResult
	if err := dynamodbattribute.UnmarshalMap(av, &it); err != nil {
		return r, fmt.Errorf("decoding item: %w", err)
	}
	if err := json.Unmarshal([]byte(it.Result), &r); err != nil {
		return r, fmt.Errorf("decoding round %s: %w", it.PK, err)
	}
	return r, nil
}

// Dynamo stores results in a DynamoDB table keyed by PK.
type Dynamo struct {
	client *dynamodb.DynamoDB
	table  string
}

func NewDynamo(endpoint, region, table string) (*Dynamo, error) {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if region == "" {
		region = DefaultRegion
	}
	if table == "" {
		table = DefaultTable
	}
	sess, err := session.NewSession(&aws.Config{
		Region:   aws.String(region),
		Endpoint: aws.String(endpoint),
	})
	if err != nil {
		return nil, fmt.Errorf("creating DynamoDB session: %w", err)
	}
	return &Dynamo{client: dynamodb.New(sess), table: table}, nil
}

func (d *Dynamo) Save(ctx context.Context, r model.RoundResult) error {
	av, err := toItem(r)
	if err != nil {
		return err
	}
	_, err = d.client.PutItemWithContext(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(d.table),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("saving round %s: %w", r.ID, err)
	}
	return nil
}

func (d *Dynamo) Get(ctx context.Context, id string) (model.RoundResult, error) {
	out, err := d.client.GetItemWithContext(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(d.table),
		Key: map[string]*dynamodb.AttributeValue{
			"PK": {S: aws.String(id)},
		},
	})
	if err != nil {
		return model.RoundResult{}, fmt.Errorf("loading round %s: %w", id, err)
	}
	if len(out.Item) == 0 {
		return model.RoundResult{}, ErrNotFound
	}
	return fromItem(out.Item)
}

func (d *Dynamo) List(ctx context.Context) ([]model.RoundResult, error) {
	var res []model.RoundResult
	var decodeErr error
	err := d.client.ScanPagesWithContext(ctx, &dynamodb.ScanInput{
		TableName: aws.String(d.table),
	}, func(page *dynamodb.ScanOutput, lastPage bool) bool {
		for _, av := range page.Items {
			r, err := fromItem(av)
			if err != nil {
				decodeErr = err
				return false
			}
			res = append(res, r)
		}
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", d.table, err)
	}
	if decodeErr != nil {
		return nil, decodeErr
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].StartedAt.Before(res[j].StartedAt)
	})
	return res, nil
}
