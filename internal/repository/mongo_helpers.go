package repository

import (
	"context"
	"errors"

	"github.com/paramreg/registry/pkg/pagination"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// activeFilter matches documents whose delete_at is null or missing.
func activeFilter(extra bson.M) bson.M {
	filter := bson.M{"delete_at": nil}
	for k, v := range extra {
		filter[k] = v
	}
	return filter
}

func translateMongoError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrRecordNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateKey
	}
	return err
}

// facetPipeline is $match -> $sort -> $facet{totalCount, data}.
func facetPipeline(match bson.M, sortField string, sortOrder, skip, limit int) mongo.Pipeline {
	data := bson.A{bson.D{{Key: "$skip", Value: skip}}}
	if limit > 0 {
		data = append(data, bson.D{{Key: "$limit", Value: limit}})
	}

	return mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: sortField, Value: sortOrder}, {Key: "_id", Value: sortOrder}}}},
		{{Key: "$facet", Value: bson.D{
			{Key: "totalCount", Value: bson.A{bson.D{{Key: "$count", Value: "count"}}}},
			{Key: "data", Value: data},
		}}},
	}
}

func aggregateFacet[T any](ctx context.Context, collection *mongo.Collection, pipeline mongo.Pipeline) (pagination.FacetResult[T], error) {
	cursor, err := collection.Aggregate(ctx, pipeline)
	if err != nil {
		return pagination.FacetResult[T]{}, err
	}
	defer cursor.Close(ctx)

	var results []pagination.FacetResult[T]
	if err := cursor.All(ctx, &results); err != nil {
		return pagination.FacetResult[T]{}, err
	}
	if len(results) == 0 {
		return pagination.FacetResult[T]{}, nil
	}
	return results[0], nil
}
