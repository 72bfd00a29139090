package repository

import (
	"context"
	"regexp"
	"time"

	"github.com/paramreg/registry/internal/model"
	"github.com/paramreg/registry/pkg/logger"
	"github.com/paramreg/registry/pkg/pagination"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ParameterMongoRepository struct {
	collection *mongo.Collection
}

func NewParameterMongoRepository(db *mongo.Database) *ParameterMongoRepository {
	return &ParameterMongoRepository{collection: db.Collection(model.Parameter{}.TableName())}
}

func (r *ParameterMongoRepository) Create(ctx context.Context, parameter *model.Parameter) error {
	start := time.Now()
	_, err := r.collection.InsertOne(ctx, parameter)
	err = translateMongoError(err)

	if err != nil {
		if err == ErrDuplicateKey {
			logger.WarnWithContext(ctx, "Repository: Parameter slug already taken").
				String("slug", parameter.Slug).
				Log()
		} else {
			logger.ErrorWithContext(ctx, "Repository: Failed to insert parameter").
				String("slug", parameter.Slug).
				Duration(time.Since(start)).
				Err(err).
				Log()
		}
		return err
	}

	logger.DebugWithContext(ctx, "Repository: Parameter inserted").
		String("parameter_id", parameter.ID).
		String("slug", parameter.Slug).
		Duration(time.Since(start)).
		Log()
	return nil
}

func (r *ParameterMongoRepository) FindByID(ctx context.Context, id string, includeDeleted bool) (*model.Parameter, error) {
	filter := bson.M{"_id": id}
	if !includeDeleted {
		filter = activeFilter(filter)
	}

	var parameter model.Parameter
	if err := r.collection.FindOne(ctx, filter).Decode(&parameter); err != nil {
		return nil, translateMongoError(err)
	}
	return &parameter, nil
}

func (r *ParameterMongoRepository) FindBySlug(ctx context.Context, slug string) (*model.Parameter, error) {
	var parameter model.Parameter
	if err := r.collection.FindOne(ctx, activeFilter(bson.M{"slug": slug})).Decode(&parameter); err != nil {
		return nil, translateMongoError(err)
	}
	return &parameter, nil
}

func (r *ParameterMongoRepository) SlugsWithPrefix(ctx context.Context, prefix string) ([]string, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}}).
		SetProjection(bson.M{"slug": 1})

	cursor, err := r.collection.Find(ctx,
		bson.M{"slug": bson.M{"$regex": "^" + regexp.QuoteMeta(prefix)}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []struct {
		Slug string `bson:"slug"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	slugs := make([]string, 0, len(docs))
	for _, doc := range docs {
		slugs = append(slugs, doc.Slug)
	}
	return slugs, nil
}

func (r *ParameterMongoRepository) List(ctx context.Context, filter ParameterFilter, skip, limit int) (pagination.FacetResult[model.Parameter], error) {
	match := bson.M{}
	if filter.Name != "" {
		match["name"] = filter.Name
	}
	if filter.CategoryID != "" {
		match["category"] = filter.CategoryID
	}

	start := time.Now()
	result, err := aggregateFacet[model.Parameter](ctx, r.collection,
		facetPipeline(activeFilter(match), "created_at", -1, skip, limit))
	if err != nil {
		logger.ErrorWithContext(ctx, "Repository: Failed to aggregate parameters").
			String("name", filter.Name).
			String("category", filter.CategoryID).
			Err(err).
			Log()
		return result, err
	}

	logger.DebugWithContext(ctx, "Repository: Parameters aggregated").
		Int64("total", result.Total()).
		Duration(time.Since(start)).
		Log()
	return result, nil
}

func (r *ParameterMongoRepository) Update(ctx context.Context, parameter *model.Parameter) error {
	set := bson.M{
		"value":      parameter.Value,
		"updated_at": parameter.UpdatedAt,
	}
	update := bson.M{"$set": set}
	if parameter.Description != "" {
		set["description"] = parameter.Description
	} else {
		update["$unset"] = bson.M{"description": ""}
	}

	res, err := r.collection.UpdateOne(ctx, activeFilter(bson.M{"_id": parameter.ID}), update)
	if err != nil {
		return translateMongoError(err)
	}
	if res.MatchedCount == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (r *ParameterMongoRepository) SoftDelete(ctx context.Context, id string, at time.Time) error {
	res, err := r.collection.UpdateOne(ctx,
		activeFilter(bson.M{"_id": id}),
		bson.M{"$set": bson.M{"delete_at": at, "updated_at": at}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrRecordNotFound
	}
	return nil
}
