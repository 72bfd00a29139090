package repository

import (
	"context"
	"time"

	"github.com/paramreg/registry/internal/model"
	"github.com/paramreg/registry/pkg/logger"
	"github.com/paramreg/registry/pkg/pagination"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type CategoryMongoRepository struct {
	collection *mongo.Collection
}

func NewCategoryMongoRepository(db *mongo.Database) *CategoryMongoRepository {
	return &CategoryMongoRepository{collection: db.Collection(model.Category{}.TableName())}
}

func (r *CategoryMongoRepository) Create(ctx context.Context, category *model.Category) error {
	if category.Parameters == nil {
		category.Parameters = []string{}
	}

	start := time.Now()
	_, err := r.collection.InsertOne(ctx, category)
	err = translateMongoError(err)

	if err != nil {
		logger.ErrorWithContext(ctx, "Repository: Failed to insert category").
			String("slug", category.Slug).
			Duration(time.Since(start)).
			Err(err).
			Log()
		return err
	}

	logger.DebugWithContext(ctx, "Repository: Category inserted").
		String("category_id", category.ID).
		Duration(time.Since(start)).
		Log()
	return nil
}

func (r *CategoryMongoRepository) FindByID(ctx context.Context, id string, includeDeleted bool) (*model.Category, error) {
	filter := bson.M{"_id": id}
	if !includeDeleted {
		filter = activeFilter(filter)
	}

	var category model.Category
	if err := r.collection.FindOne(ctx, filter).Decode(&category); err != nil {
		return nil, translateMongoError(err)
	}
	return &category, nil
}

func (r *CategoryMongoRepository) FindBySlug(ctx context.Context, slug string) (*model.Category, error) {
	var category model.Category
	if err := r.collection.FindOne(ctx, activeFilter(bson.M{"slug": slug})).Decode(&category); err != nil {
		return nil, translateMongoError(err)
	}
	return &category, nil
}

func (r *CategoryMongoRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, activeFilter(bson.M{"slug": slug}))
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *CategoryMongoRepository) List(ctx context.Context, skip, limit int) (pagination.FacetResult[model.Category], error) {
	start := time.Now()
	result, err := aggregateFacet[model.Category](ctx, r.collection,
		facetPipeline(activeFilter(nil), "created_at", 1, skip, limit))
	if err != nil {
		logger.ErrorWithContext(ctx, "Repository: Failed to aggregate categories").
			Int("skip", skip).
			Int("limit", limit).
			Err(err).
			Log()
		return result, err
	}

	logger.DebugWithContext(ctx, "Repository: Categories aggregated").
		Int64("total", result.Total()).
		Duration(time.Since(start)).
		Log()
	return result, nil
}

func (r *CategoryMongoRepository) Update(ctx context.Context, category *model.Category) error {
	res, err := r.collection.UpdateOne(ctx,
		activeFilter(bson.M{"_id": category.ID}),
		bson.M{"$set": bson.M{
			"name":        category.Name,
			"description": category.Description,
			"updated_at":  category.UpdatedAt,
		}},
	)
	if err != nil {
		return translateMongoError(err)
	}
	if res.MatchedCount == 0 {
		return ErrRecordNotFound
	}
	return nil
}

func (r *CategoryMongoRepository) SoftDelete(ctx context.Context, id string, at time.Time) error {
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

func (r *CategoryMongoRepository) AppendParameter(ctx context.Context, categoryID, parameterID string) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": categoryID},
		bson.M{"$push": bson.M{"parameters": parameterID}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrRecordNotFound
	}
	return nil
}
