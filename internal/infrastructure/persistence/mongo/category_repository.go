package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stylehub/backend/internal/domain/catalog"
	"github.com/stylehub/backend/internal/domain/shared"
)

// categoryDocument is the stored shape of a category
type categoryDocument struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	Level     int       `bson:"level"`
	ParentID  *string   `bson:"parent_id,omitempty"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func toCategoryDocument(c *catalog.Category) *categoryDocument {
	doc := &categoryDocument{
		ID:        c.ID.String(),
		Name:      c.Name,
		Level:     c.Level,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if c.ParentID != nil {
		parentID := c.ParentID.String()
		doc.ParentID = &parentID
	}
	return doc
}

func (d *categoryDocument) toEntity() (*catalog.Category, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid category id %q: %w", d.ID, err)
	}

	category := &catalog.Category{
		BaseEntity: shared.BaseEntity{
			ID:        id,
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		},
		Name:  d.Name,
		Level: d.Level,
	}
	if d.ParentID != nil {
		parentID, err := uuid.Parse(*d.ParentID)
		if err != nil {
			return nil, fmt.Errorf("invalid parent id %q: %w", *d.ParentID, err)
		}
		category.ParentID = &parentID
	}
	return category, nil
}

// MongoCategoryRepository implements catalog.CategoryRepository backed
// by MongoDB
type MongoCategoryRepository struct {
	collection *mongo.Collection
}

// NewMongoCategoryRepository creates a new MongoCategoryRepository
func NewMongoCategoryRepository(db *mongo.Database) *MongoCategoryRepository {
	return &MongoCategoryRepository{
		collection: db.Collection(categoriesCollection),
	}
}

// FindByID finds a category by its ID
func (r *MongoCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Category, error) {
	var doc categoryDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return doc.toEntity()
}

// FindAll finds all categories matching the filter
func (r *MongoCategoryRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Category, error) {
	cursor, err := r.collection.Find(ctx, r.buildQuery(filter), findOptions(filter))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	return decodeCategories(ctx, cursor)
}

// FindChildren finds all direct children of a category
func (r *MongoCategoryRepository) FindChildren(ctx context.Context, parentID uuid.UUID) ([]catalog.Category, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"parent_id": parentID.String()}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	return decodeCategories(ctx, cursor)
}

// Save creates or updates a category
func (r *MongoCategoryRepository) Save(ctx context.Context, category *catalog.Category) error {
	doc := toCategoryDocument(category)
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, opts)
	return err
}

// Delete deletes a category
func (r *MongoCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts categories matching the filter
func (r *MongoCategoryRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return r.collection.CountDocuments(ctx, r.buildQuery(filter))
}

// buildQuery translates the shared filter into a mongo query
func (r *MongoCategoryRepository) buildQuery(filter shared.Filter) bson.M {
	query := bson.M{}

	if filter.Search != "" {
		query["name"] = caseInsensitive(filter.Search)
	}

	for key, value := range filter.Filters {
		switch key {
		case "level":
			query["level"] = value
		case "parent_id":
			if id, ok := value.(uuid.UUID); ok {
				query["parent_id"] = id.String()
			}
		}
	}

	return query
}

func decodeCategories(ctx context.Context, cursor *mongo.Cursor) ([]catalog.Category, error) {
	var categories []catalog.Category
	for cursor.Next(ctx) {
		var doc categoryDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		category, err := doc.toEntity()
		if err != nil {
			return nil, err
		}
		categories = append(categories, *category)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return categories, nil
}

// Ensure MongoCategoryRepository implements CategoryRepository
var _ catalog.CategoryRepository = (*MongoCategoryRepository)(nil)
