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

// productDocument is the stored shape of a product
type productDocument struct {
	ID                      string    `bson:"_id"`
	Name                    string    `bson:"name"`
	SKU                     string    `bson:"sku"`
	CategoryID              string    `bson:"category_id"`
	RepresentativeVariantID *string   `bson:"representative_variant_id,omitempty"`
	Status                  bool      `bson:"status"`
	CreatedAt               time.Time `bson:"created_at"`
	UpdatedAt               time.Time `bson:"updated_at"`
}

func toProductDocument(p *catalog.Product) *productDocument {
	doc := &productDocument{
		ID:         p.ID.String(),
		Name:       p.Name,
		SKU:        p.SKU,
		CategoryID: p.CategoryID.String(),
		Status:     p.Status,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
	if p.RepresentativeVariantID != nil {
		variantID := p.RepresentativeVariantID.String()
		doc.RepresentativeVariantID = &variantID
	}
	return doc
}

func (d *productDocument) toEntity() (*catalog.Product, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid product id %q: %w", d.ID, err)
	}
	categoryID, err := uuid.Parse(d.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("invalid category id %q: %w", d.CategoryID, err)
	}

	product := &catalog.Product{
		BaseEntity: shared.BaseEntity{
			ID:        id,
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		},
		Name:       d.Name,
		SKU:        d.SKU,
		CategoryID: categoryID,
		Status:     d.Status,
	}
	if d.RepresentativeVariantID != nil {
		variantID, err := uuid.Parse(*d.RepresentativeVariantID)
		if err != nil {
			return nil, fmt.Errorf("invalid representative variant id %q: %w", *d.RepresentativeVariantID, err)
		}
		product.RepresentativeVariantID = &variantID
	}
	return product, nil
}

// MongoProductRepository implements catalog.ProductRepository backed by
// MongoDB
type MongoProductRepository struct {
	collection *mongo.Collection
}

// NewMongoProductRepository creates a new MongoProductRepository
func NewMongoProductRepository(db *mongo.Database) *MongoProductRepository {
	return &MongoProductRepository{
		collection: db.Collection(productsCollection),
	}
}

// FindByID finds a product by its ID
func (r *MongoProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var doc productDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return doc.toEntity()
}

// FindAll finds all products matching the filter
func (r *MongoProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	cursor, err := r.collection.Find(ctx, r.buildQuery(filter), findOptions(filter))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	return decodeProducts(ctx, cursor)
}

// FindByCategory finds all products in a specific category
func (r *MongoProductRepository) FindByCategory(ctx context.Context, categoryID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	query := r.buildQuery(filter)
	query["category_id"] = categoryID.String()

	cursor, err := r.collection.Find(ctx, query, findOptions(filter))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	return decodeProducts(ctx, cursor)
}

// FindByIDs finds multiple products by their IDs
func (r *MongoProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": uuidStrings(ids)}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	return decodeProducts(ctx, cursor)
}

// Save creates or updates a product
func (r *MongoProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	doc := toProductDocument(product)
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, opts)
	return err
}

// Delete deletes a product
func (r *MongoProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteByIDs removes every product in the id set in one operation
func (r *MongoProductRepository) DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	result, err := r.collection.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": uuidStrings(ids)}})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// Count counts products matching the filter
func (r *MongoProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return r.collection.CountDocuments(ctx, r.buildQuery(filter))
}

// CountByCategory counts products in a specific category
func (r *MongoProductRepository) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"category_id": categoryID.String()})
}

// buildQuery translates the shared filter into a mongo query
func (r *MongoProductRepository) buildQuery(filter shared.Filter) bson.M {
	query := bson.M{}

	if filter.Search != "" {
		regex := caseInsensitive(filter.Search)
		query["$or"] = bson.A{
			bson.M{"name": regex},
			bson.M{"sku": regex},
		}
	}

	for key, value := range filter.Filters {
		switch key {
		case "category_id":
			if id, ok := value.(uuid.UUID); ok {
				query["category_id"] = id.String()
			}
		case "status":
			query["status"] = value
		case "name":
			if s, ok := value.(string); ok {
				query["name"] = caseInsensitive(s)
			}
		case "sku":
			if s, ok := value.(string); ok {
				query["sku"] = caseInsensitive(s)
			}
		}
	}

	return query
}

func decodeProducts(ctx context.Context, cursor *mongo.Cursor) ([]catalog.Product, error) {
	var products []catalog.Product
	for cursor.Next(ctx) {
		var doc productDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		product, err := doc.toEntity()
		if err != nil {
			return nil, err
		}
		products = append(products, *product)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return products, nil
}

func uuidStrings(ids []uuid.UUID) []string {
	strs := make([]string, len(ids))
	for i, id := range ids {
		strs[i] = id.String()
	}
	return strs
}

// Ensure MongoProductRepository implements ProductRepository
var _ catalog.ProductRepository = (*MongoProductRepository)(nil)
