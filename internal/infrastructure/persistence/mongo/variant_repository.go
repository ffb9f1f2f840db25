package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stylehub/backend/internal/domain/catalog"
	"github.com/stylehub/backend/internal/domain/shared"
)

// colorDocument is the stored shape of a variant color
type colorDocument struct {
	BaseColor   string `bson:"base_color"`
	ActualColor string `bson:"actual_color"`
	ColorName   string `bson:"color_name"`
}

// imageDocument is the stored shape of an image reference
type imageDocument struct {
	URL      string `bson:"url"`
	PublicID string `bson:"public_id"`
}

// imagesDocument is the stored shape of a variant's image slots
type imagesDocument struct {
	Main    imageDocument   `bson:"main"`
	Hover   imageDocument   `bson:"hover"`
	Product []imageDocument `bson:"product"`
}

// attributeDocument is the stored shape of an attribute pair
type attributeDocument struct {
	Attribute string `bson:"attribute"`
	Value     string `bson:"value"`
}

// sizeDocument is the stored shape of a size/stock pair
type sizeDocument struct {
	Size  string `bson:"size"`
	Stock int    `bson:"stock"`
}

// variantDocument is the stored shape of a product variant. Price is
// stored as a plain number; the domain's fixed-point type is restored
// on read.
type variantDocument struct {
	ID         string              `bson:"_id"`
	ProductID  string              `bson:"product_id"`
	SKU        string              `bson:"sku"`
	Price      float64             `bson:"price"`
	Color      colorDocument       `bson:"color"`
	Images     imagesDocument      `bson:"images"`
	Attributes []attributeDocument `bson:"attributes"`
	Sizes      []sizeDocument      `bson:"sizes"`
	Status     bool                `bson:"status"`
	CreatedAt  time.Time           `bson:"created_at"`
	UpdatedAt  time.Time           `bson:"updated_at"`
}

func toVariantDocument(v *catalog.ProductVariant) *variantDocument {
	attributes := make([]attributeDocument, len(v.Attributes))
	for i, a := range v.Attributes {
		attributes[i] = attributeDocument{Attribute: a.Attribute, Value: a.Value}
	}
	sizes := make([]sizeDocument, len(v.Sizes))
	for i, s := range v.Sizes {
		sizes[i] = sizeDocument{Size: string(s.Size), Stock: s.Stock}
	}
	productImages := make([]imageDocument, len(v.Images.Product))
	for i, img := range v.Images.Product {
		productImages[i] = imageDocument{URL: img.URL, PublicID: img.PublicID}
	}

	return &variantDocument{
		ID:        v.ID.String(),
		ProductID: v.ProductID.String(),
		SKU:       v.SKU,
		Price:     v.Price.InexactFloat64(),
		Color: colorDocument{
			BaseColor:   v.Color.BaseColor,
			ActualColor: v.Color.ActualColor,
			ColorName:   v.Color.ColorName,
		},
		Images: imagesDocument{
			Main:    imageDocument{URL: v.Images.Main.URL, PublicID: v.Images.Main.PublicID},
			Hover:   imageDocument{URL: v.Images.Hover.URL, PublicID: v.Images.Hover.PublicID},
			Product: productImages,
		},
		Attributes: attributes,
		Sizes:      sizes,
		Status:     v.Status,
		CreatedAt:  v.CreatedAt,
		UpdatedAt:  v.UpdatedAt,
	}
}

func (d *variantDocument) toEntity() (*catalog.ProductVariant, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid variant id %q: %w", d.ID, err)
	}
	productID, err := uuid.Parse(d.ProductID)
	if err != nil {
		return nil, fmt.Errorf("invalid product id %q: %w", d.ProductID, err)
	}

	attributes := make([]catalog.Attribute, len(d.Attributes))
	for i, a := range d.Attributes {
		attributes[i] = catalog.Attribute{Attribute: a.Attribute, Value: a.Value}
	}
	sizes := make([]catalog.SizeStock, len(d.Sizes))
	for i, s := range d.Sizes {
		sizes[i] = catalog.SizeStock{Size: catalog.VariantSize(s.Size), Stock: s.Stock}
	}
	productImages := make([]catalog.Image, len(d.Images.Product))
	for i, img := range d.Images.Product {
		productImages[i] = catalog.Image{URL: img.URL, PublicID: img.PublicID}
	}

	return &catalog.ProductVariant{
		BaseEntity: shared.BaseEntity{
			ID:        id,
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		},
		ProductID: productID,
		SKU:       d.SKU,
		Price:     decimal.NewFromFloat(d.Price),
		Color: catalog.Color{
			BaseColor:   d.Color.BaseColor,
			ActualColor: d.Color.ActualColor,
			ColorName:   d.Color.ColorName,
		},
		Images: catalog.VariantImages{
			Main:    catalog.Image{URL: d.Images.Main.URL, PublicID: d.Images.Main.PublicID},
			Hover:   catalog.Image{URL: d.Images.Hover.URL, PublicID: d.Images.Hover.PublicID},
			Product: productImages,
		},
		Attributes: attributes,
		Sizes:      sizes,
		Status:     d.Status,
	}, nil
}

// MongoVariantRepository implements catalog.VariantRepository backed by
// MongoDB
type MongoVariantRepository struct {
	collection *mongo.Collection
}

// NewMongoVariantRepository creates a new MongoVariantRepository
func NewMongoVariantRepository(db *mongo.Database) *MongoVariantRepository {
	return &MongoVariantRepository{
		collection: db.Collection(variantsCollection),
	}
}

// FindByID finds a variant by its ID
func (r *MongoVariantRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.ProductVariant, error) {
	var doc variantDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return doc.toEntity()
}

// FindByIDs finds multiple variants by their IDs
func (r *MongoVariantRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.ProductVariant, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": uuidStrings(ids)}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	return decodeVariants(ctx, cursor)
}

// FindAll finds all variants matching the filter
func (r *MongoVariantRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.ProductVariant, error) {
	cursor, err := r.collection.Find(ctx, r.buildQuery(filter), findOptions(filter))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	return decodeVariants(ctx, cursor)
}

// FindByProductID finds all variants of one product, oldest first
func (r *MongoVariantRepository) FindByProductID(ctx context.Context, productID uuid.UUID) ([]catalog.ProductVariant, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"product_id": productID.String()}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	return decodeVariants(ctx, cursor)
}

// FindByProductIDs batch-fetches the variants of every product in the
// id set, oldest first
func (r *MongoVariantRepository) FindByProductIDs(ctx context.Context, productIDs []uuid.UUID) ([]catalog.ProductVariant, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"product_id": bson.M{"$in": uuidStrings(productIDs)}}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	return decodeVariants(ctx, cursor)
}

// DistinctProductIDs returns the distinct product ids with variants
func (r *MongoVariantRepository) DistinctProductIDs(ctx context.Context) ([]uuid.UUID, error) {
	values, err := r.collection.Distinct(ctx, "product_id", bson.M{})
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(values))
	for _, value := range values {
		str, ok := value.(string)
		if !ok {
			continue
		}
		id, err := uuid.Parse(str)
		if err != nil {
			return nil, fmt.Errorf("invalid product id %q: %w", str, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Save creates or updates a variant
func (r *MongoVariantRepository) Save(ctx context.Context, variant *catalog.ProductVariant) error {
	doc := toVariantDocument(variant)
	opts := options.Replace().SetUpsert(true)
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, opts)
	return err
}

// Delete deletes a variant
func (r *MongoVariantRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteByProductIDs removes every variant of the given products in one
// operation
func (r *MongoVariantRepository) DeleteByProductIDs(ctx context.Context, productIDs []uuid.UUID) (int64, error) {
	if len(productIDs) == 0 {
		return 0, nil
	}

	result, err := r.collection.DeleteMany(ctx, bson.M{"product_id": bson.M{"$in": uuidStrings(productIDs)}})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}

// Count counts variants matching the filter
func (r *MongoVariantRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return r.collection.CountDocuments(ctx, r.buildQuery(filter))
}

// CountByProductID counts the variants of one product
func (r *MongoVariantRepository) CountByProductID(ctx context.Context, productID uuid.UUID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"product_id": productID.String()})
}

// buildQuery translates the shared filter into a mongo query
func (r *MongoVariantRepository) buildQuery(filter shared.Filter) bson.M {
	query := bson.M{}

	if filter.Search != "" {
		regex := caseInsensitive(filter.Search)
		query["$or"] = bson.A{
			bson.M{"sku": regex},
			bson.M{"color.color_name": regex},
		}
	}

	price := bson.M{}
	for key, value := range filter.Filters {
		switch key {
		case "product_id":
			if id, ok := value.(uuid.UUID); ok {
				query["product_id"] = id.String()
			}
		case "product_ids":
			if ids, ok := value.([]uuid.UUID); ok {
				query["product_id"] = bson.M{"$in": uuidStrings(ids)}
			}
		case "status":
			query["status"] = value
		case "base_color":
			query["color.base_color"] = value
		case "actual_color":
			query["color.actual_color"] = value
		case "min_price":
			if d, ok := value.(decimal.Decimal); ok {
				price["$gte"] = d.InexactFloat64()
			}
		case "max_price":
			if d, ok := value.(decimal.Decimal); ok {
				price["$lte"] = d.InexactFloat64()
			}
		}
	}
	if len(price) > 0 {
		query["price"] = price
	}

	return query
}

func decodeVariants(ctx context.Context, cursor *mongo.Cursor) ([]catalog.ProductVariant, error) {
	var variants []catalog.ProductVariant
	for cursor.Next(ctx) {
		var doc variantDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		variant, err := doc.toEntity()
		if err != nil {
			return nil, err
		}
		variants = append(variants, *variant)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return variants, nil
}

// Ensure MongoVariantRepository implements VariantRepository
var _ catalog.VariantRepository = (*MongoVariantRepository)(nil)
