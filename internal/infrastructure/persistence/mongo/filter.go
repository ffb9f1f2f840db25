package mongo

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stylehub/backend/internal/domain/shared"
)

// findOptions translates the shared filter's sort and pagination into
// mongo find options. Page or PageSize of zero means no pagination.
func findOptions(filter shared.Filter) *options.FindOptions {
	opts := options.Find()

	if filter.OrderBy != "" {
		direction := 1
		if filter.OrderDir == "desc" {
			direction = -1
		}
		opts.SetSort(bson.D{{Key: filter.OrderBy, Value: direction}})
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		opts.SetSkip(int64((filter.Page - 1) * filter.PageSize))
		opts.SetLimit(int64(filter.PageSize))
	}

	return opts
}

// caseInsensitive builds a case-insensitive substring regex, quoting
// the input so user text never becomes a pattern.
func caseInsensitive(term string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
}
