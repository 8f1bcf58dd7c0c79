package dbmongo

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func optionsFindNewestFirst(limit int64) *options.FindOptions {
	opts := options.Find().SetSort(bson.D{{Key: "notified_at", Value: -1}})
	if limit > 0 {
		opts = opts.SetLimit(limit)
	}
	return opts
}
