package models

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the lookup indexes for bookings and the unique email
// indexes for accounts.
func (mdb *MongodbRepo) EnsureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		BookingsColName: {
			{Keys: bson.D{{Key: "userId", Value: 1}}, Options: options.Index().SetName("userId_1")},
			{Keys: bson.D{{Key: "hotelId", Value: 1}}, Options: options.Index().SetName("hotelId_1")},
			{Keys: bson.D{{Key: "status", Value: 1}}, Options: options.Index().SetName("status_1")},
		},
		HotelsColName: {
			{Keys: bson.D{{Key: "lastUpdated", Value: -1}}, Options: options.Index().SetName("lastUpdated_-1")},
		},
		AdminsColName: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName("email_1")},
		},
		UsersColName: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName("email_1")},
		},
	}

	for colName, models := range indexes {
		col, err := mdb.GetCollection(colName)
		if err != nil {
			return err
		}
		if _, err := col.Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("error creating indexes on %s: %w", colName, err)
		}
	}
	return nil
}
