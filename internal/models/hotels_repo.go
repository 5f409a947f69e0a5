package models

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type HotelRepo interface {
	CreateHotel(ctx context.Context, hotel *Hotel) (*Hotel, error)
	ListHotels(ctx context.Context) ([]*Hotel, error)
	GetHotelByID(ctx context.Context, id string) (*Hotel, error)
	UpdateHotel(ctx context.Context, hotel *Hotel) (*Hotel, error)
	DeleteHotel(ctx context.Context, id string) error
}

func (mdb *MongodbRepo) CreateHotel(ctx context.Context, hotel *Hotel) (*Hotel, error) {
	col, err := mdb.GetCollection(HotelsColName)
	if err != nil {
		return nil, err
	}
	if hotel.ID.IsZero() {
		hotel.ID = primitive.NewObjectID()
	}
	if _, err := col.InsertOne(ctx, hotel); err != nil {
		return nil, fmt.Errorf("failed to insert hotel: %w", err)
	}
	return hotel, nil
}

func (mdb *MongodbRepo) ListHotels(ctx context.Context) ([]*Hotel, error) {
	col, err := mdb.GetCollection(HotelsColName)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "lastUpdated", Value: -1}})
	cursor, err := col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find hotels: %w", err)
	}
	defer cursor.Close(ctx)

	hotels := make([]*Hotel, 0)
	if err := cursor.All(ctx, &hotels); err != nil {
		return nil, fmt.Errorf("failed to decode hotels: %w", err)
	}
	return hotels, nil
}

func (mdb *MongodbRepo) GetHotelByID(ctx context.Context, id string) (*Hotel, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	col, err := mdb.GetCollection(HotelsColName)
	if err != nil {
		return nil, err
	}

	var hotel Hotel
	if err := col.FindOne(ctx, bson.M{"_id": oid}).Decode(&hotel); err != nil {
		return nil, notFoundOr(err, "failed to find hotel")
	}
	return &hotel, nil
}

// UpdateHotel writes the allow-listed fields of hotel and returns the stored
// document.
func (mdb *MongodbRepo) UpdateHotel(ctx context.Context, hotel *Hotel) (*Hotel, error) {
	col, err := mdb.GetCollection(HotelsColName)
	if err != nil {
		return nil, err
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated Hotel
	err = col.FindOneAndUpdate(ctx,
		bson.M{"_id": hotel.ID},
		bson.M{"$set": hotel.updateDocument()},
		opts,
	).Decode(&updated)
	if err != nil {
		return nil, notFoundOr(err, "failed to update hotel")
	}
	return &updated, nil
}

func (mdb *MongodbRepo) DeleteHotel(ctx context.Context, id string) error {
	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}
	col, err := mdb.GetCollection(HotelsColName)
	if err != nil {
		return err
	}

	res, err := col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete hotel: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
