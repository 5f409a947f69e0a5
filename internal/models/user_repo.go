package models

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// AccountRepo is the credential store for admins and users.
type AccountRepo interface {
	CreateAdmin(ctx context.Context, admin *Admin) (*Admin, error)
	FindAdminByID(ctx context.Context, id string) (*Admin, error)
	FindAdminByEmail(ctx context.Context, email string) (*Admin, error)
	CreateUser(ctx context.Context, user *User) (*User, error)
	FindUserByEmail(ctx context.Context, email string) (*User, error)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (mdb *MongodbRepo) CreateAdmin(ctx context.Context, admin *Admin) (*Admin, error) {
	col, err := mdb.GetCollection(AdminsColName)
	if err != nil {
		return nil, err
	}
	if admin.ID.IsZero() {
		admin.ID = primitive.NewObjectID()
	}
	if admin.Role == "" {
		admin.Role = "admin"
	}
	admin.Email = NormalizeEmail(admin.Email)
	now := time.Now().UTC()
	admin.CreatedAt = now
	admin.UpdatedAt = now

	if _, err := col.InsertOne(ctx, admin); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to insert admin: %w", err)
	}
	return admin, nil
}

func (mdb *MongodbRepo) FindAdminByID(ctx context.Context, id string) (*Admin, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}
	var admin Admin
	if err := mdb.findOne(ctx, AdminsColName, bson.M{"_id": oid}, &admin); err != nil {
		return nil, err
	}
	return &admin, nil
}

func (mdb *MongodbRepo) FindAdminByEmail(ctx context.Context, email string) (*Admin, error) {
	var admin Admin
	if err := mdb.findOne(ctx, AdminsColName, bson.M{"email": NormalizeEmail(email)}, &admin); err != nil {
		return nil, err
	}
	return &admin, nil
}

func (mdb *MongodbRepo) CreateUser(ctx context.Context, user *User) (*User, error) {
	col, err := mdb.GetCollection(UsersColName)
	if err != nil {
		return nil, err
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	user.Email = NormalizeEmail(user.Email)
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := col.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}
	return user, nil
}

func (mdb *MongodbRepo) FindUserByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	if err := mdb.findOne(ctx, UsersColName, bson.M{"email": NormalizeEmail(email)}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (mdb *MongodbRepo) findOne(ctx context.Context, colName string, filter bson.M, out interface{}) error {
	col, err := mdb.GetCollection(colName)
	if err != nil {
		return err
	}
	if err := col.FindOne(ctx, filter).Decode(out); err != nil {
		return notFoundOr(err, "failed to find "+strings.TrimSuffix(colName, "s"))
	}
	return nil
}
