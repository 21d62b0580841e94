package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/usermgmt/user-system/internal/core/domain"
)

const usersCollection = "users"

// UserRepository persists users in the "users" collection.
type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

type userDoc struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	FirstName  string             `bson:"first_name"`
	LastName   string             `bson:"last_name"`
	Role       string             `bson:"role"`
	IsActive   bool               `bson:"is_active"`
	LastLogin  *time.Time         `bson:"last_login,omitempty"`
	CreatedAt  time.Time          `bson:"created_at"`
	HashedPass string             `bson:"hashed_pass"`
}

func (d *userDoc) toDomain() *domain.User {
	return &domain.User{
		ID:         d.ID.Hex(),
		FirstName:  d.FirstName,
		LastName:   d.LastName,
		Role:       domain.Role(d.Role),
		IsActive:   d.IsActive,
		LastLogin:  d.LastLogin,
		CreatedAt:  d.CreatedAt.UTC(),
		HashedPass: d.HashedPass,
	}
}

func (r *UserRepository) List(ctx context.Context, limit int64) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []userDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}

	users := make([]*domain.User, 0, len(docs))
	for i := range docs {
		users = append(users, docs[i].toDomain())
	}
	return users, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// an id no document can carry
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) FindByCredential(ctx context.Context, hashedPass string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"hashed_pass": hashedPass})
}

func (r *UserRepository) FindByLogin(ctx context.Context, firstName, lastName, hashedPass string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{
		"first_name":  firstName,
		"last_name":   lastName,
		"hashed_pass": hashedPass,
	})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) Insert(ctx context.Context, user *domain.User) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := userDoc{
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		Role:       string(user.Role),
		IsActive:   user.IsActive,
		LastLogin:  user.LastLogin,
		CreatedAt:  user.CreatedAt,
		HashedPass: user.HashedPass,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("insert user: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("insert user: unexpected id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

func (r *UserRepository) Update(ctx context.Context, id string, fields map[string]any) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	patch := bson.M{}
	for k, v := range fields {
		patch[k] = v
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": patch})
	if err != nil {
		return 0, fmt.Errorf("update user: %w", err)
	}
	return res.MatchedCount, nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return 0, fmt.Errorf("delete user: %w", err)
	}
	return res.DeletedCount, nil
}

// EnsureIndexes creates the lookup indexes used by login and the
// access-control middleware.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "hashed_pass", Value: 1}}},
		{Keys: bson.D{
			{Key: "first_name", Value: 1},
			{Key: "last_name", Value: 1},
			{Key: "hashed_pass", Value: 1},
		}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
