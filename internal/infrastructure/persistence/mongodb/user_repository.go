package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/VasudevKishan/todo-api/internal/application/ports"
	"github.com/VasudevKishan/todo-api/internal/domain"
	domerrors "github.com/VasudevKishan/todo-api/internal/domain/errors"
)

type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(s *Store) *UserRepository {
	return &UserRepository{coll: s.db.Collection(usersCollection)}
}

func userWriteErr(err error) error {
	switch duplicateIndex(err) {
	case "":
		return err
	case emailIndex:
		return domerrors.ErrEmailExists
	default:
		return domerrors.ErrUserExists
	}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	_, err := r.coll.InsertOne(ctx, userToDocument(user))
	if err != nil {
		return userWriteErr(err)
	}
	return nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M, opts ...*options.FindOneOptions) (*domain.User, error) {
	var d userDocument
	if err := r.coll.FindOne(ctx, filter, opts...).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return documentToUser(d)
}

func (r *UserRepository) GetByID(ctx context.Context, userID domain.UserID) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": userID.String()})
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"username": username}, options.FindOne().SetCollation(caseInsensitive))
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email}, options.FindOne().SetCollation(caseInsensitive))
}

func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	var docs []userDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	users := make([]*domain.User, 0, len(docs))
	for _, d := range docs {
		u, err := documentToUser(d)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": user.ID.String()}, userToDocument(user))
	if err != nil {
		return userWriteErr(err)
	}
	if res.MatchedCount == 0 {
		return domerrors.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, userID domain.UserID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": userID.String()})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domerrors.ErrUserNotFound
	}
	return nil
}

var _ ports.UserRepository = (*UserRepository)(nil)
