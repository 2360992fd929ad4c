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

type TodoRepository struct {
	coll *mongo.Collection
}

func NewTodoRepository(s *Store) *TodoRepository {
	return &TodoRepository{coll: s.db.Collection(todosCollection)}
}

func (r *TodoRepository) Create(ctx context.Context, todo *domain.Todo) error {
	_, err := r.coll.InsertOne(ctx, todoToDocument(todo))
	return err
}

func (r *TodoRepository) GetByID(ctx context.Context, todoID domain.TodoID) (*domain.Todo, error) {
	var d todoDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": todoID.String()}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return documentToTodo(d)
}

// List returns matching todos, newest first.
func (r *TodoRepository) List(ctx context.Context, filter domain.TodoFilter) ([]*domain.Todo, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := r.coll.Find(ctx, todoFilterDocument(filter), opts)
	if err != nil {
		return nil, err
	}
	var docs []todoDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	todos := make([]*domain.Todo, 0, len(docs))
	for _, d := range docs {
		t, err := documentToTodo(d)
		if err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}
	return todos, nil
}

func (r *TodoRepository) CountByProject(ctx context.Context, projectID domain.ProjectID) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{"projectId": projectID.String()})
}

func (r *TodoRepository) Update(ctx context.Context, todo *domain.Todo) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": todo.ID.String()}, todoToDocument(todo))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domerrors.ErrTodoNotFound
	}
	return nil
}

func (r *TodoRepository) Delete(ctx context.Context, todoID domain.TodoID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": todoID.String()})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domerrors.ErrTodoNotFound
	}
	return nil
}

var _ ports.TodoRepository = (*TodoRepository)(nil)
