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

type ProjectRepository struct {
	coll *mongo.Collection
}

func NewProjectRepository(s *Store) *ProjectRepository {
	return &ProjectRepository{coll: s.db.Collection(projectsCollection)}
}

func projectWriteErr(err error) error {
	if duplicateIndex(err) != "" {
		return domerrors.ErrProjectExists
	}
	return err
}

func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	if _, err := r.coll.InsertOne(ctx, projectToDocument(project)); err != nil {
		return projectWriteErr(err)
	}
	return nil
}

func (r *ProjectRepository) findOne(ctx context.Context, filter bson.M, opts ...*options.FindOneOptions) (*domain.Project, error) {
	var d projectDocument
	if err := r.coll.FindOne(ctx, filter, opts...).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return documentToProject(d)
}

func (r *ProjectRepository) GetByID(ctx context.Context, projectID domain.ProjectID) (*domain.Project, error) {
	return r.findOne(ctx, bson.M{"_id": projectID.String()})
}

func (r *ProjectRepository) FindByName(ctx context.Context, ownerID domain.UserID, name string) (*domain.Project, error) {
	filter := bson.M{"userId": ownerID.String(), "projectName": name}
	return r.findOne(ctx, filter, options.FindOne().SetCollation(caseInsensitive))
}

func (r *ProjectRepository) ListByOwner(ctx context.Context, ownerID domain.UserID) ([]*domain.Project, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{"userId": ownerID.String()}, opts)
	if err != nil {
		return nil, err
	}
	var docs []projectDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	projects := make([]*domain.Project, 0, len(docs))
	for _, d := range docs {
		p, err := documentToProject(d)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, nil
}

func (r *ProjectRepository) CountByOwner(ctx context.Context, ownerID domain.UserID) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{"userId": ownerID.String()})
}

func (r *ProjectRepository) Update(ctx context.Context, project *domain.Project) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": project.ID.String()}, projectToDocument(project))
	if err != nil {
		return projectWriteErr(err)
	}
	if res.MatchedCount == 0 {
		return domerrors.ErrProjectNotFound
	}
	return nil
}

func (r *ProjectRepository) Delete(ctx context.Context, projectID domain.ProjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": projectID.String()})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domerrors.ErrProjectNotFound
	}
	return nil
}

var _ ports.ProjectRepository = (*ProjectRepository)(nil)
