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

	"github.com/SambridhiGhimire/Architech-bidding/internal/core/domain"
	"github.com/SambridhiGhimire/Architech-bidding/internal/core/ports"
)

const projectsCollection = "projects"

// ProjectRepository persists projects in MongoDB.
type ProjectRepository struct {
	collection *mongo.Collection
}

// NewProjectRepository returns a ProjectRepository backed by the given database.
func NewProjectRepository(db *mongo.Database) *ProjectRepository {
	return &ProjectRepository{collection: db.Collection(projectsCollection)}
}

var _ ports.ProjectRepository = (*ProjectRepository)(nil)

func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	if p.ID == "" {
		p.ID = primitive.NewObjectID().Hex()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, p); err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}
	return p, nil
}

func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*domain.Project, error) {
	var p domain.Project
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find project: %w", err)
	}
	return &p, nil
}

// List returns a page of projects matching the filter plus the total count.
func (r *ProjectRepository) List(ctx context.Context, filter ports.ListProjectsFilter) ([]*domain.Project, int64, error) {
	query := bson.M{}
	if filter.OwnerID != "" {
		query["owner_id"] = filter.OwnerID
	}
	if filter.PublicOnly {
		query["is_public"] = true
		query["status"] = string(domain.ProjectLive)
	} else if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.City != "" {
		query["location.city"] = primitive.Regex{Pattern: filter.City, Options: "i"}
	}
	if filter.State != "" {
		query["location.state"] = primitive.Regex{Pattern: filter.State, Options: "i"}
	}
	if filter.MinBudget > 0 || filter.MaxBudget > 0 {
		budget := bson.M{}
		if filter.MinBudget > 0 {
			budget["$gte"] = filter.MinBudget
		}
		if filter.MaxBudget > 0 {
			budget["$lte"] = filter.MaxBudget
		}
		query["budget.max"] = budget
	}

	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count projects: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((filter.Page - 1) * filter.Limit)).
		SetLimit(int64(filter.Limit))

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list projects: %w", err)
	}
	defer cursor.Close(ctx)

	var projects []*domain.Project
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, 0, fmt.Errorf("decode projects: %w", err)
	}
	return projects, total, nil
}

// Update applies the given fields and returns the fresh document.
func (r *ProjectRepository) Update(ctx context.Context, id string, fields map[string]any) (*domain.Project, error) {
	if len(fields) == 0 {
		return r.FindByID(ctx, id)
	}
	fields["updated_at"] = time.Now().UTC()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var p domain.Project
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	return &p, nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}

// Award moves the project from live to in_progress and records the winning
// bid in a single conditional write. The status guard in the filter means at
// most one concurrent caller observes the transition; everyone else gets
// false and must re-read the project to find out who won.
func (r *ProjectRepository) Award(ctx context.Context, projectID, bidID string) (bool, error) {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": projectID, "status": string(domain.ProjectLive)},
		bson.M{"$set": bson.M{
			"status":         string(domain.ProjectInProgress),
			"awarded_bid_id": bidID,
			"updated_at":     time.Now().UTC(),
		}},
	)
	if err != nil {
		return false, fmt.Errorf("award project: %w", err)
	}
	return res.ModifiedCount == 1, nil
}
