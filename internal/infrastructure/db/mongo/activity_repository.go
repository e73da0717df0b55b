package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/SambridhiGhimire/Architech-bidding/internal/core/domain"
	"github.com/SambridhiGhimire/Architech-bidding/internal/core/ports"
)

const activityCollection = "activity_events"

// ActivityRepository persists the marketplace audit feed.
type ActivityRepository struct {
	collection *mongo.Collection
}

// NewActivityRepository returns an ActivityRepository backed by the given database.
func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{collection: db.Collection(activityCollection)}
}

var _ ports.ActivityRepository = (*ActivityRepository)(nil)

func (r *ActivityRepository) Insert(ctx context.Context, e *domain.ActivityEvent) error {
	if e.ID == "" {
		e.ID = primitive.NewObjectID().Hex()
	}
	if _, err := r.collection.InsertOne(ctx, e); err != nil {
		return fmt.Errorf("insert activity event: %w", err)
	}
	return nil
}

func (r *ActivityRepository) ListByProject(ctx context.Context, projectID string, limit int) ([]domain.ActivityEvent, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{"project_id": projectID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list activity events: %w", err)
	}
	defer cursor.Close(ctx)

	var events []domain.ActivityEvent
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("decode activity events: %w", err)
	}
	return events, nil
}
