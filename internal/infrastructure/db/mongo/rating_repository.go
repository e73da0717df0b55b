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

const ratingsCollection = "ratings"

// RatingRepository persists ratings in MongoDB. The unique compound index on
// (rater_id, rated_user_id, project_id) makes the uniqueness triple race
// safe; the general scope stores project_id as the empty string.
type RatingRepository struct {
	collection *mongo.Collection
}

// NewRatingRepository returns a RatingRepository backed by the given database.
func NewRatingRepository(db *mongo.Database) *RatingRepository {
	return &RatingRepository{collection: db.Collection(ratingsCollection)}
}

var _ ports.RatingRepository = (*RatingRepository)(nil)

func (r *RatingRepository) Insert(ctx context.Context, rating *domain.Rating) (*domain.Rating, error) {
	if rating.ID == "" {
		rating.ID = primitive.NewObjectID().Hex()
	}
	now := time.Now().UTC()
	rating.CreatedAt = now
	rating.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, rating); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateRating
		}
		return nil, fmt.Errorf("insert rating: %w", err)
	}
	return rating, nil
}

func (r *RatingRepository) FindByID(ctx context.Context, id string) (*domain.Rating, error) {
	var rating domain.Rating
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&rating)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrRatingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find rating: %w", err)
	}
	return &rating, nil
}

// Stats averages the user's approved ratings. A user with no approved
// ratings gets a zero-valued result, not an error.
func (r *RatingRepository) Stats(ctx context.Context, ratedUserID string) (*ports.RatingStats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"rated_user_id": ratedUserID,
			"status":        string(domain.RatingApproved),
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":     nil,
			"average": bson.M{"$avg": "$rating"},
			"count":   bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate rating stats: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []ports.RatingStats
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode rating stats: %w", err)
	}
	if len(rows) == 0 {
		return &ports.RatingStats{}, nil
	}
	return &rows[0], nil
}

// Distribution buckets the user's approved ratings by integer score.
func (r *RatingRepository) Distribution(ctx context.Context, ratedUserID string) ([]ports.RatingBucket, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"rated_user_id": ratedUserID,
			"status":        string(domain.RatingApproved),
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$rating",
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: -1}}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate rating distribution: %w", err)
	}
	defer cursor.Close(ctx)

	var buckets []ports.RatingBucket
	if err := cursor.All(ctx, &buckets); err != nil {
		return nil, fmt.Errorf("decode rating distribution: %w", err)
	}
	return buckets, nil
}

func (r *RatingRepository) ListByRatedUser(ctx context.Context, ratedUserID string, page, limit int) ([]domain.Rating, int64, error) {
	query := bson.M{
		"rated_user_id": ratedUserID,
		"status":        string(domain.RatingApproved),
	}
	return r.listPage(ctx, query, page, limit)
}

func (r *RatingRepository) ListByProject(ctx context.Context, projectID string) ([]domain.Rating, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"project_id": projectID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list project ratings: %w", err)
	}
	defer cursor.Close(ctx)

	var ratings []domain.Rating
	if err := cursor.All(ctx, &ratings); err != nil {
		return nil, fmt.Errorf("decode ratings: %w", err)
	}
	return ratings, nil
}

func (r *RatingRepository) ListByRater(ctx context.Context, raterID string, page, limit int) ([]domain.Rating, int64, error) {
	return r.listPage(ctx, bson.M{"rater_id": raterID}, page, limit)
}

func (r *RatingRepository) listPage(ctx context.Context, query bson.M, page, limit int) ([]domain.Rating, int64, error) {
	total, err := r.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count ratings: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list ratings: %w", err)
	}
	defer cursor.Close(ctx)

	var ratings []domain.Rating
	if err := cursor.All(ctx, &ratings); err != nil {
		return nil, 0, fmt.Errorf("decode ratings: %w", err)
	}
	return ratings, total, nil
}

// Update applies the given fields and returns the fresh document.
func (r *RatingRepository) Update(ctx context.Context, id string, fields map[string]any) (*domain.Rating, error) {
	if len(fields) == 0 {
		return r.FindByID(ctx, id)
	}
	fields["updated_at"] = time.Now().UTC()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var rating domain.Rating
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&rating)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrRatingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update rating: %w", err)
	}
	return &rating, nil
}

func (r *RatingRepository) Delete(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete rating: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrRatingNotFound
	}
	return nil
}
