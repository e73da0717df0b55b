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

const bidsCollection = "bids"

// BidRepository persists bids in MongoDB. The unique compound index on
// (project_id, service_provider_id) enforces one bid per provider per
// project at the storage layer.
type BidRepository struct {
	collection *mongo.Collection
}

// NewBidRepository returns a BidRepository backed by the given database.
func NewBidRepository(db *mongo.Database) *BidRepository {
	return &BidRepository{collection: db.Collection(bidsCollection)}
}

var _ ports.BidRepository = (*BidRepository)(nil)

func (r *BidRepository) Create(ctx context.Context, b *domain.Bid) (*domain.Bid, error) {
	if b.ID == "" {
		b.ID = primitive.NewObjectID().Hex()
	}
	now := time.Now().UTC()
	b.SubmittedAt = now
	b.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, b); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateBid
		}
		return nil, fmt.Errorf("insert bid: %w", err)
	}
	return b, nil
}

func (r *BidRepository) FindByID(ctx context.Context, id string) (*domain.Bid, error) {
	var b domain.Bid
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&b)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrBidNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find bid: %w", err)
	}
	return &b, nil
}

func (r *BidRepository) ListByProject(ctx context.Context, projectID string) ([]domain.Bid, error) {
	return r.list(ctx, bson.M{"project_id": projectID})
}

func (r *BidRepository) ListByProvider(ctx context.Context, providerID string) ([]domain.Bid, error) {
	return r.list(ctx, bson.M{"service_provider_id": providerID})
}

func (r *BidRepository) list(ctx context.Context, query bson.M) ([]domain.Bid, error) {
	opts := options.Find().SetSort(bson.D{{Key: "submitted_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list bids: %w", err)
	}
	defer cursor.Close(ctx)

	var bids []domain.Bid
	if err := cursor.All(ctx, &bids); err != nil {
		return nil, fmt.Errorf("decode bids: %w", err)
	}
	return bids, nil
}

func (r *BidRepository) CountByProject(ctx context.Context, projectID string) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"project_id": projectID})
	if err != nil {
		return 0, fmt.Errorf("count bids: %w", err)
	}
	return count, nil
}

// Update applies the given fields and returns the fresh document.
func (r *BidRepository) Update(ctx context.Context, id string, fields map[string]any) (*domain.Bid, error) {
	if len(fields) == 0 {
		return r.FindByID(ctx, id)
	}
	fields["updated_at"] = time.Now().UTC()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var b domain.Bid
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&b)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrBidNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update bid: %w", err)
	}
	return &b, nil
}

func (r *BidRepository) Delete(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete bid: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrBidNotFound
	}
	return nil
}

func (r *BidRepository) SetStatus(ctx context.Context, id string, status domain.BidStatus) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": string(status), "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("set bid status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrBidNotFound
	}
	return nil
}

// RejectSiblings rejects every still-pending bid on the project except the
// accepted one in a single write.
func (r *BidRepository) RejectSiblings(ctx context.Context, projectID, acceptedBidID string) error {
	_, err := r.collection.UpdateMany(ctx,
		bson.M{
			"project_id": projectID,
			"_id":        bson.M{"$ne": acceptedBidID},
			"status":     string(domain.BidPending),
		},
		bson.M{"$set": bson.M{"status": string(domain.BidRejected), "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return fmt.Errorf("reject sibling bids: %w", err)
	}
	return nil
}
