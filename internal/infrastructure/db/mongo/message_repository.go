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

const messagesCollection = "messages"

// MessageRepository persists direct messages in MongoDB.
type MessageRepository struct {
	collection *mongo.Collection
}

// NewMessageRepository returns a MessageRepository backed by the given database.
func NewMessageRepository(db *mongo.Database) *MessageRepository {
	return &MessageRepository{collection: db.Collection(messagesCollection)}
}

var _ ports.MessageRepository = (*MessageRepository)(nil)

func (r *MessageRepository) Insert(ctx context.Context, m *domain.Message) (*domain.Message, error) {
	if m.ID == "" {
		m.ID = primitive.NewObjectID().Hex()
	}
	m.CreatedAt = time.Now().UTC()

	if _, err := r.collection.InsertOne(ctx, m); err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}
	return m, nil
}

func (r *MessageRepository) FindByID(ctx context.Context, id string) (*domain.Message, error) {
	var m domain.Message
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrMessageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find message: %w", err)
	}
	return &m, nil
}

// ListByConversation returns one page of a thread, newest first.
func (r *MessageRepository) ListByConversation(ctx context.Context, conversationID string, page, limit int) ([]domain.Message, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{"conversation_id": conversationID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list conversation: %w", err)
	}
	defer cursor.Close(ctx)

	var messages []domain.Message
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, fmt.Errorf("decode messages: %w", err)
	}
	return messages, nil
}

// Conversations groups the user's messages by conversation id. Each group
// carries its latest message and the count of messages addressed to the user
// that are still unread. Threads come back newest first.
func (r *MessageRepository) Conversations(ctx context.Context, userID string) ([]ports.ConversationSummary, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"$or": bson.A{
			bson.M{"sender_id": userID},
			bson.M{"recipient_id": userID},
		}}}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		{{Key: "$group", Value: bson.M{
			"_id":          "$conversation_id",
			"last_message": bson.M{"$first": "$$ROOT"},
			"unread_count": bson.M{"$sum": bson.M{"$cond": bson.A{
				bson.M{"$and": bson.A{
					bson.M{"$eq": bson.A{"$recipient_id", userID}},
					bson.M{"$eq": bson.A{"$is_read", false}},
				}},
				1,
				0,
			}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "last_message.created_at", Value: -1}}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate conversations: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		ConversationID string         `bson:"_id"`
		LastMessage    domain.Message `bson:"last_message"`
		UnreadCount    int64          `bson:"unread_count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode conversations: %w", err)
	}

	summaries := make([]ports.ConversationSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, ports.ConversationSummary{
			ConversationID: row.ConversationID,
			LastMessage:    row.LastMessage,
			UnreadCount:    row.UnreadCount,
		})
	}
	return summaries, nil
}

// MarkConversationRead flips every unread message addressed to userID in the
// thread. Messages sent by the user are untouched.
func (r *MessageRepository) MarkConversationRead(ctx context.Context, conversationID, userID string) (int64, error) {
	now := time.Now().UTC()
	res, err := r.collection.UpdateMany(ctx,
		bson.M{
			"conversation_id": conversationID,
			"recipient_id":    userID,
			"is_read":         false,
		},
		bson.M{"$set": bson.M{
			"is_read": true,
			"read_at": now,
			"status":  string(domain.MessageRead),
		}},
	)
	if err != nil {
		return 0, fmt.Errorf("mark conversation read: %w", err)
	}
	return res.ModifiedCount, nil
}

func (r *MessageRepository) MarkRead(ctx context.Context, id string) error {
	now := time.Now().UTC()
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"is_read": true,
			"read_at": now,
			"status":  string(domain.MessageRead),
		}},
	)
	if err != nil {
		return fmt.Errorf("mark message read: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrMessageNotFound
	}
	return nil
}

func (r *MessageRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{
		"recipient_id": userID,
		"is_read":      false,
	})
	if err != nil {
		return 0, fmt.Errorf("count unread: %w", err)
	}
	return count, nil
}

func (r *MessageRepository) Delete(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrMessageNotFound
	}
	return nil
}
