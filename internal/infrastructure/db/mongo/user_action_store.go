package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/SoftGuar/Account-Management-Service/internal/core/domain"
)

const collectionUserActions = "user_actions"

type userActionDoc struct {
	ID        int64     `bson:"_id"`
	UserID    int64     `bson:"user_id"`
	Action    string    `bson:"action"`
	CreatedAt time.Time `bson:"created_at"`
}

func (d userActionDoc) toDomain() *domain.UserAction {
	return &domain.UserAction{ID: d.ID, UserID: d.UserID, Action: d.Action, CreatedAt: d.CreatedAt}
}

// UserActionStore is the append-only audit log collection.
type UserActionStore struct {
	col *mongo.Collection
	seq sequence
}

func NewUserActionStore(db *mongo.Database) *UserActionStore {
	return &UserActionStore{
		col: db.Collection(collectionUserActions),
		seq: newSequence(db, collectionUserActions),
	}
}

func (r *UserActionStore) Append(ctx context.Context, a *domain.UserAction) (*domain.UserAction, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.seq.next(ctx)
	if err != nil {
		return nil, err
	}
	doc := userActionDoc{ID: id, UserID: a.UserID, Action: a.Action, CreatedAt: a.CreatedAt}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

// ListByUser returns the user's actions newest first.
func (r *UserActionStore) ListByUser(ctx context.Context, userID int64) ([]*domain.UserAction, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []userActionDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]*domain.UserAction, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *UserActionStore) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	return err
}
