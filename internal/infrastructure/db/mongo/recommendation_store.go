package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/SoftGuar/Account-Management-Service/internal/core/domain"
)

const collectionRecommendations = "helper_recommendations"

type recommendationDoc struct {
	ID        int64                       `bson:"_id"`
	FirstName string                      `bson:"first_name"`
	LastName  string                      `bson:"last_name"`
	Email     string                      `bson:"email"`
	Phone     string                      `bson:"phone,omitempty"`
	UserID    int64                       `bson:"user_id"`
	Status    domain.RecommendationStatus `bson:"status"`
	Notes     string                      `bson:"notes,omitempty"`
	User      *accountDoc                 `bson:"user,omitempty"`
	CreatedAt time.Time                   `bson:"created_at"`
	UpdatedAt time.Time                   `bson:"updated_at"`
}

func (d recommendationDoc) toDomain() *domain.HelperRecommendation {
	r := &domain.HelperRecommendation{
		ID:        d.ID,
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Email:     d.Email,
		Phone:     d.Phone,
		UserID:    d.UserID,
		Status:    d.Status,
		Notes:     d.Notes,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
	if d.User != nil {
		r.User = d.User.toDomain(domain.KindUser)
	}
	return r
}

func recommendationSet(p domain.RecommendationPatch, now time.Time) bson.M {
	set := bson.M{"updated_at": now}
	if p.FirstName != nil {
		set["first_name"] = *p.FirstName
	}
	if p.LastName != nil {
		set["last_name"] = *p.LastName
	}
	if p.Email != nil {
		set["email"] = *p.Email
	}
	if p.Phone != nil {
		set["phone"] = *p.Phone
	}
	if p.Status != nil {
		set["status"] = *p.Status
	}
	if p.Notes != nil {
		set["notes"] = *p.Notes
	}
	return set
}

type RecommendationStore struct {
	col *mongo.Collection
	seq sequence
}

func NewRecommendationStore(db *mongo.Database) *RecommendationStore {
	return &RecommendationStore{
		col: db.Collection(collectionRecommendations),
		seq: newSequence(db, collectionRecommendations),
	}
}

func (r *RecommendationStore) Create(ctx context.Context, rec *domain.HelperRecommendation) (*domain.HelperRecommendation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.seq.next(ctx)
	if err != nil {
		return nil, err
	}
	doc := recommendationDoc{
		ID:        id,
		FirstName: rec.FirstName,
		LastName:  rec.LastName,
		Email:     rec.Email,
		Phone:     rec.Phone,
		UserID:    rec.UserID,
		Status:    rec.Status,
		Notes:     rec.Notes,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

// withUser is the pipeline tail embedding the owning user document.
func withUser() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$lookup", Value: bson.M{
			"from":         domain.KindUser.Collection(),
			"localField":   "user_id",
			"foreignField": "_id",
			"as":           "user",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$user", "preserveNullAndEmptyArrays": true}}},
	}
}

func (r *RecommendationStore) aggregate(ctx context.Context, head ...bson.D) ([]*domain.HelperRecommendation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := append(mongo.Pipeline(head), withUser()...)
	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []recommendationDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]*domain.HelperRecommendation, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *RecommendationStore) FindByID(ctx context.Context, id int64) (*domain.HelperRecommendation, error) {
	recs, err := r.aggregate(ctx, bson.D{{Key: "$match", Value: bson.M{"_id": id}}})
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, domain.ErrRecordNotFound
	}
	return recs[0], nil
}

func (r *RecommendationStore) FindPendingByEmail(ctx context.Context, email string) (*domain.HelperRecommendation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc recommendationDoc
	err := r.col.FindOne(ctx, bson.M{"email": email, "status": domain.RecommendationPending}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

// List returns every recommendation newest first.
func (r *RecommendationStore) List(ctx context.Context) ([]*domain.HelperRecommendation, error) {
	return r.aggregate(ctx, bson.D{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}}})
}

func (r *RecommendationStore) Update(ctx context.Context, id int64, patch domain.RecommendationPatch) (*domain.HelperRecommendation, error) {
	updateCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	res, err := r.col.UpdateOne(updateCtx, bson.M{"_id": id}, bson.M{"$set": recommendationSet(patch, time.Now().UTC())})
	cancel()
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrRecordNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *RecommendationStore) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

// EnsureIndexes creates the lookup indexes of the recommendations collection.
func (r *RecommendationStore) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}
	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
