package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/SoftGuar/Account-Management-Service/internal/core/domain"
)

type accountDoc struct {
	ID           int64     `bson:"_id"`
	FirstName    string    `bson:"first_name"`
	LastName     string    `bson:"last_name"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"password"`
	Phone        string    `bson:"phone,omitempty"`
	Privilege    *int      `bson:"privilege,omitempty"`
	AddedBy      *int64    `bson:"add_by,omitempty"`
	Role         string    `bson:"role,omitempty"`
	HelperIDs    []int64   `bson:"helper_ids,omitempty"`
	CreatedAt    time.Time `bson:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
}

func newAccountDoc(a *domain.Account) accountDoc {
	return accountDoc{
		ID:           a.ID,
		FirstName:    a.FirstName,
		LastName:     a.LastName,
		Email:        a.Email,
		PasswordHash: a.PasswordHash,
		Phone:        a.Phone,
		Privilege:    a.Privilege,
		AddedBy:      a.AddedBy,
		Role:         a.Role,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func (d accountDoc) toDomain(kind domain.Kind) *domain.Account {
	return &domain.Account{
		ID:           d.ID,
		Kind:         kind,
		FirstName:    d.FirstName,
		LastName:     d.LastName,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Phone:        d.Phone,
		Privilege:    d.Privilege,
		AddedBy:      d.AddedBy,
		Role:         d.Role,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// patchSet builds the $set document for a partial update.
func patchSet(p domain.AccountPatch, now time.Time) bson.M {
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
	if p.PasswordHash != nil {
		set["password"] = *p.PasswordHash
	}
	if p.Phone != nil {
		set["phone"] = *p.Phone
	}
	if p.Privilege != nil {
		set["privilege"] = *p.Privilege
	}
	if p.AddedBy != nil {
		set["add_by"] = *p.AddedBy
	}
	if p.Role != nil {
		set["role"] = *p.Role
	}
	return set
}

// AccountStore persists one account kind in its own collection.
type AccountStore struct {
	kind domain.Kind
	col  *mongo.Collection
	seq  sequence
}

func NewAccountStore(db *mongo.Database, kind domain.Kind) *AccountStore {
	return &AccountStore{
		kind: kind,
		col:  db.Collection(kind.Collection()),
		seq:  newSequence(db, kind.Collection()),
	}
}

func (r *AccountStore) Create(ctx context.Context, a *domain.Account) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.seq.next(ctx)
	if err != nil {
		return nil, err
	}
	doc := newAccountDoc(a)
	doc.ID = id

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, err
	}
	return doc.toDomain(r.kind), nil
}

func (r *AccountStore) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *AccountStore) FindByID(ctx context.Context, id int64) (*domain.Account, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *AccountStore) findOne(ctx context.Context, filter bson.M) (*domain.Account, error) {
	doc, err := r.findDoc(ctx, filter)
	if err != nil {
		return nil, err
	}
	return doc.toDomain(r.kind), nil
}

func (r *AccountStore) findDoc(ctx context.Context, filter bson.M) (*accountDoc, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc accountDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, err
	}
	return &doc, nil
}

// List returns every account of the kind ordered by id.
func (r *AccountStore) List(ctx context.Context) ([]*domain.Account, error) {
	return r.find(ctx, bson.M{})
}

func (r *AccountStore) find(ctx context.Context, filter bson.M) ([]*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []accountDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]*domain.Account, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain(r.kind))
	}
	return out, nil
}

func (r *AccountStore) Update(ctx context.Context, id int64, patch domain.AccountPatch) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc accountDoc
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": patchSet(patch, time.Now().UTC())}, opts).Decode(&doc)
	if err != nil {
		switch {
		case errors.Is(err, mongo.ErrNoDocuments):
			return nil, domain.ErrRecordNotFound
		case mongo.IsDuplicateKeyError(err):
			return nil, domain.ErrDuplicateEmail
		}
		return nil, err
	}
	return doc.toDomain(r.kind), nil
}

func (r *AccountStore) Delete(ctx context.Context, id int64) error {
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

// EnsureIndexes creates the unique email index of the kind's collection.
func (r *AccountStore) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
