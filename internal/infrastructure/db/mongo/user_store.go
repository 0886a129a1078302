package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/SoftGuar/Account-Management-Service/internal/core/domain"
)

// UserStore keeps the user↔helper association as a helper_ids array on the
// user document. Helpers do not point back at users.
type UserStore struct {
	*AccountStore
	helpers *AccountStore
}

func NewUserStore(db *mongo.Database, helpers *AccountStore) *UserStore {
	return &UserStore{
		AccountStore: NewAccountStore(db, domain.KindUser),
		helpers:      helpers,
	}
}

func (r *UserStore) AddHelper(ctx context.Context, userID, helperID int64) (*domain.Account, error) {
	return r.changeLinks(ctx, userID, bson.M{"$addToSet": bson.M{"helper_ids": helperID}})
}

func (r *UserStore) RemoveHelper(ctx context.Context, userID, helperID int64) (*domain.Account, error) {
	return r.changeLinks(ctx, userID, bson.M{"$pull": bson.M{"helper_ids": helperID}})
}

func (r *UserStore) changeLinks(ctx context.Context, userID int64, update bson.M) (*domain.Account, error) {
	updateCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	res, err := r.col.UpdateOne(updateCtx, bson.M{"_id": userID}, update)
	cancel()
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrRecordNotFound
	}
	return r.withHelpers(ctx, userID)
}

// Helpers returns domain.ErrRecordNotFound when the user does not exist.
func (r *UserStore) Helpers(ctx context.Context, userID int64) ([]*domain.Account, error) {
	user, err := r.withHelpers(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.Helpers, nil
}

// withHelpers loads the user and resolves its helper ids. Ids of deleted
// helpers are skipped.
func (r *UserStore) withHelpers(ctx context.Context, userID int64) (*domain.Account, error) {
	doc, err := r.findDoc(ctx, bson.M{"_id": userID})
	if err != nil {
		return nil, err
	}
	user := doc.toDomain(domain.KindUser)
	user.Helpers = []*domain.Account{}
	if len(doc.HelperIDs) == 0 {
		return user, nil
	}

	helpers, err := r.helpers.find(ctx, bson.M{"_id": bson.M{"$in": doc.HelperIDs}})
	if err != nil {
		return nil, err
	}
	user.Helpers = helpers
	return user, nil
}
