package mongo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/SoftGuar/Account-Management-Service/internal/core/domain"
)

func ns(mt *mtest.T, col string) string { return mt.DB.Name() + "." + col }

func counterResponse(name string, seq int64) bson.D {
	return mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
		{Key: "_id", Value: name},
		{Key: "seq", Value: seq},
	}})
}

func TestAccountStore(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create assigns sequence id", func(mt *mtest.T) {
		store := NewAccountStore(mt.DB, domain.KindHelper)
		mt.AddMockResponses(counterResponse("helpers", 5), mtest.CreateSuccessResponse())

		got, err := store.Create(context.Background(), &domain.Account{Email: "h@example.com", PasswordHash: "digest"})
		require.NoError(mt, err)
		assert.Equal(mt, int64(5), got.ID)
		assert.Equal(mt, domain.KindHelper, got.Kind)
	})

	mt.Run("create duplicate email", func(mt *mtest.T) {
		store := NewAccountStore(mt.DB, domain.KindHelper)
		mt.AddMockResponses(
			counterResponse("helpers", 6),
			mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "duplicate key error"}),
		)

		_, err := store.Create(context.Background(), &domain.Account{Email: "h@example.com"})
		assert.ErrorIs(mt, err, domain.ErrDuplicateEmail)
	})

	mt.Run("find by id", func(mt *mtest.T) {
		store := NewAccountStore(mt.DB, domain.KindAdmin)
		now := time.Now().UTC().Truncate(time.Millisecond)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, "admins"), mtest.FirstBatch, bson.D{
			{Key: "_id", Value: int64(3)},
			{Key: "email", Value: "a@example.com"},
			{Key: "privilege", Value: 2},
			{Key: "add_by", Value: int64(1)},
			{Key: "created_at", Value: now},
		}))

		got, err := store.FindByID(context.Background(), 3)
		require.NoError(mt, err)
		assert.Equal(mt, "a@example.com", got.Email)
		require.NotNil(mt, got.Privilege)
		assert.Equal(mt, 2, *got.Privilege)
		assert.True(mt, now.Equal(got.CreatedAt))
	})

	mt.Run("find missing", func(mt *mtest.T) {
		store := NewAccountStore(mt.DB, domain.KindAdmin)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, "admins"), mtest.FirstBatch))

		_, err := store.FindByEmail(context.Background(), "nobody@example.com")
		assert.ErrorIs(mt, err, domain.ErrRecordNotFound)
	})

	mt.Run("delete missing", func(mt *mtest.T) {
		store := NewAccountStore(mt.DB, domain.KindAdmin)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		err := store.Delete(context.Background(), 99)
		assert.ErrorIs(mt, err, domain.ErrRecordNotFound)
	})

	mt.Run("list", func(mt *mtest.T) {
		store := NewAccountStore(mt.DB, domain.KindMaintainer)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, "maintainers"), mtest.FirstBatch,
			bson.D{{Key: "_id", Value: int64(1)}, {Key: "email", Value: "m1@example.com"}},
			bson.D{{Key: "_id", Value: int64(2)}, {Key: "email", Value: "m2@example.com"}},
		))

		got, err := store.List(context.Background())
		require.NoError(mt, err)
		require.Len(mt, got, 2)
		assert.Equal(mt, int64(2), got[1].ID)
	})
}

func TestUserStore_AddHelperUnknownUser(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("no match", func(mt *mtest.T) {
		store := NewUserStore(mt.DB, NewAccountStore(mt.DB, domain.KindHelper))
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))

		_, err := store.AddHelper(context.Background(), 404, 1)
		assert.ErrorIs(mt, err, domain.ErrRecordNotFound)
	})

	mt.Run("user without helpers", func(mt *mtest.T) {
		store := NewUserStore(mt.DB, NewAccountStore(mt.DB, domain.KindHelper))
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, "users"), mtest.FirstBatch,
			bson.D{{Key: "_id", Value: int64(1)}, {Key: "email", Value: "u@example.com"}},
		))

		helpers, err := store.Helpers(context.Background(), 1)
		require.NoError(mt, err)
		assert.NotNil(mt, helpers)
		assert.Empty(mt, helpers)
	})
}

func TestPatchSet(t *testing.T) {
	name := "Grace"
	digest := "d"
	now := time.Now()

	set := patchSet(domain.AccountPatch{FirstName: &name, PasswordHash: &digest}, now)

	assert.Equal(t, bson.M{"first_name": "Grace", "password": "d", "updated_at": now}, set)
}

func TestRecommendationSet(t *testing.T) {
	status := domain.RecommendationRejected
	notes := "Rejection note: x"
	now := time.Now()

	set := recommendationSet(domain.RecommendationPatch{Status: &status, Notes: &notes}, now)

	assert.Equal(t, bson.M{"status": status, "notes": notes, "updated_at": now}, set)
}
