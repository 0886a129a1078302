package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/SoftGuar/Account-Management-Service/internal/core/domain"
)

// UserStore adds the user_helpers association to the users table.
type UserStore struct {
	*AccountStore
	helpers *AccountStore
}

func NewUserStore(db *gorm.DB, helpers *AccountStore) *UserStore {
	return &UserStore{AccountStore: NewAccountStore(db, domain.KindUser), helpers: helpers}
}

// AddHelper links helperID to userID; an existing link is left as is.
func (r *UserStore) AddHelper(ctx context.Context, userID, helperID int64) (*domain.Account, error) {
	if _, err := r.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	link := userHelperRow{UserID: userID, HelperID: helperID, CreatedAt: time.Now().UTC()}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&link).Error; err != nil {
		return nil, translate(err)
	}
	return r.withHelpers(ctx, userID)
}

func (r *UserStore) RemoveHelper(ctx context.Context, userID, helperID int64) (*domain.Account, error) {
	if _, err := r.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND helper_id = ?", userID, helperID).
		Delete(&userHelperRow{}).Error
	if err != nil {
		return nil, translate(err)
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

func (r *UserStore) withHelpers(ctx context.Context, userID int64) (*domain.Account, error) {
	user, err := r.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var rows []accountRow
	err = r.helpers.tx(ctx).
		Select("helpers.*").
		Joins("JOIN user_helpers ON user_helpers.helper_id = helpers.id").
		Where("user_helpers.user_id = ?", userID).
		Order("helpers.id").
		Find(&rows).Error
	if err != nil {
		return nil, translate(err)
	}
	user.Helpers = r.helpers.toDomain(rows)
	return user, nil
}
