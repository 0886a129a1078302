package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/SoftGuar/Account-Management-Service/internal/core/domain"
)

type UserActionStore struct {
	db *gorm.DB
}

func NewUserActionStore(db *gorm.DB) *UserActionStore {
	return &UserActionStore{db: db}
}

func (r *UserActionStore) Append(ctx context.Context, a *domain.UserAction) (*domain.UserAction, error) {
	row := userActionRow{UserID: a.UserID, Action: a.Action, CreatedAt: a.CreatedAt}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, translate(err)
	}
	return &domain.UserAction{ID: row.ID, UserID: row.UserID, Action: row.Action, CreatedAt: row.CreatedAt}, nil
}

// ListByUser returns the user's actions newest first.
func (r *UserActionStore) ListByUser(ctx context.Context, userID int64) ([]*domain.UserAction, error) {
	var rows []userActionRow
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC, id DESC").Find(&rows).Error
	if err != nil {
		return nil, translate(err)
	}
	out := make([]*domain.UserAction, 0, len(rows))
	for _, row := range rows {
		out = append(out, &domain.UserAction{ID: row.ID, UserID: row.UserID, Action: row.Action, CreatedAt: row.CreatedAt})
	}
	return out, nil
}
