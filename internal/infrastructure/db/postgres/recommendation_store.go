package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/SoftGuar/Account-Management-Service/internal/core/domain"
)

func recommendationUpdates(p domain.RecommendationPatch, now time.Time) map[string]any {
	updates := map[string]any{"updated_at": now}
	if p.FirstName != nil {
		updates["first_name"] = *p.FirstName
	}
	if p.LastName != nil {
		updates["last_name"] = *p.LastName
	}
	if p.Email != nil {
		updates["email"] = *p.Email
	}
	if p.Phone != nil {
		updates["phone"] = *p.Phone
	}
	if p.Status != nil {
		updates["status"] = *p.Status
	}
	if p.Notes != nil {
		updates["notes"] = *p.Notes
	}
	return updates
}

type RecommendationStore struct {
	db    *gorm.DB
	users *AccountStore
}

func NewRecommendationStore(db *gorm.DB) *RecommendationStore {
	return &RecommendationStore{db: db, users: NewAccountStore(db, domain.KindUser)}
}

func (r *RecommendationStore) Create(ctx context.Context, rec *domain.HelperRecommendation) (*domain.HelperRecommendation, error) {
	row := recommendationRow{
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
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, translate(err)
	}
	return row.toDomain(), nil
}

func (r *RecommendationStore) FindByID(ctx context.Context, id int64) (*domain.HelperRecommendation, error) {
	var row recommendationRow
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, translate(err)
	}
	recs, err := r.embedUsers(ctx, []recommendationRow{row})
	if err != nil {
		return nil, err
	}
	return recs[0], nil
}

func (r *RecommendationStore) FindPendingByEmail(ctx context.Context, email string) (*domain.HelperRecommendation, error) {
	var row recommendationRow
	err := r.db.WithContext(ctx).
		Where("email = ? AND status = ?", email, domain.RecommendationPending).
		First(&row).Error
	if err != nil {
		return nil, translate(err)
	}
	return row.toDomain(), nil
}

// List returns every recommendation newest first.
func (r *RecommendationStore) List(ctx context.Context) ([]*domain.HelperRecommendation, error) {
	var rows []recommendationRow
	if err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&rows).Error; err != nil {
		return nil, translate(err)
	}
	return r.embedUsers(ctx, rows)
}

// embedUsers attaches the owning users with a single IN query.
func (r *RecommendationStore) embedUsers(ctx context.Context, rows []recommendationRow) ([]*domain.HelperRecommendation, error) {
	out := make([]*domain.HelperRecommendation, 0, len(rows))
	if len(rows) == 0 {
		return out, nil
	}

	ids := make([]int64, 0, len(rows))
	seen := make(map[int64]bool, len(rows))
	for _, row := range rows {
		if !seen[row.UserID] {
			seen[row.UserID] = true
			ids = append(ids, row.UserID)
		}
	}

	var users []accountRow
	if err := r.users.tx(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, translate(err)
	}
	byID := make(map[int64]*domain.Account, len(users))
	for _, u := range users {
		byID[u.ID] = u.toDomain(domain.KindUser)
	}

	for _, row := range rows {
		rec := row.toDomain()
		rec.User = byID[row.UserID]
		out = append(out, rec)
	}
	return out, nil
}

func (r *RecommendationStore) Update(ctx context.Context, id int64, patch domain.RecommendationPatch) (*domain.HelperRecommendation, error) {
	res := r.db.WithContext(ctx).Model(&recommendationRow{}).Where("id = ?", id).
		Updates(recommendationUpdates(patch, time.Now().UTC()))
	if res.Error != nil {
		return nil, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrRecordNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *RecommendationStore) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&recommendationRow{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}
