package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/SoftGuar/Account-Management-Service/internal/core/domain"
)

// translate maps GORM sentinels onto the store contract.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrRecordNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ErrDuplicateEmail
	}
	return err
}

func accountUpdates(p domain.AccountPatch, now time.Time) map[string]any {
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
	if p.PasswordHash != nil {
		updates["password"] = *p.PasswordHash
	}
	if p.Phone != nil {
		updates["phone"] = *p.Phone
	}
	if p.Privilege != nil {
		updates["privilege"] = *p.Privilege
	}
	if p.AddedBy != nil {
		updates["add_by"] = *p.AddedBy
	}
	if p.Role != nil {
		updates["role"] = *p.Role
	}
	return updates
}

// AccountStore persists one account kind in its own table.
type AccountStore struct {
	db    *gorm.DB
	kind  domain.Kind
	table string
}

func NewAccountStore(db *gorm.DB, kind domain.Kind) *AccountStore {
	return &AccountStore{db: db, kind: kind, table: kind.Collection()}
}

func (r *AccountStore) tx(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table(r.table)
}

func (r *AccountStore) Create(ctx context.Context, a *domain.Account) (*domain.Account, error) {
	row := newAccountRow(a)
	row.ID = 0
	if err := r.tx(ctx).Create(&row).Error; err != nil {
		return nil, translate(err)
	}
	return row.toDomain(r.kind), nil
}

func (r *AccountStore) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var row accountRow
	if err := r.tx(ctx).Where("email = ?", email).First(&row).Error; err != nil {
		return nil, translate(err)
	}
	return row.toDomain(r.kind), nil
}

func (r *AccountStore) FindByID(ctx context.Context, id int64) (*domain.Account, error) {
	var row accountRow
	if err := r.tx(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, translate(err)
	}
	return row.toDomain(r.kind), nil
}

// List returns every account of the kind ordered by id.
func (r *AccountStore) List(ctx context.Context) ([]*domain.Account, error) {
	var rows []accountRow
	if err := r.tx(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, translate(err)
	}
	return r.toDomain(rows), nil
}

func (r *AccountStore) toDomain(rows []accountRow) []*domain.Account {
	out := make([]*domain.Account, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain(r.kind))
	}
	return out
}

func (r *AccountStore) Update(ctx context.Context, id int64, patch domain.AccountPatch) (*domain.Account, error) {
	res := r.tx(ctx).Where("id = ?", id).Updates(accountUpdates(patch, time.Now().UTC()))
	if res.Error != nil {
		return nil, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrRecordNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *AccountStore) Delete(ctx context.Context, id int64) error {
	res := r.tx(ctx).Where("id = ?", id).Delete(&accountRow{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}
