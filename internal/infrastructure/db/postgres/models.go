package postgres

import (
	"time"

	"github.com/SoftGuar/Account-Management-Service/internal/core/domain"
)

// accountRow is shared by every per-kind table; the table is chosen with
// db.Table(kind.Collection()).
type accountRow struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	FirstName string `gorm:"not null"`
	LastName  string `gorm:"not null"`
	Email     string `gorm:"not null"`
	Password  string `gorm:"not null"`
	Phone     string
	Privilege *int
	AddBy     *int64 `gorm:"column:add_by"`
	Role      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func newAccountRow(a *domain.Account) accountRow {
	return accountRow{
		ID:        a.ID,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Email:     a.Email,
		Password:  a.PasswordHash,
		Phone:     a.Phone,
		Privilege: a.Privilege,
		AddBy:     a.AddedBy,
		Role:      a.Role,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func (r accountRow) toDomain(kind domain.Kind) *domain.Account {
	return &domain.Account{
		ID:           r.ID,
		Kind:         kind,
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		Email:        r.Email,
		PasswordHash: r.Password,
		Phone:        r.Phone,
		Privilege:    r.Privilege,
		AddedBy:      r.AddBy,
		Role:         r.Role,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

type userHelperRow struct {
	UserID    int64 `gorm:"primaryKey"`
	HelperID  int64 `gorm:"primaryKey;index"`
	CreatedAt time.Time
}

func (userHelperRow) TableName() string { return "user_helpers" }

type recommendationRow struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	FirstName string `gorm:"not null"`
	LastName  string `gorm:"not null"`
	Email     string `gorm:"not null;index:idx_recommendation_email_status"`
	Phone     string
	UserID    int64                       `gorm:"not null;index"`
	Status    domain.RecommendationStatus `gorm:"type:varchar(16);not null;index:idx_recommendation_email_status"`
	Notes     string
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

func (recommendationRow) TableName() string { return "helper_recommendations" }

func (r recommendationRow) toDomain() *domain.HelperRecommendation {
	return &domain.HelperRecommendation{
		ID:        r.ID,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Phone:     r.Phone,
		UserID:    r.UserID,
		Status:    r.Status,
		Notes:     r.Notes,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

type userActionRow struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	UserID    int64     `gorm:"not null;index:idx_user_actions_user_created"`
	Action    string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"index:idx_user_actions_user_created"`
}

func (userActionRow) TableName() string { return "user_actions" }
