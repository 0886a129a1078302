package domain

import (
	"strings"
	"time"
)

// Account is the record shape shared by every account kind. Kind-specific
// fields are left zero for kinds that do not use them.
type Account struct {
	ID           int64      `json:"id"`
	Kind         Kind       `json:"-"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Phone        string     `json:"phone,omitempty"`
	Privilege    *int       `json:"privilege,omitempty"`
	AddedBy      *int64     `json:"add_by,omitempty"`
	Role         string     `json:"role,omitempty"`
	Helpers      []*Account `json:"helpers,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// AccountPatch carries a partial update. Nil fields are left untouched.
type AccountPatch struct {
	FirstName    *string
	LastName     *string
	Email        *string
	PasswordHash *string
	Phone        *string
	Privilege    *int
	AddedBy      *int64
	Role         *string
}

// Empty reports whether the patch changes nothing.
func (p AccountPatch) Empty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Email == nil &&
		p.PasswordHash == nil && p.Phone == nil && p.Privilege == nil &&
		p.AddedBy == nil && p.Role == nil
}

// Apply copies the non-nil patch fields onto a.
func (p AccountPatch) Apply(a *Account) {
	if p.FirstName != nil {
		a.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		a.LastName = *p.LastName
	}
	if p.Email != nil {
		a.Email = *p.Email
	}
	if p.PasswordHash != nil {
		a.PasswordHash = *p.PasswordHash
	}
	if p.Phone != nil {
		a.Phone = *p.Phone
	}
	if p.Privilege != nil {
		v := *p.Privilege
		a.Privilege = &v
	}
	if p.AddedBy != nil {
		v := *p.AddedBy
		a.AddedBy = &v
	}
	if p.Role != nil {
		a.Role = *p.Role
	}
}

// HasHelper reports whether helperID is linked to the account.
func (a *Account) HasHelper(helperID int64) bool {
	for _, h := range a.Helpers {
		if h.ID == helperID {
			return true
		}
	}
	return false
}

// NormalizeEmail is the form emails are stored, compared and locked under.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
