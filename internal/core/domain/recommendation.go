package domain

import (
	"strings"
	"time"
)

// RecommendationStatus is the lifecycle state of a helper recommendation.
type RecommendationStatus string

const (
	RecommendationPending  RecommendationStatus = "pending"
	RecommendationApproved RecommendationStatus = "approved"
	RecommendationRejected RecommendationStatus = "rejected"
)

// recommendationTransitions lists the status changes approve and reject may
// perform. Reject is also accepted from non-pending states; see Reject.
var recommendationTransitions = map[RecommendationStatus][]RecommendationStatus{
	RecommendationPending: {RecommendationApproved, RecommendationRejected},
}

// CanTransitionTo reports whether a transition from s to next is valid.
func (s RecommendationStatus) CanTransitionTo(next RecommendationStatus) bool {
	for _, allowed := range recommendationTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s RecommendationStatus) Valid() bool {
	switch s {
	case RecommendationPending, RecommendationApproved, RecommendationRejected:
		return true
	}
	return false
}

// HelperRecommendation is a user's request to onboard someone as their helper
// before that person has an account.
type HelperRecommendation struct {
	ID        int64                `json:"id"`
	FirstName string               `json:"first_name"`
	LastName  string               `json:"last_name"`
	Email     string               `json:"email"`
	Phone     string               `json:"phone,omitempty"`
	UserID    int64                `json:"user_id"`
	Status    RecommendationStatus `json:"status"`
	Notes     string               `json:"notes,omitempty"`
	User      *Account             `json:"user,omitempty"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// RecommendationPatch carries a partial update. Nil fields are left untouched.
type RecommendationPatch struct {
	FirstName *string
	LastName  *string
	Email     *string
	Phone     *string
	Status    *RecommendationStatus
	Notes     *string
}

// Apply copies the non-nil patch fields onto r.
func (p RecommendationPatch) Apply(r *HelperRecommendation) {
	if p.FirstName != nil {
		r.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		r.LastName = *p.LastName
	}
	if p.Email != nil {
		r.Email = *p.Email
	}
	if p.Phone != nil {
		r.Phone = *p.Phone
	}
	if p.Status != nil {
		r.Status = *p.Status
	}
	if p.Notes != nil {
		r.Notes = *p.Notes
	}
}

// RejectionNotes returns the notes after appending a rejection note. Existing
// notes are kept; an empty note leaves them unchanged.
func RejectionNotes(existing, note string) string {
	if strings.TrimSpace(note) == "" {
		return existing
	}
	line := "Rejection note: " + note
	if existing == "" {
		return line
	}
	return existing + "\n" + line
}
