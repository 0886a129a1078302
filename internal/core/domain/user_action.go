package domain

import "time"

// UserAction is an append-only audit entry for something a user did.
type UserAction struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Action    string    `json:"action"`
	CreatedAt time.Time `json:"createdAt"`
}

// Actions emitted by the recommendation workflow.
const (
	ActionRecommendationCreated  = "helper_recommendation_created"
	ActionRecommendationApproved = "helper_recommendation_approved"
	ActionRecommendationRejected = "helper_recommendation_rejected"
)

// Roles carried in access tokens.
const (
	RoleSuperAdmin = "superadmin"
	RoleAdmin      = "admin"
	RoleUser       = "user"
	RoleHelper     = "helper"
)
