package domain

import (
	"fmt"
	"time"
)

type Role string

const (
	RoleTeamMember Role = "team_member"
	RoleClient     Role = "client"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleTeamMember, RoleClient:
		return Role(s), nil
	default:
		return "", InvalidArgumentError{Message: fmt.Sprintf("unknown role %q", s)}
	}
}

// User is an internal user record; identity lives with the auth provider.
type User struct {
	ID          string    `json:"id"`
	FirebaseUID string    `json:"firebaseUid"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName,omitempty"`
	Role        Role      `json:"role"`
	ClientID    string    `json:"clientId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Campaign is the legacy content-tracking record keyed by user.
type Campaign struct {
	ID          string      `json:"id"`
	UserID      string      `json:"userId"`
	Name        string      `json:"name"`
	ContentType ContentType `json:"contentType"`
	Topic       string      `json:"topic,omitempty"`
	Content     string      `json:"content,omitempty"`
	Status      string      `json:"status"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

const (
	CampaignDraft     = "draft"
	CampaignPublished = "published"
)
