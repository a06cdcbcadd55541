package models

import (
	"time"

	"gorm.io/datatypes"
)

type Client struct {
	ID             string `json:"id" gorm:"primaryKey;type:text"`
	Name           string `json:"name" gorm:"type:text;not null"`
	Email          string `json:"email" gorm:"type:text;not null"`
	Company        string `json:"company" gorm:"type:text"`
	Industry       string `json:"industry" gorm:"type:text"`
	Website        string `json:"website" gorm:"type:text"`
	TargetAudience string `json:"targetAudience" gorm:"type:text"`
	BrandVoice     string `json:"brandVoice" gorm:"type:text"`
	LogoURL        string `json:"logoUrl" gorm:"type:text"`
	Notes          string `json:"notes" gorm:"type:text"`

	OnboardingStage string `json:"onboardingStage" gorm:"type:text;not null;default:'created';index"`
	DiscoveryLinkID string `json:"discoveryLinkId" gorm:"type:text;not null;uniqueIndex"`

	HasAccount      bool   `json:"hasAccount" gorm:"type:boolean;not null;default:false"`
	FirebaseAuthUID string `json:"firebaseAuthUid" gorm:"type:text;index"`

	MarketingContent    datatypes.JSON `json:"marketingContent" gorm:"type:jsonb;not null;default:'[]'"`
	Proposal            datatypes.JSON `json:"proposal" gorm:"type:jsonb"`
	BrandProfile        datatypes.JSON `json:"brandProfile" gorm:"type:jsonb"`
	DiscoveryData       datatypes.JSON `json:"discoveryData" gorm:"type:jsonb"`
	ConversationHistory datatypes.JSON `json:"conversationHistory" gorm:"type:jsonb"`

	CDate time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
	MDate time.Time `json:"mdate" gorm:"autoUpdateTime"`
}

// VoteSession is the explicit pairing behind one public vote id. A client
// pairs each original at most once.
type VoteSession struct {
	ID                string    `json:"id" gorm:"primaryKey;type:text"`
	ClientID          string    `json:"clientId" gorm:"type:text;not null;uniqueIndex:uniq_vote_session_original"`
	Client            Client    `json:"-" gorm:"foreignKey:ClientID;references:ID;constraint:OnDelete:CASCADE;"`
	OriginalContentID string    `json:"originalContentId" gorm:"type:text;not null;uniqueIndex:uniq_vote_session_original"`
	VariantContentID  string    `json:"variantContentId" gorm:"type:text;not null"`
	CDate             time.Time `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}
