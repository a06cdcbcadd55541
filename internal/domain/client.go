package domain

import (
	"time"
)

// Client is one prospective or active agency customer.
type Client struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Company        string `json:"company"`
	Industry       string `json:"industry"`
	Website        string `json:"website,omitempty"`
	TargetAudience string `json:"targetAudience,omitempty"`
	BrandVoice     string `json:"brandVoice,omitempty"`
	LogoURL        string `json:"logoUrl,omitempty"`
	Notes          string `json:"notes,omitempty"`

	OnboardingStage OnboardingStage `json:"onboardingStage"`
	DiscoveryLinkID string          `json:"discoveryLinkId"`

	// Set at most once, when the client registers through the discovery link.
	HasAccount      bool   `json:"hasAccount"`
	FirebaseAuthUID string `json:"firebaseAuthUid,omitempty"`

	// Insertion order is generation order.
	MarketingContent []GeneratedContent `json:"marketingContent"`
	Proposal         *Proposal          `json:"proposal,omitempty"`
	BrandProfile     *BrandProfile      `json:"brandProfile,omitempty"`

	DiscoveryData       map[string]string `json:"discoveryData,omitempty"`
	ConversationHistory []ChatTurn        `json:"conversationHistory,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ClientProfile holds the operator-editable fields of a Client.
type ClientProfile struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Company        string `json:"company"`
	Industry       string `json:"industry"`
	Website        string `json:"website,omitempty"`
	TargetAudience string `json:"targetAudience,omitempty"`
	BrandVoice     string `json:"brandVoice,omitempty"`
	LogoURL        string `json:"logoUrl,omitempty"`
	Notes          string `json:"notes,omitempty"`
}

func (c *Client) ApplyProfile(p ClientProfile) {
	c.Name = p.Name
	c.Email = p.Email
	c.Company = p.Company
	c.Industry = p.Industry
	c.Website = p.Website
	c.TargetAudience = p.TargetAudience
	c.BrandVoice = p.BrandVoice
	c.LogoURL = p.LogoURL
	c.Notes = p.Notes
}

// DisplayName prefers the company name.
func (c *Client) DisplayName() string {
	if c.Company != "" {
		return c.Company
	}
	return c.Name
}

type Proposal struct {
	ExecutiveSummary   string      `json:"executiveSummary"`
	Scope              []string    `json:"scope"`
	Timeline           []Milestone `json:"timeline"`
	Pricing            Pricing     `json:"pricing"`
	Deliverables       []string    `json:"deliverables"`
	PDFDataURI         string      `json:"pdfDataUri,omitempty"`
	ScheduledMeetingAt *time.Time  `json:"scheduledMeetingAt,omitempty"`
	GeneratedAt        time.Time   `json:"generatedAt"`
}

type Milestone struct {
	Phase       string `json:"phase"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

type Pricing struct {
	Items []PriceItem `json:"items"`
	Total string      `json:"total"`
}

type PriceItem struct {
	Item string `json:"item"`
	Cost string `json:"cost"`
}

// BrandProfile is derived once from a logo or screenshot.
type BrandProfile struct {
	Colors      []string  `json:"colors"`
	Style       string    `json:"style"`
	Personality string    `json:"personality"`
	Tone        string    `json:"tone"`
	AnalyzedAt  time.Time `json:"analyzedAt"`
}

type ChatRole string

const (
	ChatRoleSystem    ChatRole = "system"
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

type ChatTurn struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}
