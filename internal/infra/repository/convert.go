package repository

import (
	"encoding/json"

	"gorm.io/datatypes"

	"github.com/agencyhub/agencyhub/internal/domain"
	"github.com/agencyhub/agencyhub/internal/infra/database/models"
)

func marshalJSON(v any) (datatypes.JSON, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

// unmarshalJSON leaves dst untouched for NULL and empty columns.
func unmarshalJSON(raw datatypes.JSON, dst any) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return json.Unmarshal(raw, dst)
}

func clientToModel(c domain.Client) (models.Client, error) {
	content := c.MarketingContent
	if content == nil {
		content = []domain.GeneratedContent{}
	}
	marketingContent, err := marshalJSON(content)
	if err != nil {
		return models.Client{}, err
	}
	proposal, err := marshalJSON(c.Proposal)
	if err != nil {
		return models.Client{}, err
	}
	brandProfile, err := marshalJSON(c.BrandProfile)
	if err != nil {
		return models.Client{}, err
	}
	discoveryData, err := marshalJSON(c.DiscoveryData)
	if err != nil {
		return models.Client{}, err
	}
	history, err := marshalJSON(c.ConversationHistory)
	if err != nil {
		return models.Client{}, err
	}

	return models.Client{
		ID:                  c.ID,
		Name:                c.Name,
		Email:               c.Email,
		Company:             c.Company,
		Industry:            c.Industry,
		Website:             c.Website,
		TargetAudience:      c.TargetAudience,
		BrandVoice:          c.BrandVoice,
		LogoURL:             c.LogoURL,
		Notes:               c.Notes,
		OnboardingStage:     string(c.OnboardingStage),
		DiscoveryLinkID:     c.DiscoveryLinkID,
		HasAccount:          c.HasAccount,
		FirebaseAuthUID:     c.FirebaseAuthUID,
		MarketingContent:    marketingContent,
		Proposal:            proposal,
		BrandProfile:        brandProfile,
		DiscoveryData:       discoveryData,
		ConversationHistory: history,
		CDate:               c.CreatedAt,
		MDate:               c.UpdatedAt,
	}, nil
}

func clientFromModel(m models.Client) (domain.Client, error) {
	c := domain.Client{
		ID:               m.ID,
		Name:             m.Name,
		Email:            m.Email,
		Company:          m.Company,
		Industry:         m.Industry,
		Website:          m.Website,
		TargetAudience:   m.TargetAudience,
		BrandVoice:       m.BrandVoice,
		LogoURL:          m.LogoURL,
		Notes:            m.Notes,
		OnboardingStage:  domain.OnboardingStage(m.OnboardingStage),
		DiscoveryLinkID:  m.DiscoveryLinkID,
		HasAccount:       m.HasAccount,
		FirebaseAuthUID:  m.FirebaseAuthUID,
		MarketingContent: []domain.GeneratedContent{},
		CreatedAt:        m.CDate,
		UpdatedAt:        m.MDate,
	}
	if err := unmarshalJSON(m.MarketingContent, &c.MarketingContent); err != nil {
		return domain.Client{}, err
	}
	if err := unmarshalJSON(m.Proposal, &c.Proposal); err != nil {
		return domain.Client{}, err
	}
	if err := unmarshalJSON(m.BrandProfile, &c.BrandProfile); err != nil {
		return domain.Client{}, err
	}
	if err := unmarshalJSON(m.DiscoveryData, &c.DiscoveryData); err != nil {
		return domain.Client{}, err
	}
	if err := unmarshalJSON(m.ConversationHistory, &c.ConversationHistory); err != nil {
		return domain.Client{}, err
	}
	return c, nil
}

func sessionFromModel(m models.VoteSession) domain.VotingSession {
	return domain.VotingSession{
		ID:                m.ID,
		ClientID:          m.ClientID,
		OriginalContentID: m.OriginalContentID,
		VariantContentID:  m.VariantContentID,
		CreatedAt:         m.CDate,
	}
}

func userToModel(u domain.User) models.User {
	m := models.User{
		ID:          u.ID,
		FirebaseUID: u.FirebaseUID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Role:        string(u.Role),
		CDate:       u.CreatedAt,
		MDate:       u.UpdatedAt,
	}
	if u.ClientID != "" {
		clientID := u.ClientID
		m.ClientID = &clientID
	}
	return m
}

func userFromModel(m models.User) domain.User {
	u := domain.User{
		ID:          m.ID,
		FirebaseUID: m.FirebaseUID,
		Email:       m.Email,
		DisplayName: m.DisplayName,
		Role:        domain.Role(m.Role),
		CreatedAt:   m.CDate,
		UpdatedAt:   m.MDate,
	}
	if m.ClientID != nil {
		u.ClientID = *m.ClientID
	}
	return u
}

func campaignToModel(c domain.Campaign) models.Campaign {
	return models.Campaign{
		ID:          c.ID,
		UserID:      c.UserID,
		Name:        c.Name,
		ContentType: string(c.ContentType),
		Topic:       c.Topic,
		Content:     c.Content,
		Status:      c.Status,
		CDate:       c.CreatedAt,
		MDate:       c.UpdatedAt,
	}
}

func campaignFromModel(m models.Campaign) domain.Campaign {
	return domain.Campaign{
		ID:          m.ID,
		UserID:      m.UserID,
		Name:        m.Name,
		ContentType: domain.ContentType(m.ContentType),
		Topic:       m.Topic,
		Content:     m.Content,
		Status:      m.Status,
		CreatedAt:   m.CDate,
		UpdatedAt:   m.MDate,
	}
}
