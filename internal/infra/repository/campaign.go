package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/agencyhub/agencyhub/internal/domain"
	"github.com/agencyhub/agencyhub/internal/infra/database/models"
)

type CampaignRepository struct {
	db *gorm.DB
}

func NewCampaignRepository(db *gorm.DB) *CampaignRepository {
	return &CampaignRepository{db: db}
}

func (r *CampaignRepository) ListByUser(ctx context.Context, userID string) ([]domain.Campaign, error) {
	var rows []models.Campaign
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("c_date DESC").Find(&rows).Error
	if err != nil {
		return nil, err
	}
	campaigns := make([]domain.Campaign, 0, len(rows))
	for _, row := range rows {
		campaigns = append(campaigns, campaignFromModel(row))
	}
	return campaigns, nil
}

func (r *CampaignRepository) Get(ctx context.Context, id string) (domain.Campaign, error) {
	var model models.Campaign
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&model).Error; err != nil {
		return domain.Campaign{}, translate(err, "campaign")
	}
	return campaignFromModel(model), nil
}

func (r *CampaignRepository) Create(ctx context.Context, campaign domain.Campaign) (domain.Campaign, error) {
	model := campaignToModel(campaign)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return domain.Campaign{}, translate(err, "campaign")
	}
	return campaignFromModel(model), nil
}

func (r *CampaignRepository) Update(ctx context.Context, campaign domain.Campaign) (domain.Campaign, error) {
	model := campaignToModel(campaign)
	res := r.db.WithContext(ctx).Model(&models.Campaign{}).Where("id = ?", campaign.ID).Updates(map[string]any{
		"name":         model.Name,
		"content_type": model.ContentType,
		"topic":        model.Topic,
		"content":      model.Content,
		"status":       model.Status,
	})
	if res.Error != nil {
		return domain.Campaign{}, translate(res.Error, "campaign")
	}
	if res.RowsAffected == 0 {
		return domain.Campaign{}, domain.NotFoundError{Resource: "campaign"}
	}
	return r.Get(ctx, campaign.ID)
}

func (r *CampaignRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Campaign{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.NotFoundError{Resource: "campaign"}
	}
	return nil
}
