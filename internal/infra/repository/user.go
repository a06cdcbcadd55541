package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/agencyhub/agencyhub/internal/domain"
	"github.com/agencyhub/agencyhub/internal/infra/database/models"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	model := userToModel(user)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return domain.User{}, translate(err, "user")
	}
	return userFromModel(model), nil
}

func (r *UserRepository) Get(ctx context.Context, id string) (domain.User, error) {
	var model models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&model).Error; err != nil {
		return domain.User{}, translate(err, "user")
	}
	return userFromModel(model), nil
}

func (r *UserRepository) GetByFirebaseUID(ctx context.Context, uid string) (domain.User, error) {
	var model models.User
	if err := r.db.WithContext(ctx).Where("firebase_uid = ?", uid).Take(&model).Error; err != nil {
		return domain.User{}, translate(err, "user")
	}
	return userFromModel(model), nil
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	var rows []models.User
	if err := r.db.WithContext(ctx).Order("c_date DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	users := make([]domain.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, userFromModel(row))
	}
	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, user domain.User) (domain.User, error) {
	model := userToModel(user)
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", user.ID).Updates(map[string]any{
		"firebase_uid": model.FirebaseUID,
		"email":        model.Email,
		"display_name": model.DisplayName,
		"role":         model.Role,
		"client_id":    model.ClientID,
	})
	if res.Error != nil {
		return domain.User{}, translate(res.Error, "user")
	}
	if res.RowsAffected == 0 {
		return domain.User{}, domain.NotFoundError{Resource: "user"}
	}
	return r.Get(ctx, user.ID)
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.NotFoundError{Resource: "user"}
	}
	return nil
}
