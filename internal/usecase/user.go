package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/agencyhub/agencyhub/internal/domain"
)

type UserUsecase struct {
	repo UserRepository
}

func NewUserUsecase(repo UserRepository) *UserUsecase {
	return &UserUsecase{repo: repo}
}

func validateUser(user domain.User) error {
	if strings.TrimSpace(user.FirebaseUID) == "" {
		return domain.InvalidArgumentError{Message: "firebaseUid is required"}
	}
	if strings.TrimSpace(user.Email) == "" {
		return domain.InvalidArgumentError{Message: "email is required"}
	}
	if _, err := domain.ParseRole(string(user.Role)); err != nil {
		return err
	}
	return nil
}

func (uc *UserUsecase) List(ctx context.Context) ([]domain.User, error) {
	return uc.repo.List(ctx)
}

func (uc *UserUsecase) GetByFirebaseUID(ctx context.Context, uid string) (domain.User, error) {
	return uc.repo.GetByFirebaseUID(ctx, uid)
}

func (uc *UserUsecase) Create(ctx context.Context, user domain.User) (domain.User, error) {
	if err := validateUser(user); err != nil {
		return domain.User{}, err
	}
	now := time.Now()
	user.ID = uuid.NewString()
	user.CreatedAt = now
	user.UpdatedAt = now
	return uc.repo.Create(ctx, user)
}

func (uc *UserUsecase) Update(ctx context.Context, user domain.User) (domain.User, error) {
	if user.ID == "" {
		return domain.User{}, domain.InvalidArgumentError{Message: "id is required"}
	}
	if err := validateUser(user); err != nil {
		return domain.User{}, err
	}
	current, err := uc.repo.Get(ctx, user.ID)
	if err != nil {
		return domain.User{}, err
	}
	user.CreatedAt = current.CreatedAt
	user.UpdatedAt = time.Now()
	return uc.repo.Update(ctx, user)
}

func (uc *UserUsecase) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.InvalidArgumentError{Message: "id is required"}
	}
	return uc.repo.Delete(ctx, id)
}
