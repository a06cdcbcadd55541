package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/agencyhub/agencyhub/internal/domain"
)

func TestSignup(t *testing.T) {
	clients := newMockClientRepo(newClient())
	users := newMockUserRepo()
	identity := &mockIdentity{}
	uc := NewClientAuthUsecase(clients, users, identity)
	ctx := context.Background()

	view, err := uc.Signup(ctx, SignupInput{DiscoveryLinkID: "link-1", Email: "j@example.com", Password: "secret123"})
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if view.User.Role != domain.RoleClient || view.User.ClientID != "client-1" {
		t.Fatalf("unexpected user %+v", view.User)
	}
	if !view.Client.HasAccount || view.Client.FirebaseAuthUID != "uid-j@example.com" {
		t.Fatalf("client not linked %+v", view.Client)
	}

	_, err = uc.Signup(ctx, SignupInput{DiscoveryLinkID: "link-1", Email: "k@example.com", Password: "secret123"})
	if err != domain.ErrAlreadyHasAccount {
		t.Fatalf("expected ErrAlreadyHasAccount, got %v", err)
	}
	if len(identity.created) != 1 {
		t.Fatalf("second signup must not create an identity")
	}

	profile, err := uc.Profile(ctx, "uid-j@example.com")
	if err != nil {
		t.Fatalf("profile failed: %v", err)
	}
	if profile.Client == nil || profile.Client.ID != "client-1" {
		t.Fatalf("unexpected profile %+v", profile)
	}
}

func TestSignupValidation(t *testing.T) {
	uc := NewClientAuthUsecase(newMockClientRepo(newClient()), newMockUserRepo(), &mockIdentity{})
	ctx := context.Background()

	if _, err := uc.Signup(ctx, SignupInput{DiscoveryLinkID: "link-1"}); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
	if _, err := uc.Signup(ctx, SignupInput{DiscoveryLinkID: "nope", Email: "a@b.c", Password: "x"}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSignupUserRecordFailureCanRetry(t *testing.T) {
	clients := newMockClientRepo(newClient())
	users := newMockUserRepo()
	users.createErr = errors.New("db down")
	identity := &mockIdentity{}
	uc := NewClientAuthUsecase(clients, users, identity)
	ctx := context.Background()

	input := SignupInput{DiscoveryLinkID: "link-1", Email: "j@example.com", Password: "secret123"}
	if _, err := uc.Signup(ctx, input); err == nil {
		t.Fatalf("expected signup to fail")
	}

	stored, _ := clients.Get(ctx, "client-1")
	if stored.HasAccount || stored.FirebaseAuthUID != "" {
		t.Fatalf("client must be released after a failed signup, got %+v", stored)
	}
	if len(identity.deleted) != 1 || identity.deleted[0] != "uid-j@example.com" {
		t.Fatalf("expected the auth user to be discarded, got %v", identity.deleted)
	}

	users.createErr = nil
	view, err := uc.Signup(ctx, input)
	if err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if !view.Client.HasAccount || view.User.FirebaseUID != "uid-j@example.com" {
		t.Fatalf("unexpected retry result %+v", view)
	}
}
