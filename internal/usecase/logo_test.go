package usecase

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/agencyhub/agencyhub/internal/domain"
)

func TestLogoUpload(t *testing.T) {
	client := newClient()
	client.LogoURL = "https://storage.example/bucket/logos/old.png"
	repo := newMockClientRepo(client)
	storage := &mockStorage{}
	uc := NewLogoUsecase(storage, repo)

	url, err := uc.Upload(context.Background(), LogoUpload{
		Filename:    "Logo.PNG",
		ContentType: "image/png",
		Size:        4,
		Body:        bytes.NewReader([]byte("\x89PNG")),
		ClientID:    "client-1",
	})
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	if !strings.HasPrefix(url, "https://storage.example/bucket/logos/") || !strings.HasSuffix(url, ".png") {
		t.Fatalf("unexpected url %q", url)
	}

	stored, _ := repo.Get(context.Background(), "client-1")
	if stored.LogoURL != url {
		t.Fatalf("logo not attached")
	}
	if len(storage.deleted) != 1 || storage.deleted[0] != client.LogoURL {
		t.Fatalf("replaced logo not deleted: %v", storage.deleted)
	}
}

func TestLogoUploadRejects(t *testing.T) {
	uc := NewLogoUsecase(&mockStorage{}, newMockClientRepo())

	testCases := []struct {
		name   string
		upload LogoUpload
	}{
		{"not an image", LogoUpload{Filename: "a.pdf", ContentType: "application/pdf", Size: 10, Body: strings.NewReader("x")}},
		{"too large", LogoUpload{Filename: "a.png", ContentType: "image/png", Size: MaxLogoSize + 1, Body: strings.NewReader("x")}},
		{"empty", LogoUpload{Filename: "a.png", ContentType: "image/png", Size: 0, Body: strings.NewReader("")}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Upload(context.Background(), tc.upload)
			if !errors.Is(err, domain.ErrInvalidArgument) {
				t.Fatalf("expected invalid argument, got %v", err)
			}
		})
	}
}
