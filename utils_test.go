package agencyhub

import (
	"testing"
)

func TestNewPublicVoteID(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id, err := NewPublicVoteID()
		if err != nil {
			t.Fatalf("generate failed: %v", err)
		}
		if !IsPublicVoteID(id) {
			t.Fatalf("generated id %q is not a valid public vote id", id)
		}
		seen[id] = true
	}
	if len(seen) < 95 {
		t.Fatalf("expected mostly unique ids, got %d distinct", len(seen))
	}
}

func TestIsPublicVoteID(t *testing.T) {
	cases := map[string]bool{
		"abc12345":  true,
		"ABC12345":  false,
		"abc1234":   false,
		"abc123456": false,
		"abc-1234":  false,
	}
	for id, want := range cases {
		if got := IsPublicVoteID(id); got != want {
			t.Errorf("IsPublicVoteID(%q) = %v, want %v", id, got, want)
		}
	}
}

func TestComposeURLs(t *testing.T) {
	if got := ComposeVoteURL("https://app.example.com/", "abc12345"); got != "https://app.example.com/vote/abc12345" {
		t.Fatalf("unexpected vote url %s", got)
	}
	if got := ComposeDiscoveryURL("https://app.example.com", "link-1"); got != "https://app.example.com/discovery/link-1" {
		t.Fatalf("unexpected discovery url %s", got)
	}
	if got := VoteCookieName("abc12345"); got != "voted_abc12345" {
		t.Fatalf("unexpected cookie name %s", got)
	}
}

func TestParseObjectURL(t *testing.T) {
	name, err := ParseObjectURL("https://storage.googleapis.com/bucket", "https://storage.googleapis.com/bucket/logos/a%20b.png")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if name != "logos/a b.png" {
		t.Fatalf("unexpected object name %q", name)
	}

	if _, err := ParseObjectURL("https://storage.googleapis.com/bucket", "https://elsewhere.example.com/x.png"); err == nil {
		t.Fatalf("expected error for foreign url")
	}
	if _, err := ParseObjectURL("https://storage.googleapis.com/bucket", "https://storage.googleapis.com/bucket/"); err == nil {
		t.Fatalf("expected error for empty object name")
	}
}
