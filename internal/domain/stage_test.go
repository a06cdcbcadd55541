package domain

import (
	"errors"
	"testing"
)

func TestParseStage(t *testing.T) {
	for _, stage := range Stages {
		got, err := ParseStage(string(stage))
		if err != nil {
			t.Fatalf("parse %s failed: %v", stage, err)
		}
		if got != stage {
			t.Fatalf("expected %s got %s", stage, got)
		}
	}

	for _, label := range []string{"completed", "proposal_generated", "", "CREATED"} {
		if _, err := ParseStage(label); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("expected invalid argument for %q, got %v", label, err)
		}
	}
}

func TestAdvance(t *testing.T) {
	tests := []struct {
		name    string
		from    OnboardingStage
		to      OnboardingStage
		want    OnboardingStage
		wantErr error
	}{
		{"next", StageCreated, StageDiscoverySent, StageDiscoverySent, nil},
		{"skip ahead", StageDiscoverySent, StageProposalSent, StageProposalSent, nil},
		{"stay", StageMeetingScheduled, StageMeetingScheduled, StageMeetingScheduled, nil},
		{"backwards", StageProposalSent, StageDiscoverySent, StageProposalSent, ErrInvalidTransition},
		{"unknown target", StageCreated, OnboardingStage("completed"), StageCreated, ErrInvalidArgument},
		{"unknown source", OnboardingStage(""), StageDiscoverySent, StageDiscoverySent, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.from.Advance(tt.to)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v got %v", tt.wantErr, err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %s got %s", tt.want, got)
			}
			if !got.Valid() && tt.wantErr == nil {
				t.Fatalf("advance produced a stage outside the set: %q", got)
			}
		})
	}
}
