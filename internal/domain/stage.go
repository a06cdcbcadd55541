package domain

import "fmt"

// OnboardingStage is a client's position in the onboarding pipeline.
type OnboardingStage string

const (
	StageCreated           OnboardingStage = "created"
	StageDiscoverySent     OnboardingStage = "discovery_sent"
	StageDiscoveryComplete OnboardingStage = "discovery_complete"
	StageMeetingScheduled  OnboardingStage = "meeting_scheduled"
	StageProposalSent      OnboardingStage = "proposal_sent"
	StageProposalAccepted  OnboardingStage = "proposal_accepted"
)

// Stages lists every stage in pipeline order.
var Stages = []OnboardingStage{
	StageCreated,
	StageDiscoverySent,
	StageDiscoveryComplete,
	StageMeetingScheduled,
	StageProposalSent,
	StageProposalAccepted,
}

// ParseStage accepts only the six pipeline labels.
func ParseStage(s string) (OnboardingStage, error) {
	for _, stage := range Stages {
		if string(stage) == s {
			return stage, nil
		}
	}
	return "", InvalidArgumentError{Message: fmt.Sprintf("unknown onboarding stage %q", s)}
}

// Index returns the position of the stage in the pipeline, or -1.
func (s OnboardingStage) Index() int {
	for i, stage := range Stages {
		if stage == s {
			return i
		}
	}
	return -1
}

func (s OnboardingStage) Valid() bool {
	return s.Index() >= 0
}

// Advance validates a caller-invoked move from s to target. Moves are
// one-directional: staying put is allowed, going back is not. Prerequisite
// data is never checked.
func (s OnboardingStage) Advance(target OnboardingStage) (OnboardingStage, error) {
	if !target.Valid() {
		return s, InvalidArgumentError{Message: fmt.Sprintf("unknown onboarding stage %q", target)}
	}
	from := s.Index()
	if from < 0 {
		// A stored label outside the set is treated as the pipeline start.
		from = 0
	}
	if target.Index() < from {
		return s, ErrInvalidTransition
	}
	return target, nil
}
