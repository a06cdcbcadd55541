package domain

// Config carries the runtime settings the usecases and handlers need.
type Config struct {
	PublicBaseURL string
	RequireAuth   bool
	VoteDedup     string
}
