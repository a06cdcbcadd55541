package domain

type ctxKey string

const (
	RequesterUIDCtxKey  ctxKey = "ah-requesterUID"
	RequesterRoleCtxKey ctxKey = "ah-requesterRole"
)

const (
	VoteDedupCookie = "cookie"
	VoteDedupServer = "server"
)
