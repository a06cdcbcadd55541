package usecase

import (
	"context"
	"encoding/json"
	"io"
	"sync"

	"github.com/pkg/errors"

	"github.com/agencyhub/agencyhub"
	"github.com/agencyhub/agencyhub/internal/domain"
)

// clone deep-copies through JSON so callers never share slices with the store.
func clone(c domain.Client) domain.Client {
	b, err := json.Marshal(c)
	if err != nil {
		panic(err)
	}
	var out domain.Client
	if err := json.Unmarshal(b, &out); err != nil {
		panic(err)
	}
	return out
}

type mockClientRepo struct {
	mu       sync.Mutex
	clients  map[string]domain.Client
	sessions map[string]domain.VotingSession
	deleted  []string
	// mutateErr, when set, fails every Mutate before fn runs.
	mutateErr error
}

func newMockClientRepo(clients ...domain.Client) *mockClientRepo {
	repo := &mockClientRepo{
		clients:  map[string]domain.Client{},
		sessions: map[string]domain.VotingSession{},
	}
	for _, c := range clients {
		if err := repo.put(c); err != nil {
			panic(err)
		}
	}
	return repo
}

func (m *mockClientRepo) put(c domain.Client) error {
	sessions, err := domain.PairSessions(c.ID, c.MarketingContent)
	if err != nil {
		return err
	}
	for id, s := range m.sessions {
		if s.ClientID == c.ID {
			delete(m.sessions, id)
		}
	}
	for _, s := range sessions {
		m.sessions[s.ID] = s
	}
	m.clients[c.ID] = clone(c)
	return nil
}

func (m *mockClientRepo) Create(ctx context.Context, client domain.Client) (domain.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.put(client); err != nil {
		return domain.Client{}, err
	}
	return clone(client), nil
}

func (m *mockClientRepo) Get(ctx context.Context, id string) (domain.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.clients[id]
	if !ok {
		return domain.Client{}, domain.NotFoundError{Resource: "client"}
	}
	return clone(c), nil
}

func (m *mockClientRepo) GetByDiscoveryLink(ctx context.Context, linkID string) (domain.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.clients {
		if c.DiscoveryLinkID == linkID {
			return clone(c), nil
		}
	}
	return domain.Client{}, domain.NotFoundError{Resource: "client"}
}

func (m *mockClientRepo) List(ctx context.Context) ([]domain.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Client, 0, len(m.clients))
	for _, c := range m.clients {
		out = append(out, clone(c))
	}
	return out, nil
}

func (m *mockClientRepo) Mutate(ctx context.Context, id string, fn func(*domain.Client) error) (domain.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.mutateErr != nil {
		return domain.Client{}, m.mutateErr
	}
	c, ok := m.clients[id]
	if !ok {
		return domain.Client{}, domain.NotFoundError{Resource: "client"}
	}
	working := clone(c)
	if err := fn(&working); err != nil {
		return domain.Client{}, err
	}
	if err := m.put(working); err != nil {
		return domain.Client{}, err
	}
	return clone(working), nil
}

func (m *mockClientRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.clients[id]; !ok {
		return domain.NotFoundError{Resource: "client"}
	}
	delete(m.clients, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockClientRepo) FindVoteSession(ctx context.Context, publicVoteID string) (domain.VotingSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[publicVoteID]
	if !ok {
		return domain.VotingSession{}, domain.NotFoundError{Resource: "vote session"}
	}
	return s, nil
}

type mockLLM struct {
	response string
	err      error
	requests []domain.CompletionRequest
}

func (m *mockLLM) Complete(ctx context.Context, req domain.CompletionRequest) (string, error) {
	m.requests = append(m.requests, req)
	return m.response, m.err
}

type mockPublisher struct {
	events []agencyhub.Event
}

func (m *mockPublisher) Publish(ctx context.Context, channel string, event agencyhub.Event) error {
	m.events = append(m.events, event)
	return nil
}

type mockRegistry struct {
	seen map[string]bool
}

func (m *mockRegistry) Claim(ctx context.Context, publicVoteID string, voter domain.Voter) (bool, error) {
	key := publicVoteID + "|" + voter.IP + "|" + voter.UserAgent
	if m.seen[key] {
		return false, nil
	}
	m.seen[key] = true
	return true, nil
}

func (m *mockRegistry) Release(ctx context.Context, publicVoteID string, voter domain.Voter) error {
	delete(m.seen, publicVoteID+"|"+voter.IP+"|"+voter.UserAgent)
	return nil
}

type mockIdentity struct {
	created   []string
	deleted   []string
	createErr error
	deleteErr error
}

func (m *mockIdentity) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	if m.createErr != nil {
		return "", m.createErr
	}
	uid := "uid-" + email
	m.created = append(m.created, uid)
	return uid, nil
}

func (m *mockIdentity) DeleteUser(ctx context.Context, uid string) error {
	m.deleted = append(m.deleted, uid)
	return m.deleteErr
}

func (m *mockIdentity) VerifyIDToken(ctx context.Context, token string) (string, error) {
	return "", errors.New("not implemented")
}

type mockStorage struct {
	objects   map[string][]byte
	deleted   []string
	deleteErr error
}

func (m *mockStorage) Put(ctx context.Context, object, contentType string, body io.Reader) (string, error) {
	b, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	if m.objects == nil {
		m.objects = map[string][]byte{}
	}
	m.objects[object] = b
	return "https://storage.example/bucket/" + object, nil
}

func (m *mockStorage) DeleteURL(ctx context.Context, publicURL string) error {
	m.deleted = append(m.deleted, publicURL)
	return m.deleteErr
}

type mockUserRepo struct {
	users     map[string]domain.User
	createErr error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: map[string]domain.User{}}
}

func (m *mockUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	if m.createErr != nil {
		return domain.User{}, m.createErr
	}
	m.users[user.ID] = user
	return user, nil
}

func (m *mockUserRepo) Get(ctx context.Context, id string) (domain.User, error) {
	u, ok := m.users[id]
	if !ok {
		return domain.User{}, domain.NotFoundError{Resource: "user"}
	}
	return u, nil
}

func (m *mockUserRepo) GetByFirebaseUID(ctx context.Context, uid string) (domain.User, error) {
	for _, u := range m.users {
		if u.FirebaseUID == uid {
			return u, nil
		}
	}
	return domain.User{}, domain.NotFoundError{Resource: "user"}
}

func (m *mockUserRepo) List(ctx context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

func (m *mockUserRepo) Update(ctx context.Context, user domain.User) (domain.User, error) {
	m.users[user.ID] = user
	return user, nil
}

func (m *mockUserRepo) Delete(ctx context.Context, id string) error {
	delete(m.users, id)
	return nil
}

type mockRenderer struct {
	docs []domain.PDFDocument
}

func (m *mockRenderer) Render(ctx context.Context, doc domain.PDFDocument) ([]byte, error) {
	m.docs = append(m.docs, doc)
	return []byte("%PDF-1.3 test"), nil
}

type mockMailer struct {
	sent []string
	err  error
}

func (m *mockMailer) SendDiscoveryLink(ctx context.Context, to, name, link string) error {
	m.sent = append(m.sent, to+" "+link)
	return m.err
}
