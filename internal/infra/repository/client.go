package repository

import (
	"context"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/agencyhub/agencyhub/internal/domain"
	"github.com/agencyhub/agencyhub/internal/infra/database/models"
)

type ClientRepository struct {
	db       *gorm.DB
	sessions *sessionCache
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{
		db:       db,
		sessions: newSessionCache(10*time.Minute, 15*time.Minute),
	}
}

// sessionCache holds vote sessions read outside any transaction. A read that
// overlaps an eviction is never stored.
type sessionCache struct {
	mu    sync.Mutex
	gen   uint64
	items *cache.Cache
}

func newSessionCache(ttl, cleanup time.Duration) *sessionCache {
	return &sessionCache{items: cache.New(ttl, cleanup)}
}

func (s *sessionCache) get(id string) (domain.VotingSession, bool) {
	cached, found := s.items.Get(id)
	if !found {
		return domain.VotingSession{}, false
	}
	return cached.(domain.VotingSession), true
}

// generation must be taken before the row is read.
func (s *sessionCache) generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

func (s *sessionCache) store(gen uint64, session domain.VotingSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return
	}
	s.items.Set(session.ID, session, cache.DefaultExpiration)
}

func (s *sessionCache) evict(ids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	for _, id := range ids {
		s.items.Delete(id)
	}
}

func translate(err error, resource string) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.NotFoundError{Resource: resource}
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ConflictError{Message: resource + " already exists"}
	default:
		return err
	}
}

func (r *ClientRepository) Create(ctx context.Context, client domain.Client) (domain.Client, error) {
	model, err := clientToModel(client)
	if err != nil {
		return domain.Client{}, err
	}

	var touched []string
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&model).Error; err != nil {
			return translate(err, "client")
		}
		touched, err = syncVoteSessions(tx, client)
		return err
	})
	r.evict(touched)
	if err != nil {
		return domain.Client{}, err
	}

	return clientFromModel(model)
}

func (r *ClientRepository) Get(ctx context.Context, id string) (domain.Client, error) {
	var model models.Client
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&model).Error
	if err != nil {
		return domain.Client{}, translate(err, "client")
	}
	return clientFromModel(model)
}

func (r *ClientRepository) GetByDiscoveryLink(ctx context.Context, linkID string) (domain.Client, error) {
	var model models.Client
	err := r.db.WithContext(ctx).Where("discovery_link_id = ?", linkID).Take(&model).Error
	if err != nil {
		return domain.Client{}, translate(err, "client")
	}
	return clientFromModel(model)
}

func (r *ClientRepository) List(ctx context.Context) ([]domain.Client, error) {
	var rows []models.Client
	err := r.db.WithContext(ctx).Order("c_date DESC").Find(&rows).Error
	if err != nil {
		return nil, err
	}

	clients := make([]domain.Client, 0, len(rows))
	for _, row := range rows {
		c, err := clientFromModel(row)
		if err != nil {
			return nil, err
		}
		clients = append(clients, c)
	}
	return clients, nil
}

func (r *ClientRepository) Mutate(ctx context.Context, id string, fn func(*domain.Client) error) (domain.Client, error) {
	var result domain.Client
	var touched []string

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model models.Client
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			Take(&model).Error
		if err != nil {
			return translate(err, "client")
		}

		client, err := clientFromModel(model)
		if err != nil {
			return err
		}
		if err := fn(&client); err != nil {
			return err
		}
		client.ID = id

		updated, err := clientToModel(client)
		if err != nil {
			return err
		}
		if err := tx.Save(&updated).Error; err != nil {
			return translate(err, "client")
		}

		touched, err = syncVoteSessions(tx, client)
		if err != nil {
			return err
		}

		result, err = clientFromModel(updated)
		return err
	})
	r.evict(touched)
	if err != nil {
		return domain.Client{}, err
	}
	return result, nil
}

func (r *ClientRepository) Delete(ctx context.Context, id string) error {
	var touched []string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.VoteSession{}).Where("client_id = ?", id).Pluck("id", &touched).Error; err != nil {
			return err
		}
		if err := tx.Where("client_id = ?", id).Delete(&models.VoteSession{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.Client{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.NotFoundError{Resource: "client"}
		}
		return nil
	})
	r.evict(touched)
	return err
}

func (r *ClientRepository) FindVoteSession(ctx context.Context, publicVoteID string) (domain.VotingSession, error) {
	if session, found := r.sessions.get(publicVoteID); found {
		return session, nil
	}

	gen := r.sessions.generation()
	var model models.VoteSession
	err := r.db.WithContext(ctx).Where("id = ?", publicVoteID).Take(&model).Error
	if err != nil {
		return domain.VotingSession{}, translate(err, "vote session")
	}

	session := sessionFromModel(model)
	r.sessions.store(gen, session)
	return session, nil
}

func (r *ClientRepository) evict(ids []string) {
	r.sessions.evict(ids)
}

// syncVoteSessions rewrites the session rows of client from its content list
// and returns every session id that was dropped or written.
func syncVoteSessions(tx *gorm.DB, client domain.Client) ([]string, error) {
	sessions, err := domain.PairSessions(client.ID, client.MarketingContent)
	if err != nil {
		return nil, err
	}

	var touched []string
	err = tx.Model(&models.VoteSession{}).Where("client_id = ?", client.ID).Pluck("id", &touched).Error
	if err != nil {
		return nil, err
	}
	err = tx.Where("client_id = ?", client.ID).Delete(&models.VoteSession{}).Error
	if err != nil {
		return nil, err
	}

	for _, s := range sessions {
		err := tx.Create(&models.VoteSession{
			ID:                s.ID,
			ClientID:          s.ClientID,
			OriginalContentID: s.OriginalContentID,
			VariantContentID:  s.VariantContentID,
		}).Error
		if err != nil {
			return nil, translate(err, "vote session")
		}
		touched = append(touched, s.ID)
	}
	return touched, nil
}
