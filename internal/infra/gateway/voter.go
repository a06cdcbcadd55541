package gateway

import (
	"context"
	"encoding/hex"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/blake2b"

	"github.com/agencyhub/agencyhub"
	"github.com/agencyhub/agencyhub/internal/domain"
)

// VoterRegistry remembers voter fingerprints per vote session in redis.
// Fingerprints are keyed BLAKE2b hashes, so raw addresses never reach redis.
type VoterRegistry struct {
	rdb     *redis.Client
	hashKey []byte
	ttl     time.Duration
}

func NewVoterRegistry(rdb *redis.Client, salt string) (*VoterRegistry, error) {
	key := []byte(salt)
	if len(key) > blake2b.Size {
		sum := blake2b.Sum256(key)
		key = sum[:]
	}
	if _, err := blake2b.New256(key); err != nil {
		return nil, errors.Wrap(err, "invalid vote salt")
	}
	return &VoterRegistry{
		rdb:     rdb,
		hashKey: key,
		ttl:     agencyhub.VoteCookieMaxAge,
	}, nil
}

func (v *VoterRegistry) fingerprint(publicVoteID string, voter domain.Voter) string {
	h, _ := blake2b.New256(v.hashKey)
	h.Write([]byte(publicVoteID))
	h.Write([]byte{0})
	h.Write([]byte(voter.IP))
	h.Write([]byte{0})
	h.Write([]byte(voter.UserAgent))
	return hex.EncodeToString(h.Sum(nil))
}

func (v *VoterRegistry) key(publicVoteID string, voter domain.Voter) string {
	return "voter:" + publicVoteID + ":" + v.fingerprint(publicVoteID, voter)
}

func (v *VoterRegistry) Claim(ctx context.Context, publicVoteID string, voter domain.Voter) (bool, error) {
	ctx, span := tracer.Start(ctx, "Voter.Gateway.Claim")
	defer span.End()

	ok, err := v.rdb.SetNX(ctx, v.key(publicVoteID, voter), 1, v.ttl).Result()
	if err != nil {
		span.RecordError(err)
		return false, err
	}
	return ok, nil
}

func (v *VoterRegistry) Release(ctx context.Context, publicVoteID string, voter domain.Voter) error {
	ctx, span := tracer.Start(ctx, "Voter.Gateway.Release")
	defer span.End()

	err := v.rdb.Del(ctx, v.key(publicVoteID, voter)).Err()
	if err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}
