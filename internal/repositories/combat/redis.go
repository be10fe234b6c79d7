package combat

import (
	"context"
	"encoding/json"

	redis "github.com/redis/go-redis/v9"

	"github.com/mythweaver/mythweaver/internal/entities"
	"github.com/mythweaver/mythweaver/internal/errors"
	redisclient "github.com/mythweaver/mythweaver/internal/redis"
)

const (
	combatKeyPrefix = "combat:"

	errStateNil       = "combat state cannot be nil"
	errSessionIDEmpty = "session ID cannot be empty"
)

type redisRepository struct {
	client redisclient.Client
}

// RedisConfig contains configuration for the Redis combat repository.
type RedisConfig struct {
	Client redisclient.Client
}

// Validate validates the RedisConfig.
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// NewRedis creates a new Redis-backed combat repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &redisRepository{client: cfg.Client}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	result, err := r.client.Get(ctx, combatKeyPrefix+input.SessionID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("no combat state for session %s", input.SessionID)
		}
		return nil, errors.Wrapf(err, "failed to get combat state")
	}

	var state entities.CombatState
	if err := json.Unmarshal([]byte(result), &state); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal combat state")
	}

	return &GetOutput{State: &state}, nil
}

func (r *redisRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if input.State == nil {
		return nil, errors.InvalidArgument(errStateNil)
	}
	if input.State.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	key := combatKeyPrefix + input.State.SessionID
	saved := *input.State

	txn := func(tx *redis.Tx) error {
		var storedVersion int64
		result, err := tx.Get(ctx, key).Result()
		switch {
		case err == redis.Nil:
			storedVersion = 0
		case err != nil:
			return errors.Wrapf(err, "failed to get combat state")
		default:
			var existing entities.CombatState
			if err := json.Unmarshal([]byte(result), &existing); err != nil {
				return errors.Wrapf(err, "failed to unmarshal existing combat state")
			}
			storedVersion = existing.Version
		}

		if storedVersion != input.State.Version {
			return errors.Abortedf("combat state for session %s was modified concurrently (version %d, expected %d)",
				input.State.SessionID, storedVersion, input.State.Version)
		}

		saved.Version = storedVersion + 1
		data, err := json.Marshal(&saved)
		if err != nil {
			return errors.Wrapf(err, "failed to marshal combat state")
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			return nil
		})
		return err
	}

	if err := r.client.Watch(ctx, txn, key); err != nil {
		if err == redis.TxFailedErr {
			return nil, errors.Abortedf("combat state for session %s was modified concurrently", input.State.SessionID)
		}
		return nil, err
	}

	return &SaveOutput{State: &saved}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	if err := r.client.Del(ctx, combatKeyPrefix+input.SessionID).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to delete combat state")
	}

	return &DeleteOutput{}, nil
}
