package templates

import (
	"context"
	"encoding/json"
	"log/slog"

	redis "github.com/redis/go-redis/v9"

	"github.com/mythweaver/mythweaver/internal/entities"
	"github.com/mythweaver/mythweaver/internal/errors"
	redisclient "github.com/mythweaver/mythweaver/internal/redis"
)

const (
	templateKeyPrefix  = "template:"
	sessionIndexPrefix = "template:session:"

	errTemplateNil     = "template cannot be nil"
	errTemplateIDEmpty = "template ID cannot be empty"
	errSessionIDEmpty  = "session ID cannot be empty"
)

type redisRepository struct {
	client redisclient.Client
}

// RedisConfig contains configuration for the Redis template repository.
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

// NewRedis creates a new Redis-backed template repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &redisRepository{client: cfg.Client}, nil
}

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Template == nil {
		return nil, errors.InvalidArgument(errTemplateNil)
	}
	if input.Template.ID == "" {
		return nil, errors.InvalidArgument(errTemplateIDEmpty)
	}

	key := templateKeyPrefix + input.Template.ID

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check existence")
	}
	if exists > 0 {
		return nil, errors.AlreadyExistsf("template with ID %s already exists", input.Template.ID)
	}

	data, err := json.Marshal(input.Template)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal template")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, key, data, 0)
	if input.Template.SessionID != "" {
		pipe.SAdd(ctx, sessionIndexPrefix+input.Template.SessionID, input.Template.ID)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to create template")
	}

	return &CreateOutput{Template: input.Template}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errTemplateIDEmpty)
	}

	result, err := r.client.Get(ctx, templateKeyPrefix+input.ID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("template with ID %s not found", input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get template")
	}

	var template entities.EnemyTemplate
	if err := json.Unmarshal([]byte(result), &template); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal template")
	}

	return &GetOutput{Template: &template}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errTemplateIDEmpty)
	}

	getOutput, err := r.Get(ctx, GetInput(input))
	if err != nil {
		return nil, err
	}
	template := getOutput.Template

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, templateKeyPrefix+input.ID)
	if template.SessionID != "" {
		pipe.SRem(ctx, sessionIndexPrefix+template.SessionID, input.ID)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete template")
	}

	return &DeleteOutput{}, nil
}

func (r *redisRepository) ListBySessionID(
	ctx context.Context,
	input ListBySessionIDInput,
) (*ListBySessionIDOutput, error) {
	if input.SessionID == "" {
		return nil, errors.InvalidArgument(errSessionIDEmpty)
	}

	indexKey := sessionIndexPrefix + input.SessionID
	ids, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read session index %s", indexKey)
	}

	templates := make([]*entities.EnemyTemplate, 0, len(ids))
	for _, id := range ids {
		getOutput, err := r.Get(ctx, GetInput{ID: id})
		if err != nil {
			if errors.IsNotFound(err) {
				slog.WarnContext(ctx, "template missing, cleaning up session index",
					"template_id", id,
					"index_key", indexKey)
				r.client.SRem(ctx, indexKey, id)
				continue
			}
			return nil, errors.Wrapf(err, "failed to get template %s", id)
		}
		templates = append(templates, getOutput.Template)
	}

	return &ListBySessionIDOutput{Templates: templates}, nil
}
