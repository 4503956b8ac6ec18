package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"mushroom-trivia/internal/domain"
)

// questionBankKey holds the serialized bank, answer key included. The key
// never leaves the server: gameplay responses are built from PublicQuestion.
const questionBankKey = "trivia:questions"

// QuestionLoader fetches the question bank from a backing store.
type QuestionLoader interface {
	LoadQuestions(ctx context.Context) ([]domain.TriviaQuestion, error)
}

// QuestionCache caches the question bank in Redis as a JSON blob and falls
// back to a loader on cache miss.
type QuestionCache struct {
	client *redis.Client
	loader QuestionLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewQuestionCache(client *redis.Client, loader QuestionLoader, ttl time.Duration) *QuestionCache {
	return &QuestionCache{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *QuestionCache) Questions(ctx context.Context) ([]domain.TriviaQuestion, error) {
	raw, err := c.client.Get(ctx, questionBankKey).Bytes()
	if err == nil {
		if bank, decodeErr := decodeBank(raw); decodeErr == nil {
			return bank, nil
		}
	}

	result, err, _ := c.sf.Do(questionBankKey, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		raw, err := c.client.Get(ctx, questionBankKey).Bytes()
		if err == nil {
			if bank, decodeErr := decodeBank(raw); decodeErr == nil {
				return bank, nil
			}
		}

		bank, err := c.loader.LoadQuestions(ctx)
		if err != nil {
			return nil, err
		}

		data, err := json.Marshal(bank)
		if err != nil {
			return nil, err
		}
		_ = c.client.Set(ctx, questionBankKey, data, c.ttlWithJitter()).Err()
		return bank, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.TriviaQuestion), nil
}

// Invalidate drops the cached bank so admin edits show up on the next read.
func (c *QuestionCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, questionBankKey).Err()
}

func (c *QuestionCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}

func decodeBank(raw []byte) ([]domain.TriviaQuestion, error) {
	var bank []domain.TriviaQuestion
	if err := json.Unmarshal(raw, &bank); err != nil {
		return nil, err
	}
	return bank, nil
}
