package redis

import (
	"context"
	"math/rand"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"trivia-quiz/internal/app"
	"trivia-quiz/internal/domain"
)

// SourceCache caches trivia metadata in Redis and falls back to the source on a miss.
// Categories are stored as: HSET trivia:categories {categoryID} {name}
// Counts are stored as:     HSET trivia:count:{categoryID} total|easy|medium|hard {n}
// Questions always go to the source.
type SourceCache struct {
	client *redis.Client
	source app.TriviaSource
	ttl    time.Duration
	sf     singleflight.Group

	// rnd is shared by misses on different singleflight keys.
	rndMu sync.Mutex
	rnd   *rand.Rand
}

func NewSourceCache(client *redis.Client, source app.TriviaSource, ttl time.Duration) *SourceCache {
	return &SourceCache{
		client: client,
		source: source,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *SourceCache) Categories(ctx context.Context) ([]domain.Category, error) {
	key := c.categoriesKey()
	if names, err := c.client.HGetAll(ctx, key).Result(); err == nil && len(names) > 0 {
		return buildCategoriesFromCache(names), nil
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if names, err := c.client.HGetAll(ctx, key).Result(); err == nil && len(names) > 0 {
			return buildCategoriesFromCache(names), nil
		}

		categories, err := c.source.Categories(ctx)
		if err != nil {
			return nil, err
		}
		if len(categories) == 0 {
			return categories, nil
		}

		pipe := c.client.Pipeline()
		for _, category := range categories {
			pipe.HSet(ctx, key, strconv.Itoa(category.ID), category.Name)
		}
		if ttl := c.ttlWithJitter(); ttl > 0 {
			pipe.Expire(ctx, key, ttl)
		}
		if _, err := pipe.Exec(ctx); err != nil {
			log.Warn().Err(err).Msg("cache categories")
		}
		return categories, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Category), nil
}

func (c *SourceCache) QuestionCount(ctx context.Context, categoryID int) (domain.CategoryCount, error) {
	key := c.countKey(categoryID)
	if fields, err := c.client.HGetAll(ctx, key).Result(); err == nil && len(fields) > 0 {
		return buildCountFromCache(categoryID, fields), nil
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		if fields, err := c.client.HGetAll(ctx, key).Result(); err == nil && len(fields) > 0 {
			return buildCountFromCache(categoryID, fields), nil
		}

		count, err := c.source.QuestionCount(ctx, categoryID)
		if err != nil {
			return domain.CategoryCount{}, err
		}

		pipe := c.client.Pipeline()
		pipe.HSet(ctx, key,
			"total", count.Total,
			"easy", count.Easy,
			"medium", count.Medium,
			"hard", count.Hard,
		)
		if ttl := c.ttlWithJitter(); ttl > 0 {
			pipe.Expire(ctx, key, ttl)
		}
		if _, err := pipe.Exec(ctx); err != nil {
			log.Warn().Err(err).Int("category", categoryID).Msg("cache question count")
		}
		return count, nil
	})
	if err != nil {
		return domain.CategoryCount{}, err
	}
	return result.(domain.CategoryCount), nil
}

func (c *SourceCache) Questions(ctx context.Context, req domain.QuestionRequest) ([]domain.Question, error) {
	return c.source.Questions(ctx, req)
}

func (c *SourceCache) categoriesKey() string {
	return "trivia:categories"
}

func (c *SourceCache) countKey(categoryID int) string {
	return "trivia:count:" + strconv.Itoa(categoryID)
}

// buildCategoriesFromCache restores the source's id ordering, which a hash does not keep.
func buildCategoriesFromCache(names map[string]string) []domain.Category {
	categories := make([]domain.Category, 0, len(names))
	for idStr, name := range names {
		id, err := strconv.Atoi(idStr)
		if err != nil {
			continue
		}
		categories = append(categories, domain.Category{ID: id, Name: name})
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].ID < categories[j].ID
	})
	return categories
}

func buildCountFromCache(categoryID int, fields map[string]string) domain.CategoryCount {
	field := func(name string) int {
		n, _ := strconv.Atoi(fields[name])
		return n
	}
	return domain.CategoryCount{
		CategoryID: categoryID,
		Total:      field("total"),
		Easy:       field("easy"),
		Medium:     field("medium"),
		Hard:       field("hard"),
	}
}

func (c *SourceCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	jitterMax := int64(c.ttl) / 10
	c.rndMu.Lock()
	jitter := c.rnd.Int63n(jitterMax + 1)
	c.rndMu.Unlock()
	return c.ttl + time.Duration(jitter)
}
