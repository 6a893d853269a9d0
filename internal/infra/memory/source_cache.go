package memory

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"trivia-quiz/internal/app"
	"trivia-quiz/internal/domain"
)

const categoriesKey = "categories"

// SourceCache caches the category list and per-category counts with TTL to avoid
// repeated API hits. Questions are never cached; every quiz draws a fresh set.
type SourceCache struct {
	source app.TriviaSource
	ttl    time.Duration
	clock  func() time.Time
	sf     singleflight.Group
	rnd    *rand.Rand

	mu         sync.RWMutex
	categories cachedCategories
	counts     map[int]cachedCount
}

type cachedCategories struct {
	categories []domain.Category
	expiresAt  time.Time
}

type cachedCount struct {
	count     domain.CategoryCount
	expiresAt time.Time
}

func NewSourceCache(source app.TriviaSource, ttl time.Duration) *SourceCache {
	return &SourceCache{
		source: source,
		ttl:    ttl,
		clock:  time.Now,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		counts: make(map[int]cachedCount),
	}
}

func (c *SourceCache) Categories(ctx context.Context) ([]domain.Category, error) {
	if categories, ok := c.cachedCategories(); ok {
		return categories, nil
	}

	result, err, _ := c.sf.Do(categoriesKey, func() (interface{}, error) {
		if categories, ok := c.cachedCategories(); ok {
			return categories, nil
		}
		categories, err := c.source.Categories(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.categories = cachedCategories{
			categories: categories,
			expiresAt:  c.clock().Add(c.ttlWithJitter()),
		}
		c.mu.Unlock()
		return categories, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Category), nil
}

func (c *SourceCache) QuestionCount(ctx context.Context, categoryID int) (domain.CategoryCount, error) {
	if count, ok := c.cachedCount(categoryID); ok {
		return count, nil
	}

	result, err, _ := c.sf.Do(strconv.Itoa(categoryID), func() (interface{}, error) {
		if count, ok := c.cachedCount(categoryID); ok {
			return count, nil
		}
		count, err := c.source.QuestionCount(ctx, categoryID)
		if err != nil {
			return domain.CategoryCount{}, err
		}

		c.mu.Lock()
		c.counts[categoryID] = cachedCount{
			count:     count,
			expiresAt: c.clock().Add(c.ttlWithJitter()),
		}
		c.mu.Unlock()
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

func (c *SourceCache) cachedCategories() ([]domain.Category, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.categories.categories != nil && c.categories.expiresAt.After(c.clock()) {
		return c.categories.categories, true
	}
	return nil, false
}

func (c *SourceCache) cachedCount(categoryID int) (domain.CategoryCount, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if entry, ok := c.counts[categoryID]; ok && entry.expiresAt.After(c.clock()) {
		return entry.count, true
	}
	return domain.CategoryCount{}, false
}

func (c *SourceCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}

// StaticSource is a simple source backed by in-memory data (useful for tests).
type StaticSource struct {
	categories []domain.Category
	questions  map[int][]domain.Question
}

func NewStaticSource(categories []domain.Category, questions map[int][]domain.Question) *StaticSource {
	return &StaticSource{categories: categories, questions: questions}
}

func (s *StaticSource) Categories(_ context.Context) ([]domain.Category, error) {
	return s.categories, nil
}

func (s *StaticSource) QuestionCount(_ context.Context, categoryID int) (domain.CategoryCount, error) {
	questions, ok := s.questions[categoryID]
	if !ok {
		return domain.CategoryCount{}, fmt.Errorf("%w: %w", domain.ErrSourceUnavailable, domain.ErrInvalidParameter)
	}
	return domain.CategoryCount{CategoryID: categoryID, Total: len(questions)}, nil
}

func (s *StaticSource) Questions(_ context.Context, req domain.QuestionRequest) ([]domain.Question, error) {
	questions, ok := s.questions[req.CategoryID]
	if !ok || req.Amount > len(questions) {
		return nil, fmt.Errorf("%w: %w", domain.ErrSourceUnavailable, domain.ErrNoResults)
	}
	out := make([]domain.Question, req.Amount)
	copy(out, questions)
	return out, nil
}
