package redis

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"trivia-quiz/internal/domain"
	"trivia-quiz/internal/infra/memory"
)

func TestSourceCacheStoresCategoriesInRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	source := &countingSource{StaticSource: sampleSource()}
	cache := NewSourceCache(newClient(mr), source, time.Minute)

	if _, err := cache.Categories(context.Background()); err != nil {
		t.Fatalf("categories: %v", err)
	}
	if source.categoryCalls != 1 {
		t.Fatalf("expected source called once, got %d", source.categoryCalls)
	}
	if got := mr.HGet("trivia:categories", "9"); got != "General Knowledge" {
		t.Fatalf("expected category hash entry, got %q", got)
	}

	// Second call should hit cache, source not incremented.
	categories, err := cache.Categories(context.Background())
	if err != nil {
		t.Fatalf("categories 2: %v", err)
	}
	if source.categoryCalls != 1 {
		t.Fatalf("expected cache hit, source calls=%d", source.categoryCalls)
	}
	if len(categories) != 2 || categories[0].ID != 9 || categories[1].ID != 18 {
		t.Fatalf("expected categories ordered by id, got %+v", categories)
	}
}

func TestSourceCacheStoresCountsWithTTL(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	source := &countingSource{StaticSource: sampleSource()}
	cache := NewSourceCache(newClient(mr), source, time.Minute)

	count, err := cache.QuestionCount(context.Background(), 9)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count.Total != 1 {
		t.Fatalf("expected total 1, got %d", count.Total)
	}
	if ttl := mr.TTL("trivia:count:9"); ttl < time.Minute {
		t.Fatalf("expected ttl of at least a minute, got %v", ttl)
	}

	cached, err := cache.QuestionCount(context.Background(), 9)
	if err != nil {
		t.Fatalf("count 2: %v", err)
	}
	if source.countCalls != 1 || cached != count {
		t.Fatalf("expected cached count %+v, got %+v after %d calls", count, cached, source.countCalls)
	}

	mr.FastForward(2 * time.Minute)
	if _, err := cache.QuestionCount(context.Background(), 9); err != nil {
		t.Fatalf("count 3: %v", err)
	}
	if source.countCalls != 2 {
		t.Fatalf("expected refetch after expiry, got %d calls", source.countCalls)
	}
}

type countingSource struct {
	*memory.StaticSource
	categoryCalls int
	countCalls    int
}

func (s *countingSource) Categories(ctx context.Context) ([]domain.Category, error) {
	s.categoryCalls++
	return s.StaticSource.Categories(ctx)
}

func (s *countingSource) QuestionCount(ctx context.Context, categoryID int) (domain.CategoryCount, error) {
	s.countCalls++
	return s.StaticSource.QuestionCount(ctx, categoryID)
}

func sampleSource() *memory.StaticSource {
	return memory.NewStaticSource(
		[]domain.Category{{ID: 18, Name: "Science: Computers"}, {ID: 9, Name: "General Knowledge"}},
		map[int][]domain.Question{
			9: {{Prompt: "What is 2 + 2?", CorrectAnswer: "4", IncorrectAnswers: []string{"3", "5"}}},
		},
	)
}

func newClient(mr *miniredis.Miniredis) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
}

func TestSourceCacheConcurrentMissesOnDistinctCategories(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	const categories = 16
	questions := make(map[int][]domain.Question, categories)
	for id := 1; id <= categories; id++ {
		questions[id] = []domain.Question{{Prompt: fmt.Sprintf("Q%d", id), CorrectAnswer: "a", IncorrectAnswers: []string{"b"}}}
	}
	cache := NewSourceCache(newClient(mr), memory.NewStaticSource(nil, questions), time.Minute)

	var wg sync.WaitGroup
	errs := make(chan error, categories)
	for id := 1; id <= categories; id++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			count, err := cache.QuestionCount(context.Background(), id)
			if err == nil && count.Total != 1 {
				err = fmt.Errorf("category %d: expected total 1, got %d", id, count.Total)
			}
			errs <- err
		}(id)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("count: %v", err)
		}
	}
	for id := 1; id <= categories; id++ {
		key := fmt.Sprintf("trivia:count:%d", id)
		if ttl := mr.TTL(key); ttl < time.Minute || ttl > time.Minute+6*time.Second {
			t.Fatalf("expected jittered ttl on %s, got %v", key, ttl)
		}
	}
}
