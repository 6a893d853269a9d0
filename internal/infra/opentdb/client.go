package opentdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"trivia-quiz/internal/domain"
)

// DefaultBaseURL is the public Open Trivia DB endpoint.
const DefaultBaseURL = "https://opentdb.com"

// Client talks to the Open Trivia DB HTTP API.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type categoriesResponse struct {
	TriviaCategories []domain.Category `json:"trivia_categories"`
}

type countResponse struct {
	CategoryID int `json:"category_id"`
	Counts     struct {
		Total  int `json:"total_question_count"`
		Easy   int `json:"total_easy_question_count"`
		Medium int `json:"total_medium_question_count"`
		Hard   int `json:"total_hard_question_count"`
	} `json:"category_question_count"`
}

type questionsResponse struct {
	ResponseCode int               `json:"response_code"`
	Results      []domain.Question `json:"results"`
}

// Categories fetches the full category list.
func (c *Client) Categories(ctx context.Context) ([]domain.Category, error) {
	var resp categoriesResponse
	if err := c.get(ctx, "/api_category.php", nil, &resp); err != nil {
		return nil, err
	}
	return resp.TriviaCategories, nil
}

// QuestionCount fetches how many questions a category holds.
func (c *Client) QuestionCount(ctx context.Context, categoryID int) (domain.CategoryCount, error) {
	var resp countResponse
	query := url.Values{"category": {strconv.Itoa(categoryID)}}
	if err := c.get(ctx, "/api_count.php", query, &resp); err != nil {
		return domain.CategoryCount{}, err
	}
	return domain.CategoryCount{
		CategoryID: categoryID,
		Total:      resp.Counts.Total,
		Easy:       resp.Counts.Easy,
		Medium:     resp.Counts.Medium,
		Hard:       resp.Counts.Hard,
	}, nil
}

// Questions fetches req.Amount questions. A non-zero response code is reported as
// domain.ErrSourceUnavailable wrapping the code-specific cause.
func (c *Client) Questions(ctx context.Context, req domain.QuestionRequest) ([]domain.Question, error) {
	query := url.Values{
		"amount":   {strconv.Itoa(req.Amount)},
		"category": {strconv.Itoa(req.CategoryID)},
	}
	var resp questionsResponse
	if err := c.get(ctx, "/api.php", query, &resp); err != nil {
		return nil, err
	}
	if err := responseCodeError(resp.ResponseCode); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSourceUnavailable, err)
	}
	return resp.Results, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()
	log.Debug().Str("path", path).Int("status", resp.StatusCode).Dur("took", time.Since(start)).Msg("trivia request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: HTTP %d", domain.ErrSourceUnavailable, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s: %w", domain.ErrSourceUnavailable, path, err)
	}
	return nil
}

func responseCodeError(code int) error {
	switch code {
	case 0:
		return nil
	case 1:
		return domain.ErrNoResults
	case 2:
		return domain.ErrInvalidParameter
	case 3:
		return domain.ErrTokenNotFound
	case 4:
		return domain.ErrTokenEmpty
	case 5:
		return domain.ErrRateLimited
	default:
		return fmt.Errorf("unknown response code %d", code)
	}
}
