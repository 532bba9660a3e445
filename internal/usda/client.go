// Package usda is the external nutrition lookup collaborator: it maps
// Mongolian queries to English terms and fetches per-100g macros from
// the USDA FoodData Central API. Its only contract with the engine is
// producing a Food-shaped record per external identifier.
package usda

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/Khas-Erdene-Tsogtsaikhan/caloriemgl/internal/tracker"
)

// DefaultBaseURL is the FoodData Central endpoint.
const DefaultBaseURL = "https://api.nal.usda.gov/fdc"

// FoodData Central nutrient numbers for the macro quadruple.
const (
	nutrientEnergy  = 1008
	nutrientProtein = 1003
	nutrientCarbs   = 1005
	nutrientFat     = 1004
)

// Client talks to the FoodData Central API.
type Client struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	limiter    *rate.Limiter
	logger     tracker.Logger
}

// NewClient creates a FoodData Central client. The API allows 1000
// requests per hour; the limiter holds ~0.278 req/s with a small burst.
func NewClient(apiKey, baseURL string, logger tracker.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = tracker.NewNopLogger()
	}
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		apiKey:     apiKey,
		baseURL:    baseURL,
		limiter:    rate.NewLimiter(rate.Limit(0.278), 5),
		logger:     logger,
	}
}

type searchRequest struct {
	Query    string   `json:"query"`
	DataType []string `json:"dataType"`
	PageSize int      `json:"pageSize"`
}

type searchResponse struct {
	Foods []searchResult `json:"foods"`
}

type searchResult struct {
	FdcID       int64  `json:"fdcId"`
	Description string `json:"description"`
}

type foodDetail struct {
	FdcID           int64      `json:"fdcId"`
	Description     string     `json:"description"`
	FoodNutrients   []nutrient `json:"foodNutrients"`
	ServingSize     float64    `json:"servingSize"`
	ServingSizeUnit string     `json:"servingSizeUnit"`
}

type nutrient struct {
	NutrientID int64   `json:"nutrientId"`
	Value      float64 `json:"value"`
}

// Lookup maps a Mongolian query to an English search term, fetches the
// top FoodData Central result and extracts per-100g macros. A nil
// result means "no usable food": no API key, no mapping, or nothing
// extractable.
func (c *Client) Lookup(ctx context.Context, query string) (*tracker.ExternalFood, error) {
	if c.apiKey == "" {
		c.logger.Debug("usda lookup skipped: no API key")
		return nil, nil
	}
	queryEN, ok := MapQuery(query)
	if !ok {
		c.logger.Debug("usda lookup skipped: no mapping", "query", query)
		return nil, nil
	}

	results, err := c.searchFoods(ctx, queryEN)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		c.logger.Debug("usda search returned no foods", "query", queryEN)
		return nil, nil
	}

	detail, err := c.getFood(ctx, results[0].FdcID)
	if err != nil {
		return nil, err
	}

	per, ok := extractPer100g(detail)
	if !ok {
		c.logger.Debug("usda food had no extractable macros", "fdc_id", detail.FdcID)
		return nil, nil
	}
	return &tracker.ExternalFood{
		SourceID: strconv.FormatInt(detail.FdcID, 10),
		NameEN:   detail.Description,
		Per100g:  per,
	}, nil
}

func (c *Client) searchFoods(ctx context.Context, queryEN string) ([]searchResult, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	body, err := json.Marshal(searchRequest{
		Query:    queryEN,
		DataType: []string{"Foundation", "Survey (FNDDS)", "SR Legacy"},
		PageSize: 10,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding search request: %w", err)
	}

	reqURL := fmt.Sprintf("%s/v1/foods/search?api_key=%s", c.baseURL, url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var resp searchResponse
	if err := c.do(req, &resp); err != nil {
		return nil, fmt.Errorf("usda search: %w", err)
	}
	return resp.Foods, nil
}

func (c *Client) getFood(ctx context.Context, fdcID int64) (*foodDetail, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	reqURL := fmt.Sprintf("%s/v1/food/%d?api_key=%s", c.baseURL, fdcID, url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating food request: %w", err)
	}

	var detail foodDetail
	if err := c.do(req, &detail); err != nil {
		return nil, fmt.Errorf("usda get food %d: %w", fdcID, err)
	}
	return &detail, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d: %s", resp.StatusCode, body)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func nutrientValue(nutrients []nutrient, id int64) float64 {
	for _, n := range nutrients {
		if n.NutrientID == id {
			return n.Value
		}
	}
	return 0
}

// extractPer100g normalizes a food's macro quadruple to per-100g
// values. Branded foods report nutrients per serving; when the serving
// is in grams the values are rescaled, otherwise they are taken as
// already per-100g. Returns false when every macro is zero or less.
func extractPer100g(detail *foodDetail) (tracker.Per100g, bool) {
	factor := 1.0
	if detail.ServingSize > 0 && strings.EqualFold(detail.ServingSizeUnit, "g") {
		factor = 100 / detail.ServingSize
	}

	per := tracker.Per100g{
		Calories: nonNegative(nutrientValue(detail.FoodNutrients, nutrientEnergy) * factor),
		ProteinG: nonNegative(nutrientValue(detail.FoodNutrients, nutrientProtein) * factor),
		CarbsG:   nonNegative(nutrientValue(detail.FoodNutrients, nutrientCarbs) * factor),
		FatG:     nonNegative(nutrientValue(detail.FoodNutrients, nutrientFat) * factor),
	}
	if factor != 1.0 {
		per.Calories = tracker.Round1(per.Calories)
		per.ProteinG = tracker.Round1(per.ProteinG)
		per.CarbsG = tracker.Round1(per.CarbsG)
		per.FatG = tracker.Round1(per.FatG)
	}

	if per.Calories <= 0 && per.ProteinG <= 0 && per.CarbsG <= 0 && per.FatG <= 0 {
		return tracker.Per100g{}, false
	}
	return per, true
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
