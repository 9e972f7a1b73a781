package odds

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://api.the-odds-api.com/v4"
	timeout        = 10 * time.Second
	marketH2H      = "h2h"
)

// Outcome, Market, Bookmaker e Game espelham a resposta de /sports/<sport>/odds
type Outcome struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type Market struct {
	Key      string    `json:"key"`
	Outcomes []Outcome `json:"outcomes"`
}

type Bookmaker struct {
	Key     string   `json:"key"`
	Title   string   `json:"title"`
	Markets []Market `json:"markets"`
}

type Game struct {
	ID           string      `json:"id"`
	SportKey     string      `json:"sport_key"`
	SportTitle   string      `json:"sport_title"`
	CommenceTime time.Time   `json:"commence_time"`
	HomeTeam     string      `json:"home_team"`
	AwayTeam     string      `json:"away_team"`
	Bookmakers   []Bookmaker `json:"bookmakers"`
}

// Client consulta o provedor de odds
type Client struct {
	BaseURL string
	APIKey  string
	Regions string
	HTTP    *http.Client
}

func NewClient(baseURL, apiKey, regions string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if regions == "" {
		regions = "us"
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		Regions: regions,
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// ErrNoAPIKey é devolvido sem chamada de rede quando a chave não foi configurada
var ErrNoAPIKey = errors.New("odds api key not configured")

// FetchOdds busca as odds head-to-head do esporte (ex: "basketball_nba")
func (c *Client) FetchOdds(ctx context.Context, sport string) ([]Game, error) {
	if c.APIKey == "" {
		return nil, ErrNoAPIKey
	}

	q := url.Values{}
	q.Set("apiKey", c.APIKey)
	q.Set("regions", c.Regions)
	q.Set("markets", marketH2H)
	endpoint := fmt.Sprintf("%s/sports/%s/odds?%s", c.BaseURL, url.PathEscape(sport), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	res, err := c.HTTP.Do(req)
	if err != nil {
		// a url carrega a apiKey; não repassa o erro cru
		return nil, fmt.Errorf("odds request failed: %s", strings.ReplaceAll(err.Error(), c.APIKey, "***"))
	}
	defer res.Body.Close()

	if res.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 200))
		return nil, fmt.Errorf("odds api http %d: %s", res.StatusCode, strings.TrimSpace(string(body)))
	}

	var games []Game
	if err := json.NewDecoder(res.Body).Decode(&games); err != nil {
		return nil, fmt.Errorf("decoding odds: %w", err)
	}
	return games, nil
}
