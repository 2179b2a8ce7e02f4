// Package github provides the code-hosting collaborator: a REST client for
// profile and repository metadata, and the enricher that turns it into
// evidence attached to a candidate record.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/hiring-agent/internal/types"
)

const defaultBaseURL = "https://api.github.com"

// Client is a minimal GitHub REST API client. An optional bearer token
// raises rate limits; responses can be cached to disk in development replay
// mode.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	cache      *ReplayCache
	log        *zap.Logger
}

// ClientConfig holds client construction options.
type ClientConfig struct {
	// BaseURL overrides the API host, mainly for tests.
	BaseURL string
	// Token is an optional bearer token (usually from GITHUB_TOKEN).
	Token string
	// CacheDir enables the development replay cache when non-empty.
	CacheDir string
	// Timeout bounds each request. Zero means 10 seconds.
	Timeout time.Duration
}

// NewClient creates a GitHub API client.
func NewClient(cfg ClientConfig, log *zap.Logger) *Client {
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	var cache *ReplayCache
	if cfg.CacheDir != "" {
		cache = NewReplayCache(cfg.CacheDir)
	}

	return &Client{
		baseURL:    baseURL,
		token:      cfg.Token,
		httpClient: &http.Client{Timeout: timeout},
		cache:      cache,
		log:        log,
	}
}

// apiRepo is the wire shape of a repository list entry.
type apiRepo struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	HTMLURL         string   `json:"html_url"`
	Homepage        string   `json:"homepage"`
	Language        string   `json:"language"`
	StargazersCount int      `json:"stargazers_count"`
	ForksCount      int      `json:"forks_count"`
	OpenIssuesCount int      `json:"open_issues_count"`
	Topics          []string `json:"topics"`
	Fork            bool     `json:"fork"`
	Archived        bool     `json:"archived"`
	CreatedAt       string   `json:"created_at"`
	UpdatedAt       string   `json:"updated_at"`
	DefaultBranch   string   `json:"default_branch"`
}

// apiContributor is the wire shape of a contributor list entry.
type apiContributor struct {
	Login         string `json:"login"`
	Contributions int    `json:"contributions"`
}

// User fetches the public profile for a username.
func (c *Client) User(ctx context.Context, username string) (*types.HostProfile, error) {
	var raw struct {
		Login       string `json:"login"`
		Name        string `json:"name"`
		Bio         string `json:"bio"`
		Location    string `json:"location"`
		Company     string `json:"company"`
		PublicRepos int    `json:"public_repos"`
		Followers   int    `json:"followers"`
		Following   int    `json:"following"`
		CreatedAt   string `json:"created_at"`
		UpdatedAt   string `json:"updated_at"`
		Blog        string `json:"blog"`
	}
	if err := c.get(ctx, "/users/"+username, nil, &raw); err != nil {
		return nil, err
	}

	return &types.HostProfile{
		Username:    raw.Login,
		Name:        raw.Name,
		Bio:         raw.Bio,
		Location:    raw.Location,
		Company:     raw.Company,
		PublicRepos: raw.PublicRepos,
		Followers:   raw.Followers,
		Following:   raw.Following,
		CreatedAt:   raw.CreatedAt,
		UpdatedAt:   raw.UpdatedAt,
		Blog:        raw.Blog,
	}, nil
}

// Repos fetches a user's public repository list, most recently updated first.
func (c *Client) Repos(ctx context.Context, username string, perPage int) ([]apiRepo, error) {
	params := url.Values{}
	params.Set("sort", "updated")
	params.Set("per_page", fmt.Sprintf("%d", perPage))
	params.Set("type", "all")

	var repos []apiRepo
	if err := c.get(ctx, "/users/"+username+"/repos", params, &repos); err != nil {
		return nil, err
	}
	return repos, nil
}

// Contributors fetches the contributor list for one repository.
func (c *Client) Contributors(ctx context.Context, owner, repo string) ([]apiContributor, error) {
	var contributors []apiContributor
	if err := c.get(ctx, "/repos/"+owner+"/"+repo+"/contributors", nil, &contributors); err != nil {
		return nil, err
	}
	return contributors, nil
}

// get performs one API round-trip, consulting the replay cache first when
// enabled.
func (c *Client) get(ctx context.Context, path string, params url.Values, v any) error {
	if c.cache != nil {
		if data, ok := c.cache.Get(path, params); ok {
			c.log.Debug("replay cache hit", zap.String("path", path))
			return json.Unmarshal(data, v)
		}
	}

	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close() //nolint:errcheck // response body close failure is not actionable

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%s returned status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response from %s: %w", path, err)
	}

	if c.cache != nil {
		if err := c.cache.Put(path, params, data); err != nil {
			c.log.Warn("replay cache write failed", zap.String("path", path), zap.Error(err))
		}
	}

	return json.Unmarshal(data, v)
}
