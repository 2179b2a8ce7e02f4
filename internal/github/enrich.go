package github

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/hiring-agent/internal/llm"
	"github.com/jonathan/hiring-agent/internal/normalize"
	"github.com/jonathan/hiring-agent/internal/prompts"
	"github.com/jonathan/hiring-agent/internal/types"
)

const (
	// SelectionCap is the maximum number of repositories carried into the
	// evaluation document.
	SelectionCap = 5
	// maxRepoFetch bounds the repository listing (GitHub caps a page at 100).
	maxRepoFetch = 100
	// contributorConcurrency bounds parallel contributor fetches so the
	// API rate limit is respected.
	contributorConcurrency = 4
	// minForksToKeepFork is the activity threshold below which forked
	// repositories are skipped.
	minForksToKeepFork = 5
)

var usernamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`https?://github\.com/([^/]+)`),
	regexp.MustCompile(`github\.com/([^/]+)`),
	regexp.MustCompile(`@([^/]+)`),
	regexp.MustCompile(`^([a-zA-Z0-9-]+)$`),
}

// ExtractUsername pulls a GitHub username out of the various URL and handle
// formats seen on resumes. Returns "" when nothing matches.
func ExtractUsername(profileURL string) string {
	cleaned := strings.TrimSpace(strings.ReplaceAll(profileURL, " ", ""))
	if cleaned == "" {
		return ""
	}
	for _, pattern := range usernamePatterns {
		if m := pattern.FindStringSubmatch(cleaned); m != nil {
			return m[1]
		}
	}
	return ""
}

// Enricher retrieves a candidate's repository evidence and selects a
// representative subset for evaluation.
type Enricher struct {
	client *Client
	llm    llm.Client
	log    *zap.Logger
}

// NewEnricher creates an enricher. The llm client is used only for the
// top-N selection call and may be exercised rarely; every selection has a
// deterministic fallback.
func NewEnricher(client *Client, llmClient llm.Client, log *zap.Logger) *Enricher {
	return &Enricher{client: client, llm: llmClient, log: log}
}

// Enrich fetches the profile and repository evidence for a code-hosting
// profile URL. Collaborator failures degrade to a nil result with a logged
// warning; they never fail the pipeline.
func (e *Enricher) Enrich(ctx context.Context, profileURL string) (*types.Enrichment, error) {
	username := ExtractUsername(profileURL)
	if username == "" {
		return nil, fmt.Errorf("could not extract username from %q", profileURL)
	}

	profile, err := e.client.User(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile for %s: %w", username, err)
	}

	repos, err := e.collectRepos(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch repositories for %s: %w", username, err)
	}

	selected := e.selectTop(ctx, repos, SelectionCap)

	return &types.Enrichment{
		Profile:      profile,
		Repositories: selected,
		TotalRepos:   len(repos),
	}, nil
}

// collectRepos lists the user's repositories and resolves contributor
// statistics for each, with bounded concurrency. Repositories where the
// owner has no commits are dropped: they are not evidence of the
// candidate's work. The result is sorted by star count descending.
func (e *Enricher) collectRepos(ctx context.Context, username string) ([]types.RepoSummary, error) {
	apiRepos, err := e.client.Repos(ctx, username, maxRepoFetch)
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	var summaries []types.RepoSummary

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(contributorConcurrency)

	for _, repo := range apiRepos {
		if repo.Fork && repo.ForksCount < minForksToKeepFork {
			continue
		}

		g.Go(func() error {
			summary, ok := e.summarize(gctx, username, repo)
			if !ok {
				return nil
			}
			mu.Lock()
			summaries = append(summaries, summary)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		if summaries[i].Details.Stars != summaries[j].Details.Stars {
			return summaries[i].Details.Stars > summaries[j].Details.Stars
		}
		return summaries[i].Name < summaries[j].Name
	})

	return summaries, nil
}

// summarize builds one RepoSummary from repository metadata plus its
// contributor list. Returns ok=false when the repository should be excluded.
func (e *Enricher) summarize(ctx context.Context, username string, repo apiRepo) (types.RepoSummary, bool) {
	contributors, err := e.client.Contributors(ctx, username, repo.Name)
	if err != nil {
		// Contributor data is unavailable for empty or very large repos;
		// assume a single-person project rather than dropping it.
		e.log.Warn("contributor fetch failed, assuming single contributor",
			zap.String("repo", repo.Name), zap.Error(err))
		contributors = []apiContributor{{Login: username, Contributions: 1}}
	}

	var authorCommits, totalCommits int
	for _, contributor := range contributors {
		totalCommits += contributor.Contributions
		if strings.EqualFold(contributor.Login, username) {
			authorCommits = contributor.Contributions
		}
	}

	// No commits attributable to the profile owner: not their work.
	if authorCommits == 0 {
		return types.RepoSummary{}, false
	}

	projectType := types.ProjectTypeCollaborative
	if len(contributors) <= 1 {
		projectType = types.ProjectTypeSelfAuthored
	}

	var technologies []string
	if repo.Language != "" {
		technologies = []string{repo.Language}
	}

	return types.RepoSummary{
		Name:              repo.Name,
		Description:       repo.Description,
		URL:               repo.HTMLURL,
		LiveURL:           repo.Homepage,
		Technologies:      technologies,
		ProjectType:       projectType,
		ContributorCount:  len(contributors),
		AuthorCommitCount: authorCommits,
		TotalCommitCount:  totalCommits,
		Details: types.RepoDetails{
			Stars:         repo.StargazersCount,
			Forks:         repo.ForksCount,
			Language:      repo.Language,
			Topics:        repo.Topics,
			OpenIssues:    repo.OpenIssuesCount,
			Fork:          repo.Fork,
			Archived:      repo.Archived,
			CreatedAt:     repo.CreatedAt,
			UpdatedAt:     repo.UpdatedAt,
			DefaultBranch: repo.DefaultBranch,
		},
	}, true
}

// selectTop picks up to n representative repositories. Small sets pass
// through unchanged; larger ones go through a model-mediated selection that
// weights collaborative work above self-authored repositories. Any failure
// in the selection call falls back, exactly and reproducibly, to the first
// n entries of the star-sorted list.
func (e *Enricher) selectTop(ctx context.Context, repos []types.RepoSummary, n int) []types.RepoSummary {
	if len(repos) <= n {
		return repos
	}

	selected, err := e.selectWithModel(ctx, repos, n)
	if err != nil {
		e.log.Warn("repository selection call failed, using star-sort fallback", zap.Error(err))
		return repos[:n]
	}
	return selected
}

// selectWithModel runs the selection prompt and maps the returned names
// back to summaries, deduplicating and backfilling from the sorted list
// when the engine returns fewer unique entries than requested.
func (e *Enricher) selectWithModel(ctx context.Context, repos []types.RepoSummary, n int) ([]types.RepoSummary, error) {
	reposJSON, err := json.MarshalIndent(repos, "", "  ")
	if err != nil {
		return nil, err
	}

	tmpl, err := prompts.Get("github.json", "selection")
	if err != nil {
		return nil, err
	}
	system, err := prompts.Get("github.json", "selection_system")
	if err != nil {
		return nil, err
	}

	data := map[string]string{
		"Count":            strconv.Itoa(n),
		"RepositoriesJSON": string(reposJSON),
	}
	prompt := prompts.Format(tmpl, data)
	system = prompts.Format(system, data)

	response, err := e.llm.Generate(ctx, system, prompt, llm.DefaultOptions())
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Repositories []struct {
			Name string `json:"name"`
		} `json:"repositories"`
	}
	if err := json.Unmarshal([]byte(normalize.RepairJSON(response)), &parsed); err != nil {
		return nil, fmt.Errorf("selection response is not valid JSON: %w", err)
	}

	byName := make(map[string]types.RepoSummary, len(repos))
	for _, repo := range repos {
		byName[repo.Name] = repo
	}

	seen := make(map[string]bool, n)
	selected := make([]types.RepoSummary, 0, n)
	for _, entry := range parsed.Repositories {
		if len(selected) >= n {
			break
		}
		repo, known := byName[entry.Name]
		if !known || seen[entry.Name] {
			continue
		}
		seen[entry.Name] = true
		selected = append(selected, repo)
	}

	// Backfill from the sorted list when the engine under-delivered.
	for _, repo := range repos {
		if len(selected) >= n {
			break
		}
		if !seen[repo.Name] {
			seen[repo.Name] = true
			selected = append(selected, repo)
		}
	}

	return selected, nil
}
