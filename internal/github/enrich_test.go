package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jonathan/hiring-agent/internal/llm"
	"github.com/jonathan/hiring-agent/internal/types"
)

type stubLLM struct {
	response string
	err      error
	calls    int
}

func (s *stubLLM) Generate(ctx context.Context, system, prompt string, opts llm.Options) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func (s *stubLLM) Close() error { return nil }

func TestExtractUsername(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"https url", "https://github.com/octocat", "octocat"},
		{"https url with repo path", "https://github.com/octocat/hello", "octocat"},
		{"bare domain", "github.com/octocat", "octocat"},
		{"at handle", "@octocat", "octocat"},
		{"plain username", "octocat", "octocat"},
		{"surrounding whitespace", "  github.com/octocat  ", "octocat"},
		{"embedded spaces", "github.com/ octocat", "octocat"},
		{"empty", "", ""},
		{"garbage", "not a url!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractUsername(tt.input))
		})
	}
}

// fakeGitHub serves the three endpoints the enricher touches.
func fakeGitHub(t *testing.T, repos []apiRepo, contributors map[string][]apiContributor) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/users/octocat", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"login": "octocat", "name": "Octo Cat"})
	})
	mux.HandleFunc("/users/octocat/repos", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(repos)
	})
	mux.HandleFunc("/repos/octocat/", func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Path[len("/repos/octocat/"):]
		name = name[:len(name)-len("/contributors")]
		if list, ok := contributors[name]; ok {
			_ = json.NewEncoder(w).Encode(list)
			return
		}
		http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
	})
	return httptest.NewServer(mux)
}

func starRepo(name string, stars int) apiRepo {
	return apiRepo{Name: name, StargazersCount: stars, Language: "Go"}
}

func soloContributors(n int) []apiContributor {
	return []apiContributor{{Login: "octocat", Contributions: n}}
}

func TestEnrichFiltersAndSorts(t *testing.T) {
	repos := []apiRepo{
		{Name: "stale-fork", Fork: true, ForksCount: 1, StargazersCount: 500},
		{Name: "active-fork", Fork: true, ForksCount: 10, StargazersCount: 30},
		{Name: "ghost", StargazersCount: 90},
		starRepo("popular", 50),
		starRepo("quiet", 2),
	}
	contributors := map[string][]apiContributor{
		"active-fork": {{Login: "octocat", Contributions: 12}, {Login: "upstream", Contributions: 400}},
		"ghost":       {{Login: "someone-else", Contributions: 7}},
		"popular":     soloContributors(40),
		"quiet":       soloContributors(3),
	}
	srv := fakeGitHub(t, repos, contributors)
	defer srv.Close()

	client := NewClient(ClientConfig{BaseURL: srv.URL}, zap.NewNop())
	enricher := NewEnricher(client, &stubLLM{}, zap.NewNop())

	enrichment, err := enricher.Enrich(context.Background(), "github.com/octocat")
	require.NoError(t, err)

	require.NotNil(t, enrichment.Profile)
	assert.Equal(t, "octocat", enrichment.Profile.Username)

	// stale-fork is skipped before fetching, ghost has no owner commits.
	names := make([]string, 0, len(enrichment.Repositories))
	for _, repo := range enrichment.Repositories {
		names = append(names, repo.Name)
	}
	assert.Equal(t, []string{"popular", "active-fork", "quiet"}, names)
	assert.Equal(t, 3, enrichment.TotalRepos)

	byName := make(map[string]types.RepoSummary)
	for _, repo := range enrichment.Repositories {
		byName[repo.Name] = repo
	}
	assert.Equal(t, types.ProjectTypeSelfAuthored, byName["popular"].ProjectType)
	assert.Equal(t, types.ProjectTypeCollaborative, byName["active-fork"].ProjectType)
	assert.Equal(t, 12, byName["active-fork"].AuthorCommitCount)
	assert.Equal(t, 412, byName["active-fork"].TotalCommitCount)
}

func TestEnrichSkipsSelectionForSmallSets(t *testing.T) {
	srv := fakeGitHub(t,
		[]apiRepo{starRepo("only", 1)},
		map[string][]apiContributor{"only": soloContributors(5)},
	)
	defer srv.Close()

	model := &stubLLM{err: errors.New("should not be called")}
	client := NewClient(ClientConfig{BaseURL: srv.URL}, zap.NewNop())
	enricher := NewEnricher(client, model, zap.NewNop())

	enrichment, err := enricher.Enrich(context.Background(), "octocat")
	require.NoError(t, err)
	assert.Len(t, enrichment.Repositories, 1)
	assert.Zero(t, model.calls)
}

func manyRepos(n int) ([]apiRepo, map[string][]apiContributor) {
	repos := make([]apiRepo, 0, n)
	contributors := make(map[string][]apiContributor, n)
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("repo-%02d", i)
		repos = append(repos, starRepo(name, 100-i))
		contributors[name] = soloContributors(i + 1)
	}
	return repos, contributors
}

func TestSelectionFallbackIsFirstNByStars(t *testing.T) {
	repos, contributors := manyRepos(8)
	srv := fakeGitHub(t, repos, contributors)
	defer srv.Close()

	client := NewClient(ClientConfig{BaseURL: srv.URL}, zap.NewNop())
	enricher := NewEnricher(client, &stubLLM{err: errors.New("model down")}, zap.NewNop())

	enrichment, err := enricher.Enrich(context.Background(), "octocat")
	require.NoError(t, err)
	require.Len(t, enrichment.Repositories, SelectionCap)
	for i, repo := range enrichment.Repositories {
		assert.Equal(t, fmt.Sprintf("repo-%02d", i), repo.Name)
	}
}

func TestSelectionUsesModelPicks(t *testing.T) {
	repos, contributors := manyRepos(8)
	srv := fakeGitHub(t, repos, contributors)
	defer srv.Close()

	model := &stubLLM{response: `{"repositories": [
		{"name": "repo-06"},
		{"name": "repo-02"},
		{"name": "repo-02"},
		{"name": "does-not-exist"},
		{"name": "repo-07"}
	]}`}
	client := NewClient(ClientConfig{BaseURL: srv.URL}, zap.NewNop())
	enricher := NewEnricher(client, model, zap.NewNop())

	enrichment, err := enricher.Enrich(context.Background(), "octocat")
	require.NoError(t, err)

	names := make([]string, 0, len(enrichment.Repositories))
	for _, repo := range enrichment.Repositories {
		names = append(names, repo.Name)
	}
	// Duplicates and unknown names are dropped, then the list is
	// backfilled from the star order.
	assert.Equal(t, []string{"repo-06", "repo-02", "repo-07", "repo-00", "repo-01"}, names)
}

func TestSelectionMalformedResponseFallsBack(t *testing.T) {
	repos, contributors := manyRepos(7)
	srv := fakeGitHub(t, repos, contributors)
	defer srv.Close()

	client := NewClient(ClientConfig{BaseURL: srv.URL}, zap.NewNop())
	enricher := NewEnricher(client, &stubLLM{response: "I cannot answer that."}, zap.NewNop())

	enrichment, err := enricher.Enrich(context.Background(), "octocat")
	require.NoError(t, err)
	require.Len(t, enrichment.Repositories, SelectionCap)
	assert.Equal(t, "repo-00", enrichment.Repositories[0].Name)
}

func TestEnrichRejectsUnusableURL(t *testing.T) {
	enricher := NewEnricher(NewClient(ClientConfig{}, zap.NewNop()), &stubLLM{}, zap.NewNop())
	_, err := enricher.Enrich(context.Background(), "   ")
	require.Error(t, err)
}
