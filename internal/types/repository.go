//nolint:revive // types is a standard Go package name pattern
package types

// ProjectType classifies a repository by how many people contributed to it.
type ProjectType string

const (
	// ProjectTypeSelfAuthored marks repositories with at most one contributor.
	ProjectTypeSelfAuthored ProjectType = "self_authored"
	// ProjectTypeCollaborative marks repositories with multiple contributors.
	ProjectTypeCollaborative ProjectType = "collaborative"
)

// RepoSummary describes one repository from the candidate's code-hosting
// profile. Repositories with zero commits attributable to the profile owner
// are excluded from enrichment: they are not evidence of the candidate's work.
type RepoSummary struct {
	Name              string      `json:"name"`
	Description       string      `json:"description,omitempty"`
	URL               string      `json:"url,omitempty"`
	LiveURL           string      `json:"live_url,omitempty"`
	Technologies      []string    `json:"technologies,omitempty"`
	ProjectType       ProjectType `json:"project_type"`
	ContributorCount  int         `json:"contributor_count"`
	AuthorCommitCount int         `json:"author_commit_count"`
	TotalCommitCount  int         `json:"total_commit_count"`
	Details           RepoDetails `json:"details"`
}

// RepoDetails carries secondary repository metadata used in the narrative
// evaluation document.
type RepoDetails struct {
	Stars         int      `json:"stars"`
	Forks         int      `json:"forks"`
	Language      string   `json:"language,omitempty"`
	Topics        []string `json:"topics,omitempty"`
	OpenIssues    int      `json:"open_issues"`
	Fork          bool     `json:"fork"`
	Archived      bool     `json:"archived"`
	CreatedAt     string   `json:"created_at,omitempty"`
	UpdatedAt     string   `json:"updated_at,omitempty"`
	DefaultBranch string   `json:"default_branch,omitempty"`
}

// HostProfile is the candidate's code-hosting account metadata.
type HostProfile struct {
	Username    string `json:"username"`
	Name        string `json:"name,omitempty"`
	Bio         string `json:"bio,omitempty"`
	Location    string `json:"location,omitempty"`
	Company     string `json:"company,omitempty"`
	PublicRepos int    `json:"public_repos"`
	Followers   int    `json:"followers"`
	Following   int    `json:"following"`
	CreatedAt   string `json:"created_at,omitempty"`
	UpdatedAt   string `json:"updated_at,omitempty"`
	Blog        string `json:"blog,omitempty"`
}

// Enrichment is the external-profile data attached to a candidate record
// before evaluation.
type Enrichment struct {
	Profile      *HostProfile  `json:"profile,omitempty"`
	Repositories []RepoSummary `json:"repositories,omitempty"`
	TotalRepos   int           `json:"total_repos"`
}
