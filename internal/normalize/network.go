package normalize

import (
	"net/url"
	"strings"
)

// networkRule maps a registrable domain to a network name and the index of
// the URL path segment holding the username. Most networks put the username
// in the first segment; LinkedIn prefixes a locale/category segment ("/in/"),
// and Stack Overflow prefixes "/users/<numeric-id>/".
type networkRule struct {
	name       string
	usernameAt int
}

var networkRules = map[string]networkRule{
	"github.com":        {name: "GitHub", usernameAt: 0},
	"linkedin.com":      {name: "LinkedIn", usernameAt: 1},
	"stackoverflow.com": {name: "Stack Overflow", usernameAt: 2},
	"leetcode.com":      {name: "LeetCode", usernameAt: 0},
	"hackerrank.com":    {name: "HackerRank", usernameAt: 0},
	"codeforces.com":    {name: "Codeforces", usernameAt: 1},
	"medium.com":        {name: "Medium", usernameAt: 0},
}

// InferNetwork derives a social network name and username from a profile
// URL. The registrable domain is looked up in a fixed table; the username
// comes from a per-network path-segment rule. Unknown domains or unusable
// paths yield ("", "").
func InferNetwork(rawURL string) (network, username string) {
	rawURL = strings.ReplaceAll(strings.TrimSpace(rawURL), " ", "")
	if rawURL == "" {
		return "", ""
	}
	if !strings.Contains(rawURL, "://") {
		rawURL = "https://" + rawURL
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", ""
	}

	rule, ok := networkRules[registrableDomain(u.Hostname())]
	if !ok {
		return "", ""
	}

	segments := splitPath(u.Path)
	if rule.usernameAt >= len(segments) {
		return rule.name, ""
	}
	return rule.name, strings.TrimPrefix(segments[rule.usernameAt], "@")
}

// registrableDomain reduces a hostname to its last two labels, stripping
// subdomains like "www." or country mirrors.
func registrableDomain(host string) string {
	host = strings.ToLower(host)
	labels := strings.Split(host, ".")
	if len(labels) <= 2 {
		return host
	}
	return strings.Join(labels[len(labels)-2:], ".")
}

func splitPath(path string) []string {
	var segments []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}
