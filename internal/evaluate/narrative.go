package evaluate

import (
	"fmt"
	"strings"

	"github.com/jonathan/hiring-agent/internal/types"
)

// BuildDocument flattens a candidate record (plus optional code-hosting
// enrichment) into the narrative text the scoring rubric is applied to.
// Section order is fixed so evaluations of the same record are reproducible.
func BuildDocument(record *types.CandidateRecord, enrichment *types.Enrichment) string {
	var parts []string

	if record.Basics != nil {
		parts = append(parts, basicsSection(record.Basics))
	}
	if len(record.Work) > 0 {
		parts = append(parts, workSection(record.Work))
	}
	if len(record.Education) > 0 {
		parts = append(parts, educationSection(record.Education))
	}
	if len(record.Skills) > 0 {
		parts = append(parts, skillsSection(record.Skills))
	}
	if len(record.Projects) > 0 {
		parts = append(parts, projectsSection(record.Projects))
	}
	if len(record.Awards) > 0 {
		parts = append(parts, awardsSection(record.Awards))
	}
	if len(record.Certificates) > 0 {
		parts = append(parts, certificatesSection(record.Certificates))
	}
	if len(record.Publications) > 0 {
		parts = append(parts, publicationsSection(record.Publications))
	}
	if len(record.Languages) > 0 {
		parts = append(parts, languagesSection(record.Languages))
	}
	if len(record.Interests) > 0 {
		parts = append(parts, interestsSection(record.Interests))
	}
	if len(record.References) > 0 {
		parts = append(parts, referencesSection(record.References))
	}
	if len(record.Volunteer) > 0 {
		parts = append(parts, volunteerSection(record.Volunteer))
	}
	if enrichment != nil {
		parts = append(parts, enrichmentSection(enrichment))
	}

	return strings.Join(parts, "\n\n")
}

func orDefault(s string) string {
	if s == "" {
		return "Not provided"
	}
	return s
}

func basicsSection(basics *types.Basics) string {
	lines := []string{
		"=== BASIC INFORMATION ===",
		"Name: " + orDefault(basics.Name),
		"Email: " + orDefault(basics.Email),
		"Phone: " + orDefault(basics.Phone),
		"Website: " + orDefault(basics.URL),
	}
	if basics.Summary != "" {
		lines = append(lines, "Summary: "+basics.Summary)
	}

	if basics.Location != nil {
		loc := basics.Location
		var fields []string
		for _, field := range []string{loc.Address, loc.City, loc.Region, loc.PostalCode, loc.CountryCode} {
			if field != "" {
				fields = append(fields, field)
			}
		}
		if len(fields) > 0 {
			lines = append(lines, "Location: "+strings.Join(fields, ", "))
		}
	}

	if len(basics.Profiles) > 0 {
		lines = append(lines, "Profiles:")
		for _, profile := range basics.Profiles {
			lines = append(lines, fmt.Sprintf("  - %s: %s (%s)", profile.Network, profile.Username, profile.URL))
		}
	}

	return strings.Join(lines, "\n")
}

func workSection(work []types.Work) string {
	lines := []string{"=== WORK EXPERIENCE ==="}
	for i, w := range work {
		lines = append(lines,
			fmt.Sprintf("%d. %s at %s", i+1, w.Position, w.Name),
			fmt.Sprintf("   Period: %s - %s", w.StartDate, w.EndDate),
		)
		if w.URL != "" {
			lines = append(lines, "   Website: "+w.URL)
		}
		if w.Summary != "" {
			lines = append(lines, "   Description: "+w.Summary)
		}
		if len(w.Highlights) > 0 {
			lines = append(lines, "   Key Achievements:")
			for _, h := range w.Highlights {
				lines = append(lines, "     • "+h)
			}
		}
	}
	return strings.Join(lines, "\n")
}

func educationSection(education []types.Education) string {
	lines := []string{"=== EDUCATION ==="}
	for i, edu := range education {
		lines = append(lines,
			fmt.Sprintf("%d. %s in %s", i+1, edu.StudyType, edu.Area),
			"   Institution: "+edu.Institution,
			fmt.Sprintf("   Period: %s - %s", edu.StartDate, edu.EndDate),
		)
		if edu.Score != "" {
			lines = append(lines, "   Score: "+edu.Score)
		}
		if edu.URL != "" {
			lines = append(lines, "   Website: "+edu.URL)
		}
		if len(edu.Courses) > 0 {
			lines = append(lines, "   Courses: "+strings.Join(edu.Courses, ", "))
		}
	}
	return strings.Join(lines, "\n")
}

func skillsSection(skills []types.SkillGroup) string {
	lines := []string{"=== SKILLS ==="}
	for _, skill := range skills {
		lines = append(lines, "• "+skill.Name)
		if skill.Level != "" {
			lines = append(lines, "  Level: "+skill.Level)
		}
		if len(skill.Keywords) > 0 {
			lines = append(lines, "  Keywords: "+strings.Join(skill.Keywords, ", "))
		}
	}
	return strings.Join(lines, "\n")
}

func projectsSection(projects []types.Project) string {
	lines := []string{"=== PROJECTS ==="}
	for i, project := range projects {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, project.Name))
		if project.StartDate != "" && project.EndDate != "" {
			lines = append(lines, fmt.Sprintf("   Period: %s - %s", project.StartDate, project.EndDate))
		}
		if project.Description != "" {
			lines = append(lines, "   Description: "+project.Description)
		}
		if project.URL != "" {
			lines = append(lines, "   URL: "+project.URL)
		}
		if tech := append(append([]string{}, project.Technologies...), project.Skills...); len(tech) > 0 {
			lines = append(lines, "   Technologies: "+strings.Join(dedupe(tech), ", "))
		}
		if len(project.Highlights) > 0 {
			lines = append(lines, "   Highlights:")
			for _, h := range project.Highlights {
				lines = append(lines, "     • "+h)
			}
		}
	}
	return strings.Join(lines, "\n")
}

func awardsSection(awards []types.Award) string {
	lines := []string{"=== AWARDS ==="}
	for _, award := range awards {
		lines = append(lines, fmt.Sprintf("• %s - %s (%s)", award.Title, award.Awarder, award.Date))
		if award.Summary != "" {
			lines = append(lines, "  "+award.Summary)
		}
	}
	return strings.Join(lines, "\n")
}

func certificatesSection(certs []types.Certificate) string {
	lines := []string{"=== CERTIFICATES ==="}
	for _, cert := range certs {
		lines = append(lines, fmt.Sprintf("• %s - %s (%s)", cert.Name, cert.Issuer, cert.Date))
		if cert.URL != "" {
			lines = append(lines, "  URL: "+cert.URL)
		}
	}
	return strings.Join(lines, "\n")
}

func publicationsSection(pubs []types.Publication) string {
	lines := []string{"=== PUBLICATIONS ==="}
	for _, pub := range pubs {
		lines = append(lines, fmt.Sprintf("• %s - %s (%s)", pub.Name, pub.Publisher, pub.ReleaseDate))
		if pub.URL != "" {
			lines = append(lines, "  URL: "+pub.URL)
		}
		if pub.Summary != "" {
			lines = append(lines, "  "+pub.Summary)
		}
	}
	return strings.Join(lines, "\n")
}

func languagesSection(languages []types.Language) string {
	lines := []string{"=== LANGUAGES ==="}
	for _, lang := range languages {
		lines = append(lines, fmt.Sprintf("• %s - %s", lang.Language, lang.Fluency))
	}
	return strings.Join(lines, "\n")
}

func interestsSection(interests []types.Interest) string {
	lines := []string{"=== INTERESTS ==="}
	for _, interest := range interests {
		lines = append(lines, "• "+interest.Name)
		if len(interest.Keywords) > 0 {
			lines = append(lines, "  Keywords: "+strings.Join(interest.Keywords, ", "))
		}
	}
	return strings.Join(lines, "\n")
}

func referencesSection(refs []types.Reference) string {
	lines := []string{"=== REFERENCES ==="}
	for _, ref := range refs {
		lines = append(lines, "• "+ref.Name)
		if ref.Reference != "" {
			lines = append(lines, "  "+ref.Reference)
		}
	}
	return strings.Join(lines, "\n")
}

func volunteerSection(volunteer []types.Volunteer) string {
	lines := []string{"=== VOLUNTEER EXPERIENCE ==="}
	for _, v := range volunteer {
		lines = append(lines,
			fmt.Sprintf("• %s at %s", v.Position, v.Organization),
			fmt.Sprintf("  Period: %s - %s", v.StartDate, v.EndDate),
		)
		if v.URL != "" {
			lines = append(lines, "  Website: "+v.URL)
		}
		if v.Summary != "" {
			lines = append(lines, "  Description: "+v.Summary)
		}
		if len(v.Highlights) > 0 {
			lines = append(lines, "  Highlights:")
			for _, h := range v.Highlights {
				lines = append(lines, "    • "+h)
			}
		}
	}
	return strings.Join(lines, "\n")
}

func enrichmentSection(enrichment *types.Enrichment) string {
	lines := []string{"=== GITHUB DATA ==="}

	if profile := enrichment.Profile; profile != nil {
		lines = append(lines,
			"GitHub Profile:",
			"- Username: "+orDefault(profile.Username),
			"- Name: "+orDefault(profile.Name),
			"- Bio: "+orDefault(profile.Bio),
			fmt.Sprintf("- Public Repositories: %d", profile.PublicRepos),
			fmt.Sprintf("- Followers: %d", profile.Followers),
			fmt.Sprintf("- Following: %d", profile.Following),
			"- Account Created: "+orDefault(profile.CreatedAt),
			"- Last Updated: "+orDefault(profile.UpdatedAt),
		)
	}

	if len(enrichment.Repositories) > 0 {
		lines = append(lines, "", fmt.Sprintf("GitHub Projects (%d total):", enrichment.TotalRepos))
		for i, repo := range enrichment.Repositories {
			lines = append(lines,
				fmt.Sprintf("%d. %s", i+1, repo.Name),
				"   Description: "+orDefault(repo.Description),
				"   URL: "+orDefault(repo.URL),
				fmt.Sprintf("   Stars: %d", repo.Details.Stars),
				fmt.Sprintf("   Forks: %d", repo.Details.Forks),
				"   Language: "+orDefault(repo.Details.Language),
				fmt.Sprintf("   Project Type: %s (%d contributors, %d/%d commits by candidate)",
					repo.ProjectType, repo.ContributorCount, repo.AuthorCommitCount, repo.TotalCommitCount),
				"",
			)
		}
	}

	return strings.Join(lines, "\n")
}

func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := values[:0]
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
