// Package extract drives per-section model-mediated extraction of resume
// text and reconciles the engine's loosely shaped output into the canonical
// candidate record.
package extract

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/jonathan/hiring-agent/internal/normalize"
	"github.com/jonathan/hiring-agent/internal/types"
)

// Section identifies one independently extracted résumé section.
type Section string

// The fixed, closed set of résumé sections.
const (
	SectionIdentity   Section = "identity"
	SectionEmployment Section = "employment"
	SectionEducation  Section = "education"
	SectionSkills     Section = "skills"
	SectionProjects   Section = "projects"
	SectionAwards     Section = "awards"
)

// Sections lists all extractable sections in merge order.
func Sections() []Section {
	return []Section{SectionIdentity, SectionEmployment, SectionEducation, SectionSkills, SectionProjects, SectionAwards}
}

// transformSection maps one parsed section payload into a candidate-record
// fragment. The engine is not guaranteed to use the exact target field
// names, so each transformer tolerates the alias keys and shape drift we
// have seen in practice.
func transformSection(section Section, raw map[string]any) *types.CandidateRecord {
	fragment := &types.CandidateRecord{}
	switch section {
	case SectionIdentity:
		fragment.Basics = transformIdentity(raw)
	case SectionEmployment:
		fragment.Work = transformEmployment(raw)
	case SectionEducation:
		fragment.Education = transformEducation(listValue(raw, "education"))
	case SectionSkills:
		fragment.Skills = transformSkills(raw)
	case SectionProjects:
		fragment.Projects = transformProjects(raw)
	case SectionAwards:
		fragment.Awards = transformAwards(listValue(raw, "achievements", "awards", "honors_and_awards"))
	}
	return fragment
}

// transformIdentity coerces a raw identity block into the typed Basics
// structure and backfills profile network/username from URLs. Coercion
// failure yields nil rather than an error; a record without identity is
// still a valid record.
func transformIdentity(raw map[string]any) *types.Basics {
	basicsRaw, ok := raw["basics"].(map[string]any)
	if !ok {
		// The engine sometimes returns the basics fields at top level.
		basicsRaw = raw
	}

	data, err := json.Marshal(basicsRaw)
	if err != nil {
		return nil
	}
	var basics types.Basics
	if err := json.Unmarshal(data, &basics); err != nil {
		return nil
	}

	for i := range basics.Profiles {
		p := &basics.Profiles[i]
		if p.URL == "" {
			continue
		}
		network, username := normalize.InferNetwork(p.URL)
		if p.Network == "" {
			p.Network = network
		}
		if p.Username == "" {
			p.Username = username
		}
	}

	return &basics
}

// transformEmployment maps work entries, accepting "work",
// "work_experience" or "experience" as the source key.
func transformEmployment(raw map[string]any) []types.Work {
	items := listValue(raw, "work", "work_experience", "experience")
	work := make([]types.Work, 0, len(items))
	for _, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}

		// A list-valued description collapses into one string.
		description := stringValue(entry, "description")
		if list, ok := entry["description"].([]any); ok {
			description = joinStrings(list, " ")
		}

		w := types.Work{
			Name:       stringValue(entry, "name", "company"),
			Position:   stringValue(entry, "position", "type", "title"),
			URL:        stringValue(entry, "url"),
			StartDate:  stringValue(entry, "startDate"),
			EndDate:    stringValue(entry, "endDate"),
			Summary:    stringValue(entry, "summary"),
			Highlights: stringList(entry, "highlights"),
		}
		if w.Summary == "" {
			w.Summary = description
		}
		if years := stringValue(entry, "years"); years != "" && w.StartDate == "" {
			w.StartDate, w.EndDate = normalize.ParseDateRange(years)
		}
		work = append(work, w)
	}
	return work
}

// transformEducation maps education entries, splitting a comma-joined
// "studyType, area" degree string and coercing numeric scores to text.
func transformEducation(items []any) []types.Education {
	education := make([]types.Education, 0, len(items))
	for _, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}

		edu := types.Education{
			Institution: stringValue(entry, "institution", "school"),
			URL:         stringValue(entry, "url"),
			Area:        stringValue(entry, "area"),
			StudyType:   stringValue(entry, "studyType"),
			StartDate:   stringValue(entry, "startDate"),
			EndDate:     stringValue(entry, "endDate"),
			Score:       stringValue(entry, "score"),
			Courses:     stringList(entry, "courses"),
		}

		if degree := stringValue(entry, "degree"); degree != "" {
			if idx := strings.Index(degree, ","); idx >= 0 {
				edu.StudyType = strings.TrimSpace(degree[:idx])
				edu.Area = strings.TrimSpace(degree[idx+1:])
			} else if edu.StudyType == "" {
				edu.StudyType = degree
			}
		}

		// Score is text by schema: "8.9" and "89%" both occur.
		if edu.Score == "" {
			if v, ok := firstValue(entry, "gpa", "percentage"); ok {
				edu.Score = coerceString(v)
			}
		}

		if years := stringValue(entry, "years"); years != "" && edu.StartDate == "" {
			edu.StartDate, edu.EndDate = normalize.ParseDateRange(years)
		}

		education = append(education, edu)
	}
	return education
}

// auxiliary skill keys the engine emits as separate top-level lists
var auxSkillGroups = []struct {
	key  string
	name string
}{
	{"librariesFrameworks", "Libraries/Frameworks"},
	{"toolsPlatforms", "Tools/Platforms"},
	{"databases", "Databases"},
}

// transformSkills maps skill output. A flat list of strings becomes one
// named group; auxiliary keys become groups of their own.
func transformSkills(raw map[string]any) []types.SkillGroup {
	var groups []types.SkillGroup

	if items, ok := raw["skills"].([]any); ok {
		if keywords, allStrings := asStringSlice(items); allStrings && len(keywords) > 0 {
			groups = append(groups, types.SkillGroup{Name: "Programming Languages", Keywords: keywords})
		} else {
			for _, item := range items {
				entry, ok := item.(map[string]any)
				if !ok {
					continue
				}
				group := types.SkillGroup{
					Name:     stringValue(entry, "name", "category"),
					Level:    stringValue(entry, "level"),
					Keywords: stringList(entry, "keywords"),
				}
				groups = append(groups, group)
			}
		}
	}

	for _, aux := range auxSkillGroups {
		if keywords := stringList(raw, aux.key); len(keywords) > 0 {
			groups = append(groups, types.SkillGroup{Name: aux.name, Keywords: keywords})
		}
	}

	return groups
}

// transformProjects maps project entries from "projects" and
// "projectsOpenSource". A "Name | Skill, Skill" title is split into name
// plus a skill list; string-valued technologies split on commas.
func transformProjects(raw map[string]any) []types.Project {
	var projects []types.Project

	for _, item := range listValue(raw, "projects", "projectsOpenSource") {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}

		name := stringValue(entry, "name")
		var skills []string
		if idx := strings.Index(name, "|"); idx >= 0 {
			skills = splitCommaList(name[idx+1:])
			name = strings.TrimSpace(name[:idx])
		}

		technologies := stringList(entry, "technologies")
		if techStr := stringValue(entry, "technologies"); techStr != "" {
			technologies = splitCommaList(techStr)
		}
		if len(skills) == 0 {
			skills = technologies
		}

		var highlights []string
		if projType := stringValue(entry, "type"); projType != "" {
			highlights = []string{projType}
		}

		projects = append(projects, types.Project{
			Name:         name,
			Description:  stringValue(entry, "description", "summary"),
			Highlights:   highlights,
			URL:          stringValue(entry, "url"),
			Technologies: technologies,
			Skills:       skills,
		})
	}

	return projects
}

// transformAwards maps award entries, building a date from a bare year.
func transformAwards(items []any) []types.Award {
	awards := make([]types.Award, 0, len(items))
	for _, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}

		award := types.Award{
			Title:   stringValue(entry, "title", "name"),
			Date:    stringValue(entry, "date"),
			Awarder: stringValue(entry, "awarder", "organization"),
			Summary: stringValue(entry, "summary", "description"),
		}
		if award.Date == "" {
			if v, ok := firstValue(entry, "year"); ok {
				if year := coerceString(v); year != "" {
					award.Date = year + "-01"
				}
			}
		}
		awards = append(awards, award)
	}
	return awards
}

// --- raw-value helpers ---

// stringValue returns the first non-empty string found under the given keys.
func stringValue(m map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := m[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// firstValue returns the first non-nil value found under the given keys.
func firstValue(m map[string]any, keys ...string) (any, bool) {
	for _, key := range keys {
		if v, ok := m[key]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// listValue returns the first list value found under the given keys.
func listValue(m map[string]any, keys ...string) []any {
	for _, key := range keys {
		if list, ok := m[key].([]any); ok {
			return list
		}
	}
	return nil
}

// stringList extracts a []string from a raw list, skipping non-strings.
func stringList(m map[string]any, key string) []string {
	list, ok := m[key].([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, item := range list {
		if s, ok := item.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

// asStringSlice reports whether every element is a string and returns them.
func asStringSlice(items []any) ([]string, bool) {
	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

func joinStrings(items []any, sep string) string {
	var parts []string
	for _, item := range items {
		if s, ok := item.(string); ok {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, sep)
}

func splitCommaList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// coerceString renders a raw JSON scalar as text. Parsed JSON numbers are
// float64; integral values must not grow a ".0" suffix.
func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	}
	return ""
}
