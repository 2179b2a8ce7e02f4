// Package normalize provides pure repair and parsing helpers for
// model-generated text. Nothing here calls the network; callers must
// independently validate results by parsing them.
package normalize

import "strings"

// RepairJSON makes a best-effort cleanup of model output so it can be fed
// to a JSON parser: it strips any <think>...</think> reasoning block, removes
// markdown code-fence markers, and truncates to the substring between the
// first '{' and the last '}'. It never fails; an input without braces is
// returned fence-stripped as-is. The function is idempotent.
func RepairJSON(raw string) string {
	text := strings.TrimSpace(raw)

	if start := strings.Index(text, "<think>"); start >= 0 {
		if end := strings.Index(text, "</think>"); end >= 0 {
			text = text[:start] + text[end+len("</think>"):]
			text = strings.TrimSpace(text)
		}
	}

	text = stripCodeFence(text)

	first := strings.Index(text, "{")
	last := strings.LastIndex(text, "}")
	if first >= 0 && last > first {
		text = text[first : last+1]
	}

	return strings.TrimSpace(text)
}

// stripCodeFence removes a leading ```json (or bare ```) marker and a
// trailing ``` marker. LLMs wrap JSON in fences even when told not to.
func stripCodeFence(text string) string {
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// Skip a language identifier on the first line, e.g. ```JSON
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := strings.TrimSpace(text[:idx])
			if firstLine != "" && len(firstLine) < 20 && !strings.ContainsAny(firstLine, " {") {
				text = text[idx+1:]
			}
		}
	}
	if idx := strings.LastIndex(text, "```"); idx >= 0 && !strings.Contains(text[idx:], "}") {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}
