package refine

import "strings"

// charsPerToken approximates the tokenizer: 3 characters ~ 1 token.
const charsPerToken = 3

// Chunk splits text into pieces that fit a token budget. Markdown-shaped text
// splits at top-level heading boundaries first; a section that still exceeds
// the budget is sub-split at "### " boundaries, accumulating sections until the
// budget would be exceeded. Anything else is sliced by raw character count.
// Order is always preserved.
func Chunk(text string, tokenBudget int) []string {
	if text == "" {
		return nil
	}

	budget := tokenBudget * charsPerToken
	if budget <= 0 {
		return []string{text}
	}

	if !looksLikeMarkdown(text) {
		return sliceByChars(text, budget)
	}

	var chunks []string
	for _, section := range splitAtHeading(text, "# ") {
		section = strings.TrimSpace(section)
		if section == "" {
			continue
		}
		if len(section) <= budget {
			chunks = append(chunks, section)
			continue
		}
		chunks = append(chunks, accumulateSubsections(section, budget)...)
	}
	return chunks
}

// looksLikeMarkdown reports whether the text carries top-level headings worth
// splitting on.
func looksLikeMarkdown(text string) bool {
	if strings.HasPrefix(text, "# ") {
		return true
	}
	return strings.Contains(text, "\n# ")
}

// splitAtHeading splits text at every newline followed by the given heading
// marker, keeping the marker with the section that follows it.
func splitAtHeading(text, marker string) []string {
	boundary := "\n" + marker
	var sections []string

	rest := text
	for {
		idx := strings.Index(rest, boundary)
		if idx < 0 {
			sections = append(sections, rest)
			return sections
		}
		sections = append(sections, rest[:idx])
		rest = rest[idx+1:] // keep the heading marker
	}
}

// accumulateSubsections sub-splits an oversized section at "### " boundaries
// and packs consecutive subsections into chunks under the budget. A single
// subsection larger than the budget falls back to raw slicing.
func accumulateSubsections(section string, budget int) []string {
	var chunks []string
	var current string

	for _, sub := range splitAtHeading(section, "### ") {
		sub = strings.TrimSpace(sub)
		if sub == "" {
			continue
		}
		if len(sub) > budget {
			if current != "" {
				chunks = append(chunks, current)
				current = ""
			}
			chunks = append(chunks, sliceByChars(sub, budget)...)
			continue
		}
		if current == "" {
			current = sub
		} else if len(current)+1+len(sub) > budget {
			chunks = append(chunks, current)
			current = sub
		} else {
			current += "\n" + sub
		}
	}
	if current != "" {
		chunks = append(chunks, current)
	}
	return chunks
}

// sliceByChars cuts text into budget-sized pieces. Concatenating the result in
// order reconstructs the input exactly.
func sliceByChars(text string, budget int) []string {
	var chunks []string
	for i := 0; i < len(text); i += budget {
		end := i + budget
		if end > len(text) {
			end = len(text)
		}
		chunks = append(chunks, text[i:end])
	}
	return chunks
}
