package notes

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Record shapes produced by the refinement goals. Content fields arrive as
// either a string or an array of strings depending on the model's mood, so
// they stay raw until rendering.
type outlineEntry struct {
	Header    string          `json:"Header"`
	Content   json.RawMessage `json:"Content"`
	Timestamp string          `json:"Timestamp"`
}

type summaryEntry struct {
	Header  string          `json:"Header"`
	Content json.RawMessage `json:"Content"`
}

type glossaryEntry struct {
	Term       string `json:"Term"`
	Definition string `json:"Definition"`
}

type faqEntry struct {
	Question string `json:"Question"`
	Answer   string `json:"Answer"`
}

type tldrEntry struct {
	Title   string          `json:"Title"`
	Content json.RawMessage `json:"Content"`
}

type slideEntry struct {
	Title       string          `json:"Title"`
	Content     json.RawMessage `json:"Content"`
	Visual      string          `json:"Visual"`
	Explanation string          `json:"Explanation"`
	Timestamp   string          `json:"Timestamp"`
}

// outlineSection renders the refined outline as the document backbone:
// "## Summary" followed by one "### <Header>" block per entry, with any
// screenshot whose timestamp falls inside [entry start, next entry start)
// embedded after the entry text.
func (n *implNotes) outlineSection(ctx context.Context, entries []json.RawMessage, screenshotTimes []int, imagesDir string) string {
	if len(entries) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("## Summary \n")

	skipped := 0
	for i, raw := range entries {
		var entry outlineEntry
		if err := json.Unmarshal(raw, &entry); err != nil || entry.Timestamp == "" {
			skipped++
			continue
		}

		b.WriteString(fmt.Sprintf("### %s\n", entry.Header))
		b.WriteString(contentText(entry.Content) + "\n")

		currentStart, err := timestampSeconds(entry.Timestamp)
		if err != nil {
			continue
		}
		nextStart := math.MaxInt
		if i+1 < len(entries) {
			var next outlineEntry
			if json.Unmarshal(entries[i+1], &next) == nil {
				if s, err := timestampSeconds(next.Timestamp); err == nil {
					nextStart = s
				}
			}
		}

		for _, t := range screenshotTimes {
			if t < currentStart || t >= nextStart {
				continue
			}
			name := fmt.Sprintf("%d.jpg", t)
			if _, err := os.Stat(filepath.Join(imagesDir, name)); err == nil {
				b.WriteString(fmt.Sprintf("![Screenshot](../images/%s)\n", name))
			}
		}
	}

	if skipped > 0 {
		n.logger.Warn(ctx, "Outline section skipped %d malformed entries", skipped)
	}
	return b.String()
}

// summarySection renders "## Key Points" with bolded headers and bullets.
func (n *implNotes) summarySection(ctx context.Context, entries []json.RawMessage) string {
	if len(entries) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("## Key Points \n")

	skipped := 0
	for _, raw := range entries {
		var entry summaryEntry
		if err := json.Unmarshal(raw, &entry); err != nil || entry.Header == "" || len(entry.Content) == 0 {
			skipped++
			continue
		}
		b.WriteString(fmt.Sprintf("**%s** - \n %s\n\n", entry.Header, contentBullets(entry.Content)))
	}

	if skipped > 0 {
		n.logger.Warn(ctx, "Summary section skipped %d malformed entries", skipped)
	}
	return b.String()
}

func (n *implNotes) glossarySection(ctx context.Context, entries []json.RawMessage) string {
	if len(entries) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("## Glossary \n")

	skipped := 0
	for _, raw := range entries {
		var entry glossaryEntry
		if err := json.Unmarshal(raw, &entry); err != nil || entry.Term == "" || entry.Definition == "" {
			skipped++
			continue
		}
		b.WriteString(fmt.Sprintf("**%s:** %s\n\n", entry.Term, entry.Definition))
	}

	if skipped > 0 {
		n.logger.Warn(ctx, "Glossary section skipped %d malformed entries", skipped)
	}
	return b.String()
}

func (n *implNotes) faqSection(ctx context.Context, entries []json.RawMessage) string {
	if len(entries) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("## FAQs \n")

	skipped := 0
	for _, raw := range entries {
		var entry faqEntry
		if err := json.Unmarshal(raw, &entry); err != nil || entry.Question == "" || entry.Answer == "" {
			skipped++
			continue
		}
		b.WriteString(fmt.Sprintf("**%s**\n %s\n\n\n\n", entry.Question, entry.Answer))
	}

	if skipped > 0 {
		n.logger.Warn(ctx, "FAQ section skipped %d malformed entries", skipped)
	}
	return b.String()
}

// tldrSection renders only the first usable entry's content, no heading.
func (n *implNotes) tldrSection(ctx context.Context, entries []json.RawMessage) string {
	for _, raw := range entries {
		var entry tldrEntry
		if err := json.Unmarshal(raw, &entry); err != nil || entry.Title == "" || len(entry.Content) == 0 {
			continue
		}
		return contentText(entry.Content) + "\n\n"
	}
	if len(entries) > 0 {
		n.logger.Warn(ctx, "TL;DR section had no usable entry")
	}
	return ""
}

func (n *implNotes) slidesSection(ctx context.Context, entries []json.RawMessage) string {
	if len(entries) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("## Slides \n")

	for _, raw := range entries {
		var entry slideEntry
		if err := json.Unmarshal(raw, &entry); err != nil {
			continue
		}
		if entry.Title != "" {
			b.WriteString(fmt.Sprintf("### %s\n\n", entry.Title))
		}
		if len(entry.Content) > 0 {
			b.WriteString(contentBullets(entry.Content) + "\n\n")
		}
		if entry.Visual != "" {
			b.WriteString(fmt.Sprintf("**Visual:** %s\n\n", entry.Visual))
		}
		if entry.Explanation != "" {
			b.WriteString(fmt.Sprintf("**Explanation:** %s\n\n", entry.Explanation))
		}
		if entry.Timestamp != "" {
			b.WriteString(fmt.Sprintf("**Timestamp:** %s\n\n", entry.Timestamp))
		}
	}
	return b.String()
}

// timestampSeconds converts "(hh:mm:ss)" or "mm:ss" to whole seconds.
func timestampSeconds(ts string) (int, error) {
	cleaned := strings.NewReplacer("(", "", ")", "").Replace(ts)
	parts := strings.Split(cleaned, ":")

	var hours, minutes, seconds int
	var err error
	switch len(parts) {
	case 3:
		if hours, err = strconv.Atoi(strings.TrimSpace(parts[0])); err != nil {
			return 0, fmt.Errorf("invalid timestamp %q", ts)
		}
		parts = parts[1:]
		fallthrough
	case 2:
		if minutes, err = strconv.Atoi(strings.TrimSpace(parts[0])); err != nil {
			return 0, fmt.Errorf("invalid timestamp %q", ts)
		}
		if seconds, err = strconv.Atoi(strings.TrimSpace(parts[1])); err != nil {
			return 0, fmt.Errorf("invalid timestamp %q", ts)
		}
	default:
		return 0, fmt.Errorf("invalid timestamp %q", ts)
	}

	return hours*3600 + minutes*60 + seconds, nil
}

// contentText flattens a string-or-array content value into one string.
func contentText(raw json.RawMessage) string {
	var s string
	if json.Unmarshal(raw, &s) == nil {
		return s
	}
	var arr []string
	if json.Unmarshal(raw, &arr) == nil {
		return strings.Join(arr, " ")
	}
	return ""
}

// contentBullets converts content into bullet markup. Lines beginning with
// "-" become \bullet items joined by \line, the markers the HTML renderer
// later replaces with real breaks.
func contentBullets(raw json.RawMessage) string {
	var lines []string
	var s string
	if json.Unmarshal(raw, &s) == nil {
		if strings.Contains(s, "\n") {
			lines = strings.Split(s, "\n")
		} else {
			lines = strings.Split(s, ".")
		}
	} else if json.Unmarshal(raw, &lines) != nil {
		return ""
	}

	out := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "-") {
			out = append(out, `\bullet  `+strings.TrimSpace(strings.TrimPrefix(trimmed, "-")))
		} else {
			out = append(out, line)
		}
	}
	return strings.Join(out, `\line `)
}
