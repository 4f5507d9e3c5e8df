package notes

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/video-notes/internal/logger"
)

func newTestNotes() *implNotes {
	return &implNotes{logger: logger.New("error", "text")}
}

func rawEntries(t *testing.T, entries ...interface{}) []json.RawMessage {
	t.Helper()
	out := make([]json.RawMessage, 0, len(entries))
	for _, e := range entries {
		raw, err := json.Marshal(e)
		if err != nil {
			t.Fatal(err)
		}
		out = append(out, raw)
	}
	return out
}

func TestTimestampSeconds(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"(00:10:12)", 612, false},
		{"01:00:00", 3600, false},
		{"02:30", 150, false},
		{"(00:00:00)", 0, false},
		{"nonsense", 0, true},
		{"1:2:3:4", 0, true},
	}

	for _, tt := range tests {
		got, err := timestampSeconds(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("timestampSeconds(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("timestampSeconds(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestOutlineSectionEmbedsScreenshots(t *testing.T) {
	imagesDir := t.TempDir()
	for _, name := range []string{"5.jpg", "40.jpg"} {
		if err := os.WriteFile(filepath.Join(imagesDir, name), []byte("jpg"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	entries := rawEntries(t,
		map[string]interface{}{"Header": "Intro", "Content": "Opening remarks.", "Timestamp": "(00:00:00)"},
		map[string]interface{}{"Header": "Demo", "Content": []string{"Part one.", "Part two."}, "Timestamp": "(00:00:30)"},
	)

	got := newTestNotes().outlineSection(context.Background(), entries, []int{5, 40}, imagesDir)

	if !strings.HasPrefix(got, "## Summary \n") {
		t.Errorf("outline missing header: %q", got)
	}
	if !strings.Contains(got, "### Intro\nOpening remarks.\n![Screenshot](../images/5.jpg)\n") {
		t.Errorf("screenshot 5 not embedded under Intro:\n%s", got)
	}
	if !strings.Contains(got, "### Demo\nPart one. Part two.\n![Screenshot](../images/40.jpg)\n") {
		t.Errorf("screenshot 40 not embedded under Demo:\n%s", got)
	}
}

func TestOutlineSectionSkipsMissingTimestamp(t *testing.T) {
	entries := rawEntries(t,
		map[string]interface{}{"Header": "NoTime", "Content": "dropped"},
		map[string]interface{}{"Header": "Kept", "Content": "stays", "Timestamp": "(00:00:10)"},
	)

	got := newTestNotes().outlineSection(context.Background(), entries, nil, t.TempDir())
	if strings.Contains(got, "NoTime") {
		t.Errorf("entry without timestamp not skipped:\n%s", got)
	}
	if !strings.Contains(got, "### Kept") {
		t.Errorf("valid entry missing:\n%s", got)
	}
}

func TestSummarySection(t *testing.T) {
	entries := rawEntries(t,
		map[string]interface{}{"Header": "Key Idea", "Content": []string{"- first point", "- second point"}},
		map[string]interface{}{"Header": "Incomplete"},
	)

	got := newTestNotes().summarySection(context.Background(), entries)
	if !strings.HasPrefix(got, "## Key Points \n") {
		t.Errorf("summary missing header: %q", got)
	}
	if !strings.Contains(got, "**Key Idea** - \n") {
		t.Errorf("bolded header missing:\n%s", got)
	}
	if !strings.Contains(got, `\bullet  first point\line \bullet  second point`) {
		t.Errorf("bullet markup missing:\n%s", got)
	}
	if strings.Contains(got, "Incomplete") {
		t.Errorf("entry without content not skipped:\n%s", got)
	}
}

func TestGlossarySection(t *testing.T) {
	entries := rawEntries(t,
		map[string]interface{}{"Term": "Artifact", "Definition": "A named output file."},
		map[string]interface{}{"Term": "NoDef"},
	)

	got := newTestNotes().glossarySection(context.Background(), entries)
	if !strings.Contains(got, "**Artifact:** A named output file.\n\n") {
		t.Errorf("glossary entry malformed:\n%s", got)
	}
	if strings.Contains(got, "NoDef") {
		t.Errorf("incomplete glossary entry not skipped:\n%s", got)
	}
}

func TestFaqSection(t *testing.T) {
	entries := rawEntries(t,
		map[string]interface{}{"Question": "What is this?", "Answer": "A notes tool."},
	)

	got := newTestNotes().faqSection(context.Background(), entries)
	if !strings.HasPrefix(got, "## FAQs \n") {
		t.Errorf("faq missing header: %q", got)
	}
	if !strings.Contains(got, "**What is this?**\n A notes tool.\n") {
		t.Errorf("faq entry malformed:\n%s", got)
	}
}

func TestTldrSectionFirstEntryOnly(t *testing.T) {
	entries := rawEntries(t,
		map[string]interface{}{"Title": "TL;DR", "Content": "Short version."},
		map[string]interface{}{"Title": "Extra", "Content": "Ignored."},
	)

	got := newTestNotes().tldrSection(context.Background(), entries)
	if got != "Short version.\n\n" {
		t.Errorf("tldr = %q, want first entry content only", got)
	}
}

func TestSectionsEmptyInput(t *testing.T) {
	n := newTestNotes()
	ctx := context.Background()
	if got := n.outlineSection(ctx, nil, nil, ""); got != "" {
		t.Errorf("outlineSection(nil) = %q", got)
	}
	if got := n.summarySection(ctx, nil); got != "" {
		t.Errorf("summarySection(nil) = %q", got)
	}
	if got := n.glossarySection(ctx, nil); got != "" {
		t.Errorf("glossarySection(nil) = %q", got)
	}
	if got := n.faqSection(ctx, nil); got != "" {
		t.Errorf("faqSection(nil) = %q", got)
	}
	if got := n.tldrSection(ctx, nil); got != "" {
		t.Errorf("tldrSection(nil) = %q", got)
	}
}

func TestContentBulletsFromString(t *testing.T) {
	raw := json.RawMessage(`"- alpha\n- beta"`)
	got := contentBullets(raw)
	want := `\bullet  alpha\line \bullet  beta`
	if got != want {
		t.Errorf("contentBullets = %q, want %q", got, want)
	}
}
