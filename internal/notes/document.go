package notes

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/video-notes/internal/job"
	"github.com/nguyentantai21042004/video-notes/internal/refine"
)

var screenshotRe = regexp.MustCompile(`^(\d+)\.jpg$`)

// BuildDocument runs the refinement goals and assembles the combined notes
// document. The outline is refined from the raw transcript; every other goal
// works from the rendered outline section. Sections are joined in fixed
// order: TL;DR, Outline, Summary, Glossary, FAQ. Renderer failures are logged
// and never block the other formats.
func (n *implNotes) BuildDocument(ctx context.Context, dir job.Dir, rawTranscript string) error {
	outline, err := n.refiner.Refine(ctx, dir, refine.OutlineGoal, rawTranscript)
	if err != nil {
		return fmt.Errorf("refine outline: %w", err)
	}
	if len(outline) == 0 {
		return fmt.Errorf("outline refinement produced no entries")
	}

	screenshotTimes := listScreenshotTimes(dir.ImagesDir())
	outlineSec := n.outlineSection(ctx, outline, screenshotTimes, dir.ImagesDir())

	summarySec := n.summarySection(ctx, n.refineSection(ctx, dir, refine.SummaryGoal, outlineSec))
	glossarySec := n.glossarySection(ctx, n.refineSection(ctx, dir, refine.GlossaryGoal, outlineSec))
	faqSec := n.faqSection(ctx, n.refineSection(ctx, dir, refine.FAQGoal, outlineSec))
	tldrSec := n.tldrSection(ctx, n.refineSection(ctx, dir, refine.TLDRGoal, outlineSec))
	slidesSec := n.slidesSection(ctx, n.refineSection(ctx, dir, refine.SlidesGoal, outlineSec))

	document := strings.Join([]string{
		tldrSec,
		outlineSec,
		summarySec,
		glossarySec,
		faqSec,
	}, "\n")

	for _, sub := range []string{dir.MarkdownDir(), dir.RTFDir(), dir.HTMLDir(), dir.DocxDir(), dir.ZipDir()} {
		if err := os.MkdirAll(sub, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	if err := os.WriteFile(dir.MarkdownFile(), []byte(document), 0644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	n.logger.Info(ctx, "Markdown document written: %s", dir.MarkdownFile())

	// The slides deck is kept next to the main document as raw material for a
	// presentation, not part of the combined notes.
	if slidesSec != "" {
		slidesPath := filepath.Join(dir.MarkdownDir(), "slides.md")
		if err := os.WriteFile(slidesPath, []byte(slidesSec), 0644); err != nil {
			n.logger.Warn(ctx, "Slides write failed: %v", err)
		}
	}

	if err := n.renderRTF(dir.MarkdownFile(), dir.RTFFile()); err != nil {
		n.logger.Warn(ctx, "RTF render failed: %v", err)
	}
	if err := n.renderHTML(dir.MarkdownFile(), dir.HTMLFile()); err != nil {
		n.logger.Warn(ctx, "HTML render failed: %v", err)
	}
	if err := n.renderDocx(dir.ID, document, dir.DocxFile()); err != nil {
		n.logger.Warn(ctx, "DOCX render failed: %v", err)
	}

	return nil
}

// refineSection runs one goal against the outline text; failures degrade to
// an empty section rather than aborting the document.
func (n *implNotes) refineSection(ctx context.Context, dir job.Dir, goal refine.Goal, content string) []json.RawMessage {
	entries, err := n.refiner.Refine(ctx, dir, goal, content)
	if err != nil {
		n.logger.Warn(ctx, "Refinement of %s failed: %v", goal.Name, err)
		return nil
	}
	return entries
}

// listScreenshotTimes collects the integer-second offsets of extracted
// frames, in ascending order.
func listScreenshotTimes(imagesDir string) []int {
	entries, err := os.ReadDir(imagesDir)
	if err != nil {
		return nil
	}

	var times []int
	for _, entry := range entries {
		m := screenshotRe.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		if t, err := strconv.Atoi(m[1]); err == nil {
			times = append(times, t)
		}
	}
	sort.Ints(times)
	return times
}
