// Package job owns the on-disk layout of a processing job. A job's directory
// tree is its state store: the presence of an artifact is the only signal that
// the stage producing it has completed.
package job

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// Fixed artifact names. The layout is part of the external contract and must
// not change: jobs/<id>/{video,audio,images,markdown,rtf,html,docx,zip}/...
const (
	VideoSubdir    = "video"
	AudioSubdir    = "audio"
	ImagesSubdir   = "images"
	MarkdownSubdir = "markdown"
	RTFSubdir      = "rtf"
	HTMLSubdir     = "html"
	DocxSubdir     = "docx"
	ZipSubdir      = "zip"

	TranscriptTxtName  = "transcript.txt"
	TranscriptJSONName = "transcript.json"
	MarkdownName       = "transcript.md"
	RTFName            = "transcript.rtf"
	HTMLName           = "transcript.html"
	DocxName           = "transcript.docx"
	ZipName            = "transcript.zip"
)

var unsafeChars = regexp.MustCompile(`[^0-9a-zA-Z._-]+`)

// SanitizeName strips path components and replaces anything outside
// [0-9a-zA-Z._-] with underscores. Long names are truncated preserving the
// extension.
func SanitizeName(name string) string {
	name = filepath.Base(name)
	name = unsafeChars.ReplaceAllString(name, "_")

	if len(name) > 255 {
		ext := filepath.Ext(name)
		name = name[:255-len(ext)] + ext
	}
	return name
}

// NewID builds a unique, sortable, filesystem-safe job identifier from the
// upload time and the original filename: <unixMillis>-<sanitized-name>.
func NewID(originalName string, now time.Time) string {
	base := strings.TrimSuffix(filepath.Base(originalName), filepath.Ext(originalName))
	return fmt.Sprintf("%d-%s", now.UnixMilli(), SanitizeName(base))
}

// Dir resolves artifact paths inside one job's directory tree.
type Dir struct {
	Root string
	ID   string
}

func NewDir(root, id string) Dir {
	return Dir{Root: root, ID: id}
}

func (d Dir) Path() string          { return filepath.Join(d.Root, d.ID) }
func (d Dir) VideoDir() string      { return filepath.Join(d.Root, d.ID, VideoSubdir) }
func (d Dir) AudioDir() string      { return filepath.Join(d.Root, d.ID, AudioSubdir) }
func (d Dir) ImagesDir() string     { return filepath.Join(d.Root, d.ID, ImagesSubdir) }
func (d Dir) MarkdownDir() string   { return filepath.Join(d.Root, d.ID, MarkdownSubdir) }
func (d Dir) RTFDir() string        { return filepath.Join(d.Root, d.ID, RTFSubdir) }
func (d Dir) HTMLDir() string       { return filepath.Join(d.Root, d.ID, HTMLSubdir) }
func (d Dir) DocxDir() string       { return filepath.Join(d.Root, d.ID, DocxSubdir) }
func (d Dir) ZipDir() string        { return filepath.Join(d.Root, d.ID, ZipSubdir) }
func (d Dir) TranscriptTxt() string { return filepath.Join(d.Root, d.ID, TranscriptTxtName) }
func (d Dir) TranscriptJSON() string {
	return filepath.Join(d.Root, d.ID, TranscriptJSONName)
}
func (d Dir) MarkdownFile() string { return filepath.Join(d.MarkdownDir(), MarkdownName) }
func (d Dir) RTFFile() string      { return filepath.Join(d.RTFDir(), RTFName) }
func (d Dir) HTMLFile() string     { return filepath.Join(d.HTMLDir(), HTMLName) }
func (d Dir) DocxFile() string     { return filepath.Join(d.DocxDir(), DocxName) }
func (d Dir) ZipFile() string      { return filepath.Join(d.ZipDir(), ZipName) }

// GoalCache is the per-goal refinement cache file, e.g. summaryGoal.json.
func (d Dir) GoalCache(goalName string) string {
	return filepath.Join(d.Root, d.ID, goalName+".json")
}
