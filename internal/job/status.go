package job

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nguyentantai21042004/video-notes/internal/apperr"
)

// Status is the derived view of a job's progress. It is never stored; it is
// recomputed from artifact existence on every query, so it is always safe to
// read concurrently with a running pipeline.
type Status struct {
	Markdown bool `json:"markdown"`
	RTF      bool `json:"rtf"`
	HTML     bool `json:"html"`
	Docx     bool `json:"docx"`
	Zip      bool `json:"zip"`

	DownloadURLs map[string]string `json:"downloadUrls"`
}

// Complete reports whether the terminal artifact (the archive) exists.
func (s Status) Complete() bool { return s.Zip }

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// StatusOf computes a job's Status from the filesystem. Every call site that
// needs progress information goes through here.
func StatusOf(root, id string) (Status, error) {
	d := NewDir(root, id)

	if info, err := os.Stat(d.Path()); err != nil || !info.IsDir() {
		return Status{}, &apperr.NotFoundError{What: "job " + id}
	}

	s := Status{
		Markdown:     fileExists(d.MarkdownFile()),
		RTF:          fileExists(d.RTFFile()),
		HTML:         fileExists(d.HTMLFile()),
		Docx:         fileExists(d.DocxFile()),
		Zip:          fileExists(d.ZipFile()),
		DownloadURLs: map[string]string{},
	}

	for kind, present := range map[string]bool{
		"markdown": s.Markdown,
		"rtf":      s.RTF,
		"html":     s.HTML,
		"docx":     s.Docx,
		"zip":      s.Zip,
	} {
		if present {
			s.DownloadURLs[kind] = fmt.Sprintf("/api/v1/videos/download/%s/%s", kind, id)
		}
	}

	return s, nil
}

// ArtifactPath maps a download kind to the artifact file for the given job.
func ArtifactPath(root, id, kind string) (string, error) {
	d := NewDir(root, id)

	var path string
	switch kind {
	case "markdown":
		path = d.MarkdownFile()
	case "rtf":
		path = d.RTFFile()
	case "html":
		path = d.HTMLFile()
	case "docx":
		path = d.DocxFile()
	case "zip":
		path = d.ZipFile()
	default:
		return "", &apperr.NotFoundError{What: "artifact kind " + kind}
	}

	if !fileExists(path) {
		return "", &apperr.NotFoundError{What: kind + " for job " + id}
	}
	return path, nil
}

// List returns all job IDs under the jobs root, oldest first. The timestamp
// prefix makes lexical order chronological.
func List(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read jobs dir: %w", err)
	}

	var ids []string
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		ids = append(ids, e.Name())
	}
	sort.Strings(ids)
	return ids, nil
}

// ListFiles returns artifact filenames in a job directory, or in one of its
// subdirectories when subdir is non-empty.
func ListFiles(root, id, subdir string) ([]string, error) {
	d := NewDir(root, id)

	dir := d.Path()
	if subdir != "" {
		dir = filepath.Join(dir, filepath.Base(subdir))
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &apperr.NotFoundError{What: "directory " + id + "/" + subdir}
	}

	files := make([]string, 0, len(entries))
	for _, e := range entries {
		files = append(files, e.Name())
	}
	sort.Strings(files)
	return files, nil
}
