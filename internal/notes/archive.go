package notes

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/nguyentantai21042004/video-notes/internal/apperr"
	"github.com/nguyentantai21042004/video-notes/internal/job"
)

// Archive streams the job's deliverables into zip/transcript.zip: the
// markdown, rtf, html and docx directories, the extracted images, and the raw
// transcript pair. Missing pieces are skipped; a write failure is fatal since
// the archive marks job completion.
func (n *implNotes) Archive(ctx context.Context, dir job.Dir) error {
	if err := os.MkdirAll(dir.ZipDir(), 0755); err != nil {
		return &apperr.ExternalToolError{Tool: "zip archive", Err: err}
	}

	out, err := os.Create(dir.ZipFile())
	if err != nil {
		return &apperr.ExternalToolError{Tool: "zip archive", Err: err}
	}
	defer out.Close()

	w := zip.NewWriter(out)

	dirs := []struct {
		name string
		src  string
	}{
		{job.MarkdownSubdir, dir.MarkdownDir()},
		{job.RTFSubdir, dir.RTFDir()},
		{job.HTMLSubdir, dir.HTMLDir()},
		{job.DocxSubdir, dir.DocxDir()},
		{job.ImagesSubdir, dir.ImagesDir()},
	}
	for _, d := range dirs {
		if err := addDirectory(w, d.src, d.name); err != nil {
			w.Close()
			return &apperr.ExternalToolError{Tool: "zip archive", Err: err}
		}
	}

	for _, src := range []string{dir.TranscriptTxt(), dir.TranscriptJSON()} {
		if _, err := os.Stat(src); err != nil {
			continue
		}
		if err := addFile(w, src, filepath.Base(src)); err != nil {
			w.Close()
			return &apperr.ExternalToolError{Tool: "zip archive", Err: err}
		}
	}

	if err := w.Close(); err != nil {
		return &apperr.ExternalToolError{Tool: "zip archive", Err: err}
	}

	n.logger.Info(ctx, "Archive created: %s", dir.ZipFile())
	return nil
}

// addDirectory adds every regular file under src at prefix/<name> in the
// archive. A missing source directory is not an error.
func addDirectory(w *zip.Writer, src, prefix string) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := addFile(w, filepath.Join(src, entry.Name()), prefix+"/"+entry.Name()); err != nil {
			return err
		}
	}
	return nil
}

func addFile(w *zip.Writer, src, name string) error {
	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()

	entry, err := w.Create(name)
	if err != nil {
		return err
	}
	if _, err := io.Copy(entry, f); err != nil {
		return fmt.Errorf("copy %s: %w", name, err)
	}
	return nil
}
