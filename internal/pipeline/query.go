package pipeline

import (
	"github.com/nguyentantai21042004/video-notes/internal/job"
)

// Query operations are pure filesystem reads over the jobs root. They never
// block on a running pipeline.

func (p *implPipeline) Status(id string) (job.Status, error) {
	return job.StatusOf(p.cfg.Paths.Jobs, id)
}

func (p *implPipeline) ListJobs() ([]string, error) {
	return job.List(p.cfg.Paths.Jobs)
}

func (p *implPipeline) ListFiles(id, subdir string) ([]string, error) {
	return job.ListFiles(p.cfg.Paths.Jobs, id, subdir)
}

func (p *implPipeline) Artifact(id, kind string) (string, error) {
	return job.ArtifactPath(p.cfg.Paths.Jobs, id, kind)
}
