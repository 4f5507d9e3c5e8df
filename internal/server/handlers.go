package server

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/nguyentantai21042004/video-notes/internal/logger"
	"github.com/nguyentantai21042004/video-notes/internal/pipeline"
)

func (s *Server) health(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "ok",
	})
}

// upload accepts one multipart video, submits it and kicks off the pipeline
// in the background. The client polls the status endpoint for progress.
func (s *Server) upload(c *fiber.Ctx) error {
	file, err := c.FormFile("video")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("missing video file: %v", err))
	}

	src, err := file.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	id, err := s.pipeline.Submit(c.UserContext(), pipeline.Upload{
		Filename:    file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		Size:        file.Size,
		Reader:      src,
	})
	if err != nil {
		return err
	}

	// Fire and forget: the job outlives the request. The request ID rides
	// along so pipeline logs stay correlated with the upload.
	requestID, _ := c.Locals("requestid").(string)
	runCtx := logger.WithRequestID(context.Background(), requestID)
	go func() {
		if err := s.pipeline.Run(runCtx, id); err != nil {
			s.logger.Error(runCtx, "Pipeline failed for job %s: %v", id, err)
		}
	}()

	return respondJSON(c, fiber.StatusAccepted, fiber.Map{
		"jobId":   id,
		"message": "Video processing started",
	})
}

func (s *Server) status(c *fiber.Ctx) error {
	status, err := s.pipeline.Status(c.Params("jobId"))
	if err != nil {
		return err
	}
	return respondJSON(c, fiber.StatusOK, status)
}

func (s *Server) list(c *fiber.Ctx) error {
	ids, err := s.pipeline.ListJobs()
	if err != nil {
		return err
	}
	return respondJSON(c, fiber.StatusOK, fiber.Map{"jobs": ids})
}

func (s *Server) listFiles(c *fiber.Ctx) error {
	files, err := s.pipeline.ListFiles(c.Params("jobId"), c.Params("subdir"))
	if err != nil {
		return err
	}
	return respondJSON(c, fiber.StatusOK, fiber.Map{"files": files})
}

func (s *Server) download(c *fiber.Ctx) error {
	path, err := s.pipeline.Artifact(c.Params("jobId"), c.Params("kind"))
	if err != nil {
		return err
	}
	return c.Download(path)
}
