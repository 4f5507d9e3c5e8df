package config

import "fmt"

const maxUploadBytes = 2 * 1024 * 1024 * 1024 // 2GB

type Config struct {
	Whisper     WhisperConfig     `yaml:"whisper"`
	FFmpeg      FFmpegConfig      `yaml:"ffmpeg"`
	Paths       PathsConfig       `yaml:"paths"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
	LLM         LLMConfig         `yaml:"llm"`
	Server      ServerConfig      `yaml:"server"`
}

type WhisperConfig struct {
	ModelPath  string `yaml:"model_path"`
	BinaryPath string `yaml:"binary_path"`
	Language   string `yaml:"language"`
	Threads    int    `yaml:"threads"`
}

type FFmpegConfig struct {
	BinaryPath string `yaml:"binary_path"`
}

type PathsConfig struct {
	Jobs  string `yaml:"jobs"`
	Inbox string `yaml:"inbox"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

type LLMConfig struct {
	APIKeys     []string `yaml:"api_keys"`
	Model       string   `yaml:"model"`
	Temperature float32  `yaml:"temperature"`
}

type ServerConfig struct {
	Addr           string `yaml:"addr"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes"`
}

func (c *Config) Validate() error {
	if c.Whisper.ModelPath == "" {
		return fmt.Errorf("whisper.model_path is required")
	}
	if c.Whisper.Language == "" {
		return fmt.Errorf("whisper.language is required")
	}
	if len(c.LLM.APIKeys) == 0 {
		return fmt.Errorf("llm.api_keys is required")
	}

	if c.Whisper.BinaryPath == "" {
		c.Whisper.BinaryPath = "whisper"
	}
	if c.Whisper.Threads == 0 {
		c.Whisper.Threads = 4
	}
	if c.FFmpeg.BinaryPath == "" {
		c.FFmpeg.BinaryPath = "ffmpeg"
	}
	if c.Paths.Jobs == "" {
		c.Paths.Jobs = "data/jobs"
	}
	if c.Paths.Inbox == "" {
		c.Paths.Inbox = "data/inbox"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "gemini-2.5-flash"
	}
	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = 0.6
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.MaxUploadBytes == 0 {
		c.Server.MaxUploadBytes = maxUploadBytes
	}

	return nil
}
