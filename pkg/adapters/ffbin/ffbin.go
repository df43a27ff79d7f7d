// Package ffbin locates the ffmpeg and ffprobe executables.
package ffbin

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// ErrNotFound is returned when a binary is neither configured nor installed.
var ErrNotFound = errors.New("ffbin: executable not found")

const (
	FFmpeg  = "ffmpeg"
	FFprobe = "ffprobe"
)

// envVars maps each binary to the environment variable that overrides it.
var envVars = map[string]string{
	FFmpeg:  "FFMPEG_PATH",
	FFprobe: "FFPROBE_PATH",
}

// Find searches for name in this order: customPath, the FFMPEG_PATH or
// FFPROBE_PATH environment variable, PATH, then common install locations.
// A configured path that does not exist is an error rather than a fallback.
func Find(name, customPath string) (string, error) {
	if customPath != "" {
		if _, err := os.Stat(customPath); err == nil {
			return customPath, nil
		}
		return "", fmt.Errorf("%w: custom path %s not found", ErrNotFound, customPath)
	}

	if env := envVars[name]; env != "" {
		if envPath := os.Getenv(env); envPath != "" {
			if _, err := os.Stat(envPath); err == nil {
				return envPath, nil
			}
			return "", fmt.Errorf("%w: %s %s not found", ErrNotFound, env, envPath)
		}
	}

	execName := name
	if runtime.GOOS == "windows" {
		execName = name + ".exe"
	}

	if path, err := exec.LookPath(execName); err == nil {
		return path, nil
	}

	for _, dir := range commonDirs() {
		p := filepath.Join(dir, execName)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrNotFound, name)
}

func commonDirs() []string {
	switch runtime.GOOS {
	case "windows":
		return []string{
			`C:\ffmpeg\bin`,
			`C:\Program Files\ffmpeg\bin`,
			`C:\Program Files (x86)\ffmpeg\bin`,
		}
	case "darwin":
		return []string{
			"/opt/homebrew/bin",
			"/usr/local/bin",
			"/usr/bin",
		}
	default:
		return []string{
			"/usr/bin",
			"/usr/local/bin",
			"/opt/homebrew/bin",
			"/snap/bin",
		}
	}
}

// Runner executes a binary and returns its stdout.
type Runner func(ctx context.Context, bin string, args ...string) ([]byte, error)

// Exec is the Runner backed by os/exec. Stderr is folded into the error.
func Exec(ctx context.Context, bin string, args ...string) ([]byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return nil, fmt.Errorf("%s failed: %w", filepath.Base(bin), err)
		}
		return nil, fmt.Errorf("%s failed: %w\nstderr: %s", filepath.Base(bin), err, msg)
	}
	return stdout.Bytes(), nil
}
