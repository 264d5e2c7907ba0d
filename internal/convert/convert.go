// Package convert implements rendering of notebook documents through an
// external converter process. Rendered output lands in a cache directory,
// keyed by the content checksum of the source document, so unchanged
// notebooks never trigger a second process invocation.
package convert

import (
	"context"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nbvault/nbvault/internal/pathing"
	"github.com/zeebo/blake3"
)

// Format is a supported converter output format.
type Format string

const (
	// FormatHTML renders a notebook to a standalone HTML document.
	FormatHTML Format = "html"

	// FormatMarkdown renders a notebook to a markdown document.
	FormatMarkdown Format = "markdown"

	// outputTailMax bounds how much converter output is carried in errors.
	outputTailMax = 800
)

// ParseFormat returns the [Format] for a configuration string.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "html":
		return FormatHTML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("(convert-format) %w: %s", ErrUnknownFormat, s)
	}
}

// Extension returns the file extension the converter uses for a [Format].
func (f Format) Extension() string {
	if f == FormatMarkdown {
		return ".md"
	}

	return ".html"
}

type osProvider interface {
	Stat(name string) (os.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	MkdirAll(path string, perm os.FileMode) error
}

type execProvider interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
	LookPath(file string) (string, error)
}

// Handler is the principal implementation for notebook conversion.
type Handler struct {
	osHandler   osProvider
	execHandler execProvider

	binary   string
	cacheDir string
	timeout  time.Duration
}

// NewHandler returns a pointer to a new converter [Handler]. A zero timeout
// disables deadline enforcement; cancellation through the passed
// [context.Context] always applies.
func NewHandler(osHandler osProvider, execHandler execProvider, binary string, cacheDir string, timeout time.Duration) *Handler {
	return &Handler{
		osHandler:   osHandler,
		execHandler: execHandler,
		binary:      binary,
		cacheDir:    cacheDir,
		timeout:     timeout,
	}
}

// Convert renders a notebook to the given [Format] and returns the path of
// the rendered document inside the cache directory. A cache hit for the
// current document content skips the process invocation entirely. The call
// blocks until the converter exits or the [context.Context] is canceled.
func (c *Handler) Convert(ctx context.Context, nb pathing.VaultPath, format Format) (string, error) {
	data, err := c.osHandler.ReadFile(nb.Absolute())
	if err != nil {
		return "", fmt.Errorf("(convert) failed to read notebook: %w", err)
	}

	key := cacheKey(data)
	outPath := filepath.Join(c.cacheDir, key+format.Extension())

	if _, err := c.osHandler.Stat(outPath); err == nil {
		slog.Debug("Using cached render.",
			"notebook", nb.Absolute(),
			"output", outPath,
		)

		return outPath, nil
	}

	if err := c.osHandler.MkdirAll(c.cacheDir, 0o755); err != nil {
		return "", fmt.Errorf("(convert) failed to create cache dir: %w", err)
	}

	if _, err := c.execHandler.LookPath(c.binary); err != nil {
		return "", fmt.Errorf("(convert) %w: %s", ErrConverterNotFound, c.binary)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	args := []string{
		"--to", string(format),
		"--output", key,
		"--output-dir", c.cacheDir,
		nb.Absolute(),
	}

	slog.Debug("Invoking converter.",
		"binary", c.binary,
		"notebook", nb.Absolute(),
		"format", string(format),
	)

	output, err := c.execHandler.Run(ctx, c.binary, args...)
	if err != nil {
		return "", fmt.Errorf("(convert) %w: %w: %s", ErrConverterFailed, err, outputTail(output))
	}

	if _, err := c.osHandler.Stat(outPath); err != nil {
		return "", fmt.Errorf("(convert) %w: %s", ErrNoOutput, outPath)
	}

	return outPath, nil
}

// ReadResult reads back a rendered document from the cache directory.
func (c *Handler) ReadResult(outPath string) ([]byte, error) {
	data, err := c.osHandler.ReadFile(outPath)
	if err != nil {
		return nil, fmt.Errorf("(convert) %w: %w", ErrNoOutput, err)
	}

	return data, nil
}

// cacheKey derives the cache filename stem from a document payload.
func cacheKey(data []byte) string {
	sum := blake3.Sum256(data)

	return hex.EncodeToString(sum[:8])
}

// outputTail returns the trailing part of converter output for error
// reporting.
func outputTail(output []byte) string {
	s := strings.TrimSpace(string(output))
	if len(s) > outputTailMax {
		s = s[len(s)-outputTailMax:]
	}

	return s
}
