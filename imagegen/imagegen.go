// Package imagegen implements the Image Generation Port. A Backend produces
// the raw image (URL or base64 payload); Generator validates input, converts
// the result into a single reference string, records it in an ArtifactStore
// and wraps every failure in ErrGeneration so callers can offer a retry.
package imagegen

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hupe1980/slotmesh/core"
	"github.com/hupe1980/slotmesh/logging"
)

// ErrGeneration is wrapped by every error returned from Generator.Generate.
var ErrGeneration = errors.New("image generation failed")

// Image is the raw backend result. Exactly one of URL or B64JSON is expected.
type Image struct {
	URL     string
	B64JSON string
}

// Reference returns the URL, or a PNG data URL for inline payloads.
func (i Image) Reference() string {
	if i.URL != "" {
		return i.URL
	}
	if i.B64JSON != "" {
		return "data:image/png;base64," + i.B64JSON
	}
	return ""
}

// Backend produces images from a text prompt.
type Backend interface {
	GenerateImage(ctx context.Context, prompt string) (Image, error)
}

// Options configures a Generator.
type Options struct {
	// Artifacts receives every generated reference (nil disables recording).
	Artifacts core.ArtifactStore
	// Timeout bounds a single backend call (0 means no extra timeout).
	Timeout time.Duration
	Logger  logging.Logger
}

// Generator implements core.ImageGenerator on top of a Backend.
type Generator struct {
	backend Backend
	opts    Options
}

// New creates a Generator.
func New(backend Backend, optFns ...func(o *Options)) *Generator {
	opts := Options{Timeout: 60 * time.Second}
	for _, fn := range optFns {
		fn(&opts)
	}
	opts.Logger = logging.OrNoOp(opts.Logger)
	return &Generator{backend: backend, opts: opts}
}

// Generate implements core.ImageGenerator.
func (g *Generator) Generate(ctx context.Context, description string) (string, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return "", fmt.Errorf("%w: a valid image description must be provided", ErrGeneration)
	}
	if g.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.opts.Timeout)
		defer cancel()
	}

	img, err := g.backend.GenerateImage(ctx, description)
	if err != nil {
		g.opts.Logger.Warn("image generation failed", "error", err)
		return "", fmt.Errorf("%w: %w", ErrGeneration, err)
	}
	ref := img.Reference()
	if ref == "" {
		return "", fmt.Errorf("%w: no image data returned", ErrGeneration)
	}

	if g.opts.Artifacts != nil {
		userID := core.UserIDFrom(ctx)
		if err := g.opts.Artifacts.Save(userID, uuid.NewString(), []byte(ref)); err != nil {
			g.opts.Logger.Warn("failed to record image artifact", "user_id", userID, "error", err)
		}
	}
	return ref, nil
}
