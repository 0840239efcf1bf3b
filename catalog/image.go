package catalog

import (
	"context"

	"github.com/hupe1980/slotmesh/agent"
	"github.com/hupe1980/slotmesh/core"
	"github.com/hupe1980/slotmesh/logging"
)

const (
	fieldWantsImage       = "wantsImage"
	fieldImageDescription = "imageDescription"
	fieldImageReference   = "imageReference"
)

// ImageResolver drives the image sub-protocol: decline, or accept with a
// description and a generated reference. A failed generation offers one retry
// before falling back to declined.
type ImageResolver struct {
	gen    core.ImageGenerator
	logger logging.Logger
}

// NewImageResolver creates an ImageResolver using gen.
func NewImageResolver(gen core.ImageGenerator, logger logging.Logger) *ImageResolver {
	return &ImageResolver{gen: gen, logger: logging.OrNoOp(logger)}
}

// Resolve implements agent.Resolver.
func (r *ImageResolver) Resolve(ctx context.Context, f core.Fields, p agent.Prompter) error {
	if f.IsSet(fieldWantsImage) {
		v, ok := agent.NormalizeYesNo(f[fieldWantsImage])
		f[fieldWantsImage] = v // unrecognised answers become unset
		if !ok {
			return nil
		}
	}

	if f[fieldWantsImage] != "yes" {
		f.Unset(fieldImageDescription, fieldImageReference)
		return nil
	}
	if !f.IsSet(fieldImageDescription) || f.IsSet(fieldImageReference) {
		return nil
	}

	for attempt := 1; ; attempt++ {
		if err := p.Say(ctx, "Generating your image, please wait..."); err != nil {
			return err
		}
		ref, err := r.gen.Generate(ctx, f[fieldImageDescription])
		if err == nil {
			f[fieldImageReference] = ref
			return p.Say(ctx, "Your image is ready: "+ref)
		}
		r.logger.Warn("image generation failed", "attempt", attempt, "error", err)

		if attempt > 1 {
			decline(f)
			return p.Say(ctx, "Image generation failed again. Continuing without an image.")
		}
		answer, err := p.Ask(ctx, "Sorry, image generation failed. Would you like to retry? (yes/no)")
		if err != nil {
			return err
		}
		if !agent.IsAffirmative(answer) {
			decline(f)
			return p.Say(ctx, "Okay, continuing without an image.")
		}
	}
}

func decline(f core.Fields) {
	f[fieldWantsImage] = "no"
	f.Unset(fieldImageDescription, fieldImageReference)
}

// imageRequired requires the description only once the user accepted.
func imageRequired(f core.Fields) []string {
	if v, _ := agent.NormalizeYesNo(f[fieldWantsImage]); v == "yes" {
		return []string{fieldWantsImage, fieldImageDescription}
	}
	return []string{fieldWantsImage}
}

// ValidImage accepts a decline, or an accept carrying both a description and
// a generated reference.
func ValidImage(f core.Fields) bool {
	switch f[fieldWantsImage] {
	case "no":
		return true
	case "yes":
		return f.IsSet(fieldImageDescription) && f.IsSet(fieldImageReference)
	default:
		return false
	}
}

func confirmImage(f core.Fields) string {
	if f[fieldWantsImage] != "yes" {
		return "AI Image: not requested\nIs this correct? (yes/no)"
	}
	return "AI Image Description: " + f[fieldImageDescription] +
		"\nAI Image: " + f[fieldImageReference] +
		"\nIs this correct? (yes/no)"
}

// ImageAgent returns the optional AI-image agent.
func ImageAgent(gen core.ImageGenerator, logger logging.Logger) agent.Spec {
	return agent.Spec{
		Name:   "ImageAgent",
		Fields: []string{fieldWantsImage, fieldImageDescription, fieldImageReference},
		Labels: map[string]string{
			fieldWantsImage:       "whether you want an AI image (yes/no)",
			fieldImageDescription: "image description",
		},
		Prompt: "Would you like to generate an AI image for your event? If yes, please describe the image.",
		Instruction: agent.NewInstructionFromText(
			`Given the current and previous user messages, determine whether the user wants an AI-generated image for the event and extract a description of the image if one is given. Reply as JSON: {"wantsImage": "yes|no", "imageDescription": "..."}`),
		Validate: ValidImage,
		Confirm:  confirmImage,
		Required: imageRequired,
		Derived:  []string{fieldImageReference},
		Resolver: NewImageResolver(gen, logger),
	}
}
