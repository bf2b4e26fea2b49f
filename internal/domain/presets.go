package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultPalette is the primary, secondary and accent colour of a project
// that has not chosen its own.
var DefaultPalette = []string{"#6366f1", "#8b5cf6", "#a1c4fd"}

// PaletteSize is the number of colours in a brand palette.
const PaletteSize = 3

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// NormalizePalette validates a palette and lower-cases its colours. An empty
// palette yields a copy of DefaultPalette.
func NormalizePalette(colors []string) ([]string, error) {
	if len(colors) == 0 {
		return append([]string(nil), DefaultPalette...), nil
	}
	if len(colors) != PaletteSize {
		return nil, fmt.Errorf("%w: palette needs exactly %d colors", ErrInvalidInput, PaletteSize)
	}
	out := make([]string, len(colors))
	for i, c := range colors {
		c = strings.TrimSpace(c)
		if !hexColor.MatchString(c) {
			return nil, fmt.Errorf("%w: %q is not a #rrggbb color", ErrInvalidInput, c)
		}
		out[i] = strings.ToLower(c)
	}
	return out, nil
}

// StylePreset is a named logo style.
type StylePreset struct {
	ID     string
	Label  string
	Prompt string
}

var StylePresets = []StylePreset{
	{ID: "modern", Label: "Modern Minimalist", Prompt: "Modern, Minimalist, Vector, Clean"},
	{ID: "abstract", Label: "Abstract", Prompt: "Abstract, conceptual, symbolic"},
	{ID: "geometric", Label: "Geometric", Prompt: "Geometric, mathematical, grid-based"},
	{ID: "hand-drawn", Label: "Hand-drawn", Prompt: "Hand-drawn, sketchy, organic, artisanal"},
	{ID: "3d", Label: "3D Render", Prompt: "3D, isometric, claymorphism, rendered"},
	{ID: "vintage", Label: "Vintage", Prompt: "Vintage, retro, heritage, classic"},
	{ID: "futuristic", Label: "Futuristic", Prompt: "Futuristic, tech, sci-fi, neon"},
}

// LookupStylePreset returns the preset with id. An empty id selects the
// first preset.
func LookupStylePreset(id string) (StylePreset, error) {
	if id == "" {
		return StylePresets[0], nil
	}
	for _, p := range StylePresets {
		if p.ID == id {
			return p, nil
		}
	}
	return StylePreset{}, fmt.Errorf("%w: unknown style preset %q", ErrInvalidInput, id)
}

// MoodPreset is a canned recolouring instruction.
type MoodPreset struct {
	Label       string
	Instruction string
}

var MoodPresets = []MoodPreset{
	{Label: "Sunset Vibes", Instruction: "Apply a warm gradient of orange, pink, and purple."},
	{Label: "Cyberpunk", Instruction: "Use high-contrast neon cyan and magenta."},
	{Label: "Earthly", Instruction: "Convert all elements to natural forest greens and browns."},
	{Label: "Monochrome", Instruction: "Make the logo entirely black and white with gray accents."},
	{Label: "Vibrant", Instruction: "Increase saturation and use primary bold colors."},
}
