package transcription

import (
	"fmt"
	"strings"
)

// ModelTier is a named capacity variant of the Whisper model
type ModelTier string

const (
	ModelTiny   ModelTier = "tiny"
	ModelBase   ModelTier = "base"
	ModelSmall  ModelTier = "small"
	ModelMedium ModelTier = "medium"
	ModelLarge  ModelTier = "large"
	ModelTurbo  ModelTier = "turbo"
)

// DefaultModelTier is used when no tier is configured
const DefaultModelTier = ModelBase

// TierInfo describes the published resource profile of a tier
type TierInfo struct {
	Tier          ModelTier
	Parameters    string
	RequiredVRAM  string
	RelativeSpeed string
	EnglishOnly   bool // an ".en" variant exists
}

var tiers = []TierInfo{
	{Tier: ModelTiny, Parameters: "39M", RequiredVRAM: "~1 GB", RelativeSpeed: "~10x", EnglishOnly: true},
	{Tier: ModelBase, Parameters: "74M", RequiredVRAM: "~1 GB", RelativeSpeed: "~7x", EnglishOnly: true},
	{Tier: ModelSmall, Parameters: "244M", RequiredVRAM: "~2 GB", RelativeSpeed: "~4x", EnglishOnly: true},
	{Tier: ModelMedium, Parameters: "769M", RequiredVRAM: "~5 GB", RelativeSpeed: "~2x", EnglishOnly: true},
	{Tier: ModelLarge, Parameters: "1550M", RequiredVRAM: "~10 GB", RelativeSpeed: "1x"},
	{Tier: ModelTurbo, Parameters: "809M", RequiredVRAM: "~6 GB", RelativeSpeed: "~8x"},
}

// Tiers returns all recognized tiers ordered from smallest to largest
func Tiers() []TierInfo {
	out := make([]TierInfo, len(tiers))
	copy(out, tiers)
	return out
}

// ParseModelTier parses a tier name. An empty name yields DefaultModelTier.
// Names are case-insensitive; an ".en" suffix is accepted for tiers that ship one.
func ParseModelTier(name string) (ModelTier, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return DefaultModelTier, nil
	}

	base, english := strings.CutSuffix(name, ".en")
	for _, info := range tiers {
		if string(info.Tier) != base {
			continue
		}
		if english && !info.EnglishOnly {
			break
		}
		return ModelTier(name), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownModelTier, name)
}

// String returns the tier name as passed to the engine
func (m ModelTier) String() string {
	return string(m)
}
