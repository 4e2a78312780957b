package catalog

import (
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/balatrogo/internal/joker"
)

//go:embed scaling.yaml
var scalingYAML []byte

// ScalingDefinition is the YAML form of a scaling joker.
type ScalingDefinition struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Rarity      string   `yaml:"rarity"`
	Cost        int      `yaml:"cost"`
	Trigger     string   `yaml:"trigger"`
	Effect      string   `yaml:"effect"`
	BaseValue   float64  `yaml:"base_value"`
	Increment   float64  `yaml:"increment"`
	Reset       string   `yaml:"reset"`
	Max         *float64 `yaml:"max"`
	PerInstance bool     `yaml:"per_instance"`
}

func parseRarity(s string) (joker.Rarity, error) {
	switch s {
	case "", "common":
		return joker.Common, nil
	case "uncommon":
		return joker.Uncommon, nil
	case "rare":
		return joker.Rare, nil
	case "legendary":
		return joker.Legendary, nil
	default:
		return 0, fmt.Errorf("unknown rarity %q", s)
	}
}

// Build converts the definition into a joker base and scaling config.
func (d ScalingDefinition) Build() (joker.Base, joker.ScalingConfig, error) {
	if d.ID == "" {
		return joker.Base{}, joker.ScalingConfig{}, errors.New("scaling joker without id")
	}
	rarity, err := parseRarity(d.Rarity)
	if err != nil {
		return joker.Base{}, joker.ScalingConfig{}, fmt.Errorf("joker %s: %w", d.ID, err)
	}
	trigger, err := joker.ParseCondition(d.Trigger)
	if err != nil {
		return joker.Base{}, joker.ScalingConfig{}, fmt.Errorf("joker %s trigger: %w", d.ID, err)
	}
	eff, err := joker.ParseScalingEffect(d.Effect)
	if err != nil {
		return joker.Base{}, joker.ScalingConfig{}, fmt.Errorf("joker %s: %w", d.ID, err)
	}

	cfg := joker.ScalingConfig{
		Trigger:     trigger,
		Effect:      eff,
		BaseValue:   d.BaseValue,
		Increment:   d.Increment,
		Max:         d.Max,
		PerInstance: d.PerInstance,
	}
	if d.Reset != "" {
		reset, err := joker.ParseCondition(d.Reset)
		if err != nil {
			return joker.Base{}, joker.ScalingConfig{}, fmt.Errorf("joker %s reset: %w", d.ID, err)
		}
		cfg.Reset = &reset
	}

	base := joker.NewBase(joker.ID(d.ID), d.Name, d.Description, rarity, d.Cost)
	return base, cfg, nil
}

// New creates one owned copy.
func (d ScalingDefinition) New() (*joker.Scaling, error) {
	base, cfg, err := d.Build()
	if err != nil {
		return nil, err
	}
	return joker.NewScaling(base, cfg)
}

// ParseScalingDefinitions decodes and validates a YAML document with a
// top-level "jokers" list.
func ParseScalingDefinitions(data []byte) ([]ScalingDefinition, error) {
	var doc struct {
		Jokers []ScalingDefinition `yaml:"jokers"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing scaling definitions: %w", err)
	}

	seen := make(map[string]bool, len(doc.Jokers))
	for _, d := range doc.Jokers {
		if seen[d.ID] {
			return nil, fmt.Errorf("scaling joker %s defined twice", d.ID)
		}
		seen[d.ID] = true
		if _, err := d.New(); err != nil {
			return nil, err
		}
	}
	return doc.Jokers, nil
}

// RegisterScaling registers a factory for every definition. The definitions
// must come from ParseScalingDefinitions.
func RegisterScaling(defs []ScalingDefinition) {
	for _, d := range defs {
		Register(joker.ID(d.ID), func() joker.Joker {
			s, err := d.New()
			if err != nil {
				// Validated by ParseScalingDefinitions.
				panic(err)
			}
			return s
		})
	}
}

func init() {
	defs, err := ParseScalingDefinitions(scalingYAML)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded scaling definitions: %v", err))
	}
	RegisterScaling(defs)
}
