// Package rules defines the versioned rule tables shared by the legality
// checker and the bonus calculator.
package rules

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/okian/tariff/internal/domain/catalog"
)

// Gender selects a bonus profile.
type Gender string

// Known genders.
const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// BonusProfile is the threshold and bonus awarded for a gender.
type BonusProfile struct {
	// Threshold is the value an element must strictly exceed to qualify.
	Threshold float64 `yaml:"threshold" json:"threshold" validate:"min=0"`
	// Bonus is the amount awarded per qualifying element after the first.
	Bonus float64 `yaml:"bonus" json:"bonus" validate:"gt=0"`
}

// Ruleset holds every constant the evaluators depend on.
type Ruleset struct {
	Version               string                  `yaml:"version" json:"version" validate:"required"`
	ExemptCategories      []catalog.Category      `yaml:"exempt_categories" json:"exempt_categories" validate:"dive,required"`
	TwistCappedCategories []catalog.Category      `yaml:"twist_capped_categories" json:"twist_capped_categories" validate:"dive,required"`
	TwistCap              int                     `yaml:"twist_cap" json:"twist_cap" validate:"min=1"`
	BonusProfiles         map[Gender]BonusProfile `yaml:"bonus_profiles" json:"bonus_profiles" validate:"dive,keys,oneof=male female,endkeys"`
}

//go:embed data/ruleset.yaml
var defaultRuleset []byte

var validate = validator.New()

// Validate checks the ruleset for structural errors.
func (r Ruleset) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRuleset, err)
	}
	for _, c := range r.TwistCappedCategories {
		if slices.Contains(r.ExemptCategories, c) {
			return fmt.Errorf("%w: category %q is both exempt and capped", ErrInvalidRuleset, c)
		}
	}
	return nil
}

// IsExempt reports whether elements of category c may repeat freely.
func (r Ruleset) IsExempt(c catalog.Category) bool {
	return c != "" && slices.Contains(r.ExemptCategories, c)
}

// IsTwistCapped reports whether elements of category c repeat up to TwistCap.
func (r Ruleset) IsTwistCapped(c catalog.Category) bool {
	return c != "" && slices.Contains(r.TwistCappedCategories, c)
}

// Profile returns the bonus profile for g.
func (r Ruleset) Profile(g Gender) (BonusProfile, bool) {
	p, ok := r.BonusProfiles[g]
	return p, ok
}

// Load decodes and validates a YAML ruleset from r.
func Load(r io.Reader) (Ruleset, error) {
	var rs Ruleset
	if err := yaml.NewDecoder(r).Decode(&rs); err != nil {
		return Ruleset{}, fmt.Errorf("%w: %w", ErrLoadRuleset, err)
	}
	if err := rs.Validate(); err != nil {
		return Ruleset{}, err
	}
	return rs, nil
}

// LoadFile reads a YAML ruleset from path.
func LoadFile(path string) (Ruleset, error) {
	f, err := os.Open(path)
	if err != nil {
		return Ruleset{}, fmt.Errorf("%w: %w", ErrLoadRuleset, err)
	}
	defer func() { _ = f.Close() }()
	return Load(f)
}

// Default returns the ruleset embedded in the binary.
func Default() Ruleset {
	rs, err := Load(bytes.NewReader(defaultRuleset))
	if err != nil {
		panic("embedded ruleset is invalid: " + err.Error())
	}
	return rs
}
