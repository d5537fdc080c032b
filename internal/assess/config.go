// Package assess computes the relationship flag bundle for an account and
// its optional shell (parent) account.
package assess

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Postal tolerance modes for the address comparison.
const (
	// ToleranceAnyMissing accepts state+country agreement when the postal
	// code is absent on either side (or both).
	ToleranceAnyMissing = "any-missing"
	// ToleranceRequire demands postal codes on both sides and an exact match.
	ToleranceRequire = "require"
)

// Config holds the tunable parts of the coherence rubric. All fields have
// working defaults; a YAML file can override them.
type Config struct {
	// AddressPostalTolerance controls how missing postal codes are treated
	// when state and country already agree.
	AddressPostalTolerance string `yaml:"address_postal_tolerance"`

	// NameWeight and WebsiteWeight blend the two shell-coherence dimensions.
	// They are normalized by their sum, so {1,1} and {0.5,0.5} are identical.
	NameWeight    float64 `yaml:"name_weight"`
	WebsiteWeight float64 `yaml:"website_weight"`
}

// DefaultConfig returns the rubric defaults: any-missing postal tolerance and
// an equal-weighted name/website blend.
func DefaultConfig() Config {
	return Config{
		AddressPostalTolerance: ToleranceAnyMissing,
		NameWeight:             0.5,
		WebsiteWeight:          0.5,
	}
}

// LoadConfig reads a rubric YAML file, filling unset fields with defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, eris.Wrapf(err, "assess: read rubric %s", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, eris.Wrap(err, "assess: parse rubric")
	}

	if cfg.AddressPostalTolerance == "" {
		cfg.AddressPostalTolerance = ToleranceAnyMissing
	}
	if cfg.AddressPostalTolerance != ToleranceAnyMissing && cfg.AddressPostalTolerance != ToleranceRequire {
		return cfg, eris.Errorf("assess: unknown address_postal_tolerance %q", cfg.AddressPostalTolerance)
	}
	if cfg.NameWeight <= 0 && cfg.WebsiteWeight <= 0 {
		cfg.NameWeight = 0.5
		cfg.WebsiteWeight = 0.5
	}

	return cfg, nil
}
