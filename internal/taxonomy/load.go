package taxonomy

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// MobOverride carries the presentation fields a deployment may restyle
// without touching the classification tables. Keyword, hashtag, platform and
// duration affinities are system invariants and cannot be overridden.
type MobOverride struct {
	Key         string `yaml:"key"`
	Name        string `yaml:"name,omitempty"`
	Description string `yaml:"description,omitempty"`
	Icon        string `yaml:"icon,omitempty"`
	Color       string `yaml:"color,omitempty"`
}

type overrideFile struct {
	Mobs []MobOverride `yaml:"mobs"`
}

// ApplyOverrides loads an optional YAML file of mob presentation overrides
// and applies them in place. A missing file is not an error; an override
// naming an unknown mob key is.
func ApplyOverrides(path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read mob overrides: %w", err)
	}

	var f overrideFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse mob overrides: %w", err)
	}

	for _, o := range f.Mobs {
		mob := ByKey(o.Key)
		if mob == nil {
			return fmt.Errorf("mob override references unknown key %q", o.Key)
		}
		if o.Name != "" {
			mob.Name = o.Name
		}
		if o.Description != "" {
			mob.Description = o.Description
		}
		if o.Icon != "" {
			mob.Icon = o.Icon
		}
		if o.Color != "" {
			mob.Color = o.Color
		}
	}
	return nil
}
