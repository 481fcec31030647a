package config

import (
	// External Packages
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
)

// Load reads the embedded defaults, overrides them with the file at path
// (when non-empty) and the environment, and validates the result.
func Load(path string) (Config, *koanf.Koanf, error) {
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(DefaultConfig), yaml.Parser()); err != nil {
		return Config{}, nil, err
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, nil, err
		}
	}

	appKonf := Config{}
	if err := k.Unmarshal("", &appKonf); err != nil {
		return Config{}, nil, err
	}

	appKonf = LoadSecrets(appKonf)
	if err := appKonf.Validate(); err != nil {
		return Config{}, nil, err
	}
	return appKonf, k, nil
}
