package main

import (
	"os"
	"strconv"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// fileConfig is the optional --config YAML file's shape: defaults for the
// flags a user would otherwise repeat on every invocation. It is strictly a
// convenience layer — Width and Justify fill the -w and -t flags, SampleFile
// is read but not used, and no core behavior depends on the file being
// present.
type fileConfig struct {
	Width      int    `yaml:"width"`
	Justify    string `yaml:"justify"` // "left" or "right"
	SampleFile string `yaml:"sample_file"`
}

func loadFileConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyFileConfig fills flag defaults from the --config file, but only for
// flags the user did not already set explicitly on the command line: the file
// supplies fallbacks, never overrides.
func applyFileConfig(cmd *cobra.Command, path string) {
	cfg, err := loadFileConfig(path)
	if err != nil {
		fatal("loading config file %s: %v", path, err)
	}

	if cfg.Width > 0 && cmd.Flags().Lookup("width") != nil && !cmd.Flags().Changed("width") {
		if err := cmd.Flags().Set("width", strconv.Itoa(cfg.Width)); err != nil {
			log.Warnf("config: %v", err)
		}
	}
	switch cfg.Justify {
	case "left":
		if cmd.Flags().Lookup("left-justify") != nil && !cmd.Flags().Changed("left-justify") {
			_ = cmd.Flags().Set("left-justify", "true")
		}
	case "right", "":
	default:
		log.Warnf("config: unrecognized justify value %q", cfg.Justify)
	}
	if cfg.SampleFile != "" {
		log.Debugf("config: sample_file %s ignored; pass samples as search arguments", cfg.SampleFile)
	}
}
