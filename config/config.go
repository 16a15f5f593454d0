package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

type Service struct {
	URL string `mapstructure:"url" yaml:"url"`
}

type ASRService struct {
	URL       string `mapstructure:"url" yaml:"url"`
	AllowMock bool   `mapstructure:"allow_mock" yaml:"allow_mock"`
}

type Services struct {
	ASR         ASRService `mapstructure:"asr" yaml:"asr"`
	Diarization Service    `mapstructure:"diarization" yaml:"diarization"`
}

// Interruptions holds the thresholds for the interruption/backchannel
// detector. Defaults follow the values tuned on real two-speaker podcasts.
type Interruptions struct {
	MinOverlapSec             float64 `mapstructure:"min_overlap_sec" yaml:"min_overlap_sec"`
	MaxGapSec                 float64 `mapstructure:"max_gap_sec" yaml:"max_gap_sec"`
	MinWordsInterrupter       int     `mapstructure:"min_words_interrupter" yaml:"min_words_interrupter"`
	MaxBackchannelDurationSec float64 `mapstructure:"max_backchannel_duration_sec" yaml:"max_backchannel_duration_sec"`
}

type Turns struct {
	MergeGapSec float64 `mapstructure:"merge_gap_sec" yaml:"merge_gap_sec"`
}

type Timeseries struct {
	WindowSizeSec float64 `mapstructure:"window_size_sec" yaml:"window_size_sec"`
	// StepSizeSec of 0 means non-overlapping windows (step = window size).
	StepSizeSec float64 `mapstructure:"step_size_sec" yaml:"step_size_sec"`
}

type Analysis struct {
	Interruptions Interruptions `mapstructure:"interruptions" yaml:"interruptions"`
	Turns         Turns         `mapstructure:"turns" yaml:"turns"`
	Timeseries    Timeseries    `mapstructure:"timeseries" yaml:"timeseries"`
}

type Speakers struct {
	// Labels maps raw diarization labels (e.g. "S0") to display names.
	Labels map[string]string `mapstructure:"labels" yaml:"labels"`
}

type Root struct {
	Pipeline struct {
		Name   string `mapstructure:"name" yaml:"name"`
		LogLvl string `mapstructure:"log_level" yaml:"log_level"`
	} `mapstructure:"pipeline" yaml:"pipeline"`
	Paths struct {
		Outputs string `mapstructure:"outputs" yaml:"outputs"`
	} `mapstructure:"paths" yaml:"paths"`
	Services Services `mapstructure:"services" yaml:"services"`
	Analysis Analysis `mapstructure:"analysis" yaml:"analysis"`
	Speakers Speakers `mapstructure:"speakers" yaml:"speakers"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("pipeline.name", "podscope")
	v.SetDefault("pipeline.log_level", "info")
	v.SetDefault("paths.outputs", "outputs")
	v.SetDefault("services.asr.url", "")
	v.SetDefault("services.asr.allow_mock", false)
	v.SetDefault("services.diarization.url", "")
	v.SetDefault("analysis.interruptions.min_overlap_sec", 0.2)
	v.SetDefault("analysis.interruptions.max_gap_sec", 0.15)
	v.SetDefault("analysis.interruptions.min_words_interrupter", 3)
	v.SetDefault("analysis.interruptions.max_backchannel_duration_sec", 0.6)
	v.SetDefault("analysis.turns.merge_gap_sec", 0.5)
	v.SetDefault("analysis.timeseries.window_size_sec", 30.0)
	v.SetDefault("analysis.timeseries.step_size_sec", 0.0)
}

// Load reads the configuration from path (when non-empty) or from a
// podscope.yaml in the working directory, applying PODSCOPE_* environment
// overrides on top of the built-in defaults. A missing config file is not
// an error; the defaults stand.
func Load(path string) (*Root, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("PODSCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("podscope")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Root
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

// Default returns the built-in configuration without touching disk.
func Default() *Root {
	v := viper.New()
	setDefaults(v)
	var cfg Root
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// WriteDefault writes the built-in configuration as YAML to path, so users
// have a complete file to edit. Refuses to overwrite an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config %s already exists", path)
	}
	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("encode default config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
