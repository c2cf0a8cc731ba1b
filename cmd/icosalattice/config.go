package main

import (
	"io"
	"os"

	"github.com/Kuhron/icosalattice/conversion"
	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	outputText    = "text"
	outputJSON    = "json"
	outputGeoJSON = "geojson"
)

// Config holds the settings shared by every command. It is read from an
// optional YAML file and then overridden by flags.
type Config struct {
	// Method names the conversion method.
	Method string `yaml:"method"`
	// MaxIterations bounds the length of codes produced when locating a
	// point.
	MaxIterations int `yaml:"max-iterations"`
	// Round prints coordinates to six decimal places instead of full
	// precision.
	Round    bool   `yaml:"round"`
	LogLevel string `yaml:"log-level"`
	Output   string `yaml:"output"`
}

func defaultConfig() Config {
	return Config{
		Method:        conversion.CorrectedPlaneGridding.String(),
		MaxIterations: 24,
		Round:         true,
		LogLevel:      logrus.InfoLevel.String(),
		Output:        outputText,
	}
}

// loadConfig reads path over the defaults. Fields missing from the file
// keep their default values; unknown fields are an error.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	f, err := os.Open(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "opening config")
	}
	defer f.Close()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, errors.Wrapf(err, "reading config %s", path)
	}
	return cfg, nil
}

// Validate checks that every field holds a usable value.
func (c Config) Validate() error {
	if _, err := conversion.ParseMethod(c.Method); err != nil {
		return err
	}
	if c.MaxIterations <= 0 {
		return errors.Newf("max-iterations must be positive, got %d", c.MaxIterations)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(err, "log-level")
	}
	switch c.Output {
	case outputText, outputJSON, outputGeoJSON:
	default:
		return errors.Newf("unknown output format %q", c.Output)
	}
	return nil
}

// flagValues holds the values of the persistent flags before they are
// merged into a Config.
type flagValues struct {
	config        string
	method        string
	maxIterations int
	round         bool
	logLevel      string
	output        string
}

func (v *flagValues) register(fs *pflag.FlagSet) {
	def := defaultConfig()
	fs.StringVar(&v.config, "config", "", "YAML configuration file")
	fs.StringVar(&v.method, "method", def.Method, "conversion method: ancestry, uncorrected-plane-gridding, corrected-plane-gridding or r-theta-adjustment")
	fs.IntVar(&v.maxIterations, "max-iterations", def.MaxIterations, "maximum iterations of located codes")
	fs.BoolVar(&v.round, "round", def.Round, "print coordinates to six decimal places")
	fs.StringVar(&v.logLevel, "log-level", def.LogLevel, "logging level")
	fs.StringVarP(&v.output, "output", "o", def.Output, "output format: text, json or geojson")
}

// resolve loads the config file, if any, and applies the flags that were
// set explicitly on top of it.
func (v *flagValues) resolve(fs *pflag.FlagSet) (Config, error) {
	cfg := defaultConfig()
	if v.config != "" {
		var err error
		if cfg, err = loadConfig(v.config); err != nil {
			return Config{}, err
		}
	}
	if fs.Changed("method") {
		cfg.Method = v.method
	}
	if fs.Changed("max-iterations") {
		cfg.MaxIterations = v.maxIterations
	}
	if fs.Changed("round") {
		cfg.Round = v.round
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = v.logLevel
	}
	if fs.Changed("output") {
		cfg.Output = v.output
	}
	return cfg, cfg.Validate()
}
