// Package config loads the run configuration of the listingqa command: a
// YAML file, then LISTINGQA_* environment overrides, then command-line flags
// applied by the caller.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Store kinds.
const (
	StoreLocal = "local"
	StoreMinio = "minio"
	StoreS3    = "s3"
)

// Config is the full run configuration.
type Config struct {
	Data   Data   `yaml:"data"`
	Checks Checks `yaml:"checks"`
	Clean  Clean  `yaml:"clean"`
	Store  Store  `yaml:"store"`
	Run    Run    `yaml:"run"`
}

// Data names the artifacts a check run validates.
type Data struct {
	Artifact  string `yaml:"artifact"`
	Reference string `yaml:"reference"`
}

// Checks carries the check parameters.
type Checks struct {
	KLThreshold float64  `yaml:"kl_threshold"`
	MinPrice    float64  `yaml:"min_price"`
	MaxPrice    float64  `yaml:"max_price"`
	FailFast    bool     `yaml:"fail_fast"`
	Skip        []string `yaml:"skip"`
	Concurrency int      `yaml:"concurrency"`
}

// Clean carries the parameters of the cleaning stage.
type Clean struct {
	InputArtifact     string  `yaml:"input_artifact"`
	OutputArtifact    string  `yaml:"output_artifact"`
	OutputType        string  `yaml:"output_type"`
	OutputDescription string  `yaml:"output_description"`
	MinPrice          float64 `yaml:"min_price"`
	MaxPrice          float64 `yaml:"max_price"`
}

// Store selects and configures the artifact store.
type Store struct {
	Kind      string `yaml:"kind"`
	Root      string `yaml:"root"`
	Endpoint  string `yaml:"endpoint"`
	Bucket    string `yaml:"bucket"`
	Prefix    string `yaml:"prefix"`
	Region    string `yaml:"region"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	UseSSL    bool   `yaml:"use_ssl"`
}

// Run configures logging and run bookkeeping.
type Run struct {
	RecordDir   string `yaml:"record_dir"`
	MetricsFile string `yaml:"metrics_file"`
	LogFormat   string `yaml:"log_format"`
	LogLevel    string `yaml:"log_level"`
	Language    string `yaml:"language"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Data: Data{
			Artifact:  "clean_sample.csv:latest",
			Reference: "clean_sample.csv:reference",
		},
		Checks: Checks{
			KLThreshold: 0.2,
			MinPrice:    10,
			MaxPrice:    350,
			Concurrency: 1,
		},
		Clean: Clean{
			InputArtifact:     "sample.csv:latest",
			OutputArtifact:    "clean_sample.csv",
			OutputType:        "clean_sample",
			OutputDescription: "Data with outliers and null values removed",
			MinPrice:          10,
			MaxPrice:          350,
		},
		Store: Store{Kind: StoreLocal, Root: "artifacts"},
		Run: Run{
			RecordDir: "runs",
			LogFormat: "text",
			LogLevel:  "info",
			Language:  "en",
		},
	}
}

// Decode reads YAML over the defaults. Unknown keys are rejected.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Load reads the YAML file at path (defaults only when path is empty) and
// applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: %w", err)
		}
		cfg, err = Decode(bytes.NewReader(data))
		if err != nil {
			return Config{}, err
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from LISTINGQA_* variables so secrets and
// per-environment settings stay out of the file.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	var errs []error
	num := func(key string, dst *float64) {
		if v, ok := lookup(key); ok && v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				errs = append(errs, fmt.Errorf("config: %s: %w", key, err))
				return
			}
			*dst = f
		}
	}

	str("LISTINGQA_DATA_ARTIFACT", &c.Data.Artifact)
	str("LISTINGQA_DATA_REFERENCE", &c.Data.Reference)
	num("LISTINGQA_KL_THRESHOLD", &c.Checks.KLThreshold)
	num("LISTINGQA_MIN_PRICE", &c.Checks.MinPrice)
	num("LISTINGQA_MAX_PRICE", &c.Checks.MaxPrice)
	str("LISTINGQA_STORE_KIND", &c.Store.Kind)
	str("LISTINGQA_STORE_ROOT", &c.Store.Root)
	str("LISTINGQA_STORE_ENDPOINT", &c.Store.Endpoint)
	str("LISTINGQA_STORE_BUCKET", &c.Store.Bucket)
	str("LISTINGQA_STORE_REGION", &c.Store.Region)
	str("LISTINGQA_STORE_ACCESS_KEY", &c.Store.AccessKey)
	str("LISTINGQA_STORE_SECRET_KEY", &c.Store.SecretKey)
	str("LISTINGQA_LOG_LEVEL", &c.Run.LogLevel)
	str("LISTINGQA_LOG_FORMAT", &c.Run.LogFormat)
	return errors.Join(errs...)
}

// ValidateCheck reports configuration errors that make a check run
// impossible.
func (c Config) ValidateCheck() error {
	var errs []error
	if c.Data.Artifact == "" {
		errs = append(errs, errors.New("data.artifact is required"))
	}
	if c.Data.Reference == "" {
		errs = append(errs, errors.New("data.reference is required"))
	}
	if c.Checks.KLThreshold < 0 {
		errs = append(errs, fmt.Errorf("checks.kl_threshold must be non-negative, got %v", c.Checks.KLThreshold))
	}
	if c.Checks.Concurrency < 0 {
		errs = append(errs, fmt.Errorf("checks.concurrency must be non-negative, got %d", c.Checks.Concurrency))
	}
	errs = append(errs, c.validateCommon()...)
	return wrap(errs)
}

// ValidateClean reports configuration errors that make a cleaning run
// impossible.
func (c Config) ValidateClean() error {
	var errs []error
	required := []struct{ name, value string }{
		{"clean.input_artifact", c.Clean.InputArtifact},
		{"clean.output_artifact", c.Clean.OutputArtifact},
		{"clean.output_type", c.Clean.OutputType},
		{"clean.output_description", c.Clean.OutputDescription},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			errs = append(errs, fmt.Errorf("%s is required", f.name))
		}
	}
	if c.Clean.MinPrice > c.Clean.MaxPrice {
		errs = append(errs, fmt.Errorf("clean.min_price %v exceeds clean.max_price %v", c.Clean.MinPrice, c.Clean.MaxPrice))
	}
	errs = append(errs, c.validateCommon()...)
	return wrap(errs)
}

func (c Config) validateCommon() []error {
	var errs []error
	switch c.Store.Kind {
	case StoreLocal:
		if c.Store.Root == "" {
			errs = append(errs, errors.New("store.root is required for local store"))
		}
	case StoreMinio:
		if c.Store.Endpoint == "" || c.Store.Bucket == "" {
			errs = append(errs, errors.New("store.endpoint and store.bucket are required for minio store"))
		}
	case StoreS3:
		if c.Store.Bucket == "" {
			errs = append(errs, errors.New("store.bucket is required for s3 store"))
		}
	default:
		errs = append(errs, fmt.Errorf("store.kind %q is not one of local, minio, s3", c.Store.Kind))
	}
	switch c.Run.LogFormat {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("run.log_format %q is not one of text, json", c.Run.LogFormat))
	}
	return errs
}

func wrap(errs []error) error {
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}
