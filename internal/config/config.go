// Package config loads the run configuration of the dal command.
//
// Values are resolved in viper's order: command-line flags, DAL_*
// environment variables (dots become underscores, e.g. DAL_TRAIN_C), the
// config file and finally the defaults below. The merged result is checked
// with validator struct tags.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/born-ml/dal/internal/kernel"
	"github.com/born-ml/dal/internal/logging"
	"github.com/born-ml/dal/internal/svm"
	"github.com/born-ml/dal/internal/table"
)

// EnvPrefix prefixes environment overrides.
const EnvPrefix = "DAL"

// Config is the top-level run configuration.
type Config struct {
	Log     logging.Config `mapstructure:"log"`
	Train   TrainConfig    `mapstructure:"train"`
	Data    DataConfig     `mapstructure:"data"`
	Metrics MetricsConfig  `mapstructure:"metrics"`
}

// TrainConfig mirrors svm.Descriptor.
type TrainConfig struct {
	Method            string       `mapstructure:"method"              validate:"oneof=thunder smo"`
	Kernel            KernelConfig `mapstructure:"kernel"`
	C                 float64      `mapstructure:"c"                   validate:"gt=0"`
	AccuracyThreshold float64      `mapstructure:"accuracy_threshold"  validate:"gt=0"`
	MaxIterationCount int          `mapstructure:"max_iteration_count" validate:"gte=1"`
	CacheSize         int          `mapstructure:"cache_size"          validate:"gte=0"`
	Tau               float64      `mapstructure:"tau"                 validate:"gt=0"`
	Shrinking         bool         `mapstructure:"shrinking"`
	WorkingSetSize    int          `mapstructure:"working_set_size"    validate:"gte=0,ne=1"`
	NumWorkers        int          `mapstructure:"num_workers"         validate:"gte=0"`
}

// KernelConfig selects the kernel function. Scale and Shift apply to the
// linear kernel, Sigma to the RBF kernel.
type KernelConfig struct {
	Type  string  `mapstructure:"type"  validate:"oneof=linear rbf"`
	Scale float64 `mapstructure:"scale" validate:"gt=0"`
	Shift float64 `mapstructure:"shift" validate:"gte=0"`
	Sigma float64 `mapstructure:"sigma" validate:"gt=0"`
}

// DataConfig holds inline tables. Weights and Query are optional.
type DataConfig struct {
	Train   [][]float64 `mapstructure:"train"   validate:"required,min=1"`
	Labels  []float64   `mapstructure:"labels"  validate:"required,min=1"`
	Weights []float64   `mapstructure:"weights"`
	Query   [][]float64 `mapstructure:"query"`
}

// MetricsConfig controls the Prometheus text dump written after a run.
type MetricsConfig struct {
	Output string `mapstructure:"output"`
}

// Flags returns the flag set understood by Load.
func Flags(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.StringP("config", "c", "", "path to the run configuration (yaml, json or toml)")
	fs.String("log-level", "", "log level: debug, info, warn or error")
	fs.String("metrics-out", "", "write Prometheus metrics in text format to this file")
	fs.String("method", "", "solver method: thunder or smo")
	return fs
}

// Load reads the file at path, applies environment and flag overrides from
// fs (which may be nil) and validates the result.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for key, flag := range map[string]string{
			"log.level":      "log-level",
			"metrics.output": "metrics-out",
			"train.method":   "method",
		} {
			if f := fs.Lookup(flag); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("config: bind flag %s: %w", flag, err)
				}
			}
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	logDefaults := logging.DefaultConfig()
	v.SetDefault("log.level", logDefaults.Level)
	v.SetDefault("log.format", logDefaults.Format)
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size", logDefaults.MaxSize)
	v.SetDefault("log.max_backups", logDefaults.MaxBackups)
	v.SetDefault("log.max_age", logDefaults.MaxAge)
	v.SetDefault("log.compress", false)

	v.SetDefault("train.method", svm.MethodThunder.String())
	v.SetDefault("train.kernel.type", kernel.KindLinear.String())
	v.SetDefault("train.kernel.scale", 1.0)
	v.SetDefault("train.kernel.shift", 0.0)
	v.SetDefault("train.kernel.sigma", 1.0)
	v.SetDefault("train.c", svm.DefaultC)
	v.SetDefault("train.accuracy_threshold", svm.DefaultAccuracyThreshold)
	v.SetDefault("train.max_iteration_count", svm.DefaultMaxIterationCount)
	v.SetDefault("train.cache_size", svm.DefaultCacheSize)
	v.SetDefault("train.tau", svm.DefaultTau)
	v.SetDefault("train.shrinking", true)
	v.SetDefault("train.working_set_size", 0)
	v.SetDefault("train.num_workers", 0)

	v.SetDefault("metrics.output", "")
}

// Kernel builds the configured kernel function.
func (k KernelConfig) Kernel() (kernel.Kernel, error) {
	kind, err := kernel.ParseKind(k.Type)
	if err != nil {
		return nil, err
	}
	switch kind {
	case kernel.KindRBF:
		return kernel.NewRBF(k.Sigma), nil
	default:
		return kernel.Linear{Scale: k.Scale, Shift: k.Shift}, nil
	}
}

// Descriptor converts the training section to an svm.Descriptor.
func (t TrainConfig) Descriptor() (svm.Descriptor, error) {
	k, err := t.Kernel.Kernel()
	if err != nil {
		return svm.Descriptor{}, err
	}
	method, err := svm.ParseMethod(t.Method)
	if err != nil {
		return svm.Descriptor{}, err
	}

	desc := svm.NewDescriptor(k)
	desc.Method = method
	desc.C = t.C
	desc.AccuracyThreshold = t.AccuracyThreshold
	desc.MaxIterationCount = t.MaxIterationCount
	desc.CacheSize = t.CacheSize
	desc.Tau = t.Tau
	desc.Shrinking = t.Shrinking
	desc.WorkingSetSize = t.WorkingSetSize
	desc.NumWorkers = t.NumWorkers
	return desc, desc.Validate()
}

// Tables converts the inline data to tables. weights and query are nil when
// not configured.
func (d DataConfig) Tables() (x, labels, weights, query table.Table, err error) {
	train, err := table.FromRows(d.Train)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("config: train data: %w", err)
	}
	x = train
	labels = table.NewColumn(d.Labels)
	if len(d.Weights) > 0 {
		weights = table.NewColumn(d.Weights)
	}
	if len(d.Query) > 0 {
		q, err := table.FromRows(d.Query)
		if err != nil {
			return nil, nil, nil, nil, fmt.Errorf("config: query data: %w", err)
		}
		query = q
	}
	return x, labels, weights, query, nil
}
