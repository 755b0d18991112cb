// Package main provides the dal command: train a binary SVM from a run
// configuration and print the resulting model as JSON.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"

	"github.com/born-ml/dal/internal/config"
	"github.com/born-ml/dal/internal/logging"
	"github.com/born-ml/dal/internal/metrics"
	"github.com/born-ml/dal/internal/svm"
)

const version = "v0.1.0-dev"

// report is the JSON document printed by "dal train".
type report struct {
	Method             string    `json:"method"`
	Kernel             string    `json:"kernel"`
	SupportVectorCount int       `json:"support_vector_count"`
	SupportIndices     []int     `json:"support_indices"`
	Coeffs             []float64 `json:"coeffs"`
	Bias               float64   `json:"bias"`
	Iterations         int       `json:"iterations"`
	Converged          bool      `json:"converged"`
	Warning            string    `json:"warning,omitempty"`
	DecisionFunction   []float64 `json:"decision_function,omitempty"`
	Labels             []float64 `json:"labels,omitempty"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return 2
	}

	switch args[0] {
	case "version":
		fmt.Fprintf(stdout, "dal %s\n", version)
		return 0
	case "train":
		if err := train(args[1:], stdout, stderr); err != nil {
			fmt.Fprintf(stderr, "dal: %v\n", err)
			return 1
		}
		return 0
	case "help", "-h", "--help":
		usage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "dal: unknown command %q\n", args[0])
		usage(stderr)
		return 2
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: dal <command> [flags]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  train      Train a binary SVM from --config and print the model")
	fmt.Fprintln(w, "  version    Show version")
}

func train(args []string, stdout, stderr io.Writer) error {
	fs := config.Flags("dal train")
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	path, err := fs.GetString("config")
	if err != nil {
		return err
	}
	if path == "" {
		return errors.New("train: --config is required")
	}

	cfg, err := config.Load(path, fs)
	if err != nil {
		return err
	}

	log, closer := logging.New(cfg.Log, stderr)
	defer closer.Close()

	desc, err := cfg.Train.Descriptor()
	if err != nil {
		return err
	}
	x, labels, weights, query, err := cfg.Data.Tables()
	if err != nil {
		return err
	}

	reg := metrics.NewRegistry()
	collector, err := metrics.NewCollector(reg)
	if err != nil {
		return err
	}
	desc.Logger = log
	desc.Observer = collector

	trained, err := svm.Train(desc, x, labels, weights)
	if err != nil {
		return fmt.Errorf("train: %w", err)
	}

	out := report{
		Method:             desc.Method.String(),
		Kernel:             desc.Kernel.Kind().String(),
		SupportVectorCount: trained.SupportVectorCount,
		SupportIndices:     trained.SupportIndices,
		Coeffs:             trained.Coeffs,
		Bias:               trained.Bias,
		Iterations:         trained.Iterations,
		Converged:          trained.Converged,
	}
	if trained.Warning != nil {
		out.Warning = trained.Warning.Error()
	}

	if query != nil {
		inferred, err := svm.Infer(desc, trained.Model, query)
		if err != nil {
			return fmt.Errorf("infer: %w", err)
		}
		out.DecisionFunction = inferred.DecisionFunction
		out.Labels = inferred.Labels
	}

	if cfg.Metrics.Output != "" {
		if err := prometheus.WriteToTextfile(cfg.Metrics.Output, reg); err != nil {
			return fmt.Errorf("metrics: %w", err)
		}
		log.Info("metrics written", slog.String("path", cfg.Metrics.Output))
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
