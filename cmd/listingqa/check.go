package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"slices"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"

	listingqa "github.com/reoring/listingqa"
	"github.com/reoring/listingqa/artifact"
	"github.com/reoring/listingqa/internal/config"
	"github.com/reoring/listingqa/internal/metrics"
	"github.com/reoring/listingqa/runrecord"
)

func checkCmd(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		cfgPath string
		format  string
	)
	fs.StringVar(&cfgPath, "config", "", "YAML run configuration")
	fs.StringVar(&format, "format", "text", "report format: text or json")
	fs.String("data", "", "candidate dataset artifact (name:version)")
	fs.String("reference", "", "reference dataset artifact (name:version)")
	fs.String("min_price", "", "minimum accepted price")
	fs.String("max_price", "", "maximum accepted price")
	fs.String("kl_threshold", "", "exclusive upper bound on the neighbourhood_group KL divergence")
	fs.String("skip", "", "comma-separated check names to skip")
	fs.Int("concurrency", 0, "number of checks run at once")
	fs.Bool("fail-fast", false, "stop scanning checks at their first violating row")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if format != "text" && format != "json" {
		errorf(stderr, "-format must be text or json, got %q", format)
		return exitUsage
	}

	cfg, err := loadConfig(fs, cfgPath, applyCheckFlag)
	if err == nil {
		err = cfg.ValidateCheck()
	}
	if err != nil {
		errorf(stderr, "%v", err)
		return exitUsage
	}
	dataRef, err := artifact.ParseRef(cfg.Data.Artifact)
	if err != nil {
		errorf(stderr, "%v", err)
		return exitUsage
	}
	refRef, err := artifact.ParseRef(cfg.Data.Reference)
	if err != nil {
		errorf(stderr, "%v", err)
		return exitUsage
	}

	logger := newLogger(cfg, stderr)
	rec := runrecord.New(runrecord.JobCheck)
	rec.Config = cfg.Checks
	rec.Inputs = []string{dataRef.String(), refRef.String()}
	logger = &listingqa.Logger{Logger: logger.With("run_id", rec.ID)}
	m := metrics.New()

	store, err := openStore(ctx, cfg.Store)
	if err != nil {
		errorf(stderr, "store: %v", err)
		return exitUsage
	}
	reg := artifact.NewRegistry(store)

	var data, ref *listingqa.Dataset
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		d, err := loadDataset(gctx, reg, dataRef)
		data = d
		return err
	})
	g.Go(func() error {
		d, err := loadDataset(gctx, reg, refRef)
		ref = d
		return err
	})
	if err := g.Wait(); err != nil {
		if iss, ok := listingqa.AsIssues(err); ok {
			printIssues(stdout, "load", iss)
			logger.ErrorContext(ctx, "dataset could not be decoded", "issues", len(iss), "reason", iss.Error())
			finishRecord(logger, cfg, rec, m)
			return exitFailed
		}
		errorf(stderr, "%v", err)
		return exitUsage
	}
	m.SetDatasetRows("data", data)
	m.SetDatasetRows("reference", ref)
	logger.WithDataset(data).InfoContext(ctx, "datasets loaded", "reference_rows", ref.Len())

	in := listingqa.Input{
		Data:      data,
		Reference: ref,
		Params: listingqa.Params{
			MinPrice:    cfg.Checks.MinPrice,
			MaxPrice:    cfg.Checks.MaxPrice,
			KLThreshold: cfg.Checks.KLThreshold,
		},
	}
	rep := listingqa.Run(ctx, listingqa.DefaultChecks(), in, listingqa.RunOpt{
		FailFast:    cfg.Checks.FailFast,
		Concurrency: cfg.Checks.Concurrency,
		Skip:        cfg.Checks.Skip,
		Logger:      logger,
		Observer:    m,
	})
	if !slices.Contains(cfg.Checks.Skip, listingqa.NameSimilarNeighbourhoodDist) {
		m.SetDivergence(refRef.String(), listingqa.CompareNeighbourhoodDistributions(data, ref).Divergence)
	}
	rec.AddReport(rep)
	finishRecord(logger, cfg, rec, m)

	if err := writeReport(stdout, format, rec); err != nil {
		errorf(stderr, "report: %v", err)
		return exitUsage
	}
	for _, res := range rep.Results {
		if res.Err != nil {
			return exitUsage
		}
	}
	if !rep.Passed() {
		return exitFailed
	}
	return exitOK
}

func applyCheckFlag(cfg *config.Config, name, value string) error {
	var err error
	switch name {
	case "data":
		cfg.Data.Artifact = value
	case "reference":
		cfg.Data.Reference = value
	case "min_price":
		cfg.Checks.MinPrice, err = parseFloat(name, value)
	case "max_price":
		cfg.Checks.MaxPrice, err = parseFloat(name, value)
	case "kl_threshold":
		cfg.Checks.KLThreshold, err = parseFloat(name, value)
	case "skip":
		cfg.Checks.Skip = splitCSV(value)
	case "concurrency":
		cfg.Checks.Concurrency, err = strconv.Atoi(value)
	case "fail-fast":
		cfg.Checks.FailFast, err = strconv.ParseBool(value)
	}
	return err
}

// finishRecord writes the run record and the metrics file. Failures are
// logged and do not change the outcome of the run.
func finishRecord(logger *listingqa.Logger, cfg config.Config, rec *runrecord.Record, m *metrics.Metrics) {
	rec.Finish()
	if cfg.Run.RecordDir != "" {
		path, err := rec.Write(cfg.Run.RecordDir)
		if err != nil {
			logger.Error("run record not written", "error", err)
		} else {
			logger.Debug("run record written", "path", path)
		}
	}
	if cfg.Run.MetricsFile != "" {
		if err := m.WriteFile(cfg.Run.MetricsFile); err != nil {
			logger.Error("metrics not written", "error", err)
		}
	}
}

func writeReport(w io.Writer, format string, rec *runrecord.Record) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	}
	for _, res := range rec.Results {
		fmt.Fprintf(w, "%-24s %-8s %s\n", res.Name, res.Outcome, time.Duration(res.DurationMS*float64(time.Millisecond)).Round(time.Microsecond))
		if res.Error != "" {
			fmt.Fprintf(w, "  error: %s\n", res.Error)
		}
		for _, it := range res.Issues {
			fmt.Fprintf(w, "  %s at %s: %s\n", it.Code, it.Path, it.Message)
			if it.Hint != "" {
				fmt.Fprintf(w, "    hint: %s\n", it.Hint)
			}
		}
	}
	status := "PASSED"
	if !rec.Passed {
		status = "FAILED"
	}
	_, err := fmt.Fprintf(w, "%s (run %s)\n", status, rec.ID)
	return err
}
