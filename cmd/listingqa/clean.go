package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"

	listingqa "github.com/reoring/listingqa"
	"github.com/reoring/listingqa/artifact"
	"github.com/reoring/listingqa/clean"
	"github.com/reoring/listingqa/internal/config"
	"github.com/reoring/listingqa/internal/metrics"
	"github.com/reoring/listingqa/runrecord"
	"github.com/reoring/listingqa/source"
)

func cleanCmd(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("clean", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var cfgPath string
	fs.StringVar(&cfgPath, "config", "", "YAML run configuration")
	fs.String("input_artifact", "", "name of the input artifact (name:version)")
	fs.String("output_artifact", "", "name of the output artifact")
	fs.String("output_type", "", "type of the output artifact")
	fs.String("output_description", "", "description of the output artifact")
	fs.String("min_price", "", "minimum price of listings to keep")
	fs.String("max_price", "", "maximum price of listings to keep")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	cfg, err := loadConfig(fs, cfgPath, applyCleanFlag)
	if err == nil {
		err = cfg.ValidateClean()
	}
	if err != nil {
		errorf(stderr, "%v", err)
		return exitUsage
	}
	inRef, err := artifact.ParseRef(cfg.Clean.InputArtifact)
	if err != nil {
		errorf(stderr, "%v", err)
		return exitUsage
	}

	logger := newLogger(cfg, stderr)
	rec := runrecord.New(runrecord.JobClean)
	rec.Config = cfg.Clean
	rec.Inputs = []string{inRef.String()}
	logger = &listingqa.Logger{Logger: logger.With("run_id", rec.ID)}
	m := metrics.New()

	store, err := openStore(ctx, cfg.Store)
	if err != nil {
		errorf(stderr, "store: %v", err)
		return exitUsage
	}
	reg := artifact.NewRegistry(store)

	logger.InfoContext(ctx, "downloading input artifact", "artifact", inRef.String())
	raw, err := loadDataset(ctx, reg, inRef)
	if err != nil {
		if iss, ok := listingqa.AsIssues(err); ok {
			printIssues(stdout, "load", iss)
			finishRecord(logger, cfg, rec, m)
			return exitFailed
		}
		errorf(stderr, "%v", err)
		return exitUsage
	}
	m.SetDatasetRows("input", raw)

	logger.InfoContext(ctx, "filtering listings", "min_price", cfg.Clean.MinPrice, "max_price", cfg.Clean.MaxPrice)
	out, sum, err := clean.Run(raw, clean.Options{MinPrice: cfg.Clean.MinPrice, MaxPrice: cfg.Clean.MaxPrice})
	if err != nil {
		errorf(stderr, "%v", err)
		return exitUsage
	}
	m.SetDatasetRows("output", out)
	m.AddDropped(clean.ReasonPrice, sum.DroppedPrice)
	m.AddDropped(clean.ReasonGeo, sum.DroppedGeo)
	rec.Summary = map[string]int{
		"input":         sum.Input,
		"dropped_price": sum.DroppedPrice,
		"dropped_geo":   sum.DroppedGeo,
		"output":        sum.Output,
	}

	var buf bytes.Buffer
	if err := source.Write(&buf, out, cfg.Clean.OutputArtifact); err != nil {
		errorf(stderr, "%v", err)
		return exitUsage
	}
	meta, err := reg.Log(ctx, artifact.Artifact{
		Name:        cfg.Clean.OutputArtifact,
		Type:        cfg.Clean.OutputType,
		Description: cfg.Clean.OutputDescription,
		RunID:       rec.ID,
	}, buf.Bytes())
	if err != nil {
		errorf(stderr, "%v", err)
		return exitUsage
	}
	rec.Outputs = []string{meta.Ref().String()}
	rec.Passed = true
	logger.InfoContext(ctx, "output artifact logged",
		"artifact", meta.Ref().String(),
		"rows", sum.Output,
		"dropped_price", sum.DroppedPrice,
		"dropped_geo", sum.DroppedGeo,
	)
	finishRecord(logger, cfg, rec, m)

	fmt.Fprintf(stdout, "%s: kept %d of %d rows (price: -%d, geo: -%d)\n",
		meta.Ref(), sum.Output, sum.Input, sum.DroppedPrice, sum.DroppedGeo)
	return exitOK
}

func applyCleanFlag(cfg *config.Config, name, value string) error {
	var err error
	switch name {
	case "input_artifact":
		cfg.Clean.InputArtifact = value
	case "output_artifact":
		cfg.Clean.OutputArtifact = value
	case "output_type":
		cfg.Clean.OutputType = value
	case "output_description":
		cfg.Clean.OutputDescription = value
	case "min_price":
		cfg.Clean.MinPrice, err = parseFloat(name, value)
	case "max_price":
		cfg.Clean.MaxPrice, err = parseFloat(name, value)
	}
	return err
}
