package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	listingqa "github.com/reoring/listingqa"
	"github.com/reoring/listingqa/i18n"
	"github.com/reoring/listingqa/internal/config"
)

// Exit codes.
const (
	exitOK     = 0
	exitFailed = 1 // at least one check failed or the data could not be decoded
	exitUsage  = 2 // usage, configuration or infrastructure error
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return exitUsage
	}
	switch args[0] {
	case "check":
		return checkCmd(ctx, args[1:], stdout, stderr)
	case "clean":
		return cleanCmd(ctx, args[1:], stdout, stderr)
	case "-h", "-help", "--help", "help":
		usage(stdout)
		return exitOK
	default:
		usage(stderr)
		return exitUsage
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "listingqa CLI\n\nUsage:\n  listingqa check -config run.yaml [-data name:version] [-reference name:version] [-min_price f] [-max_price f] [-kl_threshold f] [-skip a,b] [-fail-fast] [-format text|json]\n  listingqa clean -config run.yaml [--input_artifact name:version] [--output_artifact name] [--output_type t] [--output_description d] [--min_price f] [--max_price f]\n\nExit status is 0 when every check passed, 1 when a check failed and 2 on usage, configuration or infrastructure errors.")
}

func errorf(w io.Writer, format string, a ...any) {
	fmt.Fprintf(w, "error: "+format+"\n", a...)
}

// loadConfig reads the -config file and applies the flags that were set
// explicitly on fs through apply.
func loadConfig(fs *flag.FlagSet, path string, apply func(cfg *config.Config, name, value string) error) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	fs.Visit(func(f *flag.Flag) {
		if err != nil {
			return
		}
		err = apply(&cfg, f.Name, f.Value.String())
	})
	if err != nil {
		return config.Config{}, err
	}
	i18n.SetLanguage(cfg.Run.Language)
	return cfg, nil
}

func newLogger(cfg config.Config, w io.Writer) *listingqa.Logger {
	level := listingqa.ParseLevel(cfg.Run.LogLevel)
	if cfg.Run.LogFormat == "json" {
		return listingqa.NewJSONLogger(w, level)
	}
	return listingqa.NewTextLogger(w, level)
}

func parseFloat(name, v string) (float64, error) {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("-%s: %w", name, err)
	}
	return f, nil
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
