package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"

	"botlens/internal/config"
	"botlens/internal/jobs"
	"botlens/internal/metrics"
	"botlens/internal/theme"
)

func main() {
	cmd := ""
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}
	switch cmd {
	case "init":
		cmdInit()
	case "extract":
		cmdExtract()
	case "stream":
		cmdStream()
	case "merge":
		cmdMerge()
	case "labels":
		cmdLabels()
	case "dedup":
		cmdDedup()
	case "filter":
		cmdFilter()
	default:
		printHelp()
	}
}

func printHelp() {
	theme.PrintBanner()
	fmt.Println("Usage: botlens <command> [options]")
	fmt.Println("Commands:")
	fmt.Println("  init      Create a config file at ./botlens.yaml")
	fmt.Println("  extract   Extract profile features from a users JSON or CSV file")
	fmt.Println("  stream    Extract profiles and tweet events from a large per-user JSON file")
	fmt.Println("  merge     Merge a tweets CSV into an existing users JSON")
	fmt.Println("  labels    Normalize per-dataset label files to label.tsv")
	fmt.Println("  dedup     Remove user IDs repeated across dataset label files")
	fmt.Println("  filter    Apply deduplicated ID sets to per-dataset feature files")
}

func fail(err error) {
	color.Red("Error: %v", err)
	os.Exit(1)
}

func mustLoadConfig(path string) config.Config {
	cfg, err := config.Load(path)
	if err != nil {
		fail(err)
	}
	metrics.StartServer(cfg.Metrics.Addr)
	return cfg
}

func requireFile(path, what string) {
	if path == "" {
		fail(fmt.Errorf("missing required --%s", what))
	}
	if _, err := os.Stat(path); err != nil {
		fail(fmt.Errorf("input does not exist: %s", path))
	}
}

func cmdInit() {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	path := fs.String("path", "./botlens.yaml", "path to write config")
	_ = fs.Parse(os.Args[2:])
	if err := config.Save(*path, config.Default()); err != nil {
		fail(err)
	}
	abs, _ := filepath.Abs(*path)
	theme.PrintBanner()
	fmt.Println("Config written to:", abs)
}

func cmdExtract() {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	cfgPath := fs.String("config", "./botlens.yaml", "config path")
	input := fs.String("input", "", "input .json or .csv users file")
	output := fs.String("output", "", "output .json path")
	_ = fs.Parse(os.Args[2:])
	cfg := mustLoadConfig(*cfgPath)
	requireFile(*input, "input")
	if *output == "" {
		fail(errors.New("missing required --output"))
	}
	n, err := jobs.ExtractProfiles(*input, *output, cfg.Pipeline.ProgressEvery)
	if err != nil {
		fail(err)
	}
	color.Green("Processed %d users -> %s", n, *output)
}

func cmdStream() {
	fs := flag.NewFlagSet("stream", flag.ExitOnError)
	cfgPath := fs.String("config", "./botlens.yaml", "config path")
	input := fs.String("input", "", "input per-user tweets JSON file")
	output := fs.String("output", "", "output .json path")
	dropText := fs.Bool("drop-text", false, "do not retain tweet text in events")
	_ = fs.Parse(os.Args[2:])
	cfg := mustLoadConfig(*cfgPath)
	requireFile(*input, "input")
	if *output == "" {
		fail(errors.New("missing required --output"))
	}
	keepText := cfg.Pipeline.KeepText && !*dropText
	n, err := jobs.StreamUserTweets(*input, *output, keepText, cfg.Pipeline.ProgressEvery)
	if err != nil {
		fail(err)
	}
	color.Green("Processed %d users -> %s", n, *output)
}

func cmdMerge() {
	fs := flag.NewFlagSet("merge", flag.ExitOnError)
	cfgPath := fs.String("config", "./botlens.yaml", "config path")
	tweetsCSV := fs.String("tweets-csv", "", "input tweets CSV file")
	usersJSON := fs.String("users-json", "", "existing users JSON (read and merged)")
	outJSON := fs.String("out-json", "", "output merged JSON path")
	dropText := fs.Bool("drop-text", false, "do not retain tweet text in events")
	_ = fs.Parse(os.Args[2:])
	cfg := mustLoadConfig(*cfgPath)
	requireFile(*tweetsCSV, "tweets-csv")
	requireFile(*usersJSON, "users-json")
	if *outJSON == "" {
		fail(errors.New("missing required --out-json"))
	}
	keepText := cfg.Pipeline.KeepText && !*dropText
	n, err := jobs.MergeTweets(*tweetsCSV, *usersJSON, *outJSON, keepText)
	if err != nil {
		fail(err)
	}
	color.Green("Merged %d tweet rows -> %s", n, *outJSON)
}

func cmdLabels() {
	fs := flag.NewFlagSet("labels", flag.ExitOnError)
	root := fs.String("root", "./dataset_processed", "root directory of processed datasets")
	_ = fs.Parse(os.Args[2:])
	if err := jobs.NormalizeLabels(*root); err != nil {
		fail(err)
	}
	color.Green("Label normalization complete under %s", *root)
}

func cmdDedup() {
	fs := flag.NewFlagSet("dedup", flag.ExitOnError)
	root := fs.String("root", "./dataset_processed", "root directory of label TSV files")
	_ = fs.Parse(os.Args[2:])
	report, err := jobs.DedupLabels(*root)
	if err != nil {
		fail(err)
	}
	color.Green("Datasets: %d, duplicate ids: %d, removed: %d",
		len(report.Datasets), len(report.Duplicates), report.Removed)
}

func cmdFilter() {
	fs := flag.NewFlagSet("filter", flag.ExitOnError)
	processed := fs.String("processed", "", "processed_datasets.json from a dedup run")
	root := fs.String("root", "./dataset_processed", "root directory of feature JSON files")
	outDir := fs.String("output", "./dataset_filtered", "output directory for filtered files")
	_ = fs.Parse(os.Args[2:])
	requireFile(*processed, "processed")
	n, err := jobs.FilterFeatures(*processed, *root, *outDir)
	if err != nil {
		fail(err)
	}
	color.Green("Kept %d users under %s", n, *outDir)
}
