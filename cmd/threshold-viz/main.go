// Command threshold-viz sweeps decision thresholds over a set of labelled
// model scores and writes the resulting diagnostic chart.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/thresholdviz/internal/chart"
	"github.com/banshee-data/thresholdviz/internal/config"
	"github.com/banshee-data/thresholdviz/internal/dataset"
	"github.com/banshee-data/thresholdviz/internal/metrics"
)

// Set by the linker at build time.
var (
	version = "dev"
	gitSHA  = "unknown"
)

// outputBase is the file name stem shared by every output.
const outputBase = "threshold_metrics"

// Config holds the command-line configuration.
type Config struct {
	Input      string
	Labels     string
	Scores     string
	ModelName  string
	ConfigPath string
	OutputDir  string
	Version    bool
}

func main() {
	cfg := parseFlags()

	if cfg.Version {
		fmt.Printf("threshold-viz %s (%s)\n", version, gitSHA)
		return
	}

	outputs, err := run(cfg)
	if err != nil {
		log.Fatalf("threshold-viz: %v", err)
	}
	for _, p := range outputs {
		log.Printf("Wrote %s", p)
	}
}

func parseFlags() Config {
	cfg := Config{}

	flag.StringVar(&cfg.Input, "input", "", "CSV file with label and score columns")
	flag.StringVar(&cfg.Labels, "labels", "", "Comma-separated 0/1 labels (alternative to -input)")
	flag.StringVar(&cfg.Scores, "scores", "", "Comma-separated scores aligned with -labels")
	flag.StringVar(&cfg.ModelName, "name", "", "Model name shown in the chart title (overrides config)")
	flag.StringVar(&cfg.ConfigPath, "config", "", "Path to render config JSON")
	flag.StringVar(&cfg.OutputDir, "out", ".", "Output directory")
	flag.BoolVar(&cfg.Version, "version", false, "Print version and exit")

	flag.Parse()

	return cfg
}

// run executes the sweep and writes the outputs, returning their paths.
func run(cfg Config) ([]string, error) {
	rc := config.DefaultRenderConfig()
	if cfg.ConfigPath != "" {
		loaded, err := config.LoadRenderConfig(cfg.ConfigPath)
		if err != nil {
			return nil, err
		}
		rc = loaded
	}
	modelName := rc.GetModelName()
	if cfg.ModelName != "" {
		modelName = cfg.ModelName
	}

	samples, err := loadSamples(cfg)
	if err != nil {
		return nil, err
	}
	log.Printf("Loaded %d samples (%d positive)", samples.Len(), samples.Positives())

	res := metrics.Sweep(samples.Labels, samples.Scores)
	logSweep(samples, res)

	ch, err := chart.Render(res, modelName)
	if err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}

	var outputs []string

	chartPath := filepath.Join(cfg.OutputDir, outputBase+"."+rc.GetFormat())
	w := vg.Length(rc.GetWidthIn()) * vg.Inch
	h := vg.Length(rc.GetHeightIn()) * vg.Inch
	if err := ch.Save(w, h, chartPath); err != nil {
		return nil, fmt.Errorf("save chart: %w", err)
	}
	outputs = append(outputs, chartPath)

	if rc.GetHTML() {
		p := filepath.Join(cfg.OutputDir, outputBase+".html")
		if err := writeFile(p, func(f *os.File) error { return chart.RenderHTML(f, res, modelName) }); err != nil {
			return outputs, err
		}
		outputs = append(outputs, p)
	}

	if rc.GetCSV() {
		p := filepath.Join(cfg.OutputDir, outputBase+".csv")
		if err := writeFile(p, func(f *os.File) error { return metrics.WriteCSV(f, res) }); err != nil {
			return outputs, err
		}
		outputs = append(outputs, p)
	}

	return outputs, nil
}

func loadSamples(cfg Config) (dataset.Samples, error) {
	switch {
	case cfg.Input != "" && (cfg.Labels != "" || cfg.Scores != ""):
		return dataset.Samples{}, errors.New("use either -input or -labels/-scores, not both")
	case cfg.Input != "":
		return dataset.LoadFile(cfg.Input)
	case cfg.Labels != "" || cfg.Scores != "":
		return dataset.FromLists(cfg.Labels, cfg.Scores)
	default:
		return dataset.Samples{}, errors.New("no input: pass -input or -labels and -scores")
	}
}

// logSweep prints one line per threshold. The reported metrics carry
// counts over from lower thresholds; the bracketed counts are for the
// threshold alone.
func logSweep(samples dataset.Samples, res metrics.Result) {
	for i, th := range res.Thresholds {
		cm := metrics.ConfusionAt(samples.Labels, samples.Scores, th)
		log.Printf("threshold=%.2f precision=%.3f recall=%.4f accuracy=%.4f [tp=%d fp=%d tn=%d fn=%d]",
			th, res.Precision[i], res.Recall[i], res.Accuracy[i], cm.TP, cm.FP, cm.TN, cm.FN)
	}
}

func writeFile(path string, write func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
