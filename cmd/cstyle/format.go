package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"cstyle/internal/driver"
	"cstyle/internal/format"
	"cstyle/internal/observ"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [flags] [path...]",
	Short: "Rewrite C sources into canonical style",
	Long: `Rewrite C sources into canonical style: section banners become the fixed
/***...*** label ***...***/ form, a blank line separates function bodies from
the doc comment of the next function, and return statements inside function
bodies get a blank line above them.

Paths may be files or directories (walked recursively for .c files). With no
paths, the file list comes from the [style] section of cstyle.toml.`,
	Args: cobra.ArbitraryArgs,
	RunE: runFmt,
}

func init() {
	fmtCmd.Flags().Bool("check", false, "report files that need rewriting without touching them")
	fmtCmd.Flags().Bool("stdout", false, "print rewritten content to stdout instead of rewriting files")
	fmtCmd.Flags().String("format", "text", "output format (text|json|yaml)")
	fmtCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	fmtCmd.Flags().String("ui", "auto", "interactive progress display (auto|on|off)")
	fmtCmd.Flags().Bool("cache", false, "enable persistent clean-verdict cache (experimental)")
	fmtCmd.Flags().String("manifest", "", "path to cstyle.toml (default: search upward from cwd)")
}

func runFmt(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()

	check, err := cmd.Flags().GetBool("check")
	if err != nil {
		return fmt.Errorf("failed to get check flag: %w", err)
	}

	writeToStdout, err := cmd.Flags().GetBool("stdout")
	if err != nil {
		return fmt.Errorf("failed to get stdout flag: %w", err)
	}

	outputFormat, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}

	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}

	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return fmt.Errorf("failed to get cache flag: %w", err)
	}

	if writeToStdout && check {
		return fmt.Errorf("fmt: --stdout cannot be used with --check")
	}
	if writeToStdout && outputFormat != "text" {
		return fmt.Errorf("fmt: --stdout is only supported with text output")
	}
	switch outputFormat {
	case "text", "json", "yaml":
		// supported
	default:
		return fmt.Errorf("fmt: unsupported output format %q", outputFormat)
	}

	mode, err := readUIMode(uiFlag)
	if err != nil {
		return fmt.Errorf("fmt: %w", err)
	}

	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	useColor := colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stdout))

	cfg, err := resolveRunConfig(cmd, args)
	if err != nil {
		return err
	}

	opts := driver.FormatOptions{Check: check, Stdout: writeToStdout, Jobs: jobs}
	if useCache {
		cache, cacheErr := driver.OpenCleanCache("cstyle")
		if cacheErr != nil {
			return fmt.Errorf("fmt: failed to open cache: %w", cacheErr)
		}
		opts.Cache = cache
	}
	var timer *observ.Timer
	if showTimings {
		timer = observ.NewTimer()
		opts.Timer = timer
	}

	var results []driver.Result
	var summary driver.Summary
	if shouldUseTUI(mode) && outputFormat == "text" && !writeToStdout && !quiet {
		results, summary, err = runFmtWithUI(cmd.Context(), fmtTitle(check), cfg, opts)
	} else {
		results, summary, err = driver.FormatFiles(cmd.Context(), cfg, opts)
	}
	if err != nil {
		return err
	}

	switch outputFormat {
	case "text":
		if writeToStdout {
			var hasErrors bool
			renderFmtStdout(results, &hasErrors)
			if hasErrors {
				return fmt.Errorf("fmt: failed to rewrite some files")
			}
			return nil
		}
		renderFmtText(results, summary, check, quiet, useColor)
		if showTimings && timer != nil {
			fmt.Fprint(os.Stderr, timer.Summary())
		}
	case "json":
		if err := renderFmtJSON(buildFmtPayload(results, summary, check, timer)); err != nil {
			return err
		}
	case "yaml":
		if err := renderFmtYAML(buildFmtPayload(results, summary, check, timer)); err != nil {
			return err
		}
	}

	if summary.Failures() > 0 {
		return fmt.Errorf("fmt: failed to rewrite some files")
	}
	if check && summary.Rewritten > 0 {
		return fmt.Errorf("fmt: style changes required")
	}
	return nil
}

func fmtTitle(check bool) string {
	if check {
		return "checking C style"
	}
	return "rewriting C sources"
}

func renderFmtStdout(results []driver.Result, hasErrors *bool) {
	for i := range results {
		res := &results[i]
		if res.Err != nil {
			*hasErrors = true
			fmt.Fprintf(os.Stderr, "fmt: %s: %v\n", res.Path, res.Err)
			continue
		}

		_, _ = os.Stdout.Write(res.Formatted)
	}
}

func renderFmtText(results []driver.Result, summary driver.Summary, check, quiet, useColor bool) {
	paint := func(attr color.Attribute, s string) string {
		if !useColor {
			return s
		}
		return color.New(attr).Sprint(s)
	}

	for i := range results {
		res := &results[i]
		if res.Err != nil {
			fmt.Fprintf(os.Stderr, "fmt: %s: %v\n", res.Path, res.Err)
			continue
		}
		if res.Outcome != driver.OutcomeRewritten || quiet {
			continue
		}

		if check {
			// В режиме проверки печатаем только пути, по одному на строку.
			_, printErr := fmt.Fprintln(os.Stdout, res.Path)
			if printErr != nil {
				panic(printErr)
			}
			continue
		}

		line := fmt.Sprintf("%s %s", paint(color.FgGreen, "rewrote"), res.Path)
		if res.Report.Total() > 0 {
			line += " (" + res.Report.String() + ")"
		}
		_, printErr := fmt.Fprintln(os.Stdout, line)
		if printErr != nil {
			panic(printErr)
		}
	}

	if !quiet && !check {
		fmt.Fprintln(os.Stdout, summary.String())
	}
}

type fmtFilePayload struct {
	Path     string        `json:"path" yaml:"path"`
	Outcome  string        `json:"outcome" yaml:"outcome"`
	Report   format.Report `json:"report" yaml:"report"`
	CacheHit bool          `json:"cache_hit,omitempty" yaml:"cache_hit,omitempty"`
	Error    string        `json:"error,omitempty" yaml:"error,omitempty"`
}

type fmtPayload struct {
	Check   bool             `json:"check" yaml:"check"`
	Files   []fmtFilePayload `json:"files" yaml:"files"`
	Summary driver.Summary   `json:"summary" yaml:"summary"`
	Timings *observ.Report   `json:"timings,omitempty" yaml:"timings,omitempty"`
}

func buildFmtPayload(results []driver.Result, summary driver.Summary, check bool, timer *observ.Timer) fmtPayload {
	files := make([]fmtFilePayload, 0, len(results))
	for i := range results {
		res := &results[i]
		fp := fmtFilePayload{
			Path:     res.Path,
			Outcome:  res.Outcome.String(),
			Report:   res.Report,
			CacheHit: res.CacheHit,
		}
		if res.Err != nil {
			fp.Error = res.Err.Error()
		}
		files = append(files, fp)
	}
	payload := fmtPayload{Check: check, Files: files, Summary: summary}
	if timer != nil {
		report := timer.Report()
		payload.Timings = &report
	}
	return payload
}

func renderFmtJSON(payload fmtPayload) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}

func renderFmtYAML(payload fmtPayload) error {
	encoder := yaml.NewEncoder(os.Stdout)
	encoder.SetIndent(2)
	defer func() {
		_ = encoder.Close()
	}()
	return encoder.Encode(payload)
}
