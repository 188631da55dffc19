package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"webmark/internal/preflight"
	"webmark/internal/services"
	"webmark/internal/step"
	"webmark/internal/workflow"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	var modeFlag string
	var fromStdin bool

	cmd := &cobra.Command{
		Use:   "add [url...]",
		Short: "Process URLs into bookmark notes",
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := step.ParseMode(modeFlag)
			if err != nil {
				return err
			}
			urls := append([]string(nil), args...)
			if fromStdin {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				urls = append(urls, workflow.SplitURLs(string(data))...)
			}
			if len(urls) == 0 {
				return errors.New("no urls supplied (pass arguments or --stdin)")
			}
			return runURLBatch(cmd, ctx, urls, mode)
		},
	}

	cmd.Flags().StringVarP(&modeFlag, "mode", "m", "full", "Pipeline mode: full or simple")
	cmd.Flags().BoolVar(&fromStdin, "stdin", false, "Read newline-separated URLs from stdin")
	return cmd
}

func newYAMLCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "yaml [file]",
		Short: "Create a note from a hand-written YAML block",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readRunInput(cmd, args)
			if err != nil {
				return err
			}
			return runYAMLItem(cmd, ctx, raw)
		},
	}
}

func newRunCommand(ctx *commandContext) *cobra.Command {
	var modeFlag string

	cmd := &cobra.Command{
		Use:   "run [file]",
		Short: "Process a file or stdin, dispatching on its shape",
		Long: `Run inspects its input and picks the pipeline: content carrying a
code fence or a document delimiter runs as a YAML bookmark block,
anything else as a newline-separated URL list.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readRunInput(cmd, args)
			if err != nil {
				return err
			}
			if workflow.DetectInput(raw) == workflow.InputYAML {
				return runYAMLItem(cmd, ctx, raw)
			}
			mode, err := step.ParseMode(modeFlag)
			if err != nil {
				return err
			}
			urls := workflow.SplitURLs(raw)
			if len(urls) == 0 {
				return errors.New("input contains no urls")
			}
			return runURLBatch(cmd, ctx, urls, mode)
		},
	}

	cmd.Flags().StringVarP(&modeFlag, "mode", "m", "full", "Pipeline mode for url input: full or simple")
	return cmd
}

func readRunInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("read input file: %w", err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

// ensureRunReadiness runs the essential environment checks before any item
// starts. Warnings print to stderr and processing continues; a hard failure
// aborts the run before it touches the network.
func ensureRunReadiness(cmd *cobra.Command, ctx *commandContext) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	var failures []string
	for _, res := range preflight.RunEssential(cfg) {
		switch {
		case res.Passed:
		case res.Warning:
			fmt.Fprintf(cmd.ErrOrStderr(), "warn: %s: %s\n", res.Name, res.Detail)
		default:
			failures = append(failures, fmt.Sprintf("%s: %s", res.Name, res.Detail))
		}
	}
	if len(failures) > 0 {
		return fmt.Errorf("environment checks failed: %s", strings.Join(failures, "; "))
	}
	return nil
}

func runURLBatch(cmd *cobra.Command, ctx *commandContext, urls []string, mode step.Mode) error {
	if err := ensureRunReadiness(cmd, ctx); err != nil {
		return err
	}
	engine, cleanup, err := ctx.buildEngine(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer cleanup()

	runCtx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	out := cmd.OutOrStdout()
	pres := newPresenter(out, engine.Queue())
	defer pres.close()

	stopSignals := watchInterrupts(engine.Coordinator(), cancel, cmd.ErrOrStderr())
	defer stopSignals()

	fmt.Fprintf(out, "Processing %s (%s pipeline)\n", countNoun(len(urls), "url", "urls"), mode)
	result, err := engine.RunURLBatch(runCtx, urls, mode)
	return finishBatch(out, result, err)
}

func finishBatch(out io.Writer, result *workflow.BatchResult, err error) error {
	switch {
	case err == nil:
	case errors.Is(err, services.ErrCancelled) || errors.Is(err, context.Canceled):
		if result != nil {
			processed := result.Succeeded + result.Failed
			fmt.Fprintf(out, "Run cancelled: %d of %d items processed before stopping\n", processed, result.Total)
		} else {
			fmt.Fprintln(out, "Run cancelled")
		}
		return &exitCodeError{code: exitInterrupted}
	default:
		return err
	}

	if result.Failed > 0 {
		fmt.Fprintf(out, "Finished with failures: %d succeeded, %d failed (see `webmark history`)\n",
			result.Succeeded, result.Failed)
		return &exitCodeError{code: exitPartialFailure}
	}
	fmt.Fprintf(out, "Finished: %s saved\n", countNoun(result.Succeeded, "note", "notes"))
	return nil
}

func runYAMLItem(cmd *cobra.Command, ctx *commandContext, raw string) error {
	if err := ensureRunReadiness(cmd, ctx); err != nil {
		return err
	}
	engine, cleanup, err := ctx.buildEngine(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer cleanup()

	runCtx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	out := cmd.OutOrStdout()
	pres := newPresenter(out, engine.Queue())
	defer pres.close()

	stopSignals := watchInterrupts(engine.Coordinator(), cancel, cmd.ErrOrStderr())
	defer stopSignals()

	item, err := engine.RunYAML(runCtx, raw)
	switch {
	case err == nil:
	case errors.Is(err, services.ErrCancelled) || errors.Is(err, context.Canceled):
		fmt.Fprintln(out, "Run cancelled")
		return &exitCodeError{code: exitInterrupted}
	default:
		return err
	}

	fmt.Fprintf(out, "Saved %q to %s\n", item.Title, item.NotePath)
	return nil
}

// watchInterrupts wires SIGINT/SIGTERM into the cancellation contract: the
// first signal requests a stop at the next step boundary, a second aborts
// in-flight requests by cancelling the run context.
func watchInterrupts(coord *workflow.Coordinator, cancel context.CancelFunc, errOut io.Writer) func() {
	signals := make(chan os.Signal, 2)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		requested := false
		for {
			select {
			case <-done:
				return
			case <-signals:
				if !requested {
					requested = true
					coord.RequestCancellation(coord.CurrentOwner())
					fmt.Fprintln(errOut, "Stopping at the next step boundary (press Ctrl-C again to abort now)")
					continue
				}
				cancel()
			}
		}
	}()

	return func() {
		signal.Stop(signals)
		close(done)
	}
}

func countNoun(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}
