package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formkit/pkg/form"
	"github.com/goliatone/go-formkit/pkg/metrics"
	"github.com/goliatone/go-formkit/pkg/validation"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a form as HTML",
	Long:  `Applies --set assignments, optionally submits or resets, and prints the resulting HTML to stdout.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRender(cmd)
	},
}

func init() {
	renderCmd.Flags().StringArray("set", nil, "Field assignment name=value (repeatable)")
	renderCmd.Flags().Bool("submit", false, "Submit after applying assignments")
	renderCmd.Flags().Bool("reset", false, "Reset after applying assignments")
	renderCmd.Flags().Bool("metrics", false, "Write form metrics to stderr")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	collector := metrics.New("")
	registry := prometheus.NewRegistry()
	registry.MustRegister(collector)

	f, err := openForm(cmd, func(_ context.Context, values validation.Values) error {
		return printRecord(cmd, values)
	}, form.WithHooks(collector.Hooks()))
	if err != nil {
		return err
	}
	defer f.Unmount(ctx)

	assignments, _ := cmd.Flags().GetStringArray("set")
	if err := applyAssignments(ctx, f, assignments); err != nil {
		return err
	}

	if submit, _ := cmd.Flags().GetBool("submit"); submit {
		ok, err := f.Submit(ctx)
		if err != nil {
			return err
		}
		if !ok {
			logger.Info("submit rejected", "form", f.ID(), "fields", f.Errors().Fields())
		}
	}
	if reset, _ := cmd.Flags().GetBool("reset"); reset {
		if err := f.Reset(ctx); err != nil {
			return err
		}
	}

	out, err := f.Render(ctx)
	if err != nil {
		return err
	}
	if _, err := cmd.OutOrStdout().Write(append(out, '\n')); err != nil {
		return err
	}

	if show, _ := cmd.Flags().GetBool("metrics"); show {
		return writeMetrics(registry)
	}
	return nil
}

// printRecord writes an accepted record to stderr so stdout stays HTML.
func printRecord(cmd *cobra.Command, values validation.Values) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.ErrOrStderr(), "submitted: %s\n", data)
	return err
}

func writeMetrics(registry *prometheus.Registry) error {
	families, err := registry.Gather()
	if err != nil {
		return err
	}
	encoder := expfmt.NewEncoder(os.Stderr, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, family := range families {
		if err := encoder.Encode(family); err != nil {
			return err
		}
	}
	return nil
}
