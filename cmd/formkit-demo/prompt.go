package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formkit/pkg/renderers/tui"
	"github.com/goliatone/go-formkit/pkg/validation"
)

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Fill a form in the terminal",
	Long:  `Prompts every field, submits, and asks again for the fields that fail validation. The accepted record is printed as JSON.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPrompt(cmd)
	},
}

func init() {
	promptCmd.Flags().Int("attempts", 3, "Maximum number of submit attempts")
	rootCmd.AddCommand(promptCmd)
}

func runPrompt(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	f, err := openForm(cmd, func(_ context.Context, values validation.Values) error {
		data, err := json.MarshalIndent(values, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	})
	if err != nil {
		return err
	}
	defer f.Unmount(ctx)

	attempts, _ := cmd.Flags().GetInt("attempts")
	return tui.Run(ctx, f,
		tui.WithPromptDriver(tui.NewSurveyDriver(cmd.ErrOrStderr())),
		tui.WithMaxAttempts(attempts),
		tui.WithTheme(tui.Theme{ErrorPrefix: "✗ "}),
		tui.WithLogger(logger),
	)
}
