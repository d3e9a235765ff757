package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"reqfix/internal/app"
)

type inspectOptions struct {
	OutputDir string
}

func newInspectCommand() *cobra.Command {
	opts := inspectOptions{}
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Inspect a written fix report",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInspect(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.OutputDir, "output", "out", "Report output directory")
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	return cmd
}

func runInspect(cmd *cobra.Command, opts inspectOptions) error {
	service := newAppService()
	result, err := service.Inspect(app.InspectRequest{
		OutputDir: resolveString(cmd, opts.OutputDir, "output", "output"),
	})
	if err != nil {
		return err
	}

	if result.GeneratedAt != "" {
		fmt.Printf("generated at: %s\n", result.GeneratedAt)
	}
	for _, outcome := range result.Outcomes {
		fmt.Printf("%s: %d units\n", outcome.Status, outcome.Count)
		if len(outcome.Files) > 0 {
			fmt.Printf("  %s\n", strings.Join(outcome.Files, ", "))
		}
	}
	fmt.Printf("changes: %d\n", len(result.Changes))
	for _, change := range result.Changes {
		fmt.Printf("- %s: %s\n", change.File, change.Message)
	}
	return nil
}
