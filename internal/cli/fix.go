package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"reqfix/internal/app"
)

type fixOptions struct {
	Scan      string
	Root      string
	OutputDir string
	Patterns  []string
	DryRun    bool
}

func newFixCommand() *cobra.Command {
	opts := fixOptions{}
	cmd := &cobra.Command{
		Use:   "fix",
		Short: "Apply remediation plans from a scan file to manifest files",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFix(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Scan, "scan", "", "Scan file with fixable units")
	cmd.Flags().StringVar(&opts.Root, "root", "", "Workspace root override")
	cmd.Flags().StringVar(&opts.OutputDir, "output", "out", "Report output directory")
	cmd.Flags().StringSliceVar(&opts.Patterns, "pattern", nil, "Supported manifest name pattern(s)")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Compute changes without writing files")

	_ = viper.BindPFlag("scan", cmd.Flags().Lookup("scan"))
	_ = viper.BindPFlag("root", cmd.Flags().Lookup("root"))
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("patterns", cmd.Flags().Lookup("pattern"))
	_ = viper.BindPFlag("dry_run", cmd.Flags().Lookup("dry-run"))

	return cmd
}

func runFix(ctx context.Context, cmd *cobra.Command, opts fixOptions) error {
	service := newAppService()
	result, err := service.Fix(ctx, app.FixRequest{
		ScanPath:  resolveString(cmd, opts.Scan, "scan", "scan"),
		Root:      resolveString(cmd, opts.Root, "root", "root"),
		OutputDir: resolveString(cmd, opts.OutputDir, "output", "output"),
		Patterns:  resolveStrings(cmd, opts.Patterns, "patterns", "pattern"),
		DryRun:    resolveBool(cmd, opts.DryRun, "dry_run", "dry-run"),
	})
	if err != nil {
		return err
	}
	mode := ""
	if result.DryRun {
		mode = " (dry run)"
	}
	fmt.Printf("fixed: %d succeeded, %d failed, %d skipped%s\n",
		len(result.Batch.Succeeded), len(result.Batch.Failed), len(result.Batch.Skipped), mode)
	return nil
}
