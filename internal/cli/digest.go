package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// NewDigestCmd creates the 'digest' command: deliver summaries once, or
// keep running on the configured schedule.
func NewDigestCmd(factory AppFactory) *cobra.Command {
	var follow bool

	cmd := &cobra.Command{
		Use:   "digest",
		Short: "Send dashboard digests to the configured channel",
		Example: `  browselens digest
  browselens digest --follow`,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := factory()
			if err != nil {
				return err
			}
			defer application.Close()

			job := application.Digest()
			if job == nil {
				return fmt.Errorf("digest is not configured: set telegram credentials and digest userIds")
			}

			ctx := cmd.Context()
			if !follow {
				job.Run(ctx)
				return nil
			}

			if err := job.Start(ctx); err != nil {
				return err
			}
			defer job.Stop(ctx)

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
			select {
			case <-stop:
			case <-ctx.Done():
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep running and deliver on the configured interval")

	return cmd
}
