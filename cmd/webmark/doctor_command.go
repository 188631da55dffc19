package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"webmark/internal/notifications"
	"webmark/internal/preflight"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	var sendTestNotification bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check directories, credentials, and service reachability",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			for _, line := range renderSectionHeader("Preflight", colorize) {
				fmt.Fprintln(out, line)
			}
			results := preflight.RunAll(cmd.Context(), cfg)
			for _, res := range results {
				kind := statusOK
				switch {
				case !res.Passed && res.Warning:
					kind = statusWarn
				case !res.Passed:
					kind = statusError
				}
				fmt.Fprintln(out, renderStatusLine(res.Name, kind, res.Detail, colorize))
			}

			if sendTestNotification {
				fmt.Fprintln(out, notificationStatusLine(cmd, ctx, colorize))
			}

			if preflight.HasBlockingFailure(results) {
				return errors.New("doctor found blocking problems")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&sendTestNotification, "notify", false, "Also send a test push notification")
	return cmd
}

func notificationStatusLine(cmd *cobra.Command, ctx *commandContext, colorize bool) string {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return renderStatusLine("Notifications", statusError, err.Error(), colorize)
	}
	if strings.TrimSpace(cfg.Notifications.NtfyTopic) == "" {
		return renderStatusLine("Notifications", statusInfo, "not configured", colorize)
	}
	notifier := notifications.NewService(cfg)
	if err := notifier.TestNotification(cmd.Context()); err != nil {
		return renderStatusLine("Notifications", statusWarn, err.Error(), colorize)
	}
	return renderStatusLine("Notifications", statusOK, "test notification sent", colorize)
}
