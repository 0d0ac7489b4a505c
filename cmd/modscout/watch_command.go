package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"modscout/internal/config"
	"modscout/internal/logging"
	"modscout/internal/store"
	"modscout/internal/watcher"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	var expectedType string
	var save bool
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch [root]",
		Short: "Watch the mods root and match new folders as they appear",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			root := cfg.Paths.ModsDir
			if len(args) == 1 {
				if root, err = config.ExpandPath(args[0]); err != nil {
					return err
				}
			}

			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			matcher, err := ctx.newMatcher()
			if err != nil {
				return err
			}
			scanner, err := ctx.newScanner()
			if err != nil {
				return err
			}

			var s *store.Store
			if save {
				if s, err = ctx.openStore(); err != nil {
					return err
				}
				defer s.Close()
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Watching %s (Ctrl-C to stop)\n", root)

			w := watcher.New(root, debounce, logger)
			return w.Run(runCtx, func(handleCtx context.Context, folder string) {
				result, err := matchFolder(handleCtx, scanner, matcher, folder, expectedType, false)
				if err != nil {
					logger.Warn("match failed", logging.String("folder", folder), logging.Error(err))
					return
				}
				if save && s != nil {
					if _, err := s.SaveResult(handleCtx, folder, result); err != nil {
						logger.Warn("save failed", logging.String("folder", folder), logging.Error(err))
					}
				}
				printResult(out, folder, result)
			})
		},
	}

	cmd.Flags().StringVarP(&expectedType, "type", "t", "", "Expected entity type for every folder")
	cmd.Flags().BoolVar(&save, "save", false, "Persist each result to the results database")
	cmd.Flags().DurationVar(&debounce, "debounce", watcher.DefaultDebounce, "Quiet period before a new folder is matched")
	return cmd
}
