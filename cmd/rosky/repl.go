package main

import (
	"rosky/internal/repl"
	"rosky/internal/runtime"

	"github.com/spf13/cobra"
)

func newReplCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd, flags)
			if err != nil {
				return err
			}
			defer e.Close()

			rt := runtime.New(e.config, runtime.Options{
				Out:    cmd.OutOrStdout(),
				In:     cmd.InOrStdin(),
				Logger: e.logger,
			})
			session := &repl.Session{
				Runtime: rt,
				Out:     cmd.OutOrStdout(),
				Err:     cmd.ErrOrStderr(),
				Color:   useColor(e.config, cmd.ErrOrStderr()),
			}
			return repl.Start(session, e.config.HistoryFile)
		},
	}
}
