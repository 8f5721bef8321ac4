package main

import (
	"fmt"
	"path/filepath"
	"rosky/internal/diag"
	"rosky/internal/runtime"
	"rosky/internal/util"

	"github.com/spf13/cobra"
)

const sourceExt = ".rosky"

func checkSourcePath(path string) error {
	if filepath.Ext(path) != sourceExt {
		return fmt.Errorf("expected a %s file, got '%s'\nusage: rosky run <file>%s", sourceExt, path, sourceExt)
	}
	return nil
}

func newRunCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "run <file.rosky>",
		Short: "Execute a rosky script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if err := checkSourcePath(path); err != nil {
				return err
			}

			e, err := setup(cmd, flags)
			if err != nil {
				return err
			}
			defer e.Close()

			src, err := util.ReadSource(path)
			if err != nil {
				return err
			}

			rt := runtime.New(e.config, runtime.Options{
				Out:    cmd.OutOrStdout(),
				In:     cmd.InOrStdin(),
				Logger: e.logger,
			})
			if err := rt.Execute(path, src); err != nil {
				diag.Render(cmd.ErrOrStderr(), err, src, useColor(e.config, cmd.ErrOrStderr()))
				return errReported
			}
			return nil
		},
	}
}
