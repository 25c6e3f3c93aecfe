package cli

import (
	"github.com/spf13/cobra"

	"github.com/tatianab/detective-quest/internal/console"
	"github.com/tatianab/detective-quest/internal/tui"
)

func (a *app) runPlay(cmd *cobra.Command, _ []string) error {
	eng, cleanup, err := a.newEngine(cmd.Context(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer cleanup()

	return tui.Run(eng)
}

func (a *app) runConsole(cmd *cobra.Command, _ []string) error {
	eng, cleanup, err := a.newEngine(cmd.Context(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer cleanup()

	_, err = console.Play(cmd.Context(), eng, cmd.InOrStdin(), cmd.OutOrStdout())
	return err
}
