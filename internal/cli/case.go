package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tatianab/detective-quest/internal/mansion"
	"github.com/tatianab/detective-quest/internal/models"
)

const defaultCaseFile = "mansion.yaml"

func newCaseCommand(a *app) *cobra.Command {
	caseCmd := &cobra.Command{
		Use:   "case",
		Short: "Create, list and inspect case files",
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the built-in mansion as a case file to start from",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultCaseFile
			if len(args) == 1 {
				path = args[0]
			}
			force, _ := cmd.Flags().GetBool("force")
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := os.WriteFile(path, models.DefaultCaseYAML(), 0644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().Bool("force", false, "Overwrite an existing file")

	listCmd := &cobra.Command{
		Use:   "list [dir]",
		Short: "List the playable case files in a directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			names, err := models.ListCases(dir)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(names) == 0 {
				fmt.Fprintf(out, "No case files in %s\n", dir)
				return nil
			}
			for _, name := range names {
				fmt.Fprintln(out, name)
			}
			return nil
		},
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Validate the selected case and print its map",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := models.LoadCase(a.cfg.CasePath)
			if err != nil {
				return err
			}
			m, err := mansion.New(c)
			if err != nil {
				return err
			}
			printMap(cmd, c, m)
			return nil
		},
	}

	caseCmd.AddCommand(initCmd, listCmd, showCmd)
	return caseCmd
}

// printMap draws the rooms as an indented tree, left child first.
func printMap(cmd *cobra.Command, c *models.Case, m *mansion.Map) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%d rooms, %d links)\n", c.Title, m.Len(), len(c.Links))
	m.Walk(func(i, depth int) bool {
		room := m.Room(i)
		line := strings.Repeat("  ", depth) + room.Name
		if room.HasClue() {
			line += fmt.Sprintf(" [%s]", room.Clue)
		}
		fmt.Fprintln(out, line)
		return true
	})
}
