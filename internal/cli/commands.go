package cli

import (
	"github.com/spf13/cobra"
)

func newValidateCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "validate PATH...",
		Short: "Check patterns and print their problems",
		Long: `Loads each PATH as its own pattern, checks it and resolves every row once.
Exits non-zero when any pattern has errors.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := e.newApp()
			if err != nil {
				return err
			}
			return wrap(a.Validate(cmd.Context(), args...))
		},
	}
}

func newResolveCommand(e *env) *cobra.Command {
	var row, to int
	cmd := &cobra.Command{
		Use:   "resolve PATH... --row N [--to M]",
		Short: "Print the stitches of one row or a run of rows",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if to != 0 && to < row {
				return &ExitError{Code: ExitUsage, Message: "--to must not be below --row"}
			}
			a, err := e.newApp()
			if err != nil {
				return err
			}
			return wrap(a.Resolve(cmd.Context(), args, row, to))
		},
	}
	cmd.Flags().IntVarP(&row, "row", "r", 0, "Row to resolve.")
	cmd.Flags().IntVar(&to, "to", 0, "Last row of the run. Defaults to --row.")
	_ = cmd.MarkFlagRequired("row")
	return cmd
}

func newCountsCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "counts PATH...",
		Short: "Print the starting and ending stitch count of every row",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := e.newApp()
			if err != nil {
				return err
			}
			return wrap(a.Counts(cmd.Context(), args))
		},
	}
}

func newLocateCommand(e *env) *cobra.Command {
	var row, position int
	cmd := &cobra.Command{
		Use:   "locate PATH... --row N --position K",
		Short: "Find the instruction that makes a stitch",
		Long:  `Positions count from 1 at the start of the row.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := e.newApp()
			if err != nil {
				return err
			}
			return wrap(a.Locate(cmd.Context(), args, row, position))
		},
	}
	cmd.Flags().IntVarP(&row, "row", "r", 0, "Row the stitch is on.")
	cmd.Flags().IntVarP(&position, "position", "p", 0, "Stitch position within the row.")
	_ = cmd.MarkFlagRequired("row")
	_ = cmd.MarkFlagRequired("position")
	return cmd
}
