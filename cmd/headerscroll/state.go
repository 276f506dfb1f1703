package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/jask/headerscroll/internal/config"
)

func newStateCommand() *cobra.Command {
	stateCmd := &cobra.Command{
		Use:   "state",
		Short: "Inspect and manage saved container state",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List saved containers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.Close()
			states, err := e.states.Backend.List(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(states) == 0 {
				fmt.Fprintln(out, "no saved state")
				return nil
			}
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tOFFSET\tBOUND\tUPDATED")
			for _, st := range states {
				fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", st.Name, st.Offset, st.Bound, st.UpdatedAt.Local().Format(time.DateTime))
			}
			return w.Flush()
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear [container]",
		Short: "Delete one container's saved state, or all of it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.Close()
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			n, err := e.states.Clear(cmd.Context(), name)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d\n", n)
			return nil
		},
	}

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write saved state as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.Close()
			var w io.Writer = cmd.OutOrStdout()
			if path, _ := cmd.Flags().GetString("output"); path != "" {
				f, err := os.Create(path)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			return e.states.Export(cmd.Context(), w)
		},
	}
	exportCmd.Flags().StringP("output", "o", "", "write to a file instead of stdout")

	importCmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Load saved state from an export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.Close()
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			res, err := e.states.Import(cmd.Context(), f)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "imported %d, skipped %d\n", res.Imported, res.Skipped)
			for _, err := range res.Errors {
				fmt.Fprintf(out, "  %v\n", err)
			}
			return nil
		},
	}

	stateCmd.AddCommand(listCmd, clearCmd, exportCmd, importCmd)
	return stateCmd
}

func newConfigCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the config file",
	}

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the config file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := loadConfig(cmd); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), config.Path())
			return nil
		},
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the current settings to the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			path := config.Path()
			force, _ := cmd.Flags().GetBool("force")
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s exists, use --force to overwrite", path)
			}
			if err := config.Save(cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().Bool("force", false, "overwrite an existing file")

	configCmd.AddCommand(pathCmd, initCmd)
	return configCmd
}
