package main

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/iammorganparry/rewind/internal/backup"
	"github.com/iammorganparry/rewind/internal/insights"
	"github.com/iammorganparry/rewind/internal/memory"
)

func newExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file|-]",
		Short: "Write every entry to a JSON backup",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := appFrom(cmd).Service
			if len(args) == 1 && args[0] == "-" {
				return svc.Export(cmd.OutOrStdout())
			}

			path := backup.FileName(time.Now())
			if len(args) == 1 {
				path = args[0]
			}
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("create %s: %w", path, err)
			}
			if err := svc.Export(f); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "exported to", path)
			return nil
		},
	}
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Merge entries from a JSON backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open %s: %w", args[0], err)
			}
			defer f.Close()

			res, err := appFrom(cmd).Service.Import(f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d, skipped %d duplicate, %d invalid\n",
				res.Imported, res.Duplicate, res.Invalid)
			return nil
		},
	}
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show entry counts and storage size",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := appFrom(cmd).Service.Stats()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			names := make([]string, 0, len(st.Categories))
			for name := range st.Categories {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				fmt.Fprintf(w, "%-10s %d\n", name, st.Categories[name])
			}
			fmt.Fprintf(w, "storage    %s (%s)\n", st.Storage, st.DataSizeHR)
			return nil
		},
	}
}

func newInsightsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "insights [id]",
		Short: "Summarize the timeline, or a single entry",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			w := cmd.OutOrStdout()

			if len(args) == 1 {
				e, err := a.Service.GetByID(args[0])
				if err != nil {
					return err
				}
				if e == nil {
					return fmt.Errorf("%w: %s", memory.ErrNotFound, args[0])
				}
				in := insights.ForEntry(*e)
				fmt.Fprintln(w, in.Summary)
				if len(in.SuggestedTags) > 0 {
					fmt.Fprintln(w, "suggested tags:", joinTags(in.SuggestedTags))
				}
				return nil
			}

			entries, err := a.Service.List()
			if err != nil {
				return err
			}
			res := insights.Analyze(entries, a.Location)
			for _, line := range res.Insights {
				fmt.Fprintln(w, "-", line)
			}
			fmt.Fprintln(w)
			for _, line := range res.Suggestions {
				fmt.Fprintln(w, "*", line)
			}
			return nil
		},
	}
}

func joinTags(tags []string) string {
	out := ""
	for i, t := range tags {
		if i > 0 {
			out += ", "
		}
		out += "#" + t
	}
	return out
}
