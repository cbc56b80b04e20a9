package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/iammorganparry/rewind/internal/memory"
	"github.com/iammorganparry/rewind/internal/models"
	"github.com/iammorganparry/rewind/internal/search"
	"github.com/iammorganparry/rewind/internal/tui"
)

type entryFlags struct {
	entryType string
	title     string
	content   string
	filePath  string
	fileType  string
	language  string
	imageURL  string
	context   string
	tags      string
}

func (f *entryFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "Entry title")
	cmd.Flags().StringVar(&f.content, "content", "", "Entry content, or - to read stdin")
	cmd.Flags().StringVar(&f.filePath, "file-path", "", "Source file path")
	cmd.Flags().StringVar(&f.fileType, "file-type", "", "Source file type")
	cmd.Flags().StringVar(&f.language, "language", "", "Programming language")
	cmd.Flags().StringVar(&f.imageURL, "image-url", "", "Screenshot image URL")
	cmd.Flags().StringVar(&f.context, "context", "", "Where the entry came from")
	cmd.Flags().StringVar(&f.tags, "tags", "", "Comma-separated tags")
}

func readContent(cmd *cobra.Command, content string) (string, error) {
	if content != "-" {
		return content, nil
	}
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(b), nil
}

func newAddCmd() *cobra.Command {
	var f entryFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an entry to the timeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := readContent(cmd, f.content)
			if err != nil {
				return err
			}
			e, err := appFrom(cmd).Service.Add(&models.AddRequest{
				Type:     models.EntryType(f.entryType),
				Title:    f.title,
				Content:  content,
				FilePath: f.filePath,
				FileType: f.fileType,
				Language: f.language,
				ImageURL: f.imageURL,
				Context:  f.context,
				Tags:     f.tags,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), e.ID)
			return nil
		},
	}
	f.bind(cmd)
	cmd.Flags().StringVarP(&f.entryType, "type", "t", string(models.EntryTypeNote), "Entry type: clipboard, file, screenshot, code or note")
	return cmd
}

func newEditCmd() *cobra.Command {
	var f entryFlags
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an entry; unset flags keep their current values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := appFrom(cmd).Service
			e, err := svc.GetByID(args[0])
			if err != nil {
				return err
			}
			if e == nil {
				return fmt.Errorf("%w: %s", memory.ErrNotFound, args[0])
			}

			req := updateFromEntry(e)
			flags := cmd.Flags()
			set := func(name string, dst *string, v string) {
				if flags.Changed(name) {
					*dst = v
				}
			}
			content, err := readContent(cmd, f.content)
			if err != nil {
				return err
			}
			set("title", &req.Title, f.title)
			set("content", &req.Content, content)
			set("file-path", &req.FilePath, f.filePath)
			set("file-type", &req.FileType, f.fileType)
			set("language", &req.Language, f.language)
			set("image-url", &req.ImageURL, f.imageURL)
			set("context", &req.Context, f.context)
			set("tags", &req.Tags, f.tags)

			if _, err := svc.Update(e.ID, req); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "updated", e.ID)
			return nil
		},
	}
	f.bind(cmd)
	return cmd
}

func updateFromEntry(e *models.Entry) *models.UpdateRequest {
	req := &models.UpdateRequest{Title: e.Title, Content: e.Content}
	if md := e.Metadata; md != nil {
		req.FilePath = md.FilePath
		req.FileType = md.FileType
		req.Language = md.Language
		req.ImageURL = md.ImageURL
		req.Context = md.Context
		req.Tags = strings.Join(md.Tags, ", ")
	}
	return req
}

func newRmCmd() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "rm [id...]",
		Short: "Delete entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := appFrom(cmd).Service
			if all {
				n, err := svc.ClearAll()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %d entries\n", n)
				return nil
			}
			if len(args) == 0 {
				return fmt.Errorf("give at least one entry id, or --all")
			}
			for _, id := range args {
				if err := svc.Delete(id); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "deleted", id)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Delete every entry")
	return cmd
}

func newLsCmd() *cobra.Command {
	var (
		query    string
		typ      string
		start    string
		end      string
		category string
		semantic bool
		group    bool
	)
	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List and search the timeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			req := &models.ViewRequest{
				Query:    query,
				Category: category,
				Filters:  models.SearchFilters{Type: models.EntryType(typ)},
			}
			if typ != "" && !req.Filters.Type.IsValid() {
				return fmt.Errorf("invalid type %q", typ)
			}
			if start != "" || end != "" {
				req.Filters.DateRange = &models.DateRange{Start: start, End: end}
			}
			if semantic {
				req.Mode = models.SearchModeSemantic
			}
			if group {
				req.GroupBy = memory.GroupByDay
			}

			resp, err := a.Service.View(req)
			if err != nil {
				return err
			}
			printView(cmd.OutOrStdout(), resp, a.Location, time.Now())
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&query, "q", "", "Free-text query")
	flags.StringVar(&typ, "type", "", "Only entries of this type")
	flags.StringVar(&start, "start", "", "Earliest timestamp or date (inclusive)")
	flags.StringVar(&end, "end", "", "Latest timestamp or date (inclusive)")
	flags.StringVar(&category, "category", "", "Sidebar category, or all")
	flags.BoolVar(&semantic, "semantic", false, "Rank by relevance instead of substring search")
	flags.BoolVar(&group, "group", false, "Group entries by calendar day")
	return cmd
}

func printView(w io.Writer, resp *models.ViewResponse, loc *time.Location, now time.Time) {
	if resp.Meta.Mode == models.SearchModeSemantic && len(resp.Matches) > 0 {
		fmt.Fprintf(w, "Found %d results · %d%% relevance\n", len(resp.Matches), resp.Relevance)
	}
	if len(resp.Entries) == 0 {
		fmt.Fprintln(w, "No memories found.")
		return
	}

	if resp.Groups != nil {
		for _, g := range resp.Groups {
			fmt.Fprintf(w, "== %s ==\n", tui.DayLabel(g.Date, now, loc))
			for _, e := range g.Entries {
				printEntry(w, e, loc, now)
			}
		}
	} else {
		for _, e := range resp.Entries {
			printEntry(w, e, loc, now)
		}
	}
	fmt.Fprintf(w, "%d of %d entries\n", resp.Meta.Filtered, resp.Meta.Total)
}

func printEntry(w io.Writer, e models.Entry, loc *time.Location, now time.Time) {
	clock := "--:--"
	if at, ok := search.ParseTimestamp(e.Timestamp); ok {
		clock = at.In(loc).Format("15:04")
	}
	fmt.Fprintf(w, "  %s  %-10s  %s  (%s, %s)\n", clock, e.Type, e.Title, e.ID, tui.TimeAgo(e.Timestamp, now))
}

func newTuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive timeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd)
			settings, err := a.Service.Settings()
			if err != nil {
				return err
			}
			if settings.AutoCapture {
				if err := a.Feed.Start(cmd.Context()); err != nil {
					return err
				}
			}
			if a.Watcher != nil {
				if err := a.Watcher.Start(cmd.Context()); err != nil {
					return err
				}
			}
			return tui.Run(cmd.Context(), a.Service, a.Feed, a.Location)
		},
	}
}
