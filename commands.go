package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/maghams62/launcher/catalog"
	"github.com/maghams62/launcher/client"
)

const cliTimeout = 30 * time.Second

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search [text]",
	Short: "Search indexed files once and print the hits",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _ := loadConfig(profileDir())
		limit := searchLimit
		if limit <= 0 {
			limit = cfg.SearchLimit
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), cliTimeout)
		defer cancel()
		items, err := newClient(cfg).Search(ctx, strings.Join(args, " "), limit)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no matches")
			return nil
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, it := range items {
			name := it.FileName
			if name == "" {
				name = filepath.Base(it.FilePath)
			}
			if it.PageNumber != nil {
				name += fmt.Sprintf(" p.%d", *it.PageNumber)
			}
			fmt.Fprintf(tw, "%.2f\t%s\t%s\n", it.SimilarityScore, name, it.FilePath)
		}
		return tw.Flush()
	},
}

var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List the backend command catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _ := loadConfig(profileDir())
		ctx, cancel := context.WithTimeout(cmd.Context(), cliTimeout)
		defer cancel()

		store := catalog.NewStore(zap.NewNop())
		cmds, err := store.Load(ctx, newClient(cfg).ListCommands)
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tTYPE\tCATEGORY\tTITLE")
		for _, c := range cmds {
			id := c.ID
			if c.HandlerType == client.HandlerSlashCommand {
				id = "/" + id
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", id, c.HandlerType, c.Category, c.Title)
		}
		return tw.Flush()
	},
}

var transcribeCmd = &cobra.Command{
	Use:   "transcribe [file]",
	Short: "Upload an audio clip and print the recognized text",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _ := loadConfig(profileDir())
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), cliTimeout)
		defer cancel()
		text, err := newClient(cfg).Transcribe(ctx, filepath.Base(args[0]), f)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "launcher %s\n", version)
	},
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "Maximum hits (default from config)")
}
