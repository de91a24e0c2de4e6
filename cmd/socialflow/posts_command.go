package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/maheshrc27/socialflow/internal/models"
	"github.com/spf13/cobra"
)

func newPostsCommand(ctx *commandContext) *cobra.Command {
	postsCmd := &cobra.Command{
		Use:   "posts",
		Short: "Inspect and transfer posts",
	}

	postsCmd.AddCommand(newPostsListCommand(ctx))
	postsCmd.AddCommand(newPostsExportCommand(ctx))
	postsCmd.AddCommand(newPostsImportCommand(ctx))

	return postsCmd
}

func newPostsListCommand(ctx *commandContext) *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List posts in calendar order",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := ctx.open(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer a.backend.Close()

			posts, err := a.posts.List(ctx.principal(cmd.Context()))
			if err != nil {
				return err
			}
			if status != "" {
				posts = filterStatus(posts, models.PostStatus(status))
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderPosts(posts))
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "only show posts with this status (Draft, Scheduled, Published)")
	return cmd
}

func newPostsExportCommand(ctx *commandContext) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write all posts as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := ctx.open(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer a.backend.Close()

			export, err := a.content.Export(ctx.principal(cmd.Context()))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}

			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(export); err != nil {
				return err
			}
			if output != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d posts to %s\n", export.TotalPosts, output)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write instead of stdout")
	return cmd
}

func newPostsImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import posts from a JSON export (\"-\" reads stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			a, err := ctx.open(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer a.backend.Close()

			result, err := a.content.Import(ctx.principal(cmd.Context()), data)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported %d of %d posts\n", len(result.Succeeded), result.Total)
			if result.Campaign != nil {
				fmt.Fprintf(out, "Created campaign %q\n", result.Campaign.Name)
			}
			return result.Err()
		},
	}
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

func filterStatus(posts []models.Post, status models.PostStatus) []models.Post {
	filtered := posts[:0:0]
	for _, p := range posts {
		if p.Status == status {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

func renderPosts(posts []models.Post) string {
	if len(posts) == 0 {
		return "No posts"
	}

	const stampLayout = "2006-01-02 15:04"
	rows := make([][]string, 0, len(posts))
	for _, p := range posts {
		date := "-"
		if p.Date != nil {
			date = p.Date.Local().Format(stampLayout)
		}
		rows = append(rows, []string{
			p.ID,
			truncate(p.Title, 40),
			string(p.Platform),
			string(p.Status),
			date,
			p.ProgramName,
		})
	}
	return renderTable(
		[]string{"ID", "Title", "Platform", "Status", "Date", "Program"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
	)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

