package cmd

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"atelier/app/content"

	"github.com/spf13/cobra"
)

func newPostsCommand(c *cli) *cobra.Command {
	postsCmd := &cobra.Command{
		Use:   "posts",
		Short: "Inspect blog posts",
	}

	postsCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List posts, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			posts, err := newApp(c.cfg).posts.List()
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "DATE\tSLUG\tTITLE\tFILE")
			for _, p := range posts {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.Date.Format(content.DateLayout), p.Slug, p.Title, p.SourcePath)
			}
			return tw.Flush()
		},
	})

	postsCmd.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Report posts whose slugs collide",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			count, collisions, err := newApp(c.cfg).checkContent()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d posts checked\n", count)
			if len(collisions) == 0 {
				return nil
			}

			slugs := make([]string, 0, len(collisions))
			for slug := range collisions {
				slugs = append(slugs, slug)
			}
			sort.Strings(slugs)
			for _, slug := range slugs {
				fmt.Fprintf(out, "duplicate slug %s: %v\n", slug, collisions[slug])
			}
			return fmt.Errorf("%d duplicate slugs", len(collisions))
		},
	})

	return postsCmd
}
