package cmd

import (
	"github.com/spf13/cobra"
)

func newFeedCommand(c *cli) *cobra.Command {
	var baseURL string

	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Print the RSS feed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if baseURL == "" {
				baseURL = c.cfg.BaseURL
			}
			data, err := newApp(c.cfg).feedService().BuildFeed(baseURL)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(append(data, '\n'))
			return err
		},
	}
	cmd.Flags().StringVar(&baseURL, "base-url", "", "site address used in links (default is the baseURL setting)")
	return cmd
}
