package cmd

import (
	"fmt"
	"io"

	"atelier/internal/config"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const cliVersion = "1.0.0"

// cli holds state shared by every subcommand
type cli struct {
	cfgFile string
	cfg     config.Config
}

// NewRootCommand builds the atelier command tree
func NewRootCommand() *cobra.Command {
	c := &cli{}

	rootCmd := &cobra.Command{
		Use:   "atelier",
		Short: "Personal site with a Markdown blog, RSS feed and shop checkout",
		Long: `atelier serves a small personal and business site: static pages, a blog
read from Markdown files, an RSS feed, a product catalog and a checkout
endpoint that stores every order as a JSON file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(viper.New(), c.cfgFile)
			if err != nil {
				return err
			}
			c.cfg = cfg
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&c.cfgFile, "config", "", "config file (default is ./atelier.yaml)")

	rootCmd.AddCommand(
		newServeCommand(c),
		newPostsCommand(c),
		newFeedCommand(c),
		newOrdersCommand(c),
		newVersionCommand(),
	)
	return rootCmd
}

// Execute runs the command line and returns the process exit code
func Execute(args []string, stdout, stderr io.Writer) int {
	rootCmd := NewRootCommand()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	return 0
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "atelier version %s\n", cliVersion)
		},
	}
}

// confirm asks a yes/no question on the command's input
func confirm(cmd *cobra.Command, question string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", question)
	var response string
	fmt.Fscanln(cmd.InOrStdin(), &response)
	return response == "y" || response == "Y"
}
