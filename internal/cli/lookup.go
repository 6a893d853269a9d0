package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

func newCategoriesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List trivia categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			closeLog, err := setupLogging(cfg, os.Stderr)
			if err != nil {
				return err
			}
			defer closeLog()

			ctx := commandContext(cmd)
			service, release := buildService(ctx, cfg)
			defer release()

			categories, err := service.Categories(ctx)
			if err != nil {
				return err
			}
			for _, c := range categories {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%4d\t%s\n", c.ID, c.Name)
			}
			return nil
		},
	}
}

func newCountCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "count <category-id>",
		Short: "Show how many questions a category holds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			categoryID, err := strconv.Atoi(args[0])
			if err != nil || categoryID <= 0 {
				return fmt.Errorf("invalid category id %q", args[0])
			}
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			closeLog, err := setupLogging(cfg, os.Stderr)
			if err != nil {
				return err
			}
			defer closeLog()

			ctx := commandContext(cmd)
			service, release := buildService(ctx, cfg)
			defer release()

			count, err := service.CategoryCount(ctx, categoryID)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "category: %d\ntotal: %d\neasy: %d\nmedium: %d\nhard: %d\n",
				count.CategoryID, count.Total, count.Easy, count.Medium, count.Hard)
			return nil
		},
	}
}
