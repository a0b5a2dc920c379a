package main

import (
	"github.com/spf13/cobra"

	"github.com/domonda/go-simpletable/localeselect"
)

func newLocalesCmd(a *app) *cobra.Command {
	var (
		fullNames bool
		active    string
		accept    string
	)
	cmd := &cobra.Command{
		Use:   "locales",
		Short: "List the selectable locales",
		Long: `List the configured locales that can be selected.

The active locale is marked with "*". If --accept is passed,
the locale matching that Accept-Language header is active.

Example:
  simpletable locales --full-names
  simpletable locales --accept "de-AT,de;q=0.9,en;q=0.5"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if active == "" {
				active = a.defaults.Locale
			}
			if accept != "" {
				active = localeselect.Match(a.defaults.Locales, accept)
				a.logger.Debug("Matched Accept-Language", "accept", accept, "locale", active)
			}
			var rows [][]string
			for _, option := range localeselect.Options(a.defaults.Locales, active, fullNames) {
				mark := ""
				if option.Active {
					mark = "*"
				}
				rows = append(rows, []string{mark, option.Code, option.Label, option.Dir})
			}
			return writeTextRows(cmd.OutOrStdout(), rows)
		},
	}
	cmd.Flags().BoolVar(&fullNames, "full-names", false, "show language names instead of codes")
	cmd.Flags().StringVar(&active, "active", "", "active locale (default from config)")
	cmd.Flags().StringVar(&accept, "accept", "", "select the locale matching an Accept-Language header")
	return cmd
}
