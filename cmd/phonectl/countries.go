package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"flagphone_backend/internal/countries"

	"github.com/spf13/cobra"
)

func newCountriesCmd() *cobra.Command {
	var (
		include, exclude []string
		pick             string
	)

	cmd := &cobra.Command{
		Use:   "countries [query]",
		Short: "List, search or pick from the country directory",
		Long: `Lists the directory, or the countries matching query. With --pick the
country is chosen among the listed ones and printed alone, as a picker
would report it; picking a country that is not listed is an error.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(include) > 0 && len(exclude) > 0 {
				return errors.New("--include and --exclude are mutually exclusive")
			}

			query := ""
			if len(args) == 1 {
				query = strings.TrimSpace(args[0])
			}

			list := current.dir.Apply(countries.FromLists(include, exclude))
			return searchCountries(cmd.OutOrStdout(), list, current.cfg.GetDefaultRegion(), query, pick)
		},
	}

	cmd.Flags().StringSliceVar(&include, "include", nil, "only these region codes")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "every region code but these")
	cmd.Flags().StringVar(&pick, "pick", "", "choose this region code among the listed countries")
	return cmd
}

// searchCountries runs one picker session over list: it applies query, then
// either prints what the picker shows or picks a country and closes.
func searchCountries(w io.Writer, list []countries.Country, selected, query, pick string) error {
	session := countries.NewSearchSession(list, selected)
	if query != "" {
		session.Update(query)
	}

	if pick != "" {
		c, ok := session.Select(pick)
		if !ok {
			return fmt.Errorf("%s is not among the listed countries", countries.NormalizeCode(pick))
		}
		return writeCountry(w, "*", c)
	}

	for _, c := range session.Visible() {
		mark := " "
		if session.IsSelected(c) {
			mark = "*"
		}
		if err := writeCountry(w, mark, c); err != nil {
			return err
		}
	}
	return nil
}

func writeCountry(w io.Writer, mark string, c countries.Country) error {
	_, err := fmt.Fprintf(w, "%s %s %s\t%s\t%s\n", mark, countries.Emoji(c.Code), c.Code, c.DialCode, c.Name)
	return err
}
