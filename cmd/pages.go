package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"tabula/internal/pagination"
)

func newPagesCmd(root *rootOptions) *cobra.Command {
	var (
		current  int
		total    int
		items    int
		pageSize int
		siblings int
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "pages",
		Short: "Print the pagination bar for a page position",
		Long: `Prints the page tokens a pagination control shows for the given position,
with "…" for collapsed ranges. Nothing is printed when there is at most one
page. Pass --total directly or derive it from --items and --page-size.`,
		Example: `  tabula pages --current 5 --total 10
  tabula pages --current 3 --items 57 --page-size 10 --siblings 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("siblings") {
				siblings = root.cfg.SiblingCount
			}
			if !cmd.Flags().Changed("page-size") {
				pageSize = root.cfg.PageSize
			}

			switch {
			case cmd.Flags().Changed("total"):
			case cmd.Flags().Changed("items"):
				if pageSize <= 0 {
					return fmt.Errorf("%w, got %d", ErrInvalidPageSize, pageSize)
				}
				total = pagination.TotalPages(items, pageSize)
			default:
				return errors.New("either --total or --items is required")
			}

			tokens := pagination.ComputeRange(current, total, siblings)
			root.logger.Debug().
				Int("current", current).
				Int("total", total).
				Int("siblings", siblings).
				Int("tokens", len(tokens)).
				Msg("computed page range")

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				return enc.Encode(tokenStrings(tokens, current))
			}
			if !pagination.ShouldRender(current, tokens) {
				return nil
			}
			_, err := fmt.Fprintln(out, pagination.Format(tokens))
			return err
		},
	}

	f := cmd.Flags()
	f.IntVar(&current, "current", pagination.DefaultPage, "current page")
	f.IntVar(&total, "total", 0, "total number of pages")
	f.IntVar(&items, "items", 0, "total number of items")
	f.IntVar(&pageSize, "page-size", pagination.DefaultPageSize, "items per page, used with --items")
	f.IntVar(&siblings, "siblings", pagination.DefaultSiblings, "pages shown on each side of the current page")
	f.BoolVar(&asJSON, "json", false, "print tokens as a JSON array")

	return cmd
}

func tokenStrings(tokens []pagination.PageToken, current int) []string {
	if !pagination.ShouldRender(current, tokens) {
		return []string{}
	}
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.String()
	}
	return out
}
