package cli

import (
	"strconv"
	"strings"

	"numlist/internal/client"

	"github.com/spf13/cobra"
)

func newItemsCmd(app *App) *cobra.Command {
	var page int
	var search string

	cmd := &cobra.Command{
		Use:   "items",
		Short: "Fetch one page of items",
		Example: strings.TrimSpace(`
numlist items
numlist items --search 42 --page 3 --format text
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := client.New(app.Server).Items(commandContext(cmd), page, search)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, p)
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number (20 items per page)")
	cmd.Flags().StringVar(&search, "search", "", "Keep items whose value contains this text")
	return cmd
}

func newSelectCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "select [id...]",
		Short: "Replace the selection (no ids clears it)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return writeErr(cmd, err)
			}
			ack, err := client.New(app.Server).SetSelection(commandContext(cmd), ids)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, ack)
		},
	}
}

func newOrderCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "order [id...]",
		Short: "Replace the custom order (no ids restores ascending order)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return writeErr(cmd, err)
			}
			ack, err := client.New(app.Server).SetOrder(commandContext(cmd), ids)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, ack)
		},
	}
}

// parseIDs accepts ids as separate arguments or comma-separated lists.
func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		for _, part := range strings.Split(arg, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseInt(part, 10, 64)
			if err != nil {
				return nil, errInvalidID(part)
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}
