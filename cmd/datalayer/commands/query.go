package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"gorm.io/datalayer/internal/models"
)

func newDescribeCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "describe <table>",
		Short: "Describe the columns of a table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := opts.open(cmd)
			if err != nil {
				return err
			}

			columns, err := tableEntity(db, args[0]).Columns()
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts.output, columns)
		},
	}
}

type filter struct {
	where  string
	params string
}

func (f *filter) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.where, "where", "w", "", "Conditions with named parameters, e.g. \"city = :city\"")
	cmd.Flags().StringVarP(&f.params, "params", "p", "", "URL encoded parameters, e.g. \"city=Recife\"")
}

func newFindCommand(opts *options) *cobra.Command {
	var (
		f       filter
		columns string
		order   string
		limit   int
		page    int
	)

	cmd := &cobra.Command{
		Use:   "find <table>",
		Short: "Find the rows of a table",
		Example: `  datalayer find users --where "city = :city" --params "city=Recife" --order name
  datalayer find users --page 2 --limit 20 -o yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := opts.open(cmd)
			if err != nil {
				return err
			}

			entity := tableEntity(db, args[0]).Find(f.where, f.params, columns)
			if order != "" {
				entity.Order(order)
			}
			if page > 0 {
				entity.Paginator(page, limit)
			} else if limit > 0 {
				entity.Limit(limit)
			}

			records, err := entity.Get()
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts.output, records)
		},
	}

	f.bind(cmd)
	cmd.Flags().StringVarP(&columns, "columns", "c", "*", "Selected columns")
	cmd.Flags().StringVar(&order, "order", "", "ORDER BY expression")
	cmd.Flags().IntVarP(&limit, "limit", "l", 10, "Maximum number of rows, the page size with --page")
	cmd.Flags().IntVar(&page, "page", 0, "Page to fetch, pages start at 1")
	return cmd
}

func newCountCommand(opts *options) *cobra.Command {
	var (
		f     filter
		limit int
	)

	cmd := &cobra.Command{
		Use:   "count <table>",
		Short: "Count the rows of a table and its pages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := opts.open(cmd)
			if err != nil {
				return err
			}

			pagination, err := tableEntity(db, args[0]).Find(f.where, f.params).Paginator(1, limit).Pagination()
			if err != nil {
				return err
			}
			if opts.output != "table" {
				return render(cmd.OutOrStdout(), opts.output, pagination)
			}

			out := cmd.OutOrStdout()
			color.New(color.FgGreen, color.Bold).Fprintf(out, "%d", pagination.Total)
			fmt.Fprintf(out, " rows in %s, %d pages of %d\n", args[0], pagination.Pages, pagination.Limit)
			return nil
		},
	}

	f.bind(cmd)
	cmd.Flags().IntVarP(&limit, "limit", "l", 10, "Page size")
	return cmd
}

func newUsersCommand(opts *options) *cobra.Command {
	var city string

	cmd := &cobra.Command{
		Use:   "users",
		Short: "List users with their addresses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := opts.open(cmd)
			if err != nil {
				return err
			}

			query := models.NewUser(db).WithAddresses()
			if city != "" {
				query.Where("addresses.city", "=", city)
			}
			records, err := query.Order("users.id").Get()
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), opts.output, records)
		},
	}

	cmd.Flags().StringVar(&city, "city", "", "Only users with an address in city")
	return cmd
}
