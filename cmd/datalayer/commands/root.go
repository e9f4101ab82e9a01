// Package commands implements the datalayer CLI commands.
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"gorm.io/datalayer"
	"gorm.io/datalayer/config"
	"gorm.io/datalayer/connection"
)

// Connector opens the database, logging to out
type Connector func(ctx context.Context, out io.Writer) (*datalayer.DB, error)

// DefaultConnector connects with the environment configuration through registry
func DefaultConnector(registry *connection.Registry) Connector {
	return func(ctx context.Context, out io.Writer) (*datalayer.DB, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		log, err := cfg.NewLogger(out)
		if err != nil {
			return nil, err
		}
		return datalayer.Open(ctx, registry, cfg.Connection, datalayer.WithLogger(log))
	}
}

type options struct {
	output  string
	connect Connector
}

func (o *options) open(cmd *cobra.Command) (*datalayer.DB, error) {
	return o.connect(cmd.Context(), cmd.ErrOrStderr())
}

// NewRootCommand creates the datalayer command tree
func NewRootCommand(connect Connector) *cobra.Command {
	opts := &options{connect: connect}

	cmd := &cobra.Command{
		Use:   "datalayer",
		Short: "Query and scaffold datalayer entities",
		Long: `datalayer runs queries through the datalayer entity builder and
generates entity files. The connection is configured by DBDRIVER, DBHOST,
DBPORT, DBNAME, DBUSER and DBPASS, read from the environment or a .env file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&opts.output, "output", "o", "table", "Output format: table, json or yaml")

	cmd.AddCommand(newDescribeCommand(opts))
	cmd.AddCommand(newFindCommand(opts))
	cmd.AddCommand(newCountCommand(opts))
	cmd.AddCommand(newUsersCommand(opts))
	cmd.AddCommand(newGenerateCommand())
	return cmd
}

func tableEntity(db *datalayer.DB, table string) *datalayer.Entity {
	return db.Entity(&datalayer.Metadata{Name: table, Table: table})
}
