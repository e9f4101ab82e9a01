package commands

import (
	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"gorm.io/datalayer/cli"
)

// Fs filesystem the generate commands write to
var Fs = afero.NewOsFs()

func newGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate entity and configuration files",
	}
	cmd.AddCommand(newGenerateEntityCommand())
	cmd.AddCommand(newGenerateEnvCommand())
	return cmd
}

func newGenerateEntityCommand() *cobra.Command {
	var (
		spec      cli.EntitySpec
		required  string
		relations string
		folder    string
		force     bool
	)

	cmd := &cobra.Command{
		Use:     "entity <Name>",
		Short:   "Generate an entity file in internal/models",
		Example: `  datalayer generate entity Customer --required name,email --timestamps --relations Addresses:Address:has_many:customer_id`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rels, err := cli.ParseRelations(relations)
			if err != nil {
				return err
			}
			spec.Name = args[0]
			spec.Required = cli.SplitList(required)
			spec.Relations = rels

			filename, err := cli.GenerateEntity(Fs, folder, spec, force)
			if err != nil {
				return err
			}
			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "created %s\n", filename)
			return nil
		},
	}

	cmd.Flags().StringVar(&spec.Table, "table", "", "Table name, derived from the entity name by default")
	cmd.Flags().StringVar(&spec.Primary, "primary", "", "Primary key column, id by default")
	cmd.Flags().StringVar(&required, "required", "", "Comma separated required fields")
	cmd.Flags().BoolVar(&spec.Timestamps, "timestamps", false, "Maintain created_at and updated_at")
	cmd.Flags().StringVar(&relations, "relations", "", "Relations, e.g. Addresses:Address:has_many:user_id")
	cmd.Flags().StringVar(&folder, "folder", ".", "Base folder of the project")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}

func newGenerateEnvCommand() *cobra.Command {
	var (
		folder string
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "env <driver> <dbname>",
		Short: "Generate a .env file for mysql, postgres or sqlite3",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename, err := cli.GenerateEnv(Fs, folder, args[0], args[1], force)
			if err != nil {
				return err
			}
			color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "created %s\n", filename)
			return nil
		},
	}

	cmd.Flags().StringVar(&folder, "folder", ".", "Base folder of the project")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	return cmd
}
