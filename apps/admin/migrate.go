package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/trezcool/goose"

	"github.com/trezcool/centro/fs"
	"github.com/trezcool/centro/storage/database"
)

var (
	gooseRunFunc = goose.RunFS               // mockable
	createDBFunc = database.CreateIfNotExist // mockable
)

func (cli *commandLine) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "migrate COMMAND [ARGS...]",
		Short:       "Run a goose command (up, up-by-one, up-to, down, down-to, redo, reset, status, version, create, fix)",
		Annotations: storeAnnotation,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Usage()
				return errHelp
			}
			return cli.migrate(args)
		},
	}
}

func (cli *commandLine) migrate(args []string) error {
	arguments := make([]string, 0)
	if len(args) > 1 {
		arguments = append(arguments, args[1:]...)
	}
	return gooseRunFunc(args[0], cli.db.DB, appfs.FS, "migrations", arguments...)
}

func (cli *commandLine) createDBCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "createdb",
		Short: "Create the configured database (and its owner) if it does not exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := createDBFunc(cmd.Context(), cli.conf); err != nil {
				return errors.Wrap(err, "creating database")
			}
			success(cmd.OutOrStdout(), "database %q is ready", cli.conf.Database.Name)
			return nil
		},
	}
}
