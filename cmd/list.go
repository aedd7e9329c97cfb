package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"schema-validator/internal/schema"
	"schema-validator/internal/validator"
)

var (
	listProfile  string
	listCategory string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the objects of one category in a database profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := LoadSettings(viper.GetViper())
		if err != nil {
			return err
		}
		p, err := cfg.Profile(listProfile)
		if err != nil {
			return err
		}
		kind, err := schema.ParseCategory(listCategory)
		if err != nil {
			return err
		}

		// Lookup file takes precedence, same as during compare
		if path := cfg.Lookup.toLookup().Path(kind); path != "" {
			names, err := validator.ReadLookupFile(path)
			if err == nil {
				for _, n := range names {
					fmt.Fprintln(cmd.OutOrStdout(), n)
				}
				return nil
			}
			if !errors.Is(err, fs.ErrNotExist) {
				return err
			}
		}

		ext, db, err := openCatalog(cmd.Context(), *p, cfg.Run.QueryTimeout, zap.NewNop().Sugar())
		if err != nil {
			return err
		}
		defer db.Close()

		names, err := ext.ListObjects(cmd.Context(), kind)
		if err != nil {
			return err
		}
		for _, n := range names {
			fmt.Fprintln(cmd.OutOrStdout(), n)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listProfile, "profile", "p", "", "database profile name")
	listCmd.Flags().StringVarP(&listCategory, "category", "c", "tables", "tables, views, functions, stored_procedures or triggers")
	listCmd.MarkFlagRequired("profile")
}
