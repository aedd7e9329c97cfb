package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "Show the configured database profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := LoadSettings(viper.GetViper())
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		if len(cfg.Databases) == 0 {
			fmt.Fprintln(w, "no database profiles configured")
			return nil
		}
		for i, p := range cfg.Databases {
			role := ""
			switch p.Name {
			case cfg.Comparison.Source:
				role = "(source)"
			case cfg.Comparison.Target:
				role = "(target)"
			}
			var host string
			if p.DSN != "" {
				host = "<dsn>"
			} else {
				host = fmt.Sprintf("%s:%d", p.Host, p.port())
			}
			fmt.Fprintf(w, "[%02d] %-16s %-9s %-28s schema=%-12s %s\n", i+1, p.Name, p.Driver, host, p.Schema(), role)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(profilesCmd)
}
