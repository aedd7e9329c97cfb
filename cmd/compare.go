package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/gosuri/uiprogress"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"schema-validator/internal/logging"
	"schema-validator/internal/report"
	"schema-validator/internal/schema"
	"schema-validator/internal/validator"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare the source and target schemas and write the reports",
	RunE: func(cmd *cobra.Command, args []string) error {
		start := time.Now()

		cfg, err := LoadSettings(viper.GetViper())
		if err != nil {
			return err
		}
		srcProfile, tgtProfile, kinds, err := cfg.ComparisonPlan()
		if err != nil {
			return err
		}

		run, err := report.NewRunDir(cfg.Output.Directory, start)
		if err != nil {
			return err
		}

		// progress bars own the terminal; logs then go to the file only
		var console io.Writer = os.Stderr
		if cfg.Run.Progress {
			console = nil
		}
		log, closeLog, err := logging.New(cfg.Output.LogLevel, run.File(cfg.Output.LogFile), console)
		if err != nil {
			return err
		}
		defer closeLog()

		log.Infof("Run %s: comparing %s (source) with %s (target): %s",
			uuid.NewString(), srcProfile.Name, tgtProfile.Name, cfg.Comparison.Compare)
		log.Infof("Output directory: %s", run.Path)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		src, srcDB, err := openCatalog(ctx, *srcProfile, cfg.Run.QueryTimeout, log)
		if err != nil {
			return err
		}
		defer srcDB.Close()

		tgt, tgtDB, err := openCatalog(ctx, *tgtProfile, cfg.Run.QueryTimeout, log)
		if err != nil {
			return err
		}
		defer tgtDB.Close()

		runner := &validator.Runner{
			Source:     src,
			Target:     tgt,
			Categories: kinds,
			Lookup:     cfg.Lookup.toLookup(),
			Artifacts:  run,
			Logger:     log,
		}
		if cfg.Run.Progress {
			uiprogress.Start()
			runner.Progress = progressBars
		}

		out, runErr := runner.Run(ctx)
		if cfg.Run.Progress {
			uiprogress.Stop()
		}

		// failures seen so far are written even when the run aborts
		if err := writeErrorLog(run.File(cfg.Output.ErrorLogFile), out.Errors, srcProfile.Name, tgtProfile.Name); err != nil {
			log.Warnf("Could not write error log: %v", err)
		}
		if out.Errors.Len() > 0 {
			log.Warnf("%d objects failed extraction, see %s", out.Errors.Len(), cfg.Output.ErrorLogFile)
		}
		if runErr != nil {
			log.Errorf("Comparison aborted: %v", runErr)
			return runErr
		}

		for _, f := range report.Formats {
			path, err := report.Write(run.Path, out.Differences, f)
			if err != nil {
				return err
			}
			log.Infof("Schema comparison report saved to '%s'.", path)
		}

		printSummary(cmd.OutOrStdout(), out, srcProfile.Name, tgtProfile.Name)
		elapsed := time.Since(start)
		log.Infof("Time taken: %.2f seconds", elapsed.Seconds())
		fmt.Fprintf(cmd.OutOrStdout(), "Time taken: %.2f seconds\n", elapsed.Seconds())
		return nil
	},
}

func progressBars(kind schema.Kind, side schema.Side, label string, total int) func() {
	if total == 0 {
		return func() {}
	}
	bar := uiprogress.AddBar(total).AppendCompleted().PrependElapsed()
	bar.PrependFunc(func(b *uiprogress.Bar) string {
		return fmt.Sprintf("%-6s %-12s %-18s", side, label, kind.Category())
	})
	return func() { bar.Incr() }
}

func writeErrorLog(path string, errs *schema.ErrorLog, source, target string) error {
	log, closeLog, err := logging.NewErrorLog(path)
	if err != nil {
		return err
	}
	defer closeLog()
	validator.WriteErrors(log, errs, map[schema.Side]string{schema.Source: source, schema.Target: target})
	return nil
}

func printSummary(w io.Writer, out *validator.Outcome, source, target string) {
	fmt.Fprintln(w, "\nSummary:")
	for _, s := range out.Summaries {
		fmt.Fprintf(w, "  %-18s : %d %s (Source), %d %s (Target), %d with differences\n",
			s.Kind.Category(), s.SourceProcessed, source, s.TargetProcessed, target, s.Differences)
	}
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Objects with differences: %d\n", out.Differences.Len())
	fmt.Fprintf(w, "Extraction failures: %d\n", out.Errors.Len())
}

func init() {
	RootCmd.AddCommand(compareCmd)

	compareCmd.Flags().String("source", "", "source database profile (overrides comparison.source)")
	compareCmd.Flags().String("target", "", "target database profile (overrides comparison.target)")
	compareCmd.Flags().String("compare", "", "comma separated categories: tables,views,functions,stored_procedures,triggers")
	compareCmd.Flags().String("output", "", "base output directory")
	compareCmd.Flags().Bool("lookup", false, "read object names from lookup files")
	compareCmd.Flags().Bool("progress", false, "show progress bars instead of console logs")
	compareCmd.Flags().Duration("query-timeout", 0, "timeout per catalog query (0 disables)")

	viper.BindPFlag("comparison.source", compareCmd.Flags().Lookup("source"))
	viper.BindPFlag("comparison.target", compareCmd.Flags().Lookup("target"))
	viper.BindPFlag("comparison.compare", compareCmd.Flags().Lookup("compare"))
	viper.BindPFlag("output.directory", compareCmd.Flags().Lookup("output"))
	viper.BindPFlag("lookup.enabled", compareCmd.Flags().Lookup("lookup"))
	viper.BindPFlag("settings.progress", compareCmd.Flags().Lookup("progress"))
	viper.BindPFlag("settings.query_timeout", compareCmd.Flags().Lookup("query-timeout"))
}
