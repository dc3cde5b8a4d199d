package cli

import (
	"fmt"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"codeberg.org/snonux/sgs/internal/speech"
)

func newCacheCommand(flags *Flags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and maintain the speech cache",
	}

	open := func() (*speech.Cache, error) {
		return speech.OpenCache(SpeechConfig().CacheDir, flags.Logger)
	}

	stats := &cobra.Command{
		Use:   "stats",
		Short: "Show cache size and hit count",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := open()
			if err != nil {
				return err
			}
			defer cache.Close()

			s, err := cache.Stats()
			if err != nil {
				return err
			}
			tbl := uitable.New()
			tbl.Separator = "  "
			tbl.AddRow(bold.Sprint("Directory"), cache.Dir())
			tbl.AddRow(bold.Sprint("Clips"), s.Entries)
			tbl.AddRow(bold.Sprint("Size"), megabytes(s.Bytes))
			tbl.AddRow(bold.Sprint("Hits"), s.Hits)
			fmt.Fprintln(cmd.OutOrStdout(), tbl)
			return nil
		},
	}

	var maxMB int
	prune := &cobra.Command{
		Use:   "prune",
		Short: "Evict least recently used clips above the size limit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			limit := maxMB
			if !cmd.Flags().Changed("max-mb") {
				limit = SpeechConfig().CacheMaxMB
			}
			cache, err := open()
			if err != nil {
				return err
			}
			defer cache.Close()

			n, freed, err := cache.Prune(int64(limit) << 20)
			if err != nil {
				return err
			}
			okColor.Fprintf(cmd.OutOrStdout(), "Removed %d clips, freed %s\n", n, megabytes(freed))
			return nil
		},
	}
	prune.Flags().IntVar(&maxMB, "max-mb", 0, "Size limit in MB (default: speech.cache_max_mb)")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached clip",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cache, err := open()
			if err != nil {
				return err
			}
			defer cache.Close()

			if err := cache.Clear(); err != nil {
				return err
			}
			okColor.Fprintln(cmd.OutOrStdout(), "Speech cache cleared")
			return nil
		},
	}

	cmd.AddCommand(stats, prune, clearCmd)
	return cmd
}

func megabytes(n int64) string {
	return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
}
