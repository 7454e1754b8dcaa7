package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lixenwraith/killctx/classifier"
	"github.com/lixenwraith/killctx/demo"
	"github.com/lixenwraith/killctx/store"
)

func newDemoCmd(a *app) *cobra.Command {
	var (
		specialOnly bool
		dbPath      string
		name        string
	)

	cmd := &cobra.Command{
		Use:   "demo <file.dem>",
		Short: "Classify every kill in a CS2 demo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open demo: %w", err)
			}
			defer file.Close()

			analyzer := demo.NewAnalyzer(
				demo.WithConfig(a.settings.Classifier),
				demo.WithStreak(a.settings.Streak.Window, a.settings.Streak.Tiers),
				demo.WithTriggers(a.triggers),
				demo.WithClassifier(a.cls),
				demo.WithLogger(a.logger),
			)
			records, err := analyzer.Analyze(cmd.Context(), file)
			printRecords(cmd.OutOrStdout(), records, specialOnly)
			if err != nil || dbPath == "" {
				return err
			}

			if name == "" {
				name = filepath.Base(args[0])
			}
			db, err := store.Open(dbPath)
			if err != nil {
				return err
			}
			defer db.Close()
			if err := db.SaveDemo(cmd.Context(), name, time.Now(), records); err != nil {
				return fmt.Errorf("failed to store demo: %w", err)
			}
			a.logger.Info("demo stored", zap.String("name", name), zap.Int("kills", len(records)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&specialOnly, "special", false, "only list kills that matched at least one context")
	cmd.Flags().StringVar(&dbPath, "db", "", "store classified kills in this SQLite database")
	cmd.Flags().StringVar(&name, "name", "", "name to store the demo under (default: file name)")
	return cmd
}

func newHistoryCmd() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "history [demo]",
		Short: "List stored demos, or the trigger breakdown of one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := store.Open(dbPath)
			if err != nil {
				return err
			}
			defer db.Close()

			w := cmd.OutOrStdout()
			if len(args) == 0 {
				names, err := db.Demos(cmd.Context())
				if err != nil {
					return err
				}
				for _, n := range names {
					fmt.Fprintln(w, n)
				}
				return nil
			}

			counts, err := db.TriggerCounts(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printTriggerCounts(w, counts)
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "killctx.db", "SQLite database written by demo --db")
	return cmd
}

// printTriggerCounts lists triggers by count, most frequent first
func printTriggerCounts(w io.Writer, counts map[string]int) {
	triggers := make([]string, 0, len(counts))
	total := 0
	for t, n := range counts {
		triggers = append(triggers, t)
		total += n
	}
	sort.Slice(triggers, func(i, j int) bool {
		if counts[triggers[i]] != counts[triggers[j]] {
			return counts[triggers[i]] > counts[triggers[j]]
		}
		return triggers[i] < triggers[j]
	})

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TRIGGER\tKILLS")
	for _, t := range triggers {
		fmt.Fprintf(tw, "%s\t%d\n", t, counts[t])
	}
	tw.Flush()
	fmt.Fprintf(w, "%d kills\n", total)
}

func printRecords(w io.Writer, records []demo.KillRecord, specialOnly bool) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TICK\tTIME\tKILLER\tVICTIM\tWEAPON\tTRIGGER\tCONTEXTS")
	shown := 0
	for _, r := range records {
		if specialOnly && r.Modifier.TriggeredContexts == classifier.ContextNone {
			continue
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Tick, r.Time.Truncate(time.Millisecond), r.Killer, r.Victim, r.Weapon, r.Trigger, r.Modifier.DebugInfo)
		shown++
	}
	tw.Flush()
	fmt.Fprintf(w, "%d of %d kills\n", shown, len(records))
}
