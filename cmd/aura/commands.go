package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/xtding233/aura-gacha/internal/gacha"
)

func newRollCmd(f *rootFlags) *cobra.Command {
	var keep bool
	cmd := &cobra.Command{
		Use:   "roll",
		Short: "Roll one aura and optionally keep it",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), f)
			if err != nil {
				return err
			}
			defer a.Close()

			rolled, ok, err := a.ctrl.Roll()
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("roll ignored")
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s  %s  (%d particles, %s)\n", rolled.Tier, rolled.ID, len(rolled.Pattern), rolled.Config.Color)
			if !keep {
				return nil
			}
			// keep opens once the reveal lockout is over
			select {
			case <-time.After(a.settings.Lockout):
			case <-cmd.Context().Done():
				return cmd.Context().Err()
			}
			if _, ok := a.ctrl.Keep(cmd.Context()); ok {
				fmt.Fprintf(out, "kept; inventory now holds %d\n", len(a.ctrl.Inventory()))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&keep, "keep", false, "keep the rolled aura")
	return cmd
}

func newInventoryCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "inventory",
		Short: "List kept auras in keep order",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), f)
			if err != nil {
				return err
			}
			defer a.Close()

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "#\tTIER\tPARTICLES\tCREATED\tID")
			for i, au := range a.ctrl.Inventory() {
				fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\n", i+1, au.Tier, len(au.Pattern), au.CreatedAt.Format(time.RFC3339), au.ID)
			}
			return tw.Flush()
		},
	}
}

func newSimulateCmd(f *rootFlags) *cobra.Command {
	var (
		draws  int
		trials int
		target string
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Monte Carlo the tier table and compare against configured weights",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, s, err := f.loadSettings()
			if err != nil {
				return err
			}
			weights := s.Table.Weights()
			counts, err := gacha.Tally(weights, f.rng(0), draws)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "TIER\tWEIGHT\tOBSERVED\tDIFF")
			for i, name := range s.Table.Names() {
				obs := float64(counts[i]) / float64(draws)
				fmt.Fprintf(tw, "%s\t%.4f\t%.4f\t%+.4f\n", name, weights[i], obs, obs-weights[i])
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			if target == "" {
				return nil
			}
			idx := s.Table.Index(target)
			if idx < 0 {
				return fmt.Errorf("unknown tier %q", target)
			}
			st, err := gacha.RunMonteCarlo(gacha.SimParams{Weights: weights, Target: idx}, gacha.GoalFirstHit, trials, nil, f.rng(3))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nrolls until %s over %d trials: mean %.1f  sd %.1f  p50 %.0f  p90 %.0f  p99 %.0f\n",
				target, trials, st.Mean, st.StdDev, st.P50, st.P90, st.P99)
			return nil
		},
	}
	cmd.Flags().IntVar(&draws, "draws", 100000, "number of draws to tally")
	cmd.Flags().IntVar(&trials, "trials", 1000, "trials for the rolls-until-target estimate")
	cmd.Flags().StringVar(&target, "target", "", "tier to estimate rolls-until for")
	return cmd
}
