package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sayanm085/puzzle-mind/internal/logging"
	"github.com/sayanm085/puzzle-mind/internal/profilestore"
)

var inspectFlags struct {
	dbPath     string
	last       int
	version    string
	jsonOut    bool
	provenance bool
	sessions   bool
}

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Inspect profile versions, session history, and provenance in a store",
	RunE:  runInspect,
}

func init() {
	f := inspectCmd.Flags()
	f.StringVar(&inspectFlags.dbPath, "db", "puzzle_mind.db", "profile store path")
	f.IntVar(&inspectFlags.last, "last", 10, "show N most recent entries")
	f.StringVar(&inspectFlags.version, "version", "", "show single profile version detail")
	f.BoolVar(&inspectFlags.jsonOut, "json", false, "output as JSON instead of text")
	f.BoolVar(&inspectFlags.provenance, "provenance", false, "show the provenance log")
	f.BoolVar(&inspectFlags.sessions, "sessions", false, "show the session history")
}

func runInspect(cmd *cobra.Command, _ []string) error {
	store, err := profilestore.Open(inspectFlags.dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	switch {
	case inspectFlags.version != "":
		return inspectVersion(store, inspectFlags.version)
	case inspectFlags.provenance:
		return inspectProvenance(store)
	case inspectFlags.sessions:
		return inspectSessions(store)
	default:
		return inspectVersions(store)
	}
}

func inspectVersion(store *profilestore.Store, id string) error {
	ver, err := store.GetVersion(id)
	if err != nil {
		return err
	}
	if inspectFlags.jsonOut {
		return printJSON(ver.Model)
	}
	m := ver.Model
	fmt.Printf("version %s (parent %s)\n", ver.VersionID, orDash(ver.ParentID))
	fmt.Printf("player %s  sessions %d  trials %d  accuracy %.3f  stage %d\n",
		m.PlayerID, m.TotalSessions, m.TotalTrials, m.LifetimeAccuracy, m.EvolutionStage)
	fmt.Printf("cognitive avg %.1f  weakest %s\n", m.Cognitive.Average(), firstOf(m.Cognitive.Weakest()))
	fmt.Printf("reaction mean %.0fms median %.0fms trend %s\n",
		m.Reaction.MeanMs, m.Reaction.MedianMs, m.Reaction.Trend)
	return nil
}

func inspectVersions(store *profilestore.Store) error {
	versions, err := store.ListVersions(inspectFlags.last)
	if err != nil {
		return err
	}
	if inspectFlags.jsonOut {
		return printJSON(versions)
	}
	for _, v := range versions {
		fmt.Printf("%s  %s  sessions=%d  accuracy=%.3f  stage=%d\n",
			v.CreatedAt.Format("2006-01-02 15:04:05"), v.VersionID[:8],
			v.Model.TotalSessions, v.Model.LifetimeAccuracy, v.Model.EvolutionStage)
	}
	return nil
}

func inspectProvenance(store *profilestore.Store) error {
	entries, err := logging.Recent(store.DB(), inspectFlags.last)
	if err != nil {
		return err
	}
	if inspectFlags.jsonOut {
		return printJSON(entries)
	}
	for _, e := range entries {
		fmt.Printf("%s  %s  %s  %s\n",
			e.CreatedAt.Format("2006-01-02 15:04:05"), e.VersionID[:8], e.Decision, e.Reason)
	}
	return nil
}

func inspectSessions(store *profilestore.Store) error {
	sessions, err := store.RecentSessions(inspectFlags.last)
	if err != nil {
		return err
	}
	if inspectFlags.jsonOut {
		return printJSON(sessions)
	}
	for _, s := range sessions {
		fmt.Printf("%s  %-10s  accuracy=%.2f  rounds=%d  response=%.0fms\n",
			s.CompletedAt.Format("2006-01-02 15:04:05"), s.Sector, s.Accuracy, s.RoundsPlayed, s.MeanResponseMs)
	}
	return nil
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func firstOf(name string, _ float64) string { return name }
