package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/santa-racer/internal/games/santa/maps"
)

var flagShowMap string

var mapsCmd = &cobra.Command{
	Use:   "maps [dir]",
	Short: "List the level maps in a directory",
	Long: `List the YAML level maps found under a directory (default ./maps).
A map is playable when its row count matches the configured level rows;
select one with map_file in the config.

Examples:
  santa maps
  santa maps ./levels
  santa maps ./levels --show rooftops`,
	Args: cobra.MaximumNArgs(1),
	Run:  runMaps,
}

func init() {
	mapsCmd.Flags().StringVar(&flagShowMap, "show", "", "Print details of one map by id")
}

func runMaps(_ *cobra.Command, args []string) {
	dir := "./maps"
	if len(args) > 0 {
		dir = args[0]
	}
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	loader := maps.NewLoader(dir)

	if flagShowMap != "" {
		m, err := loader.LoadByID(flagShowMap)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("ID:       %s\n", m.ID)
		fmt.Printf("Name:     %s\n", m.Name)
		fmt.Printf("File:     %s\n", m.FilePath)
		fmt.Printf("Size:     %d x %d tiles\n", m.Cols(), m.Rows())
		fmt.Printf("Chimneys: %d\n", len(m.Chimneys)/4)
		if m.Rows() != cfg.Level.Rows {
			fmt.Printf("Not playable: level has %d rows\n", cfg.Level.Rows)
		}
		return
	}

	ids, err := loader.ListIDs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(ids) == 0 {
		fmt.Printf("No maps in %s\n", dir)
		return
	}
	for _, id := range ids {
		fmt.Println(id)
	}
}
