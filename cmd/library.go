package cmd

import (
	"fmt"
	"strconv"

	"game-tracker/feature/library/models"

	"github.com/spf13/cobra"
)

// libraryCmd prints a user's library.
var libraryCmd = &cobra.Command{
	Use:   "library <user>",
	Short: "List the games tracked by a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp()
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		if err := a.connect(cmd.Context()); err != nil {
			return err
		}

		entries, err := a.service.Entries(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No games tracked.")
			return nil
		}

		rows := make([][]string, 0, len(entries))
		for _, e := range entries {
			rows = append(rows, []string{
				e.DisplayName,
				string(e.Status),
				string(e.Source),
				platformKeys(e),
				formatPlaytime(e.PlaytimeMinutes),
				formatRating(e.Rating),
			})
		}

		fmt.Println(renderTable(
			[]string{"Game", "Status", "Source", "Platforms", "Playtime", "Rating"},
			rows,
			[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight},
		))
		return nil
	},
}

func platformKeys(e models.LibraryEntry) string {
	out := ""
	for _, p := range models.Platforms {
		if e.PlatformKey(p) == nil {
			continue
		}
		if out != "" {
			out += ","
		}
		out += string(p)
	}
	return out
}

func formatPlaytime(minutes int) string {
	if minutes == 0 {
		return "-"
	}
	return fmt.Sprintf("%dh%02dm", minutes/60, minutes%60)
}

func formatRating(rating *int) string {
	if rating == nil {
		return "-"
	}
	return strconv.Itoa(*rating)
}

func init() {
	RootCmd.AddCommand(libraryCmd)
}
