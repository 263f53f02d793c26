package cmd

import (
	"fmt"
	"strconv"

	"game-tracker/feature/library/models"
	"game-tracker/feature/sources"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	syncUser     string
	syncAccount  string
	syncToken    string
	syncWishlist bool
)

// syncCmd imports one platform library from the command line.
var syncCmd = &cobra.Command{
	Use:   "sync <platform>",
	Short: "Import a platform library into a user's catalog",
	Long:  `Fetches the user's library (or wishlist) from steam, psn or xbox, matches it against the catalog and merges it.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		platform, err := models.ParsePlatform(args[0])
		if err != nil {
			return err
		}

		a, err := loadApp()
		if err != nil {
			return err
		}
		defer a.logger.Sync()

		if err := a.connect(cmd.Context()); err != nil {
			return err
		}
		if err := a.store.Migrate(); err != nil {
			return fmt.Errorf("failed to migrate: %w", err)
		}

		cred := sources.Credential{AccountID: syncAccount, AccessToken: syncToken}
		result, err := a.service.Sync(cmd.Context(), syncUser, platform, cred, syncWishlist)
		if err != nil {
			return fmt.Errorf("sync failed: %w", err)
		}

		fmt.Println(renderTable(
			[]string{"Total", "Matched", "Unmatched", "Imported", "Updated", "Failed"},
			[][]string{{
				strconv.Itoa(result.TotalGames),
				strconv.Itoa(result.Matched),
				strconv.Itoa(result.Unmatched),
				strconv.Itoa(result.Imported),
				strconv.Itoa(result.Updated),
				strconv.Itoa(result.Failed),
			}},
			[]columnAlignment{alignRight, alignRight, alignRight, alignRight, alignRight, alignRight},
		))

		a.logger.Info("Sync completed", zap.String("user_id", syncUser), zap.String("platform", string(platform)))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(syncCmd)

	syncCmd.Flags().StringVar(&syncUser, "user", "", "User ID owning the library")
	syncCmd.Flags().StringVar(&syncAccount, "account", "", "Platform account ID (steamid, xuid)")
	syncCmd.Flags().StringVar(&syncToken, "token", "", "Platform access token")
	syncCmd.Flags().BoolVar(&syncWishlist, "wishlist", false, "Import the wishlist instead of the library")
	_ = syncCmd.MarkFlagRequired("user")
}
