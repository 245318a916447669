package cmd

import (
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/stefmolin/login-attempt-simulator/internal/logging"
	"github.com/stefmolin/login-attempt-simulator/internal/userbase"
)

var (
	userbaseOut  string
	userbaseSeed int64
)

var userbaseCmd = &cobra.Command{
	Use:   "userbase",
	Short: "User base commands",
}

var userbaseGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a user base and its origin mapping",
	Long: `Generate the standard user population (first initial plus surname,
plus a few service accounts), assign each user 1-3 public IPv4 origins, and
save the mapping as JSON.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		seed := userbaseSeed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}

		users := userbase.MakeUsernames()
		base := userbase.NewGenerator(seed).AssignOrigins(users)
		if err := userbase.Save(userbaseOut, base); err != nil {
			return err
		}

		slog.Info("user base written",
			slog.String("path", userbaseOut),
			logging.Count(len(base)),
			logging.Seed(seed),
		)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(userbaseCmd)
	userbaseCmd.AddCommand(userbaseGenerateCmd)

	userbaseGenerateCmd.Flags().StringVar(&userbaseOut, "out", "user_ips.json", "output path for the user base JSON")
	userbaseGenerateCmd.Flags().Int64Var(&userbaseSeed, "seed", 0, "random seed (0 picks one from the clock)")
}
