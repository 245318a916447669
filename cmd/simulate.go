package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/stefmolin/login-attempt-simulator/internal/export"
	"github.com/stefmolin/login-attempt-simulator/internal/logging"
	"github.com/stefmolin/login-attempt-simulator/internal/simulator"
	"github.com/stefmolin/login-attempt-simulator/internal/userbase"
)

var (
	simUserBase        string
	simStart           string
	simEnd             string
	simSeed            int64
	simAttackProb      float64
	simTryAllUsersProb float64
	simVaryOrigins     bool
	simAttemptLog      string
	simCampaignLog     string
	simFormat          string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a simulation and export both logs",
	Long: `Simulate login attempts over the configured time window and write
the attempt log and the campaign log, sorted by timestamp.

Examples:
  # One month starting January 2024, fixed seed
  loginsim simulate --start 2024-01-01T00:00:00Z --end 2024-02-01T00:00:00Z --seed 42

  # Noisier attacker that switches origins between targets
  loginsim simulate --start 2024-01-01T00:00:00Z --attack-prob 0.25 --vary-origins`,
	RunE: runSimulate,
}

func init() {
	rootCmd.AddCommand(simulateCmd)

	simulateCmd.Flags().StringVar(&simUserBase, "user-base", "", "user base JSON file")
	simulateCmd.Flags().StringVar(&simStart, "start", "", "simulation start (RFC3339)")
	simulateCmd.Flags().StringVar(&simEnd, "end", "", "simulation end (RFC3339, default start plus 1-50 random days)")
	simulateCmd.Flags().Int64Var(&simSeed, "seed", 0, "random seed (0 picks one from the clock)")
	simulateCmd.Flags().Float64Var(&simAttackProb, "attack-prob", -1, "probability of a campaign per hour")
	simulateCmd.Flags().Float64Var(&simTryAllUsersProb, "try-all-users-prob", -1, "probability a campaign targets every user")
	simulateCmd.Flags().BoolVar(&simVaryOrigins, "vary-origins", false, "attacker switches origins between targets")
	simulateCmd.Flags().StringVar(&simAttemptLog, "attempt-log", "", "attempt log output path")
	simulateCmd.Flags().StringVar(&simCampaignLog, "campaign-log", "", "campaign log output path")
	simulateCmd.Flags().StringVar(&simFormat, "format", "", "output format: csv or json")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	mergeSimulateFlags(cmd)

	format, err := export.ParseFormat(cfg.Output.Format)
	if err != nil {
		return err
	}

	start, err := cfg.StartTime()
	if err != nil {
		return err
	}
	if start.IsZero() {
		return fmt.Errorf("start time is required (--start or config)")
	}
	end, err := cfg.EndTime()
	if err != nil {
		return err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	base, err := userbase.Load(cfg.UserBase)
	if err != nil {
		return err
	}
	provider, err := userbase.NewProvider(base, userbase.NewGenerator(seed))
	if err != nil {
		return err
	}

	sim, err := simulator.New(provider, simulator.Options{
		Start:                 start,
		End:                   end,
		AttackerSuccessProbs:  cfg.Profiles.Attacker,
		ValidUserSuccessProbs: cfg.Profiles.ValidUser,
		Seed:                  seed,
	})
	if err != nil {
		return err
	}

	slog.Info("simulating", logging.Seed(seed), slog.Int("users", len(provider.Usernames())))

	err = sim.Simulate(simulator.Params{
		AttackProb:      cfg.Attack.Prob,
		TryAllUsersProb: cfg.Attack.TryAllUsersProb,
		VaryOrigins:     cfg.Attack.VaryOrigins,
	})
	if err != nil {
		return err
	}

	if err := export.SaveAttempts(cfg.Output.AttemptLog, format, sim.Log()); err != nil {
		return err
	}
	if err := export.SaveCampaigns(cfg.Output.CampaignLog, format, sim.CampaignLog()); err != nil {
		return err
	}

	slog.Info("logs written",
		slog.String("attempt_log", cfg.Output.AttemptLog),
		slog.String("campaign_log", cfg.Output.CampaignLog),
	)
	return nil
}

// mergeSimulateFlags lets explicitly set flags override the config file.
func mergeSimulateFlags(cmd *cobra.Command) {
	if cmd.Flags().Changed("user-base") {
		cfg.UserBase = simUserBase
	}
	if cmd.Flags().Changed("start") {
		cfg.Start = simStart
	}
	if cmd.Flags().Changed("end") {
		cfg.End = simEnd
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = simSeed
	}
	if cmd.Flags().Changed("attack-prob") {
		cfg.Attack.Prob = simAttackProb
	}
	if cmd.Flags().Changed("try-all-users-prob") {
		cfg.Attack.TryAllUsersProb = simTryAllUsersProb
	}
	if cmd.Flags().Changed("vary-origins") {
		cfg.Attack.VaryOrigins = simVaryOrigins
	}
	if cmd.Flags().Changed("attempt-log") {
		cfg.Output.AttemptLog = simAttemptLog
	}
	if cmd.Flags().Changed("campaign-log") {
		cfg.Output.CampaignLog = simCampaignLog
	}
	if cmd.Flags().Changed("format") {
		cfg.Output.Format = simFormat
	}
}
