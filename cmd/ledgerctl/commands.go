package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/partnerhub/backend/internal/middleware"
	"github.com/partnerhub/backend/internal/models"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(settleCmd)
	rootCmd.AddCommand(reconcileCmd)
	rootCmd.AddCommand(openAccountCmd)
	rootCmd.AddCommand(tokenCmd)

	settleCmd.Flags().String("week", "", "Monday of the week to settle (YYYY-MM-DD); defaults to the week that just started")
	reconcileCmd.Flags().String("partner", "", "Partner ID")
	openAccountCmd.Flags().String("partner", "", "Partner ID")
	tokenCmd.Flags().String("partner", "", "Partner ID")
	tokenCmd.Flags().String("role", middleware.RolePartner, "Token role (partner or admin)")
	tokenCmd.Flags().Duration("ttl", 0, "Token lifetime (defaults to JWT_EXPIRY_HOURS)")
}

var settleCmd = &cobra.Command{
	Use:   "settle",
	Short: "Settle an auction week",
	Long: `Settle every pending bid of an auction week. Winners get placements, losers
are refunded and late bids are forfeited. Re-running after a failure resumes
with the bids that are still pending.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		week, _ := cmd.Flags().GetString("week")

		b, err := connect(cmd.Context())
		if err != nil {
			return err
		}
		defer b.Close()

		var run *models.SettlementRun
		if week == "" {
			run, err = b.settlement.SettleCurrentWeek(cmd.Context())
		} else {
			run, err = b.settlement.SettleWeek(cmd.Context(), week)
		}
		if err != nil {
			return err
		}
		if err := printJSON(cmd.OutOrStdout(), run); err != nil {
			return err
		}
		if run.Status == models.SettlementFailed {
			return fmt.Errorf("settlement of %s incomplete: %s", run.WeekKey, run.Error)
		}
		return nil
	},
}

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Compare a partner's stored balance with the sum of its ledger",
	RunE: func(cmd *cobra.Command, args []string) error {
		partnerID, err := requiredFlag(cmd, "partner")
		if err != nil {
			return err
		}

		b, err := connect(cmd.Context())
		if err != nil {
			return err
		}
		defer b.Close()

		report, err := b.ledger.Reconcile(cmd.Context(), partnerID)
		if err != nil {
			return err
		}
		if err := printJSON(cmd.OutOrStdout(), report); err != nil {
			return err
		}
		if !report.Consistent {
			return fmt.Errorf("balance of %s does not match its ledger", partnerID)
		}
		return nil
	},
}

var openAccountCmd = &cobra.Command{
	Use:   "open-account",
	Short: "Create a partner with an empty balance",
	RunE: func(cmd *cobra.Command, args []string) error {
		partnerID, err := requiredFlag(cmd, "partner")
		if err != nil {
			return err
		}

		b, err := connect(cmd.Context())
		if err != nil {
			return err
		}
		defer b.Close()

		if err := b.ledger.OpenAccount(cmd.Context(), partnerID); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "account %s ready\n", partnerID)
		return nil
	},
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for local development",
	RunE: func(cmd *cobra.Command, args []string) error {
		partnerID, _ := cmd.Flags().GetString("partner")
		role, _ := cmd.Flags().GetString("role")
		ttl, _ := cmd.Flags().GetDuration("ttl")
		if ttl <= 0 {
			ttl = time.Duration(viper.GetInt("jwt.expiry_hours")) * time.Hour
		}

		if role != middleware.RolePartner && role != middleware.RoleAdmin {
			return fmt.Errorf("role must be %s or %s", middleware.RolePartner, middleware.RoleAdmin)
		}
		if role == middleware.RolePartner && strings.TrimSpace(partnerID) == "" {
			return fmt.Errorf("--partner is required for partner tokens")
		}
		secret := viper.GetString("jwt.secret_key")
		if secret == "" {
			return fmt.Errorf("JWT_SECRET_KEY is not set")
		}

		token, err := middleware.IssueToken(partnerID, role, ttl, []byte(secret))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func requiredFlag(cmd *cobra.Command, name string) (string, error) {
	v, _ := cmd.Flags().GetString(name)
	v = strings.TrimSpace(v)
	if v == "" {
		return "", fmt.Errorf("--%s is required", name)
	}
	return v, nil
}
