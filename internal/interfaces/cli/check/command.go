// Package check implements the command that probes the marketplace API with
// the console's configuration and prints a short summary.
package check

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	domain "github.com/clinicplace/console/internal/domain/marketplace"
	"github.com/clinicplace/console/internal/infrastructure/auth"
	"github.com/clinicplace/console/internal/infrastructure/config"
	"github.com/clinicplace/console/internal/infrastructure/marketplace"
	"github.com/clinicplace/console/internal/shared/logger"
)

// probeTokenTTL bounds the admin token minted when no service token is set.
const probeTokenTTL = 5 * time.Minute

var (
	env     string
	timeout time.Duration
)

// API is what the check calls on the marketplace.
type API interface {
	ListPlans(ctx context.Context) ([]domain.SubscriptionPlan, error)
	SubscriptionStats(ctx context.Context) (*domain.SubscriptionStats, error)
	PaymentStats(ctx context.Context) (*domain.PaymentStats, error)
}

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check the marketplace API connection",
		Long:  `Call the marketplace API with admin credentials and print plan and revenue totals.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().DurationVar(&timeout, "timeout", 15*time.Second, "Overall deadline for the check")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(&cfg.Logger, "release"); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	token := cfg.Upstream.ServiceToken
	if token == "" {
		token, err = auth.NewJWTService(cfg.Auth.JWT.Secret).Sign(domain.Viewer{
			Name:     "console-check",
			UserType: domain.UserTypeAdmin,
		}, probeTokenTTL)
		if err != nil {
			return fmt.Errorf("failed to sign admin token: %w", err)
		}
	}

	client := marketplace.NewClient(cfg.Upstream.BaseURL,
		marketplace.WithTimeout(cfg.Upstream.Timeout()),
		marketplace.WithLogger(logger.NewLogger().Named("marketplace")),
	).WithToken(token)

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	fmt.Fprintf(cmd.OutOrStdout(), "marketplace: %s\n", cfg.Upstream.BaseURL)
	return Run(ctx, client, cmd.OutOrStdout())
}

// Run fetches the plan catalog and both statistics endpoints and writes a
// summary to w. Any failed call fails the check.
func Run(ctx context.Context, api API, w io.Writer) error {
	var (
		plans    []domain.SubscriptionPlan
		subStats *domain.SubscriptionStats
		payStats *domain.PaymentStats
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		plans, err = api.ListPlans(ctx)
		return err
	})
	g.Go(func() (err error) {
		subStats, err = api.SubscriptionStats(ctx)
		return err
	})
	g.Go(func() (err error) {
		payStats, err = api.PaymentStats(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("marketplace check failed: %w", err)
	}

	fmt.Fprintf(w, "plans: %d\n", len(plans))
	var revenue domain.Amount
	if payStats != nil {
		revenue = payStats.TotalRevenue
	}
	fmt.Fprintf(w, "total revenue: $%s\n", revenue)

	if subStats == nil || len(subStats.ByPlanUsers) == 0 {
		fmt.Fprintln(w, "no active subscriptions")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PLAN\tUSERS")
	for _, p := range subStats.ByPlanUsers {
		fmt.Fprintf(tw, "%s\t%d\n", p.PlanType, p.UserCount)
	}
	return tw.Flush()
}
