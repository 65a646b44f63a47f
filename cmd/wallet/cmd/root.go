package cmd

import (
	"fmt"
	"os"

	"github.com/AlexZinkM/wallet-approval/internal/client"
	"github.com/AlexZinkM/wallet-approval/internal/config"
	"github.com/AlexZinkM/wallet-approval/internal/credential"
	"github.com/AlexZinkM/wallet-approval/internal/logging"
	"github.com/AlexZinkM/wallet-approval/internal/metrics"
	"github.com/AlexZinkM/wallet-approval/internal/wallet"

	"github.com/spf13/cobra"
)

var (
	cfg    *config.Config
	logger *logging.Logger
)

// rootCmd is the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Wallet client with human-approved transfers",
	Long: `A client for WalletService: create and inspect wallets, and move funds
through an explicit prepare, approve, sign and execute flow.

Configuration comes from the environment or a .env file (see WALLET_API_URL).`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute adds all child commands to the root command and runs it
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command, args []string) error {
	if err := config.Init(); err != nil {
		return err
	}
	cfg = config.Get()

	l, err := logging.NewLogger(logging.FromSettings(cfg.LogLevel, cfg.LogFormat, cfg.LogDev))
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	logger = l
	logging.SetGlobal(logger)
	return nil
}

// newWalletService builds the WalletService client with its circuit breaker.
func newWalletService(collector metrics.Collector) (*client.WalletServiceClient, *client.Breaker) {
	breaker := client.NewBreaker(client.BreakerConfig{
		MaxFailures: cfg.BreakerMaxFailures,
		OpenTimeout: cfg.BreakerOpenTimeout,
	}, collector, logger)

	svc := client.NewWalletServiceClient(cfg.WalletAPIURL, cfg.WalletAPITimeout,
		client.WithBreaker(breaker),
		client.WithMetrics(collector),
		client.WithLogger(logger),
	)
	return svc, breaker
}

// priceSource returns the ETH/USD feed, or nil when disabled.
func priceSource() wallet.PriceSource {
	if !cfg.PriceFeedEnabled {
		return nil
	}
	return client.NewCoinGeckoClient(cfg.PriceFeedURL)
}

// newSession opens a CLI session; withKey asks for the private key (keyfile first, then the terminal).
func newSession(withKey bool) *wallet.Session {
	svc, _ := newWalletService(metrics.NoOpCollector{})

	opts := []wallet.SessionOption{wallet.WithLogger(logger)}
	if p := priceSource(); p != nil {
		opts = append(opts, wallet.WithPriceSource(p))
	}

	var creds wallet.CredentialProvider
	if withKey {
		read := credential.HiddenInput(os.Stdin, os.Stderr)
		chain := credential.Chain{}
		if path := keyFilePath(); path != "" {
			chain = append(chain, credential.KeyFile{Path: path, Read: read})
		}
		creds = append(chain, credential.Terminal{Read: read})
	}
	return wallet.NewSession(svc, creds, opts...)
}

var keyFileFlag string

func keyFilePath() string {
	if keyFileFlag != "" {
		return keyFileFlag
	}
	return config.GetKeyFilePath()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&keyFileFlag, "keyfile", "", "encrypted .cwt keyfile (overrides KEYFILE_PATH)")
}
