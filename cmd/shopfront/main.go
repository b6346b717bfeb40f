package main

import (
	"context"
	"os"
	"time"

	"github.com/niksmo/shopfront/config"
	"github.com/niksmo/shopfront/internal/app"
	"github.com/niksmo/shopfront/pkg/sigctx"
	"github.com/spf13/cobra"
)

const closeTimeout = 5 * time.Second

var configFile string

var rootCmd = &cobra.Command{
	Use:   "shopfront",
	Short: "Browse the storefront catalog and manage a cart",
	Long: `Shopfront is a terminal storefront.

Without a subcommand it opens the catalog browser. The same carts are
served over HTTP by 'shopfront serve'.`,
	SilenceUsage: true,
	RunE:         runBrowse,
}

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Open the catalog browser",
	RunE:  runBrowse,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the catalog and carts as JSON over HTTP",
	RunE:  runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&configFile, "config", "", "config file (env SHOPFRONT_CONFIG_FILE)",
	)
	rootCmd.AddCommand(browseCmd, serveCmd, cartCmd, eventsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (config.Config, error) {
	return config.LoadFile(config.FilePath(configFile))
}

func loadAppConfig() (config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return config.Config{}, err
	}
	if err := cfg.RequireAPI(); err != nil {
		return config.Config{}, err
	}
	if cfg.Broker.Enabled() {
		if err := cfg.RequireBroker(); err != nil {
			return config.Config{}, err
		}
	}
	return cfg, nil
}

func runBrowse(_ *cobra.Command, _ []string) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}

	sigCtx, closeApp := sigctx.NotifyContext()
	defer closeApp()

	shop := app.New(sigCtx, cfg, app.ModeTerminal)
	defer closeWithTimeout(shop)

	return shop.Browse()
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}
	cfg.Print()

	sigCtx, closeApp := sigctx.NotifyContext()
	defer closeApp()

	shop := app.New(sigCtx, cfg, app.ModeServer)
	shop.Serve(closeApp)

	<-sigCtx.Done()
	closeWithTimeout(shop)
	return nil
}

func closeWithTimeout(shop *app.App) {
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	shop.Close(ctx)
}
