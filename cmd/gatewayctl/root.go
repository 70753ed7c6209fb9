package main

import (
	"errors"
	"fmt"

	"github.com/hpn/ai-gateway-client/internal/client"
	"github.com/hpn/ai-gateway-client/internal/config"
	"github.com/hpn/ai-gateway-client/internal/security"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// errFailed marks a command whose operation returned the error variant.
// The error has already been rendered, so it is not printed again.
var errFailed = errors.New("operation failed")

// app carries the state shared by every subcommand.
type app struct {
	v       *viper.Viper
	cfgFile string
	envFile string
	output  string

	cfg    *config.Configuration
	client *client.GatewayClient
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:           "gatewayctl",
		Short:         "Talk to an AI gateway from the command line",
		Long:          "gatewayctl sends chat, model listing and health requests to an AI gateway and prints the results.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.String("url", "", "gateway base URL (default $GATEWAY_URL or http://localhost:3000)")
	flags.StringVar(&a.cfgFile, "config", "", "config file path")
	flags.StringVar(&a.envFile, "env-file", "", "dotenv file to load (default .env)")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.StringVarP(&a.output, "output", "o", "text", "output format: text, json, yaml")

	// Flag values win over every other source once set.
	_ = a.v.BindPFlag("gateway.base_url", flags.Lookup("url"))
	_ = a.v.BindPFlag("logging.level", flags.Lookup("log-level"))

	root.AddCommand(newHealthCmd(a))
	root.AddCommand(newModelsCmd(a))
	root.AddCommand(newChatCmd(a))
	root.AddCommand(newDemoCmd(a))

	return root
}

// setup loads configuration and builds the client.
func (a *app) setup(cmd *cobra.Command) error {
	switch a.output {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("unknown output format %q (want text, json or yaml)", a.output)
	}

	cfg, err := config.LoadWithViper(a.v, config.LoadOptions{
		ConfigPath: a.cfgFile,
		EnvFile:    a.envFile,
	})
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	creds := cfg.Credentials()
	logger := security.NewLogger(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format, creds.Values()...)

	a.cfg = cfg
	a.client = client.New(
		client.WithBaseURL(cfg.Gateway.BaseURL),
		client.WithCredentials(creds),
		client.WithTimeouts(client.Timeouts{
			Chat:   cfg.Gateway.ChatTimeout,
			Models: cfg.Gateway.ModelsTimeout,
			Health: cfg.Gateway.HealthTimeout,
		}),
		client.WithDefaultTemperature(cfg.Gateway.DefaultTemperature),
		client.WithLogger(logger),
	)

	return nil
}
