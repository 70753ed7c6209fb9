package main

import (
	"fmt"
	"strings"

	"github.com/hpn/ai-gateway-client/internal/client"
	"github.com/hpn/ai-gateway-client/internal/domain"
	"github.com/hpn/ai-gateway-client/internal/ui"
	"github.com/spf13/cobra"
)

// demoMessage and demoProviders mirror the gateway's quick start walkthrough.
const demoMessage = "What is the meaning of life?"

var demoProviders = []domain.ProviderType{
	domain.ProviderGemini,
	domain.ProviderGroq,
	domain.ProviderOllama,
}

func newHealthCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check gateway health and provider configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := a.client.HealthCheck(cmd.Context())
			return render(cmd, a, "health", r, ui.PrintHealth)
		},
	}
}

func newModelsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "models <provider>",
		Short: "List the models a provider offers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := a.client.ListModels(cmd.Context(), domain.ProviderType(args[0]))
			return render(cmd, a, "models", r, ui.PrintModels)
		},
	}
}

func newChatCmd(a *app) *cobra.Command {
	var (
		model       string
		temperature float64
		maxTokens   int
	)

	cmd := &cobra.Command{
		Use:   "chat <provider> <message...>",
		Short: "Send a message to a provider through the gateway",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []client.ChatOption
			if model != "" {
				opts = append(opts, client.WithModel(model))
			}
			if cmd.Flags().Changed("temperature") {
				opts = append(opts, client.WithTemperature(temperature))
			}
			if maxTokens > 0 {
				opts = append(opts, client.WithMaxTokens(maxTokens))
			}

			message := strings.Join(args[1:], " ")
			r := a.client.Chat(cmd.Context(), domain.ProviderType(args[0]), message, opts...)
			return render(cmd, a, "chat", r, ui.PrintChat)
		},
	}

	cmd.Flags().StringVarP(&model, "model", "m", "", "model name (gateway default when empty)")
	cmd.Flags().Float64VarP(&temperature, "temperature", "t", client.DefaultTemperature, "sampling temperature")
	cmd.Flags().IntVar(&maxTokens, "max-tokens", 0, "maximum reply length in tokens (gateway default when 0)")

	return cmd
}

func newDemoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run a health check and a chat with several providers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			failed := 0

			if a.output == "text" {
				ui.PrintMiniBanner(w)
				ui.PrintCredentials(w, a.client.Credentials())
			}

			section := func(title string) {
				if a.output == "text" {
					ui.PrintSection(w, title)
				}
			}

			section("Health Check")
			if err := render(cmd, a, "health", a.client.HealthCheck(cmd.Context()), ui.PrintHealth); err != nil {
				failed++
			}

			for _, p := range demoProviders {
				section("Chat with " + strings.ToUpper(string(p)))
				r := a.client.Chat(cmd.Context(), p, demoMessage)
				if err := render(cmd, a, "chat", r, ui.PrintChat); err != nil {
					failed++
				}
			}

			if failed > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), "\n%d of %d steps failed\n", failed, len(demoProviders)+1)
				return errFailed
			}
			return nil
		},
	}
}
