package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/keyring/cmd/app/commands"
	"github.com/allisson/keyring/internal/app"
	"github.com/allisson/keyring/internal/config"
)

// applyConfigurationDefaults falls back to the configured descriptor defaults
// for any flag the caller left unset.
func applyConfigurationDefaults(cfg *config.Config, algorithm, provider string, keySizeBits int) (string, string, int) {
	if algorithm == "" {
		algorithm = cfg.DefaultAlgorithm
	}
	if provider == "" {
		provider = cfg.DefaultProvider
	}
	if keySizeBits == 0 {
		keySizeBits = cfg.DefaultKeySizeBits
	}
	return algorithm, provider, keySizeBits
}

func getDescriptorCommands() []*cli.Command {
	configurationFlags := []cli.Flag{
		&cli.StringFlag{
			Name:    "kind",
			Aliases: []string{"k"},
			Value:   "gcm-v1",
			Usage:   "Descriptor kind (gcm-v1 or chacha20-poly1305-v1)",
		},
		&cli.StringFlag{
			Name:    "algorithm",
			Aliases: []string{"alg"},
			Value:   "",
			Usage:   "Block cipher for gcm-v1 descriptors (defaults to configured algorithm)",
		},
		&cli.StringFlag{
			Name:    "provider",
			Aliases: []string{"p"},
			Value:   "",
			Usage:   "Crypto provider for gcm-v1 descriptors (defaults to the built-in provider)",
		},
		&cli.IntFlag{
			Name:    "key-size",
			Aliases: []string{"s"},
			Value:   0,
			Usage:   "Key size in bits for gcm-v1 descriptors (defaults to configured key size)",
		},
	}

	return []*cli.Command{
		{
			Name:  "validate-config",
			Usage: "Run the encrypt/decrypt self test against a configuration",
			Flags: configurationFlags,
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				configurationUseCase, err := container.ConfigurationUseCase()
				if err != nil {
					return err
				}

				algorithm, provider, keySizeBits := applyConfigurationDefaults(
					cfg,
					cmd.String("algorithm"),
					cmd.String("provider"),
					int(cmd.Int("key-size")),
				)

				return commands.RunValidateConfig(
					ctx,
					configurationUseCase,
					container.Logger(),
					commands.DefaultIO(),
					cmd.String("kind"),
					algorithm,
					provider,
					keySizeBits,
				)
			},
		},
		{
			Name:  "create-descriptor",
			Usage: "Validate a configuration and export it as a descriptor document",
			Flags: append(configurationFlags,
				&cli.StringFlag{
					Name:  "secret",
					Value: "",
					Usage: "Base64-encoded master key material (omit to generate a fresh key)",
				},
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Value:   "",
					Usage:   "File to write the descriptor to (omit for stdout)",
				},
			),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				configurationUseCase, err := container.ConfigurationUseCase()
				if err != nil {
					return err
				}

				algorithm, provider, keySizeBits := applyConfigurationDefaults(
					cfg,
					cmd.String("algorithm"),
					cmd.String("provider"),
					int(cmd.Int("key-size")),
				)

				return commands.RunCreateDescriptor(
					ctx,
					configurationUseCase,
					container.Logger(),
					commands.DefaultIO(),
					cmd.String("kind"),
					algorithm,
					provider,
					keySizeBits,
					cmd.String("secret"),
					cmd.String("output"),
				)
			},
		},
		{
			Name:  "inspect-descriptor",
			Usage: "Reconstruct a descriptor document and print its configuration",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "file",
					Aliases:  []string{"f"},
					Required: true,
					Usage:    "Descriptor document to inspect",
				},
				&cli.StringFlag{
					Name:    "kind",
					Aliases: []string{"k"},
					Value:   "gcm-v1",
					Usage:   "Descriptor kind (gcm-v1 or chacha20-poly1305-v1)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				configurationUseCase, err := container.ConfigurationUseCase()
				if err != nil {
					return err
				}

				return commands.RunInspectDescriptor(
					ctx,
					configurationUseCase,
					container.Logger(),
					commands.DefaultIO(),
					cmd.String("file"),
					cmd.String("kind"),
				)
			},
		},
	}
}
