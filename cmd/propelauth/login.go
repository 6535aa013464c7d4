package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/propelauth/cli/internal/api"
	"github.com/propelauth/cli/internal/messages"
)

var errNoProjects = errors.New(messages.NoProjects)

func newLoginCmd() *cobra.Command {
	var apiKeyFlag string

	cmd := &cobra.Command{
		Use:   messages.LoginUse,
		Short: messages.LoginShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfigFunc()
			if err != nil {
				return err
			}
			prompts := newUIFunc()

			apiKey := apiKeyFlag
			for {
				if apiKey == "" {
					if err := prompts.SecretInput(messages.LoginKeyPrompt, &apiKey); err != nil {
						return err
					}
					if apiKey == "" {
						_, _ = fmt.Fprintln(cmd.ErrOrStderr(), messages.LoginEmptyKey)
						continue
					}
				}

				err := newAPIClientFunc(apiKey).Whoami(cmd.Context())
				if err == nil {
					break
				}
				if !errors.Is(err, api.ErrUnauthorized) {
					return err
				}
				// A key passed by flag cannot be corrected interactively.
				if apiKeyFlag != "" {
					return fmt.Errorf(messages.LoginInvalidKey)
				}
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), messages.LoginInvalidKeyRetry)
				apiKey = ""
			}

			cfg.APIKey = apiKey
			if err := saveConfigFunc(cfg); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), messages.LoginSuccess)
			return nil
		},
	}

	cmd.Flags().StringVar(&apiKeyFlag, "api-key", "", messages.LoginAPIKeyFlagHelp)

	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   messages.LogoutUse,
		Short: messages.LogoutShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfigFunc()
			if err != nil {
				return err
			}
			if cfg.APIKey == "" {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), messages.LogoutNotLoggedIn)
				return nil
			}
			cfg.APIKey = ""
			if err := saveConfigFunc(cfg); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), messages.LogoutSuccess)
			return nil
		},
	}
}
