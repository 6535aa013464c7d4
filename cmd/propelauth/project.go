package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/propelauth/cli/internal/config"
	"github.com/propelauth/cli/internal/messages"
	"github.com/propelauth/cli/internal/ui"
)

func newProjectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   messages.ProjectUse,
		Short: messages.ProjectShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfigFunc()
			if err != nil {
				return err
			}
			if !cfg.IsAuthenticated() {
				return fmt.Errorf(messages.NotLoggedIn)
			}
			prompts := newUIFunc()

			selection := cfg.ProjectSelection.Option
			modeOptions := []ui.Option{
				{Label: messages.ProjectOptionAlwaysAsk, Value: config.SelectionAlwaysAsk},
				{Label: messages.ProjectOptionUseDefault, Value: config.SelectionUseDefault},
			}
			if err := prompts.Select(messages.ProjectModePrompt, modeOptions, &selection); err != nil {
				return err
			}

			cfg.ProjectSelection.Option = selection
			if selection == config.SelectionUseDefault {
				client := newAPIClientFunc(cfg.APIKey)
				project, err := promptForProject(cmd.Context(), client, prompts)
				if err != nil {
					return err
				}
				cfg.ProjectSelection.DefaultProject = &project
			} else {
				cfg.ProjectSelection.DefaultProject = nil
			}

			if err := saveConfigFunc(cfg); err != nil {
				return err
			}

			if selection == config.SelectionUseDefault {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), messages.ProjectDefaultSavedFmt,
					cfg.ProjectSelection.DefaultProject.DisplayName)
			} else {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), messages.ProjectAlwaysAskSaved)
			}
			return nil
		},
	}
}
