package controllers

import (
	"fmt"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/reposync/internal/domain/entities"
)

// ConfigureController handles the "configure" subcommand.
type ConfigureController struct{}

// NewConfigureController creates a new ConfigureController.
func NewConfigureController() *ConfigureController {
	return &ConfigureController{}
}

// GetBind returns the Cobra command metadata.
func (it *ConfigureController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "configure",
		Short: "Write the profile file used as defaults by the other commands",
		Long: `Create or update the profile file. Only the flags given are changed.
The access token is saved as a reference: an environment variable name
(--token-env) or a file path (--token-file), never as its value.`,
	}
}

// AddFlags adds configure-specific flags.
func (it *ConfigureController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("path", "", "Local working copy")
	cmd.Flags().String("remote-url", "", "HTTPS remote URL")
	cmd.Flags().String("username", "", "Account name")
	cmd.Flags().String("email", "", "Committer email")
	cmd.Flags().String("token-env", "", "Environment variable holding the access token")
	cmd.Flags().String("token-file", "", "File holding the access token")
	cmd.Flags().String("message", "", "Default commit message")
	cmd.Flags().String("clone-dest", "", "Default clone destination")
	cmd.Flags().Duration("timeout", 0, "Per-command timeout (0 disables it)")
}

// Execute merges the given flags into the profile and saves it.
func (it *ConfigureController) Execute(cmd *cobra.Command, _ []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		if found, err := entities.FindConfigFile(); err == nil {
			configPath = found
		} else {
			configPath = entities.DefaultConfigPath()
		}
	}

	settings, err := entities.LoadSettingsOrDefault(configPath)
	if err != nil {
		logger.Debugf("Starting from an empty profile: %v", err)
		settings = &entities.Settings{}
	}

	if err = applyConfigureFlags(cmd, settings); err != nil {
		return err
	}
	if err = settings.Save(configPath); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Configuration saved to %s\n", configPath)
	return nil
}

func applyConfigureFlags(cmd *cobra.Command, settings *entities.Settings) error {
	flags := cmd.Flags()
	assign := func(name string, target *string) {
		if flags.Changed(name) {
			*target, _ = flags.GetString(name)
		}
	}

	assign("path", &settings.Repository.Path)
	assign("remote-url", &settings.Repository.RemoteURL)
	assign("username", &settings.Identity.Username)
	assign("email", &settings.Identity.Email)
	assign("message", &settings.CommitMessage)
	assign("clone-dest", &settings.Clone.Destination)

	tokenEnv, _ := flags.GetString("token-env")
	tokenFile, _ := flags.GetString("token-file")
	switch {
	case tokenEnv != "" && tokenFile != "":
		return fmt.Errorf("%w: use either --token-env or --token-file", entities.ErrInvalidInput)
	case tokenEnv != "":
		settings.Token = "${" + tokenEnv + "}"
	case tokenFile != "":
		settings.Token = entities.ExpandPath(tokenFile)
	}

	if flags.Changed("timeout") {
		timeout, _ := flags.GetDuration("timeout")
		if timeout < 0 {
			return fmt.Errorf("%w: --timeout cannot be negative", entities.ErrInvalidInput)
		}
		settings.CommandTimeout = timeout
	}

	if settings.Repository.RemoteURL != "" && entities.HasCredentials(settings.Repository.RemoteURL) {
		logger.Warn("Credentials in --remote-url are dropped; only the token reference is saved")
	}
	return nil
}
