package controllers

import (
	"fmt"
	"strings"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/reposync/internal/domain/commands"
	"github.com/rios0rios0/reposync/internal/domain/entities"
	"github.com/rios0rios0/reposync/internal/domain/repositories"
	"github.com/rios0rios0/reposync/internal/infrastructure/repositories/cli"
)

// SyncController handles the "sync" subcommand.
type SyncController struct {
	sessions    commands.Sessions
	workingCopy repositories.WorkingCopyRepository
	git         GitVersionProvider
}

// NewSyncController creates a new SyncController.
func NewSyncController(
	sessions commands.Sessions,
	workingCopy repositories.WorkingCopyRepository,
	git GitVersionProvider,
) *SyncController {
	return &SyncController{sessions: sessions, workingCopy: workingCopy, git: git}
}

// GetBind returns the Cobra command metadata.
func (it *SyncController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "sync [path]",
		Short: "Make the remote match the local working copy",
		Long: `Stage and commit every local change, rebase onto the remote branch when
possible, then FORCE PUSH so the remote matches the local folder exactly.
The access token is embedded in origin only for the duration of the run.`,
	}
}

// AddFlags adds sync-specific flags.
func (it *SyncController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("path", "", "Local working copy (defaults to the configured path)")
	cmd.Flags().String("remote-url", "", "HTTPS remote URL (defaults to the configured URL, then origin)")
	cmd.Flags().StringP("username", "u", "", "Account name used for the commit and the remote")
	cmd.Flags().StringP("email", "e", "", "Committer email")
	cmd.Flags().StringP("token", "t", "", "Access token (never saved; prefer the config reference or env)")
	cmd.Flags().StringP("message", "m", "", "Commit message")
	cmd.Flags().String("confirm", "", "Skip the prompt by passing YES")
}

// Execute runs the sync workflow and waits for it to finish.
func (it *SyncController) Execute(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	req, err := it.buildRequest(cmd, args, settings)
	if err != nil {
		return err
	}
	if validateErr := req.Validate(); validateErr != nil {
		return entities.RedactError(validateErr, req.Remote.Token)
	}
	if !it.workingCopy.IsRepository(req.RepoPath) {
		return fmt.Errorf("%w: %s", entities.ErrNotARepository, req.RepoPath)
	}

	ctx := commandContext(cmd)
	it.warnOnOldGit(cmd)

	confirm, _ := cmd.Flags().GetString("confirm")
	if confirmErr := confirmForcePush(
		cmd.InOrStdin(), cmd.OutOrStdout(), req.Remote.PublicURL(), confirm,
	); confirmErr != nil {
		return confirmErr
	}

	out := &lockedWriter{out: cmd.OutOrStdout()}
	ctx = entities.WithCommandTimeout(ctx, settings.CommandTimeout)
	session, err := it.sessions.StartSync(ctx, req, out.println)
	if err != nil {
		return err
	}

	outcome := awaitSession(ctx, it.sessions, session)
	return outcomeError(cmd.OutOrStdout(), entities.SessionSync, outcome)
}

func (it *SyncController) buildRequest(
	cmd *cobra.Command,
	args []string,
	settings *entities.Settings,
) (entities.SyncRequest, error) {
	flags := cmd.Flags()
	pathFlag, _ := flags.GetString("path")
	remoteFlag, _ := flags.GetString("remote-url")
	usernameFlag, _ := flags.GetString("username")
	emailFlag, _ := flags.GetString("email")
	tokenFlag, _ := flags.GetString("token")
	messageFlag, _ := flags.GetString("message")

	var argPath string
	if len(args) > 0 {
		argPath = args[0]
	}
	repoPath := entities.ExpandPath(firstNonEmpty(argPath, pathFlag, settings.Repository.Path))

	remoteURL := firstNonEmpty(remoteFlag, settings.Repository.RemoteURL)
	if remoteURL == "" && repoPath != "" {
		origin, originErr := it.workingCopy.OriginURL(repoPath)
		if originErr != nil {
			logger.Debugf("Could not read origin of %s: %v", repoPath, originErr)
		}
		remoteURL = entities.StripCredentials(origin)
	}

	token := firstNonEmpty(tokenFlag, settings.AccessToken(), resolveTokenFromEnv(remoteURL))
	if token == "" {
		if hint := tokenEnvHint(remoteURL); len(hint) > 0 {
			logger.Warnf("No access token found; set one of %s", strings.Join(hint, ", "))
		}
	}

	remote, err := entities.NewRemoteEndpoint(
		remoteURL,
		strings.TrimSpace(firstNonEmpty(usernameFlag, settings.Identity.Username)),
		strings.TrimSpace(token),
	)
	if err != nil {
		return entities.SyncRequest{}, fmt.Errorf("invalid remote: %w", err)
	}

	return entities.SyncRequest{
		RepoPath:      repoPath,
		Remote:        remote,
		Email:         strings.TrimSpace(firstNonEmpty(emailFlag, settings.Identity.Email)),
		CommitMessage: firstNonEmpty(messageFlag, settings.CommitMessage),
	}, nil
}

// warnOnOldGit flags installations that predate "git branch --show-current";
// the run still works because branch discovery falls back to the default branch.
func (it *SyncController) warnOnOldGit(cmd *cobra.Command) {
	version, err := it.git.Version(commandContext(cmd))
	if err != nil {
		logger.Debugf("Could not determine git version: %v", err)
		return
	}
	if !cli.SupportsShowCurrent(version) {
		logger.Warnf(
			"git %s predates %s; the branch will fall back to %q",
			version, cli.MinimumShowCurrentVersion, commands.DefaultBranch,
		)
	}
}
