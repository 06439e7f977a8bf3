package controllers

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/reposync/internal/domain/entities"
	"github.com/rios0rios0/reposync/internal/domain/repositories"
	"github.com/rios0rios0/reposync/internal/infrastructure/repositories/cli"
)

// DoctorController handles the "doctor" subcommand.
type DoctorController struct {
	workingCopy repositories.WorkingCopyRepository
	git         GitVersionProvider
}

// NewDoctorController creates a new DoctorController.
func NewDoctorController(
	workingCopy repositories.WorkingCopyRepository,
	git GitVersionProvider,
) *DoctorController {
	return &DoctorController{workingCopy: workingCopy, git: git}
}

// GetBind returns the Cobra command metadata.
func (it *DoctorController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "doctor [path]",
		Short: "Check the git installation and the state of a working copy",
		Long: `Report where git was found and which version it is, and check whether
origin of the working copy still embeds credentials (for example after a run
was killed before the remote could be restored).`,
	}
}

// AddFlags adds doctor-specific flags.
func (it *DoctorController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("path", "", "Local working copy (defaults to the configured path)")
}

// Execute runs every check and fails when one of them is not healthy.
func (it *DoctorController) Execute(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	ok := color.New(color.FgGreen)
	warn := color.New(color.FgYellow)
	bad := color.New(color.FgRed)

	path, err := it.git.Locate()
	if err != nil {
		_, _ = bad.Fprintln(out, "✗ git executable not found")
		return err
	}
	_, _ = ok.Fprintf(out, "✓ git executable: %s\n", path)

	version, err := it.git.Version(commandContext(cmd))
	switch {
	case err != nil:
		_, _ = warn.Fprintf(out, "! could not read git version: %v\n", err)
	case cli.SupportsShowCurrent(version):
		_, _ = ok.Fprintf(out, "✓ git version: %s\n", version)
	default:
		_, _ = warn.Fprintf(out, "! git version %s predates %s (branch detection falls back)\n",
			version, cli.MinimumShowCurrentVersion)
	}

	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	pathFlag, _ := cmd.Flags().GetString("path")
	var argPath string
	if len(args) > 0 {
		argPath = args[0]
	}
	repoPath := entities.ExpandPath(firstNonEmpty(argPath, pathFlag, settings.Repository.Path))
	if repoPath == "" {
		return nil
	}

	if !it.workingCopy.IsRepository(repoPath) {
		_, _ = bad.Fprintf(out, "✗ %s is not a git repository\n", repoPath)
		return fmt.Errorf("%w: %s", entities.ErrNotARepository, repoPath)
	}
	_, _ = ok.Fprintf(out, "✓ working copy: %s\n", repoPath)

	origin, err := it.workingCopy.OriginURL(repoPath)
	if err != nil {
		_, _ = warn.Fprintf(out, "! origin not configured: %v\n", err)
		return nil
	}
	if entities.HasCredentials(origin) {
		_, _ = bad.Fprintf(out, "✗ origin embeds credentials: %s\n", entities.RedactCredentials(origin))
		_, _ = fmt.Fprintf(out, "  run: git -C %s remote set-url origin %s\n",
			repoPath, entities.StripCredentials(origin))
		return fmt.Errorf("%w: origin embeds credentials", entities.ErrInvalidInput)
	}
	_, _ = ok.Fprintf(out, "✓ origin: %s\n", origin)
	return nil
}
