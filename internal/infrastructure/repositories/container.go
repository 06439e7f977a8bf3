package repositories

import (
	"go.uber.org/dig"

	domainRepos "github.com/rios0rios0/reposync/internal/domain/repositories"
	"github.com/rios0rios0/reposync/internal/infrastructure/repositories/cli"
	"github.com/rios0rios0/reposync/internal/infrastructure/repositories/gogit"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// git is located once per process, so the locator is a container singleton
	if err := container.Provide(cli.NewExecutableLocator); err != nil {
		return err
	}
	if err := container.Provide(cli.NewGitRepository); err != nil {
		return err
	}
	if err := container.Provide(gogit.NewWorkingCopyRepository); err != nil {
		return err
	}

	// Bind interfaces to implementations
	if err := container.Provide(func(impl *cli.GitRepository) domainRepos.GitRepository {
		return impl
	}); err != nil {
		return err
	}
	return container.Provide(func(impl *gogit.WorkingCopyRepository) domainRepos.WorkingCopyRepository {
		return impl
	})
}
