package controllers

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/reposync/internal/domain/entities"
	"github.com/rios0rios0/reposync/internal/infrastructure/repositories/cli"
)

// RegisterProviders registers all controller providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	if err := container.Provide(func(locator *cli.ExecutableLocator) GitVersionProvider {
		return locator
	}); err != nil {
		return err
	}
	if err := container.Provide(NewSyncController); err != nil {
		return err
	}
	if err := container.Provide(NewCloneController); err != nil {
		return err
	}
	if err := container.Provide(NewStatusController); err != nil {
		return err
	}
	if err := container.Provide(NewDoctorController); err != nil {
		return err
	}
	if err := container.Provide(NewConfigureController); err != nil {
		return err
	}
	if err := container.Provide(NewControllers); err != nil {
		return err
	}

	return nil
}

// NewControllers aggregates all controllers into a slice for the AppInternal.
func NewControllers(
	syncController *SyncController,
	cloneController *CloneController,
	statusController *StatusController,
	doctorController *DoctorController,
	configureController *ConfigureController,
) *[]entities.Controller {
	return &[]entities.Controller{
		syncController,
		cloneController,
		statusController,
		doctorController,
		configureController,
	}
}
