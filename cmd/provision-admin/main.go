// Command provision-admin creates an administrator account directly against the
// configured backends. It bootstraps the first administrator, who can then
// provision everyone else through the API.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"pharmanet/config"
	"pharmanet/internal/app"
	"pharmanet/internal/domain/lifecycle"
	"pharmanet/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

func main() {
	name := flag.String("name", "", "Administrator display name")
	email := flag.String("email", "", "Administrator login email")
	password := flag.String("password", os.Getenv("PHARMANET_ADMIN_PASSWORD"), "Administrator password (defaults to $PHARMANET_ADMIN_PASSWORD)")
	phone := flag.String("phone", "", "Optional phone number")
	flag.Parse()

	if *name == "" || *email == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
	}

	input := usecase.ProvisionAdministratorInput{
		Name:     *name,
		Email:    *email,
		Password: *password,
		Phone:    *phone,
	}

	if err := run(input); err != nil {
		fmt.Fprintf(os.Stderr, "provision-admin: %v\n", err)
		os.Exit(1)
	}
}

func run(input usecase.ProvisionAdministratorInput) error {
	cfg, err := config.New()
	if err != nil {
		return err
	}

	var (
		provisioning usecase.ProvisioningUsecase
		logger       *slog.Logger
	)
	fxApp := fx.New(
		app.Modules(cfg),
		fx.Populate(&provisioning, &logger),
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
	defer cancel()

	if err := fxApp.Start(ctx); err != nil {
		return errors.Wrap(err, "failed to start")
	}
	defer func() {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), lifecycle.DefaultTimeout)
		defer stopCancel()
		if err := fxApp.Stop(stopCtx); err != nil {
			logger.Warn("Shutdown failed", slog.Any("error", err))
		}
	}()

	id, err := provisioning.ProvisionAdministrator(ctx, input)
	if err != nil {
		return err
	}

	logger.Info("Administrator provisioned", slog.String("administrator_id", id), slog.String("email", input.Email))
	fmt.Println(id)

	return nil
}
