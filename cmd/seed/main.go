package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"shopadmin/internal/auth"
	"shopadmin/internal/config"
	"shopadmin/internal/db"
	"shopadmin/internal/handler"
	"shopadmin/internal/logging"
	"shopadmin/internal/mq"
	"shopadmin/internal/repository"
	"shopadmin/internal/router"
	"shopadmin/internal/service"
)

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the shop admin database",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.SetLevel(config.Load().LogLevel)
	},
}

var rolesCmd = &cobra.Command{
	Use:   "roles",
	Short: "Create the schema and the default roles",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := openDB(cmd.Context())
		if err != nil {
			return err
		}
		log.Println("Roles seeded")
		return nil
	},
}

type adminOptions struct {
	username  string
	password  string
	firstName string
	lastName  string
	telephone string
}

var adminFlags adminOptions

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Register an administrator account",
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := adminInput(adminFlags)
		if err != nil {
			return err
		}

		cfg := config.Load()
		gormDB, err := openDB(cmd.Context())
		if err != nil {
			return err
		}

		svc := service.NewAuthService(service.AuthDeps{
			Users:       repository.NewUserRepository(gormDB),
			Tx:          repository.NewTransactor(gormDB),
			Hasher:      auth.NewBcryptHasher(cfg.BcryptCost),
			Tokens:      auth.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience),
			Events:      mq.NewPublisher(nil),
			PhoneRegion: cfg.PhoneRegion,
		})
		profile, err := svc.Register(cmd.Context(), in)
		if err != nil {
			return fmt.Errorf("register admin: %w", err)
		}
		log.Printf("Administrator %q created with id %d", profile.Username, profile.ID)
		return nil
	},
}

var catalogFlags struct {
	url  string
	file string
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Load categories, discounts and inventory from a JSON document",
	RunE: func(cmd *cobra.Command, args []string) error {
		if (catalogFlags.url == "") == (catalogFlags.file == "") {
			return fmt.Errorf("exactly one of --url or --file is required")
		}

		data, err := loadCatalog(cmd.Context(), catalogFlags.url, catalogFlags.file)
		if err != nil {
			return err
		}

		gormDB, err := openDB(cmd.Context())
		if err != nil {
			return err
		}
		summary, err := importCatalog(cmd.Context(), gormDB, data)
		if err != nil {
			return err
		}
		log.Printf("Seed completed: %d categories, %d discounts, %d inventory rows, %d skipped",
			summary.categories, summary.discounts, summary.inventories, summary.skipped)
		return nil
	},
}

func init() {
	adminCmd.Flags().StringVar(&adminFlags.username, "username", "admin", "administrator username")
	adminCmd.Flags().StringVar(&adminFlags.password, "password", "", "administrator password")
	adminCmd.Flags().StringVar(&adminFlags.firstName, "first-name", "Admin", "first name")
	adminCmd.Flags().StringVar(&adminFlags.lastName, "last-name", "User", "last name")
	adminCmd.Flags().StringVar(&adminFlags.telephone, "telephone", "", "optional telephone number")
	_ = adminCmd.MarkFlagRequired("password")

	catalogCmd.Flags().StringVar(&catalogFlags.url, "url", "", "URL of the catalog JSON document")
	catalogCmd.Flags().StringVar(&catalogFlags.file, "file", "", "path of the catalog JSON document")

	rootCmd.AddCommand(rolesCmd, adminCmd, catalogCmd)
}

// adminInput checks the flags with the rules the register endpoint applies.
func adminInput(opts adminOptions) (service.RegisterInput, error) {
	req := handler.RegisterRequest{
		Username:  opts.username,
		Password:  opts.password,
		FirstName: opts.firstName,
		LastName:  opts.lastName,
		Telephone: opts.telephone,
		IsAdmin:   true,
	}
	if err := router.NewValidator().Validate(&req); err != nil {
		return service.RegisterInput{}, fmt.Errorf("invalid admin flags: %w", err)
	}
	return service.RegisterInput{
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Telephone: req.Telephone,
		IsAdmin:   true,
	}, nil
}

// openDB connects, migrates and makes sure the default roles exist.
func openDB(ctx context.Context) (*gorm.DB, error) {
	cfg := config.Load()
	gormDB, err := db.Open(cfg)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(gormDB); err != nil {
		return nil, err
	}
	if err := db.SeedRoles(ctx, gormDB); err != nil {
		return nil, err
	}
	return gormDB, nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}
