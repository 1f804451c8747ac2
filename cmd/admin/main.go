// Command admin provisions learners and manages the schema.
//
//	admin migrate
//	admin import-users roster.xlsx
//	admin create-user --name "Rahim" --email rahim@example.com
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/muhammad-yeasin/wave2-attendance/config"
	"github.com/muhammad-yeasin/wave2-attendance/internal/model"
	"github.com/muhammad-yeasin/wave2-attendance/internal/repository"
	"github.com/muhammad-yeasin/wave2-attendance/internal/service"
	"github.com/muhammad-yeasin/wave2-attendance/pkg/database"
	pkgerrors "github.com/muhammad-yeasin/wave2-attendance/pkg/errors"
	applogger "github.com/muhammad-yeasin/wave2-attendance/pkg/logger"
	"github.com/muhammad-yeasin/wave2-attendance/pkg/validate"
)

// app is the state shared by every subcommand.
type app struct {
	configPath string
	cfg        *config.Config
	logger     *zap.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:          "admin",
		Short:        "Attendance service administration",
		SilenceUsage: true,

		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			logger, err := applogger.NewLogger(&cfg.Log)
			if err != nil {
				return err
			}
			a.cfg, a.logger = cfg, logger
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to config file")

	root.AddCommand(a.migrateCmd(), a.importUsersCmd(), a.createUserCmd())
	return root
}

// open connects and brings the schema up to date.
func (a *app) open(ctx context.Context) (*gorm.DB, error) {
	db, err := database.NewDB(ctx, &a.cfg.Database, a.cfg.Log.Level, a.logger)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	if err := database.RunMigrations(sqlDB, a.logger); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return db, nil
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}

// ────────────────────── migrate ──────────────────────

func (a *app) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			closeDB(db)
			return nil
		},
	}
}

// ────────────────────── import-users ──────────────────────

func (a *app) importUsersCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import-users <roster.xlsx>",
		Short: "Create or update learners from an xlsx roster (columns: Name, Email, WhatsApp)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			// parsing needs no database
			parser := service.NewUserService(nil, validate.New(), a.logger)
			rows, err := parser.ParseRosterFile(f)
			if err != nil {
				return err
			}
			if dryRun {
				fmt.Fprintf(cmd.OutOrStdout(), "%d rows parsed, nothing written\n", len(rows))
				return nil
			}

			db, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeDB(db)

			svc := service.NewUserService(repository.NewRepository(database.Static(db)), validate.New(), a.logger)
			result, err := svc.ImportRoster(cmd.Context(), rows)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "parse the roster without writing")
	return cmd
}

// ────────────────────── create-user ──────────────────────

func (a *app) createUserCmd() *cobra.Command {
	var name, email, whatsapp string

	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Provision a single learner",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v := validate.New()
			email = model.NormalizeEmail(email)
			if err := v.Var(email, "required,email,max=255"); err != nil {
				return fmt.Errorf("invalid email %q", email)
			}
			user := &model.User{Name: name, Email: email}
			if whatsapp != "" {
				if !validate.IsBDMobile(whatsapp) {
					return fmt.Errorf("invalid whatsapp number %q", whatsapp)
				}
				user.WhatsappNumber = &whatsapp
			}

			db, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			defer closeDB(db)

			repo := repository.NewRepository(database.Static(db))
			if err := repo.User.Create(cmd.Context(), user); err != nil {
				if errors.Is(err, pkgerrors.ErrDuplicateKey) {
					return fmt.Errorf("a user with email %s already exists", email)
				}
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), user.UserID)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "login email")
	cmd.Flags().StringVar(&whatsapp, "whatsapp", "", "optional 11 digit number starting with 01")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
