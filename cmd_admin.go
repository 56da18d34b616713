package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"collegeaccounts_backend/internals/configs"
	database "collegeaccounts_backend/internals/databases"
	authService "collegeaccounts_backend/internals/features/users/auth/service"
	"collegeaccounts_backend/internals/seeds"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := database.ConnectDB(logger); err != nil {
			return err
		}
		defer database.Close(database.DB)

		if err := database.AutoMigrate(database.DB); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		color.Green("✅ schema up to date")
		return nil
	},
}

var createUserOpts struct {
	name, email, password, role string
}

var createUserCmd = &cobra.Command{
	Use:   "create-user",
	Short: "Provision a login for the accounts office",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := database.ConnectDB(logger); err != nil {
			return err
		}
		defer database.Close(database.DB)

		svc := authService.NewAuthService(database.DB, logger, configs.JWTSecret, configs.JWTAccessTTL)
		u, err := svc.CreateUser(cmd.Context(), createUserOpts.name, createUserOpts.email, createUserOpts.password, createUserOpts.role)
		if err != nil {
			return err
		}
		color.Green("✅ created %s <%s> as %s", u.Name, u.Email, u.Role)
		return nil
	},
}

var pruneTokensCmd = &cobra.Command{
	Use:   "prune-tokens",
	Short: "Delete expired entries from the token blacklist",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := database.ConnectDB(logger); err != nil {
			return err
		}
		defer database.Close(database.DB)

		svc := authService.NewAuthService(database.DB, logger, configs.JWTSecret, configs.JWTAccessTTL)
		n, err := svc.PruneBlacklist(cmd.Context())
		if err != nil {
			return err
		}
		color.Green("🧹 removed %d expired token(s)", n)
		return nil
	},
}

var seedDir string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo accounts, exam fees and employees from JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := database.ConnectDB(logger); err != nil {
			return err
		}
		defer database.Close(database.DB)

		// store asli supaya cache dashboard ikut di-invalidate
		store, closeStore, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer closeStore()

		res, err := seeds.RunAllSeeds(cmd.Context(), database.DB, logger, seedDir, store)
		if err != nil {
			return err
		}
		color.Green("🌱 users=%d exam_fees=%d employees=%d", res.Users, res.ExamFees, res.Employees)
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedDir, "dir", seeds.DefaultDir, "directory holding users.json, exam_fees.json, employees.json")

	f := createUserCmd.Flags()
	f.StringVar(&createUserOpts.name, "name", "", "display name")
	f.StringVar(&createUserOpts.email, "email", "", "login email")
	f.StringVar(&createUserOpts.password, "password", "", "initial password (min 8 chars)")
	f.StringVar(&createUserOpts.role, "role", "accountant", "admin or accountant")
	_ = createUserCmd.MarkFlagRequired("name")
	_ = createUserCmd.MarkFlagRequired("email")
	_ = createUserCmd.MarkFlagRequired("password")
}
