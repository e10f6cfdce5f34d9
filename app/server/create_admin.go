package main

import (
	"college-portal/app/server/inits"
	"college-portal/app/server/models"
	"college-portal/app/server/repositories"
	"fmt"
	"github.com/spf13/cobra"
)

var (
	adminUsername string
	adminPassword string
)

// createAdminCmd 删除同名账户后重新创建管理员
var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create or replace an administrator account",
	RunE: func(cmd *cobra.Command, args []string) error {
		if adminUsername == "" || adminPassword == "" {
			return fmt.Errorf("both --username and --password are required")
		}

		conn, err := inits.DBConnection()
		if err != nil {
			return err
		}

		db, err := inits.DB(conn, "", "")
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		accounts := repositories.NewAccounts(db)

		if err := accounts.DeleteByUsername(ctx, adminUsername); err != nil {
			return fmt.Errorf("remove existing account: %w", err)
		}
		admin := &models.Account{
			Username: adminUsername,
			IsAdmin:  true,
		}
		admin.SetPassword(adminPassword)
		if err := accounts.Create(ctx, admin); err != nil {
			return fmt.Errorf("create admin account: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Admin account %q created\n", adminUsername)
		return nil
	},
}

func init() {
	createAdminCmd.Flags().StringVar(&adminUsername, "username", "", "admin username")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "admin password")
}
