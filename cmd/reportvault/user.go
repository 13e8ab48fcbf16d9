package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	internalauth "reportvault/internal/auth"
	"reportvault/internal/config"
	"reportvault/internal/format"
	"reportvault/internal/store"
)

func newUserCmd(cfg *config.Config) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage accounts directly in the local database",
	}
	cmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output JSON")
	cmd.AddCommand(newUserAddCmd(cfg, &jsonOutput))
	cmd.AddCommand(newUserListCmd(cfg, &jsonOutput))
	return cmd
}

func newUserAddCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var passwordStdin bool

	cmd := &cobra.Command{
		Use:   "add <email>",
		Short: "Create one account, reading the password from stdin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !passwordStdin {
				return fmt.Errorf("--password-stdin is required")
			}

			email, err := internalauth.ValidateEmail(args[0])
			if err != nil {
				return err
			}

			passwordBytes, err := io.ReadAll(os.Stdin)
			if err != nil {
				return err
			}
			password := strings.TrimSpace(string(passwordBytes))

			denylist, err := loadDenylist(cfg)
			if err != nil {
				return err
			}
			if err := internalauth.CheckPassword(password, email, denylist.Contains); err != nil {
				return err
			}
			hash, err := internalauth.HashPassword(password)
			if err != nil {
				return err
			}

			st, err := store.Open(cfg.DBPath)
			if err != nil {
				return err
			}
			defer st.Close()

			account, err := st.CreateAccount(cmd.Context(), email, hash, time.Now().UTC())
			if err != nil {
				return err
			}

			if *jsonOutput {
				return format.JSONFormatter{}.Write(cmd.OutOrStdout(), map[string]any{
					"id":    account.ID,
					"email": account.Email,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created account %s (%s)\n", account.Email, account.ID)
			return nil
		},
	}

	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read password from stdin")
	return cmd
}

func newUserListCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List provisioned accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := store.Open(cfg.DBPath)
			if err != nil {
				return err
			}
			defer st.Close()

			accounts, err := st.ListAccounts(cmd.Context())
			if err != nil {
				return err
			}

			if *jsonOutput {
				entries := make([]map[string]any, 0, len(accounts))
				for _, account := range accounts {
					entries = append(entries, map[string]any{
						"id":         account.ID,
						"email":      account.Email,
						"created_at": account.CreatedAt.Format(time.RFC3339),
					})
				}
				return format.JSONFormatter{}.Write(cmd.OutOrStdout(), map[string]any{
					"count":    len(entries),
					"accounts": entries,
				})
			}

			if len(accounts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no accounts")
				return nil
			}
			table := &format.Table{Header: []string{"EMAIL", "CREATED", "ID"}}
			for _, account := range accounts {
				table.AddRow(account.Email, account.CreatedAt.Format(time.RFC3339), account.ID)
			}
			return format.TableFormatter{}.Write(cmd.OutOrStdout(), table)
		},
	}
}
