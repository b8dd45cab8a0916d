package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/dnfxyg-commits/fanfei-uav-platform/internal/model"
	"github.com/dnfxyg-commits/fanfei-uav-platform/internal/service"
	"github.com/dnfxyg-commits/fanfei-uav-platform/internal/store"
)

func newAdminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage admin accounts",
		Long:  "Create and list the administrative accounts that can sign in to the admin API.",
	}

	cmd.AddCommand(newAdminCreateCmd())
	cmd.AddCommand(newAdminListCmd())

	return cmd
}

// openStore opens the store configured in fanfei.yaml / FANFEI_* env vars.
func openStore() (*store.Store, error) {
	driver := viper.GetString("database.driver")
	if driver == "" {
		driver = "sqlite"
	}
	return store.Open(driver, viper.GetString("database.dsn"))
}

// ---------- admin create ----------

func newAdminCreateCmd() *cobra.Command {
	var (
		username string
		password string
		role     string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new admin account",
		Example: `  fanfei admin create --username admin --role super_admin
  fanfei admin create --username editor  # prompts for password, role defaults to admin`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdminCreate(username, password, role)
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Account username (required)")
	cmd.Flags().StringVar(&password, "password", "", "Account password (prompted if omitted)")
	cmd.Flags().StringVar(&role, "role", "admin", "Account role: admin or super_admin")
	cmd.MarkFlagRequired("username")

	return cmd
}

func runAdminCreate(username, password, roleName string) error {
	role, err := model.ParseRole(roleName)
	if err != nil {
		return err
	}

	// Prompt for password if not provided
	if password == "" {
		fmt.Print("Password: ")
		pwBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Println()
		password = string(pwBytes)

		fmt.Print("Confirm password: ")
		confirmBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		fmt.Println()

		if password != string(confirmBytes) {
			return fmt.Errorf("passwords do not match")
		}
	}

	if len(password) < 6 {
		return fmt.Errorf("password must be at least 6 characters")
	}

	st, err := openStore()
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	hash, err := service.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	admin := &model.Admin{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
	}
	if err := st.CreateAdmin(context.Background(), admin); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return fmt.Errorf("username %q is already taken", username)
		}
		return fmt.Errorf("create admin: %w", err)
	}

	fmt.Printf("Created %s account %q\n", role, username)
	return nil
}

// ---------- admin list ----------

func newAdminListCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all admin accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdminList(jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func runAdminList(jsonOutput bool) error {
	st, err := openStore()
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	admins, err := st.ListAdmins(context.Background())
	if err != nil {
		return fmt.Errorf("list admins: %w", err)
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(admins)
	}

	if len(admins) == 0 {
		fmt.Println("No admin accounts. Use 'fanfei admin create' to create one.")
		return nil
	}

	fmt.Printf("%-24s %-14s %-20s\n", "USERNAME", "ROLE", "CREATED")
	fmt.Printf("%-24s %-14s %-20s\n", "--------", "----", "-------")
	for _, a := range admins {
		fmt.Printf("%-24s %-14s %-20s\n", a.Username, a.Role, a.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	return nil
}
