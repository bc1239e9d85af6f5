package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/medassist/medassist/internal/auth"
)

var (
	tokenUserID string
	tokenEmail  string
	tokenRole   string
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a JWT for API testing",
	RunE:  runToken,
}

func init() {
	tokenCmd.Flags().StringVar(&tokenUserID, "user-id", "", "user id claim (default: random UUID)")
	tokenCmd.Flags().StringVar(&tokenEmail, "email", "dev@example.com", "email claim")
	tokenCmd.Flags().StringVar(&tokenRole, "role", "clinician", "role claim")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, args []string) error {
	userID := tokenUserID
	if userID == "" {
		userID = uuid.New().String()
	}

	jwtConfig := auth.DefaultJWTConfig(cfg.JWTSecret)
	jwtConfig.Expiry = cfg.JWTExpiry
	manager := auth.NewJWTManager(jwtConfig)

	token, err := manager.GenerateToken(userID, tokenEmail, tokenRole)
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}

	fmt.Println(token)
	return nil
}
