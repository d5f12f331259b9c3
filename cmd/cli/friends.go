package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/spf13/cobra"
)

var friendsCmd = &cobra.Command{
	Use:   "friends",
	Short: "List your friends",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return listFriends(os.Stdout)
	},
}

var meCmd = &cobra.Command{
	Use:   "me",
	Short: "Show the account the token belongs to",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return showMe(os.Stdout)
	},
}

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and print a token for DEVFINDS_TOKEN",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return login(os.Stdout, loginEmail, loginPassword)
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Account e-mail")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Account password")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")
}

type friendsResponse struct {
	Friends []userSummary `json:"friends"`
}

func listFriends(out io.Writer) error {
	var result friendsResponse
	body, err := newAPIClient().getJSON("/api/v1/friends", &result)
	if err != nil {
		return err
	}

	if output == "json" {
		fmt.Fprintln(out, string(body))
		return nil
	}

	if len(result.Friends) == 0 {
		fmt.Fprintf(out, "No friends yet. Send one: devfinds friend-requests send <id>\n")
		return nil
	}

	fmt.Fprintf(out, "\n👥 Friends (%d)\n", len(result.Friends))
	fmt.Fprintf(out, "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	printUsers(out, result.Friends)
	return nil
}

type meResponse struct {
	User struct {
		ID                  string   `json:"id"`
		Name                string   `json:"name"`
		Email               string   `json:"email"`
		Status              string   `json:"status"`
		LearnedTechnologies []string `json:"learnedTechnologies"`
	} `json:"user"`
}

func showMe(out io.Writer) error {
	var result meResponse
	body, err := newAPIClient().getJSON("/api/v1/users/me", &result)
	if err != nil {
		return err
	}

	if output == "json" {
		fmt.Fprintln(out, string(body))
		return nil
	}

	fmt.Fprintf(out, "ID:     %s\n", result.User.ID)
	fmt.Fprintf(out, "Name:   %s\n", result.User.Name)
	fmt.Fprintf(out, "Email:  %s\n", result.User.Email)
	fmt.Fprintf(out, "Status: %s\n", result.User.Status)
	if len(result.User.LearnedTechnologies) > 0 {
		fmt.Fprintf(out, "Stack:  %v\n", result.User.LearnedTechnologies)
	}
	return nil
}

type loginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

func login(out io.Writer, email, password string) error {
	client := newAPIClient()
	client.token = ""

	var result loginResponse
	body, err := client.do(http.MethodPost, "/api/v1/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return err
	}
	if output == "json" {
		fmt.Fprintln(out, string(body))
		return nil
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	fmt.Fprintf(out, "✓ %s\n", result.Message)
	fmt.Fprintf(out, "export DEVFINDS_TOKEN=%s\n", result.Token)
	return nil
}
