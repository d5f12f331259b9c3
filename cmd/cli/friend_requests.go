package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var friendRequestsCmd = &cobra.Command{
	Use:     "friend-requests",
	Aliases: []string{"requests"},
	Short:   "Manage friend requests",
	Long:    "Commands for sending and answering friend requests",
}

var listFriendRequestsCmd = &cobra.Command{
	Use:   "list",
	Short: "List friend requests waiting for your answer",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return listFriendRequests(os.Stdout, "/api/v1/friend-requests", "Pending Friend Requests")
	},
}

var outgoingFriendRequestsCmd = &cobra.Command{
	Use:   "outgoing",
	Short: "List friend requests you sent that are still pending",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return listFriendRequests(os.Stdout, "/api/v1/friend-requests/outgoing", "Sent Friend Requests")
	},
}

var sendFriendRequestCmd = &cobra.Command{
	Use:   "send <user-id>",
	Short: "Send a friend request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return sendFriendRequest(os.Stdout, args[0])
	},
}

var acceptFriendRequestCmd = &cobra.Command{
	Use:   "accept <user-id>",
	Short: "Accept the friend request a user sent you",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return resolveFriendRequest(os.Stdout, args[0], "Accepted")
	},
}

var rejectFriendRequestCmd = &cobra.Command{
	Use:   "reject <user-id>",
	Short: "Reject the friend request a user sent you",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return resolveFriendRequest(os.Stdout, args[0], "Rejected")
	},
}

func init() {
	friendRequestsCmd.AddCommand(listFriendRequestsCmd)
	friendRequestsCmd.AddCommand(outgoingFriendRequestsCmd)
	friendRequestsCmd.AddCommand(sendFriendRequestCmd)
	friendRequestsCmd.AddCommand(acceptFriendRequestCmd)
	friendRequestsCmd.AddCommand(rejectFriendRequestCmd)
}

type friendRequestsResponse struct {
	FriendRequests []userSummary `json:"friendRequests"`
}

func listFriendRequests(out io.Writer, path, title string) error {
	var result friendRequestsResponse
	body, err := newAPIClient().getJSON(path, &result)
	if err != nil {
		return err
	}

	if output == "json" {
		fmt.Fprintln(out, string(body))
		return nil
	}

	if len(result.FriendRequests) == 0 {
		fmt.Fprintf(out, "✓ No pending friend requests\n")
		return nil
	}

	fmt.Fprintf(out, "\n📝 %s (%d)\n", title, len(result.FriendRequests))
	fmt.Fprintf(out, "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	printUsers(out, result.FriendRequests)
	fmt.Fprintf(out, "\nUse: devfinds friend-requests accept <id>\n")
	fmt.Fprintf(out, "     devfinds friend-requests reject <id>\n")
	return nil
}

func sendFriendRequest(out io.Writer, userID string) error {
	body, err := newAPIClient().do(http.MethodPost, "/api/v1/friend-requests", map[string]string{
		"requestTo": userID,
	})
	if err != nil {
		return err
	}
	return printMessage(out, body)
}

func resolveFriendRequest(out io.Writer, requesterID, status string) error {
	body, err := newAPIClient().do(http.MethodPost, "/api/v1/friend-requests/resolve", map[string]string{
		"requestBy": requesterID,
		"status":    status,
	})
	if err != nil {
		return err
	}
	return printMessage(out, body)
}

func printMessage(out io.Writer, body []byte) error {
	if output == "json" {
		fmt.Fprintln(out, string(body))
		return nil
	}
	var msg messageResponse
	if err := json.Unmarshal(body, &msg); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	fmt.Fprintf(out, "✓ %s\n", msg.Message)
	return nil
}

func printUsers(out io.Writer, users []userSummary) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME")
	for _, u := range users {
		fmt.Fprintf(w, "%s\t%s\n", u.ID, u.Name)
	}
	w.Flush()
}
