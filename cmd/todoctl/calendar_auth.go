package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"todo-assistant/pkg/gcalendar"
)

var calendarAuthCmd = &cobra.Command{
	Use:   "calendar-auth [credentials.json]",
	Short: "Authorize Google Calendar access and write token.json",
	Long: `Run the OAuth consent flow for installed app credentials once and store
the resulting token.json next to the credentials file, where the server
looks for it.

Service account credentials need no token and are rejected here.

Examples:
  todoctl calendar-auth google-credentials.json
  todoctl calendar-auth            # uses google_calendar.credentials_path`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCalendarAuth,
}

func runCalendarAuth(cmd *cobra.Command, args []string) error {
	credsPath := ""
	if len(args) == 1 {
		credsPath = args[0]
	} else {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		credsPath = cfg.GoogleCalendar.CredentialsPath
	}
	if credsPath == "" {
		return errors.New("no credentials file given and google_calendar.credentials_path is empty")
	}

	data, err := os.ReadFile(credsPath)
	if err != nil {
		return fmt.Errorf("read credentials %q: %w", credsPath, err)
	}
	oauthCfg, err := gcalendar.OAuthConfig(data)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "1. Open this URL and sign in with the Google account to use:")
	fmt.Fprintln(out)
	fmt.Fprintln(out, oauthCfg.AuthCodeURL("state-token", oauth2.AccessTypeOffline))
	fmt.Fprintln(out)
	fmt.Fprint(out, "2. Paste the authorization code and press Enter: ")

	code, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && code == "" {
		return fmt.Errorf("read authorization code: %w", err)
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return errors.New("empty authorization code")
	}

	tok, err := oauthCfg.Exchange(cmd.Context(), code)
	if err != nil {
		return fmt.Errorf("exchange authorization code: %w", err)
	}

	tokenPath := gcalendar.TokenPath(credsPath)
	if err := gcalendar.SaveToken(tokenPath, tok); err != nil {
		return err
	}
	fmt.Fprintf(out, "\nSaved %s. Restart the server to enable the calendar mirror.\n", tokenPath)
	return nil
}
