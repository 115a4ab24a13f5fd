// Command gcal-auth runs the OAuth desktop flow once and stores the token that
// the API server reads when google_calendar.credentials_file holds desktop credentials.
//
// Usage:
//
//	go run ./scripts/gcal-auth [credentials.json] [token.json]
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
)

func main() {
	credsPath := "google-credentials.json"
	tokenPath := "token.json"
	if len(os.Args) > 1 {
		credsPath = os.Args[1]
	}
	if len(os.Args) > 2 {
		tokenPath = os.Args[2]
	}

	data, err := os.ReadFile(credsPath)
	if err != nil {
		log.Fatalf("Failed to read credentials file %q: %v", credsPath, err)
	}

	config, err := google.ConfigFromJSON(data, calendar.CalendarEventsScope)
	if err != nil {
		log.Fatalf("Failed to parse credentials: %v\n%q must be an OAuth desktop app credentials file.", err, credsPath)
	}

	fmt.Println("1. Open this URL and sign in with the Google account that owns the calendar:")
	fmt.Println()
	fmt.Println(config.AuthCodeURL("state-token", oauth2.AccessTypeOffline))
	fmt.Println()
	fmt.Print("2. Paste the authorization code here and press Enter: ")

	var code string
	if _, err := fmt.Scan(&code); err != nil {
		log.Fatalf("Failed to read authorization code: %v", err)
	}

	tok, err := config.Exchange(context.Background(), code)
	if err != nil {
		log.Fatalf("Failed to exchange authorization code: %v", err)
	}

	f, err := os.OpenFile(tokenPath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", tokenPath, err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(tok); err != nil {
		log.Fatalf("Failed to write %s: %v", tokenPath, err)
	}

	fmt.Printf("\nToken saved to %s. Set google_calendar.token_file to this path and restart the API.\n", tokenPath)
}
