// Command get_token runs the OAuth consent flow once and prints a Drive refresh token
// for DRIVE_REFRESH_TOKEN.
package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/oauth2"

	"paxfusion-service/internal/infrastructure/oauth"
)

func main() {
	_ = godotenv.Load()

	clientID := os.Getenv("DRIVE_CLIENT_ID")
	clientSecret := os.Getenv("DRIVE_CLIENT_SECRET")
	if clientID == "" || clientSecret == "" {
		log.Fatal("DRIVE_CLIENT_ID and DRIVE_CLIENT_SECRET must be set")
	}

	config := oauth.NewDriveConfig(clientID, clientSecret, "http://localhost:8090/oauth2callback")

	// Create a random state
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		log.Fatalf("Failed to generate state: %v", err)
	}
	state := hex.EncodeToString(buf)

	// Start an HTTP server to handle the OAuth callback
	http.HandleFunc("/oauth2callback", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("state") != state {
			http.Error(w, "Invalid state parameter", http.StatusBadRequest)
			return
		}

		code := r.URL.Query().Get("code")
		token, err := config.Exchange(context.Background(), code)
		if err != nil {
			http.Error(w, fmt.Sprintf("Failed to exchange code: %v", err), http.StatusInternalServerError)
			return
		}

		fmt.Printf("\nRefresh Token: %s\n\n", token.RefreshToken)

		fmt.Fprintf(w, "Authentication successful! You can close this window.")
		os.Exit(0)
	})

	authURL := config.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
	fmt.Printf("Open this URL in your browser:\n%s\n", authURL)

	log.Fatal(http.ListenAndServe(":8090", nil))
}
