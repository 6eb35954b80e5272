package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"codeberg.org/algopatterns/envelope/internal/auth"
	"codeberg.org/algopatterns/envelope/internal/logger"
)

// prints a signed JWT for calling the API locally
func main() {
	if err := godotenv.Load(); err != nil {
		logger.Warn(".env file not found, using process environment")
	}

	fs := flag.NewFlagSet("token", flag.ExitOnError)
	userID := fs.String("user", "", "user id to embed (random when empty)")
	email := fs.String("email", "test@envelope.local", "email to embed")
	admin := fs.Bool("admin", false, "grant access to the audit log endpoints")
	fs.Parse(os.Args[1:]) //nolint:errcheck,gosec // G104: ExitOnError flag set handles errors

	if *userID == "" {
		*userID = uuid.NewString()
	}

	generate := auth.GenerateJWT
	if *admin {
		generate = auth.GenerateAdminJWT
	}

	token, err := generate(*userID, *email)
	if err != nil {
		logger.FatalErr(err, "failed to generate token")
	}

	fmt.Printf("export TEST_TOKEN=%q\n", token)
}
