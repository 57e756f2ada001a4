// Command createadmin grants or revokes the admin flag of a registered user.
//
//	createadmin -email alice@example.com
//	createadmin -email alice@example.com -revoke
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/grandshipper/grandshipper-api/internal/config"
	"github.com/grandshipper/grandshipper-api/internal/database"
	"github.com/grandshipper/grandshipper-api/internal/users"
	"github.com/grandshipper/grandshipper-api/pkg/logger"
)

func main() {
	email := flag.String("email", "", "email of the user to update")
	revoke := flag.Bool("revoke", false, "clear the admin flag instead of setting it")
	flag.Parse()

	if err := run(*email, !*revoke); err != nil {
		fmt.Fprintln(os.Stderr, "createadmin:", err)
		os.Exit(1)
	}
}

func run(email string, admin bool) error {
	if email == "" {
		return fmt.Errorf("-email is required")
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.Log.Level, "")
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx := context.Background()
	client, err := database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
	if err != nil {
		return err
	}
	defer func() { _ = client.Disconnect(ctx) }()

	repo := users.NewMongoUserRepository(client.Database(cfg.MongoDB.Database).Collection(database.UsersCollection))
	u, err := users.NewService(repo, log).SetAdmin(ctx, email, admin)
	if err != nil {
		return err
	}
	fmt.Printf("%s (%s) isAdmin=%t\n", u.Email, u.ID.Hex(), u.IsAdmin)
	return nil
}
