package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ST0x-Technology/st0x.rest.api/internal/auth"
	"github.com/ST0x-Technology/st0x.rest.api/internal/config"
	"github.com/ST0x-Technology/st0x.rest.api/internal/store"
)

func runKeys(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("keys: missing subcommand (create|deactivate|promote|list)")
	}

	switch args[0] {
	case "create":
		return runKeysCreate(args[1:])
	case "deactivate":
		return runKeysDeactivate(args[1:])
	case "promote":
		return runKeysPromote(args[1:])
	case "list":
		return runKeysList(args[1:])
	default:
		return fmt.Errorf("keys: unknown subcommand %q", args[0])
	}
}

func openStoreFromConfig(configPath string) (*store.Store, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return store.Open(cfg.DatabaseURL)
}

func runKeysCreate(args []string) error {
	fs := flag.NewFlagSet("keys create", flag.ExitOnError)
	configPath := fs.String("config", "configs/gateway.toml", "path to the TOML config file")
	label := fs.String("label", "", "human label for this credential")
	owner := fs.String("owner", "", "owner tag for this credential")
	isAdmin := fs.Bool("admin", false, "grant admin privileges")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *label == "" || *owner == "" {
		return fmt.Errorf("--label and --owner are required")
	}

	db, err := openStoreFromConfig(*configPath)
	if err != nil {
		return err
	}
	defer db.Close()

	keyID := uuid.NewString()
	secret := uuid.NewString()
	hash, err := auth.HashSecret(secret)
	if err != nil {
		return fmt.Errorf("hash secret: %w", err)
	}

	cred := store.Credential{
		KeyID:      keyID,
		SecretHash: hash,
		Label:      *label,
		Owner:      *owner,
		Active:     true,
		IsAdmin:    *isAdmin,
		CreatedAt:  time.Now().UTC(),
	}
	if err := db.CreateCredential(context.Background(), cred); err != nil {
		return fmt.Errorf("create credential: %w", err)
	}

	fmt.Printf("key-id: %s\nsecret: %s\n(the secret is shown once and is never recoverable)\n", keyID, secret)
	return nil
}

func runKeysDeactivate(args []string) error {
	fs := flag.NewFlagSet("keys deactivate", flag.ExitOnError)
	configPath := fs.String("config", "configs/gateway.toml", "path to the TOML config file")
	keyID := fs.String("key-id", "", "key-id to deactivate")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *keyID == "" {
		return fmt.Errorf("--key-id is required")
	}

	db, err := openStoreFromConfig(*configPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.SetActive(context.Background(), *keyID, false); err != nil {
		return fmt.Errorf("deactivate %s: %w", *keyID, err)
	}
	fmt.Printf("deactivated %s\n", *keyID)
	return nil
}

func runKeysPromote(args []string) error {
	fs := flag.NewFlagSet("keys promote", flag.ExitOnError)
	configPath := fs.String("config", "configs/gateway.toml", "path to the TOML config file")
	keyID := fs.String("key-id", "", "key-id to promote to admin")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *keyID == "" {
		return fmt.Errorf("--key-id is required")
	}

	db, err := openStoreFromConfig(*configPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.SetAdmin(context.Background(), *keyID, true); err != nil {
		return fmt.Errorf("promote %s: %w", *keyID, err)
	}
	fmt.Printf("promoted %s to admin\n", *keyID)
	return nil
}

func runKeysList(args []string) error {
	fs := flag.NewFlagSet("keys list", flag.ExitOnError)
	configPath := fs.String("config", "configs/gateway.toml", "path to the TOML config file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	db, err := openStoreFromConfig(*configPath)
	if err != nil {
		return err
	}
	defer db.Close()

	creds, err := db.ListCredentials(context.Background())
	if err != nil {
		return fmt.Errorf("list credentials: %w", err)
	}

	for _, c := range creds {
		fmt.Printf("%s\tlabel=%s\towner=%s\tactive=%t\tadmin=%t\tcreated=%s\n",
			c.KeyID, c.Label, c.Owner, c.Active, c.IsAdmin, c.CreatedAt.Format(time.RFC3339))
	}
	return nil
}
