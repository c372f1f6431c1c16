// Command generate_api_key mints a partner API key: pk_<env>_<random>_<checksum>
// construction and SHA-256 storage hash, with an INSERT example and an
// optional -create flag that inserts directly into the partners table
// (internal/db.CreatePartner).
package main

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/passbi/routeopt/internal/config"
	"github.com/passbi/routeopt/internal/db"
)

func main() {
	env := flag.String("env", "test", "Environment: test or live")
	name := flag.String("name", "", "Partner name (required with -create)")
	scopes := flag.String("scopes", "read:routes", "Comma-separated scopes")
	create := flag.Bool("create", false, "Insert the partner row into the database")
	flag.Parse()

	if *env != "test" && *env != "live" {
		fmt.Println("Error: env must be 'test' or 'live'")
		os.Exit(1)
	}

	key, hash, prefix := generateAPIKey(*env)

	fmt.Println("═══════════════════════════════════════════════════")
	fmt.Println("🔑 API Key Generated")
	fmt.Println("═══════════════════════════════════════════════════")
	fmt.Printf("Environment:  %s\n", *env)
	fmt.Printf("\nAPI Key (show ONLY ONCE):\n%s\n", key)
	fmt.Printf("\nHash (stored in partners.key_hash):\n%s\n", hash)
	fmt.Printf("\nPrefix (for display):\n%s\n", prefix)
	fmt.Println("═══════════════════════════════════════════════════")
	fmt.Println("\n⚠️  Save the API key now! You won't be able to see it again.")

	if !*create {
		fmt.Println("\nTo insert into the database:")
		fmt.Printf("INSERT INTO partners (name, key_hash, scopes, active)\n")
		fmt.Printf("VALUES ('Partner Name', '%s', ARRAY['%s'], true);\n", hash, strings.Join(strings.Split(*scopes, ","), "','"))
		fmt.Println("═══════════════════════════════════════════════════")
		return
	}

	if *name == "" {
		fmt.Println("Error: -name is required with -create")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading configuration:", err)
		os.Exit(1)
	}

	pool, err := db.GetDB(db.Config{
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		Database: cfg.DBName,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		SSLMode:  cfg.DBSSLMode,
		MinConns: cfg.DBMinConns,
		MaxConns: cfg.DBMaxConns,
	})
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		os.Exit(1)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	id, err := db.CreatePartner(ctx, pool, *name, hash, strings.Split(*scopes, ","))
	if err != nil {
		fmt.Println("Error creating partner:", err)
		os.Exit(1)
	}

	fmt.Printf("\n✓ Partner created: id=%s name=%s\n", id, *name)
	fmt.Println("═══════════════════════════════════════════════════")
}

// generateAPIKey generates a new API key with hash and prefix.
func generateAPIKey(env string) (key, hash, prefix string) {
	randomBytes := make([]byte, 32)
	if _, err := rand.Read(randomBytes); err != nil {
		panic(err)
	}
	randomStr := hex.EncodeToString(randomBytes)

	checksumBytes := sha256.Sum256([]byte(randomStr))
	checksum := hex.EncodeToString(checksumBytes[:2])

	key = fmt.Sprintf("pk_%s_%s_%s", env, randomStr, checksum)

	hashBytes := sha256.Sum256([]byte(key))
	hash = hex.EncodeToString(hashBytes[:])

	prefix = fmt.Sprintf("pk_%s_%s...", env, randomStr[:8])

	return
}
