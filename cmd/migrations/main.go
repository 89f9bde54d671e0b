package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/pollpulse/api/internal/config"
)

func main() {
	if len(os.Args) < 2 {
		slog.Error("a migration name is required")
		os.Exit(1)
	}
	migrationName := os.Args[1]

	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found")
	}
	cfg := config.Load()

	db, err := sql.Open("postgres", cfg.ConnString())
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	basePath := filepath.Join(".", "internal", "adapters", "repository", "postgres", "migrations")
	content, err := migrationFileContent(basePath, migrationName)
	if err != nil {
		slog.Error("failed to read migration", "name", migrationName, "error", err)
		os.Exit(1)
	}

	if _, err := db.Exec(string(content)); err != nil {
		slog.Error("failed to execute migration", "name", migrationName, "error", err)
		os.Exit(1)
	}

	slog.Info("migration executed successfully", "name", migrationName)
}

func migrationFileContent(basePath, migrationName string) ([]byte, error) {
	fileName, err := migrationFileName(basePath, migrationName)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(filepath.Join(basePath, fileName))
}

func migrationFileName(basePath, migrationName string) (string, error) {
	pattern, err := regexp.Compile(fmt.Sprintf(`^.*%s.*\.sql$`, regexp.QuoteMeta(migrationName)))
	if err != nil {
		return "", fmt.Errorf("invalid migration name: %w", err)
	}

	entries, err := os.ReadDir(basePath)
	if err != nil {
		return "", err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if pattern.MatchString(entry.Name()) {
			return entry.Name(), nil
		}
	}
	return "", fmt.Errorf("migration file not found: %s", migrationName)
}
