package integration

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	handler "github.com/pollpulse/api/internal/adapters/handler/http"
	repo "github.com/pollpulse/api/internal/adapters/repository/postgres"
	"github.com/pollpulse/api/internal/core/domain"
	"github.com/pollpulse/api/internal/core/ports"
	"github.com/pollpulse/api/internal/core/services"
)

const (
	testJWTSecret   = "test-secret"
	testDefaultSize = 30
	testMaxSize     = 50
)

type TestApp struct {
	DB          *sqlx.DB
	Server      *httptest.Server
	Client      *http.Client
	PollService ports.PollService
	DBContainer testcontainers.Container
}

func setupPostgresContainer(ctx context.Context) (testcontainers.Container, string, error) {
	pgContainer, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second),
		),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", err
	}
	return pgContainer, connStr, nil
}

func applyMigrations(db *sqlx.DB) error {
	dirPath := "../../internal/adapters/repository/postgres/migrations"

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), "up.sql") {
			continue
		}

		content, err := os.ReadFile(filepath.Join(dirPath, entry.Name()))
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", entry.Name(), err)
		}
		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", entry.Name(), err)
		}
	}
	return nil
}

func setupTestApp(t *testing.T) *TestApp {
	t.Helper()

	ctx := context.Background()
	dbContainer, dbURL, err := setupPostgresContainer(ctx)
	require.NoError(t, err)

	db, err := sqlx.Connect("postgres", dbURL)
	require.NoError(t, err)

	require.NoError(t, applyMigrations(db))

	pollRepo := repo.NewPollRepository(db)
	voteRepo := repo.NewVoteRepository(db)
	userRepo := repo.NewUserRepository(db)

	pollService := services.NewPollService(pollRepo, voteRepo, userRepo, testMaxSize)
	userService := services.NewUserService(userRepo, pollRepo, voteRepo)

	pollHandler := handler.NewPollHandler(pollService, testDefaultSize)
	userHandler := handler.NewUserHandler(userService, pollService, testDefaultSize)
	router := handler.NewHandler(pollHandler, userHandler, []byte(testJWTSecret))

	server := httptest.NewServer(router)

	return &TestApp{
		DB:          db,
		Server:      server,
		Client:      server.Client(),
		PollService: pollService,
		DBContainer: dbContainer,
	}
}

func (app *TestApp) Teardown(t *testing.T) {
	app.Server.Close()
	app.DB.Close()
	if err := app.DBContainer.Terminate(context.Background()); err != nil {
		t.Logf("failed to terminate container: %v", err)
	}
}

func (app *TestApp) createUser(t *testing.T, username string) *domain.User {
	t.Helper()

	user := &domain.User{
		ID:       uuid.New(),
		Username: username,
		Email:    fmt.Sprintf("%s-%s@example.com", username, uuid.New()),
		Name:     "User " + username,
	}
	err := app.DB.QueryRow(
		"INSERT INTO users (id, username, email, name) VALUES ($1, $2, $3, $4) RETURNING created_at",
		user.ID, user.Username, user.Email, user.Name,
	).Scan(&user.CreatedAt)
	require.NoError(t, err)
	return user
}

func tokenFor(t *testing.T, user *domain.User) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"exp":   time.Now().Add(15 * time.Minute).Unix(),
		"iat":   time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return signed
}
