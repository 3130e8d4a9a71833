// Package testdb starts a throwaway Postgres for repository tests.
package testdb

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"github.com/DhavalSuthar-24/gridiron/config"
)

// EnvFlag must be "1" for integration tests to run; they need Docker.
const EnvFlag = "GRIDIRON_INTEGRATION"

func Enabled() bool {
	return os.Getenv(EnvFlag) == "1"
}

type PostgresStartRequest struct {
	User     string
	Password string
	DB       string
}

type PostgresStartResponse struct {
	Host string
	Port string
}

func StartPostgres(ctx context.Context, cfg PostgresStartRequest) (PostgresStartResponse, func()) {
	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     cfg.User,
			"POSTGRES_PASSWORD": cfg.Password,
			"POSTGRES_DB":       cfg.DB,
		},
		// The server restarts once after init, so wait for the second ready line.
		WaitingFor: wait.ForAll(
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			wait.ForListeningPort("5432/tcp"),
		).WithDeadline(time.Minute),
	}

	cont, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		log.Fatalf("failed to start postgres container: %v", err)
	}

	host, err := cont.Host(ctx)
	if err != nil {
		log.Fatalf("failed to get host: %v", err)
	}

	port, err := cont.MappedPort(ctx, "5432/tcp")
	if err != nil {
		log.Fatalf("failed to get port: %v", err)
	}

	closer := func() {
		_ = cont.Terminate(ctx)
	}
	return PostgresStartResponse{
		Host: host,
		Port: port.Port(),
	}, closer
}

// Connect opens the container through the same path the server uses.
func Connect(res PostgresStartResponse, req PostgresStartRequest) (*gorm.DB, error) {
	cfg := &config.Config{}
	cfg.App.Env = "test"
	cfg.DB.Host = res.Host
	cfg.DB.Port = res.Port
	cfg.DB.User = req.User
	cfg.DB.Password = req.Password
	cfg.DB.Name = req.DB
	cfg.DB.SSLMode = "disable"
	return config.ConnectDB(cfg)
}

// Reset drops and recreates the tables for models.
func Reset(t *testing.T, db *gorm.DB, models ...interface{}) {
	t.Helper()

	require.NoError(t, db.Migrator().DropTable(models...))
	require.NoError(t, db.AutoMigrate(models...))
}
