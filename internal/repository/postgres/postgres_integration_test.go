package postgres

import (
	"context"
	"database/sql"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/jhmfreitas/usermanager-challenge/config"
	"github.com/jhmfreitas/usermanager-challenge/internal/entities"

	_ "github.com/lib/pq"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRepositoryIntegration(t *testing.T) {
	ctx := context.Background()

	cfg, cleanup := setupPostgres(t)
	t.Cleanup(cleanup)

	repo := New(ctx, testLogger(t), cfg)
	require.NoError(t, repo.OnStart(ctx))
	t.Cleanup(func() { _ = repo.OnStop(ctx) })

	name := "John Doe"
	created, err := repo.CreateUser(ctx, entities.User{Email: "a@x.com", PasswordHash: "hashed-secret", Name: &name})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.False(t, created.CreatedAt.IsZero())
	require.False(t, created.UpdatedAt.IsZero())

	// Store-level backstop for the email uniqueness invariant.
	_, err = repo.CreateUser(ctx, entities.User{Email: "a@x.com", PasswordHash: "other-hash"})
	require.ErrorIs(t, err, entities.ErrEmailExists)

	exists, err := repo.EmailExists(ctx, "a@x.com")
	require.NoError(t, err)
	require.True(t, exists)
	exists, err = repo.EmailExists(ctx, "b@x.com")
	require.NoError(t, err)
	require.False(t, exists)

	fetched, err := repo.UserByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "a@x.com", fetched.Email)
	require.Equal(t, "hashed-secret", fetched.PasswordHash)
	require.NotNil(t, fetched.Name)
	require.Equal(t, "John Doe", *fetched.Name)

	_, err = repo.UserByID(ctx, 999)
	require.ErrorIs(t, err, entities.ErrUserNotFound)

	second, err := repo.CreateUser(ctx, entities.User{Email: "b@x.com", PasswordHash: "hashed-secret"})
	require.NoError(t, err)

	// Update rejects an email already held by another user.
	fetched.Email = "b@x.com"
	_, err = repo.UpdateUser(ctx, *fetched)
	require.ErrorIs(t, err, entities.ErrInvalidArgument)

	// Same email and a cleared name pass through.
	fetched.Email = "a@x.com"
	fetched.Name = nil
	updated, err := repo.UpdateUser(ctx, *fetched)
	require.NoError(t, err)
	require.Nil(t, updated.Name)
	require.True(t, updated.UpdatedAt.After(created.UpdatedAt) || updated.UpdatedAt.Equal(created.UpdatedAt))

	link, err := repo.CreateProject(ctx, entities.ProjectLink{
		Key:  entities.ProjectKey{ProjectID: "P1", UserID: created.ID},
		Name: "Alpha",
	})
	require.NoError(t, err)
	require.False(t, link.CreatedAt.IsZero())

	// Composite-key backstop: same pair fails, same project under another
	// user succeeds.
	_, err = repo.CreateProject(ctx, entities.ProjectLink{
		Key:  entities.ProjectKey{ProjectID: "P1", UserID: created.ID},
		Name: "Alpha again",
	})
	require.ErrorIs(t, err, entities.ErrInvalidArgument)

	_, err = repo.CreateProject(ctx, entities.ProjectLink{
		Key:  entities.ProjectKey{ProjectID: "P1", UserID: second.ID},
		Name: "Alpha elsewhere",
	})
	require.NoError(t, err)

	_, err = repo.CreateProject(ctx, entities.ProjectLink{
		Key:  entities.ProjectKey{ProjectID: "P2", UserID: 999},
		Name: "Orphan",
	})
	require.ErrorIs(t, err, entities.ErrUserNotFound)

	links, err := repo.ProjectsByUser(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, links, 1)
	require.Equal(t, "P1", links[0].Key.ProjectID)
	require.Equal(t, "Alpha", links[0].Name)

	got, err := repo.ProjectByKey(ctx, entities.ProjectKey{ProjectID: "P1", UserID: created.ID})
	require.NoError(t, err)
	require.Equal(t, created.ID, got.Key.UserID)

	_, err = repo.ProjectByKey(ctx, entities.ProjectKey{ProjectID: "P9", UserID: created.ID})
	require.ErrorIs(t, err, entities.ErrProjectNotFound)

	// Deleting the user cascades to its links; a second delete reports
	// not found instead of silently succeeding.
	require.NoError(t, repo.DeleteUser(ctx, created.ID))
	require.ErrorIs(t, repo.DeleteUser(ctx, created.ID), entities.ErrUserNotFound)

	_, err = repo.UserByID(ctx, created.ID)
	require.ErrorIs(t, err, entities.ErrUserNotFound)

	orphans, err := repo.ProjectsByUser(ctx, created.ID)
	require.NoError(t, err)
	require.Empty(t, orphans)

	// The other user's identical project id is untouched by the cascade.
	remaining, err := repo.ProjectsByUser(ctx, second.ID)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
}

func setupPostgres(t *testing.T) (*config.Config, func()) {
	t.Helper()

	pool, err := dockertest.NewPool("")
	require.NoError(t, err)

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_PASSWORD=postgres",
			"POSTGRES_USER=postgres",
			"POSTGRES_DB=usermanager_db",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
	})
	require.NoError(t, err)

	hostPort := resource.GetPort("5432/tcp")

	port, err := strconv.Atoi(hostPort)
	require.NoError(t, err)
	migrationsDir, err := filepath.Abs(filepath.Join("..", "..", "..", "db", "migrations"))
	require.NoError(t, err)
	require.DirExists(t, migrationsDir)

	cfg := &config.Config{
		Server: config.ServerConfig{Host: "0.0.0.0", Port: 8080, ShutdownTimeout: 5 * time.Second},
		HTTP:   config.HTTPConfig{RequestTimeout: 5 * time.Second},
		Postgres: config.PostgresConfig{
			Host:           "localhost",
			Port:           port,
			User:           "postgres",
			Password:       "postgres",
			DBName:         "usermanager_db",
			SSLMode:        "disable",
			MigrationsDir:  migrationsDir,
			QueryTimeout:   10 * time.Second,
			MigrateTimeout: 20 * time.Second,
			MaxConns:       4,
			MinConns:       1,
		},
	}

	require.NoError(t, pool.Retry(func() error {
		db, err := sql.Open("postgres", "host=localhost port="+hostPort+" user=postgres password=postgres dbname=usermanager_db sslmode=disable")
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()
		return db.Ping()
	}))

	cleanup := func() {
		_ = pool.Purge(resource)
	}

	return cfg, cleanup
}

func testLogger(t *testing.T) *zap.SugaredLogger {
	t.Helper()

	l, _ := zap.NewDevelopment()
	t.Cleanup(func() { _ = l.Sync() })
	return l.Sugar()
}
