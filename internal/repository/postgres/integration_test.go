//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/dtroode/routinekeeper/internal/model"
	repo "github.com/dtroode/routinekeeper/internal/repository/postgres"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "routinekeeper_test",
			},
			WaitingFor: wait.ForListeningPort("5432/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/routinekeeper_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func createUser(ctx context.Context, t *testing.T, ur *repo.UserRepository, email string) model.User {
	t.Helper()
	now := time.Now()
	user, err := ur.Create(ctx, model.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: []byte("hash"),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	require.NoError(t, err)
	return user
}

func TestRepositories_CRUD(t *testing.T) {
	ctx := context.Background()
	conn, err := repo.NewConnection(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	t.Run("user_repository", func(t *testing.T) {
		ur := repo.NewUserRepository(conn)
		user := createUser(ctx, t, ur, "user@example.com")

		byEmail, err := ur.GetByEmail(ctx, user.Email)
		require.NoError(t, err)
		require.Equal(t, user.ID, byEmail.ID)

		byID, err := ur.GetByID(ctx, user.ID)
		require.NoError(t, err)
		require.Equal(t, user.Email, byID.Email)

		_, err = ur.GetByEmail(ctx, "nobody@example.com")
		require.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("profile_repository", func(t *testing.T) {
		ur := repo.NewUserRepository(conn)
		pr := repo.NewProfileRepository(conn)
		user := createUser(ctx, t, ur, "profile@example.com")

		saved, err := pr.Create(ctx, model.Profile{ID: user.ID, Username: "profile", CreatedAt: time.Now()})
		require.NoError(t, err)
		require.Equal(t, "profile", saved.Username)

		got, err := pr.GetByUserID(ctx, user.ID)
		require.NoError(t, err)
		require.Equal(t, user.ID, got.ID)

		_, err = pr.GetByUserID(ctx, uuid.New())
		require.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("routine_repository", func(t *testing.T) {
		ur := repo.NewUserRepository(conn)
		rr := repo.NewRoutineRepository(conn)
		owner := createUser(ctx, t, ur, "owner@example.com")
		other := createUser(ctx, t, ur, "other@example.com")

		first, err := rr.Create(ctx, model.CreateRoutineParams{OwnerID: owner.ID, Name: "Push"})
		require.NoError(t, err)
		require.NotEqual(t, uuid.Nil, first.ID)
		require.Nil(t, first.Description)

		description := "lower body"
		second, err := rr.Create(ctx, model.CreateRoutineParams{OwnerID: owner.ID, Name: "Legs", Description: &description})
		require.NoError(t, err)
		require.NotNil(t, second.Description)

		list, err := rr.ListByOwner(ctx, owner.ID)
		require.NoError(t, err)
		require.Len(t, list, 2)
		// Newest first.
		require.Equal(t, second.ID, list[0].ID)
		require.NotNil(t, list[0].Exercises)

		empty, err := rr.ListByOwner(ctx, other.ID)
		require.NoError(t, err)
		require.Empty(t, empty)

		got, err := rr.GetByIDAndOwner(ctx, first.ID, owner.ID)
		require.NoError(t, err)
		require.Equal(t, "Push", got.Name)

		// Cross-owner access is the same outcome as a missing id.
		_, err = rr.GetByIDAndOwner(ctx, first.ID, other.ID)
		require.ErrorIs(t, err, model.ErrNotFound)
		_, err = rr.GetByIDAndOwner(ctx, uuid.New(), owner.ID)
		require.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("exercise_repository", func(t *testing.T) {
		ur := repo.NewUserRepository(conn)
		rr := repo.NewRoutineRepository(conn)
		er := repo.NewExerciseRepository(conn)
		owner := createUser(ctx, t, ur, "lifter@example.com")
		routine, err := rr.Create(ctx, model.CreateRoutineParams{OwnerID: owner.ID, Name: "Full Body"})
		require.NoError(t, err)

		zero := 0.0
		created, err := er.Create(ctx, model.CreateExerciseParams{
			RoutineID: routine.ID,
			Name:      "Plank",
			Sets:      3,
			Reps:      1,
			Weight:    &zero,
		})
		require.NoError(t, err)
		// Zero weight is stored as zero, not null.
		require.NotNil(t, created.Weight)
		require.Zero(t, *created.Weight)
		require.Nil(t, created.Duration)
		require.Nil(t, created.Notes)

		sixty := 60.0
		updated, err := er.Update(ctx, created.ID, model.UpdateExerciseParams{
			Name:   "Weighted Plank",
			Sets:   4,
			Reps:   1,
			Weight: &sixty,
		})
		require.NoError(t, err)
		require.Equal(t, 4, updated.Sets)
		require.Equal(t, 60.0, *updated.Weight)

		_, err = er.Update(ctx, uuid.New(), model.UpdateExerciseParams{Name: "x", Sets: 1, Reps: 1})
		require.ErrorIs(t, err, model.ErrNotFound)

		detail, err := rr.GetByIDAndOwner(ctx, routine.ID, owner.ID)
		require.NoError(t, err)
		require.Len(t, detail.Exercises, 1)

		require.NoError(t, er.Delete(ctx, created.ID))
		// Absent ids delete cleanly.
		require.NoError(t, er.Delete(ctx, created.ID))

		detail, err = rr.GetByIDAndOwner(ctx, routine.ID, owner.ID)
		require.NoError(t, err)
		require.Empty(t, detail.Exercises)
	})
}
