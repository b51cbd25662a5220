package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRepositories(t *testing.T) {
	db := &Connection{}

	assert.Equal(t, db, NewUserRepository(db).db)
	assert.Equal(t, db, NewProfileRepository(db).db)
	assert.Equal(t, db, NewRoutineRepository(db).db)
	assert.Equal(t, db, NewExerciseRepository(db).db)
}

func TestConnection_PingNilPool(t *testing.T) {
	conn := &Connection{}
	assert.Error(t, conn.Ping(context.Background()))
	assert.NoError(t, conn.Close())
}
