package profile

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/routinekeeper/internal/mocks"
	"github.com/dtroode/routinekeeper/internal/model"
	"github.com/dtroode/routinekeeper/internal/testutil"
)

func TestResolver_Resolve_Success(t *testing.T) {
	ctx := context.Background()
	store := &mocks.ProfileStore{}
	userID := uuid.New()

	store.On("GetByUserID", mock.Anything, userID).Return(
		model.Profile{ID: userID, Username: "ana"}, nil)

	r := NewResolver(store, testutil.MakeNoopLogger())

	identity, err := r.Resolve(ctx, model.Session{UserID: userID})
	require.NoError(t, err)
	assert.Equal(t, userID, identity.ID)
	assert.Equal(t, "ana", identity.Username)
}

func TestResolver_Resolve_ProfileMissing(t *testing.T) {
	ctx := context.Background()
	store := &mocks.ProfileStore{}
	userID := uuid.New()

	store.On("GetByUserID", mock.Anything, userID).Return(model.Profile{}, model.ErrNotFound)

	r := NewResolver(store, testutil.MakeNoopLogger())

	_, err := r.Resolve(ctx, model.Session{UserID: userID})
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestResolver_Resolve_StoreError(t *testing.T) {
	ctx := context.Background()
	store := &mocks.ProfileStore{}
	userID := uuid.New()

	store.On("GetByUserID", mock.Anything, userID).Return(model.Profile{}, assert.AnError)

	r := NewResolver(store, testutil.MakeNoopLogger())

	_, err := r.Resolve(ctx, model.Session{UserID: userID})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrProfileNotFound)
	assert.ErrorIs(t, err, assert.AnError)
}
