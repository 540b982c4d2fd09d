package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageRepository_ImageInUse(t *testing.T) {
	mock := newMockPool(t)
	repo := NewImageRepository(mock)

	const url = "https://acct.blob.core.windows.net/img/2026/10/a.png"
	query := regexp.QuoteMeta("SELECT 1 FROM dish WHERE image = $1")
	mock.ExpectQuery(query).WithArgs(url).
		WillReturnRows(mock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(query).WithArgs(url).
		WillReturnRows(mock.NewRows([]string{"exists"}).AddRow(false))

	inUse, err := repo.ImageInUse(context.Background(), url)
	require.NoError(t, err)
	assert.True(t, inUse)

	inUse, err = repo.ImageInUse(context.Background(), url)
	require.NoError(t, err)
	assert.False(t, inUse)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestImageRepository_ImageInUse_Error(t *testing.T) {
	mock := newMockPool(t)
	repo := NewImageRepository(mock)

	boom := errors.New("connection reset")
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS")).WillReturnError(boom)

	_, err := repo.ImageInUse(context.Background(), "https://blob/a.png")
	assert.ErrorIs(t, err, boom)
}
