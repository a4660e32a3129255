package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_UploadImage(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir)
	require.NoError(t, err)

	ctx := context.Background()
	payload := "fake-png-bytes"

	objectName, imageURL, err := store.UploadImage(ctx, "u1", "chart.PNG", strings.NewReader(payload), int64(len(payload)))

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(objectName, "u1_"))
	assert.True(t, strings.HasSuffix(objectName, ".png"))
	assert.Equal(t, "/uploads/"+objectName, imageURL)

	data, err := os.ReadFile(filepath.Join(dir, objectName))
	require.NoError(t, err)
	assert.Equal(t, payload, string(data))
}

func TestLocalStorage_UploadImage_NoExtension(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	objectName, _, err := store.UploadImage(context.Background(), "u1", "noext", strings.NewReader("x"), 1)

	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(objectName, ".jpg"))
}

func TestLocalStorage_DeleteImage(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir)
	require.NoError(t, err)

	ctx := context.Background()

	objectName, _, err := store.UploadImage(ctx, "u1", "chart.png", strings.NewReader("x"), 1)
	require.NoError(t, err)

	require.NoError(t, store.DeleteImage(ctx, objectName))

	_, err = os.Stat(filepath.Join(dir, objectName))
	assert.True(t, os.IsNotExist(err))

	// повторное удаление не считается ошибкой
	assert.NoError(t, store.DeleteImage(ctx, objectName))
}

func TestLocalStorage_DeleteImage_StripsPath(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir)
	require.NoError(t, err)

	// попытка выйти из каталога загрузок режется до имени файла
	assert.NoError(t, store.DeleteImage(context.Background(), "../../etc/passwd"))
}
