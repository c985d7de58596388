package uploads

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestDiskStoreStaging(t *testing.T) {
	store := &DiskStore{Dir: t.TempDir()}
	handle := uuid.NewString()

	t.Run("StageNeverTouchesStoredBlob", func(t *testing.T) {
		// First uploader's blob is on disk under the handle.
		assert.NoError(t, os.WriteFile(store.path(handle), []byte("original"), 0o644))

		// A second PUT against the same handle stages elsewhere; when the
		// metadata insert loses to the unique index the staged file is
		// removed and the stored blob is untouched.
		tmp, err := store.stage(handle, []byte("attacker"))
		assert.NoError(t, err)
		assert.NotEqual(t, store.path(handle), tmp)

		assert.NoError(t, os.Remove(tmp))

		kept, err := os.ReadFile(store.path(handle))
		assert.NoError(t, err)
		assert.Equal(t, "original", string(kept))
	})

	t.Run("PublishMovesStagedBlobIntoPlace", func(t *testing.T) {
		fresh := uuid.NewString()
		tmp, err := store.stage(fresh, []byte("payload"))
		assert.NoError(t, err)

		assert.NoError(t, store.publish(tmp, fresh))

		got, err := os.ReadFile(store.path(fresh))
		assert.NoError(t, err)
		assert.Equal(t, "payload", string(got))

		_, err = os.Stat(tmp)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("StagedFilesStayInUploadDir", func(t *testing.T) {
		tmp, err := store.stage(uuid.NewString(), []byte("x"))
		assert.NoError(t, err)
		assert.Equal(t, store.Dir, filepath.Dir(tmp))
		assert.NoError(t, os.Remove(tmp))
	})
}

func TestFilePathRejectsNonHandles(t *testing.T) {
	store := &DiskStore{Dir: t.TempDir()}

	_, err := store.FilePath("../etc/passwd")
	assert.ErrorIs(t, err, ErrUploadNotFound)

	_, err = store.FilePath(uuid.NewString())
	assert.NoError(t, err)
}
