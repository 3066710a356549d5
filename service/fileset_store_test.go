package service

import (
	"testing"

	"github.com/shikinora2/VietQR-HDSAISON-sub000/dto"
	"github.com/stretchr/testify/assert"
)

func TestFileSetStorePutGet(t *testing.T) {
	store := NewFileSetStore()

	id := store.Put(&dto.FileSet{FileName: "contract.pdf"})
	assert.NotEmpty(t, id)

	fs, err := store.Get(id)
	assert.NoError(t, err)
	assert.Equal(t, id, fs.ID)
	assert.Equal(t, "contract.pdf", fs.FileName)
	assert.False(t, fs.CreatedAt.IsZero())
}

func TestFileSetStoreGetMissing(t *testing.T) {
	store := NewFileSetStore()

	_, err := store.Get("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileSetStoreReplacePdk(t *testing.T) {
	store := NewFileSetStore()
	id := store.Put(&dto.FileSet{
		Docs: map[dto.FileKey][]byte{dto.FilePdk: []byte("old")},
	})

	assert.NoError(t, store.ReplacePdk(id, []byte("new")))
	fs, _ := store.Get(id)
	assert.Equal(t, []byte("new"), fs.Doc(dto.FilePdk))

	// nil removes the document entirely.
	assert.NoError(t, store.ReplacePdk(id, nil))
	fs, _ = store.Get(id)
	assert.Nil(t, fs.Doc(dto.FilePdk))

	assert.ErrorIs(t, store.ReplacePdk("nope", []byte("x")), ErrNotFound)
}

func TestFileSetStoreDelete(t *testing.T) {
	store := NewFileSetStore()
	id := store.Put(&dto.FileSet{})

	store.Delete(id)
	_, err := store.Get(id)
	assert.ErrorIs(t, err, ErrNotFound)
}
