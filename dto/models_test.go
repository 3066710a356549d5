package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectContractType(t *testing.T) {
	assert.Equal(t, ContractTypeDL, DetectContractType("DL998877"))
	assert.Equal(t, ContractTypeDL, DetectContractType("  dl123  "))
	assert.Equal(t, ContractTypeDefault, DetectContractType("HD001122"))
	assert.Equal(t, ContractTypeDefault, DetectContractType(""))
}

func TestFieldMapGetSet(t *testing.T) {
	m := FieldMap{}

	assert.Equal(t, "", m.Get(FieldContract))

	m.Set(FieldContract, "ABC123")
	assert.Equal(t, "ABC123", m.Get(FieldContract))

	// Setting an empty value resets the field to unresolved.
	m.Set(FieldContract, "")
	assert.Nil(t, m[FieldContract])
	assert.Equal(t, "", m.Get(FieldContract))
}

func TestAdvisorInfoEmpty(t *testing.T) {
	assert.True(t, (&AdvisorInfo{}).Empty())
	assert.False(t, (&AdvisorInfo{Name: "Ngọc"}).Empty())
	assert.False(t, (&AdvisorInfo{Phone: "0912345678"}).Empty())
}

func TestPresentFileKeysStableOrder(t *testing.T) {
	docs := map[FileKey][]byte{
		FilePdk:      []byte("pdk"),
		FileContract: []byte("contract"),
		FilePayment:  []byte("payment"),
	}

	assert.Equal(t, []FileKey{FileContract, FilePayment, FilePdk}, PresentFileKeys(docs))
	assert.Empty(t, PresentFileKeys(nil))

	fs := &FileSet{Docs: docs}
	assert.Equal(t, PresentFileKeys(docs), fs.Keys())
	assert.Nil(t, (*FileSet)(nil).Keys())
}

func TestFileSetDoc(t *testing.T) {
	fs := &FileSet{Docs: map[FileKey][]byte{FileContract: []byte("pdf")}}

	assert.Equal(t, []byte("pdf"), fs.Doc(FileContract))
	assert.Nil(t, fs.Doc(FilePdk))

	var empty FileSet
	assert.Nil(t, empty.Doc(FileContract))
}
