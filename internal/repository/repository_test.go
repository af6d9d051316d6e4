package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPage_Normalize(t *testing.T) {
	assert.Equal(t, Page{Number: 1, Size: DefaultPageSize}, Page{}.Normalize())
	assert.Equal(t, Page{Number: 3, Size: MaxPageSize}, Page{Number: 3, Size: 1000}.Normalize())
	assert.Equal(t, Page{Number: 1, Size: 5}, Page{Number: -2, Size: 5}.Normalize())
}

func TestPage_Offset(t *testing.T) {
	assert.Equal(t, int64(0), Page{Number: 1, Size: 10}.Offset())
	assert.Equal(t, int64(20), Page{Number: 3, Size: 10}.Offset())
	assert.Equal(t, int64(0), Page{}.Offset())
}

func TestPage_TotalPages(t *testing.T) {
	p := Page{Number: 1, Size: 10}
	assert.Equal(t, 0, p.TotalPages(0))
	assert.Equal(t, 1, p.TotalPages(1))
	assert.Equal(t, 1, p.TotalPages(10))
	assert.Equal(t, 2, p.TotalPages(11))
}

func TestRepositoryError(t *testing.T) {
	assert.Equal(t, "not found", ErrNotFound.Error())
	assert.NotEqual(t, ErrNotFound, ErrConflict)
}
