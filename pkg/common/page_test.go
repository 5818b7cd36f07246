package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageReqNormalize(t *testing.T) {
	p := &PageReq{}
	p.Normalize()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, defaultPageSize, p.PageSize)
	assert.Equal(t, 0, p.Offset())

	p = &PageReq{Page: 3, PageSize: 1000}
	p.Normalize()
	assert.Equal(t, maxPageSize, p.PageSize)
	assert.Equal(t, 2*maxPageSize, p.Offset())
}
