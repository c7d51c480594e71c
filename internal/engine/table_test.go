package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuild(t *testing.T) {
	table := Build([]Pair{{1001, 1002}, {1001, 1003}, {1003, 1002}, {1001, 1002}})

	assert.Equal(t, AssociationTable{
		1001: {1002: 2, 1003: 1},
		1003: {1002: 1},
	}, table)
	assert.Equal(t, 2, table.Len())
}

func TestBuild_Empty(t *testing.T) {
	table := Build(nil)
	assert.Equal(t, 0, table.Len())
	assert.Empty(t, table.Products())
}

func TestBuild_OrderIndependent(t *testing.T) {
	a := Build([]Pair{{1, 2}, {3, 4}, {1, 2}, {1, 5}})
	b := Build([]Pair{{1, 5}, {1, 2}, {3, 4}, {1, 2}})
	assert.Equal(t, a, b)
}

func TestProducts(t *testing.T) {
	table := Build([]Pair{{30, 10}, {20, 10}, {30, 40}})
	assert.Equal(t, []int{10, 20, 30, 40}, table.Products())
}
