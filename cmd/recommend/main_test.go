package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIDs(t *testing.T) {
	ids, err := parseIDs(" 1001, 1003,,")
	require.NoError(t, err)
	assert.Equal(t, []int{1001, 1003}, ids)

	ids, err = parseIDs("")
	require.NoError(t, err)
	assert.Empty(t, ids)

	_, err = parseIDs("1001,abc")
	assert.ErrorContains(t, err, "abc")
}

func TestJoinIDs(t *testing.T) {
	assert.Equal(t, "1002,1003", joinIDs([]int{1002, 1003}))
	assert.Equal(t, "", joinIDs(nil))
}
