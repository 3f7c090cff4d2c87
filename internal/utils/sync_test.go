// Copyright (c) 2024 RoseLoverX

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncMapBasics(t *testing.T) {
	m := NewSyncMap[int64, string]()

	m.Add(1, "one")
	m.Add(2, "two")

	assert.True(t, m.Has(1))
	assert.Equal(t, 2, m.Len())

	v, ok := m.Get(2)
	require.True(t, ok)
	assert.Equal(t, "two", v)

	assert.ElementsMatch(t, []int64{1, 2}, m.Keys())

	assert.True(t, m.Delete(1))
	assert.False(t, m.Delete(1))

	m.Reset()
	assert.Zero(t, m.Len())
}

func TestSyncMapPopClaimsOnce(t *testing.T) {
	m := NewSyncMap[int64, string]()
	m.Add(7, "claimed")

	v, ok := m.Pop(7)
	require.True(t, ok)
	assert.Equal(t, "claimed", v)

	_, ok = m.Pop(7)
	assert.False(t, ok)
	assert.Zero(t, m.Len())
}

func TestSyncSet(t *testing.T) {
	s := NewSyncSet[int32]()

	assert.True(t, s.Add(5))
	assert.False(t, s.Add(5), "second insert reports no growth")
	assert.True(t, s.Has(5))
	assert.Equal(t, 1, s.Len())

	s.Delete(5)
	assert.False(t, s.Has(5))

	s.Add(6)
	s.Clear()
	assert.Zero(t, s.Len())
}
