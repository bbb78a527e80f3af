package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderedMap(t *testing.T) {
	m := NewOrderedMap[int]()
	m.Set("b", 1)
	m.Set("a", 2)
	m.Set("c", 3)
	m.Set("b", 4)

	assert.Equal(t, []string{"b", "a", "c"}, m.Keys())
	assert.Equal(t, 3, m.Len())
	assert.Equal(t, 0, m.Index("b"), "re-setting keeps position")
	assert.Equal(t, -1, m.Index("missing"))

	v, ok := m.Get("b")
	assert.True(t, ok)
	assert.Equal(t, 4, v)

	var keys []string
	for k := range m.All() {
		keys = append(keys, k)
		if k == "a" {
			break
		}
	}
	assert.Equal(t, []string{"b", "a"}, keys)
}

func TestOrderedMap_Nil(t *testing.T) {
	var m *OrderedMap[string]

	assert.False(t, m.Has("x"))
	assert.Equal(t, -1, m.Index("x"))
	assert.Equal(t, 0, m.Len())
	assert.Nil(t, m.Keys())
	for range m.All() {
		t.Fatal("nil map yields nothing")
	}
}
