package invoice

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProperties_SetGet(t *testing.T) {
	t.Run("LastWriteWins", func(t *testing.T) {
		p := NewProperties()
		p.Set("a", "first")
		p.Set("b", 2)
		p.Set("a", "second")

		v, ok := p.Get("a")
		assert.True(t, ok)
		assert.Equal(t, "second", v)
		assert.Equal(t, []string{"a", "b"}, p.Keys())
		assert.Equal(t, 2, p.Len())
	})

	t.Run("MissingKey", func(t *testing.T) {
		p := NewProperties()
		v, ok := p.Get("nope")
		assert.False(t, ok)
		assert.Nil(t, v)
	})

	t.Run("Delete", func(t *testing.T) {
		p := NewProperties()
		p.Set("a", 1)
		p.Set("b", 2)
		p.Delete("a")
		p.Delete("missing")

		assert.Equal(t, []string{"b"}, p.Keys())
	})
}

func TestProperties_Change(t *testing.T) {
	t.Run("KeepsOrderAndAppendsNewKeys", func(t *testing.T) {
		p := NewProperties()
		p.Set("z", 1)
		p.Set("y", 2)

		p.Change(func(items map[string]any) {
			delete(items, "z")
			items["x"] = 3
			items["w"] = 4
			items["y"] = 20
		})

		assert.Equal(t, []string{"y", "w", "x"}, p.Keys())
		v, _ := p.Get("y")
		assert.Equal(t, 20, v)
	})

	t.Run("ConcurrentAppendsAreNotLost", func(t *testing.T) {
		p := NewProperties()
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				p.Change(func(items map[string]any) {
					list, _ := items["list"].([]int)
					items["list"] = append(list, i)
				})
			}(i)
		}
		wg.Wait()

		list, ok := Lookup[[]int](p, "list")
		require.True(t, ok)
		assert.Len(t, list, 50)
	})
}

func TestLookup(t *testing.T) {
	p := NewProperties()
	p.Set("flag", true)
	p.Set("name", "saman")

	t.Run("MatchingType", func(t *testing.T) {
		v, ok := Lookup[bool](p, "flag")
		assert.True(t, ok)
		assert.True(t, v)
	})

	t.Run("WrongTypeFailsClosed", func(t *testing.T) {
		v, ok := Lookup[bool](p, "name")
		assert.False(t, ok)
		assert.False(t, v)
	})

	t.Run("Absent", func(t *testing.T) {
		v, ok := Lookup[string](p, "missing")
		assert.False(t, ok)
		assert.Equal(t, "", v)
	})

	t.Run("NilBag", func(t *testing.T) {
		_, ok := Lookup[string](nil, "name")
		assert.False(t, ok)
	})
}
