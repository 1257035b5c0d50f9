package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGrade(t *testing.T) {
	date := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("valid boundaries", func(t *testing.T) {
		for _, value := range []int{1, 5} {
			g, err := NewGrade(1, 2, "Math", value, date, 3)
			require.NoError(t, err)
			assert.Equal(t, value, g.Value)
			assert.Equal(t, "Math", g.Subject)
			assert.Empty(t, g.Comments)
		}
	})

	t.Run("value out of range", func(t *testing.T) {
		for _, value := range []int{0, 6, -1} {
			_, err := NewGrade(1, 2, "Math", value, date, 3)
			assert.Error(t, err, "value %d", value)
		}
	})

	t.Run("rejects blank subject", func(t *testing.T) {
		_, err := NewGrade(1, 2, "  ", 4, date, 3)
		assert.Error(t, err)
	})

	t.Run("copies comments", func(t *testing.T) {
		comments := []string{"good work"}
		g, err := NewGrade(1, 2, "Math", 4, date, 3, comments...)
		require.NoError(t, err)

		comments[0] = "mutated"
		assert.Equal(t, []string{"good work"}, g.Comments)
	})
}

func TestGradeUpdate(t *testing.T) {
	newGrade := func(t *testing.T) *Grade {
		g, err := NewGrade(1, 2, "Math", 3, time.Now(), 4, "initial")
		require.NoError(t, err)
		return g
	}

	t.Run("in-range value replaces and skips comment", func(t *testing.T) {
		g := newGrade(t)
		ok := g.Update(5, "should be ignored")
		assert.True(t, ok)
		assert.Equal(t, 5, g.Value)
		assert.Equal(t, []string{"initial"}, g.Comments)
	})

	t.Run("out-of-range value with comment appends only", func(t *testing.T) {
		g := newGrade(t)
		ok := g.Update(9, "needs review")
		assert.True(t, ok)
		assert.Equal(t, 3, g.Value)
		assert.Equal(t, []string{"initial", "needs review"}, g.Comments)
	})

	t.Run("out-of-range value without comment fails", func(t *testing.T) {
		g := newGrade(t)
		ok := g.Update(0, "")
		assert.False(t, ok)
		assert.Equal(t, 3, g.Value)
		assert.Equal(t, []string{"initial"}, g.Comments)
	})
}
