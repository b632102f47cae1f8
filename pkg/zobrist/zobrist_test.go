package zobrist_test

import (
	"testing"

	"github.com/herohde/points/pkg/zobrist"
	"github.com/stretchr/testify/assert"
)

func TestNewIsReproducibleFromSeed(t *testing.T) {
	a := zobrist.New(42, 100)
	b := zobrist.New(42, 100)

	for pos := 0; pos < 100; pos++ {
		assert.Equal(t, a.Key(0, pos), b.Key(0, pos))
		assert.Equal(t, a.Key(1, pos), b.Key(1, pos))
	}
}

func TestDifferentSeedsDiffer(t *testing.T) {
	a := zobrist.New(1, 64)
	b := zobrist.New(2, 64)

	var same int
	for pos := 0; pos < 64; pos++ {
		if a.Key(0, pos) == b.Key(0, pos) {
			same++
		}
	}
	assert.Less(t, same, 64)
}

func TestCloneMatchesOriginal(t *testing.T) {
	a := zobrist.New(7, 16)
	c := a.Clone()

	assert.Equal(t, a.Key(0, 3), c.Key(0, 3))
	assert.Equal(t, a.Len(), c.Len())
}

func TestPlayerKeysAreDistinctRanges(t *testing.T) {
	a := zobrist.New(3, 8)
	for pos := 0; pos < 8; pos++ {
		assert.NotEqual(t, a.Key(0, pos), a.Key(1, pos))
	}
}
