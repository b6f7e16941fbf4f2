package cardinality_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NamanBalaji/fman/internal/cardinality"
	"github.com/NamanBalaji/fman/internal/errors"
)

func TestEstimator_Small(t *testing.T) {
	e := cardinality.New()
	for _, s := range []string{"a", "b", "a", "c", "b", "a"} {
		e.Add(s)
	}
	assert.Equal(t, uint64(3), e.Estimate())
	assert.Equal(t, int64(6), e.Seen())
}

func TestEstimator_WithinError(t *testing.T) {
	e := cardinality.New()
	const distinct = 50_000
	for i := range distinct * 2 {
		e.Add(fmt.Sprintf("user-%d", i%distinct))
	}
	assert.InEpsilon(t, float64(distinct), float64(e.Estimate()), 0.03)
}

func TestFile(t *testing.T) {
	var sb strings.Builder
	for i := range 1000 {
		fmt.Fprintf(&sb, "%d\n", i%100)
	}
	path := filepath.Join(t.TempDir(), "in.txt")
	require.NoError(t, os.WriteFile(path, []byte(sb.String()), 0o644))

	e, err := cardinality.File(path)
	require.NoError(t, err)
	assert.InEpsilon(t, 100.0, float64(e.Estimate()), 0.02)
	assert.Equal(t, int64(1000), e.Seen())

	_, err = cardinality.File(filepath.Join(t.TempDir(), "missing"))
	assert.True(t, errors.IsIOError(err))
}
