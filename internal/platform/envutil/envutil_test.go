package envutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	assert.Equal(t, "fallback", String("ENVUTIL_TEST_MISSING", "fallback"))

	t.Setenv("ENVUTIL_TEST_STR", "  value  ")
	assert.Equal(t, "value", String("ENVUTIL_TEST_STR", "fallback"))
}

func TestInt(t *testing.T) {
	assert.Equal(t, 7, Int("ENVUTIL_TEST_MISSING", 7))

	t.Setenv("ENVUTIL_TEST_INT", "42")
	assert.Equal(t, 42, Int("ENVUTIL_TEST_INT", 7))

	t.Setenv("ENVUTIL_TEST_INT", "not-a-number")
	assert.Equal(t, 7, Int("ENVUTIL_TEST_INT", 7))
}

func TestBool(t *testing.T) {
	assert.True(t, Bool("ENVUTIL_TEST_MISSING", true))

	t.Setenv("ENVUTIL_TEST_BOOL", "false")
	assert.False(t, Bool("ENVUTIL_TEST_BOOL", true))
}

func TestDuration(t *testing.T) {
	assert.Equal(t, time.Minute, Duration("ENVUTIL_TEST_MISSING", time.Minute))

	t.Setenv("ENVUTIL_TEST_DUR", "250ms")
	assert.Equal(t, 250*time.Millisecond, Duration("ENVUTIL_TEST_DUR", time.Minute))

	t.Setenv("ENVUTIL_TEST_DUR", "soon")
	assert.Equal(t, time.Minute, Duration("ENVUTIL_TEST_DUR", time.Minute))
}
