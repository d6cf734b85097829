package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%ali%", ContainsPattern("ali"))
	assert.Equal(t, `%100\%%`, ContainsPattern("100%"))
	assert.Equal(t, `%a\_b%`, ContainsPattern("a_b"))
	assert.Equal(t, "%%", ContainsPattern(""))
}

func TestNullableString(t *testing.T) {
	assert.Nil(t, NullableString(""))
	if v := NullableString("x"); assert.NotNil(t, v) {
		assert.Equal(t, "x", *v)
	}
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 2*time.Hour, ParseDuration("2h", time.Minute))
	assert.Equal(t, time.Minute, ParseDuration("soon", time.Minute))
}
