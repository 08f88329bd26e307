package tag

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type limits struct {
	Rate  float64 `default:"50"`
	Burst int     `default:"100"`
}

type sample struct {
	Addr    string        `default:":8080"`
	Timeout time.Duration `default:"5s"`
	Enabled bool          `default:"true"`
	Size    uint32        `default:"16384"`
	Origins []string      `default:"a, b"`
	Limits  limits
	Opt     *limits
	Nil     *limits
	Plain   string
	hidden  string `default:"x"`
}

func TestApplyDefaults(t *testing.T) {
	s := sample{Opt: &limits{Burst: 7}}
	require.NoError(t, ApplyDefaults(&s))

	assert.Equal(t, ":8080", s.Addr)
	assert.Equal(t, 5*time.Second, s.Timeout)
	assert.True(t, s.Enabled)
	assert.EqualValues(t, 16384, s.Size)
	assert.Equal(t, []string{"a", "b"}, s.Origins)
	assert.Equal(t, limits{Rate: 50, Burst: 100}, s.Limits)
	assert.Equal(t, &limits{Rate: 50, Burst: 7}, s.Opt)
	assert.Nil(t, s.Nil)
	assert.Empty(t, s.Plain)
	assert.Empty(t, s.hidden)
}

func TestApplyDefaultsKeepsValues(t *testing.T) {
	s := sample{Addr: "127.0.0.1:9000", Limits: limits{Rate: 1}}
	require.NoError(t, ApplyDefaults(&s))

	assert.Equal(t, "127.0.0.1:9000", s.Addr)
	assert.Equal(t, float64(1), s.Limits.Rate)
	assert.Equal(t, 100, s.Limits.Burst)
}

func TestApplyDefaultsErrors(t *testing.T) {
	assert.ErrorIs(t, ApplyDefaults(sample{}), ErrTargetMustBePointer)
	assert.ErrorIs(t, ApplyDefaults((*sample)(nil)), ErrTargetMustBePointer)

	var n int
	assert.ErrorIs(t, ApplyDefaults(&n), ErrTargetMustBePointer)

	type bad struct {
		Inner struct {
			Port int `default:"http"`
		}
	}
	err := ApplyDefaults(&bad{})
	var fe *FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "Inner.Port", fe.Path)
}
