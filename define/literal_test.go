package define

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/sift"
)

func TestParseValue(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Literal
	}{
		{name: "bool true", raw: "true", want: Bool(true)},
		{name: "bool false", raw: "false", want: Bool(false)},
		{name: "integer", raw: "42", want: Number(42)},
		{name: "float", raw: "1.5", want: Number(1.5)},
		{name: "double quoted", raw: `"production"`, want: String("production")},
		{name: "single quoted", raw: "'dev'", want: String("dev")},
		{name: "bare string", raw: "production", want: String("production")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseValue(tt.raw))
		})
	}
}

func TestLiteralJS(t *testing.T) {
	assert.Equal(t, `"production"`, String("production").JS())
	assert.Equal(t, `"say \"hi\""`, String(`say "hi"`).JS())
	assert.Equal(t, "true", Bool(true).JS())
	assert.Equal(t, "false", Bool(false).JS())
	assert.Equal(t, "42", Number(42).JS())
	assert.Equal(t, "1.5", Number(1.5).JS())
}

func TestValidKey(t *testing.T) {
	assert.True(t, ValidKey("DEBUG"))
	assert.True(t, ValidKey("process.env.NODE_ENV"))
	assert.True(t, ValidKey("$flag"))
	assert.True(t, ValidKey("_private.value"))

	assert.False(t, ValidKey(""))
	assert.False(t, ValidKey("1flag"))
	assert.False(t, ValidKey("a..b"))
	assert.False(t, ValidKey("a.b."))
	assert.False(t, ValidKey("a b"))
}

func TestParseMap(t *testing.T) {
	vars, err := ParseMap([]string{
		"DEBUG=false",
		"process.env.NODE_ENV=production",
		"VERSION=1.2",
		"",
	})
	require.NoError(t, err)
	require.Len(t, vars, 3)
	assert.Equal(t, Bool(false), vars["DEBUG"])
	assert.Equal(t, String("production"), vars["process.env.NODE_ENV"])
	assert.Equal(t, Number(1.2), vars["VERSION"])
}

func TestParseMap_Malformed(t *testing.T) {
	tests := []struct {
		name string
		pair string
	}{
		{name: "no equals", pair: "DEBUG"},
		{name: "bad key", pair: "not a key=1"},
		{name: "dotted key with gap", pair: "a..b=1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMap([]string{tt.pair})
			require.Error(t, err)
			assert.Equal(t, sift.KindConfig, sift.KindOf(err))
		})
	}
}
