package cli

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDv7Generator(t *testing.T) {
	var gen TraceGenerator = UUIDv7Generator{}

	first := gen.Generate()
	second := gen.Generate()
	assert.NotEqual(t, first, second)

	for _, id := range []string{first, second} {
		parsed, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, uuid.Version(7), parsed.Version())
	}
}

func TestFormatterUsesTraceGenerator(t *testing.T) {
	opts := &RootOptions{Format: "json", Traces: fixedTrace("trace-abc")}
	cmd := NewRootCommandWithOptions(opts)
	assert.Equal(t, "text", opts.Format)

	require.NoError(t, cmd.ParseFlags([]string{"--format", "json"}))

	out := opts.formatter(cmd)
	assert.Equal(t, "trace-abc", out.TraceID)
	assert.Equal(t, "json", out.Format)
}

type fixedTrace string

func (f fixedTrace) Generate() string { return string(f) }
