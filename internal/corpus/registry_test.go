package corpus

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tagParser returns a parser whose single record carries tag as its text.
func tagParser(tag string) Parser {
	return ParserFunc(func(_ context.Context, root, manifest string) ([]Record, error) {
		return []Record{{Text: tag, AudioPath: root + "/" + manifest}}, nil
	})
}

func fullRegistry(t *testing.T) *Registry {
	t.Helper()
	reg := NewRegistry()
	for _, f := range Formats() {
		require.NoError(t, reg.Register(f, tagParser(string(f))))
	}
	return reg
}

func resolveTag(t *testing.T, reg *Registry, name string) string {
	t.Helper()
	p, err := reg.Resolve(name)
	require.NoError(t, err)
	records, err := p.Parse(context.Background(), "root", "meta")
	require.NoError(t, err)
	require.Len(t, records, 1)
	return records[0].Text
}

func TestRegistry_ResolveCaseInsensitive(t *testing.T) {
	reg := fullRegistry(t)

	for _, f := range Formats() {
		t.Run(string(f), func(t *testing.T) {
			lower := resolveTag(t, reg, string(f))
			upper := resolveTag(t, reg, strings.ToUpper(string(f)))
			assert.Equal(t, string(f), lower)
			assert.Equal(t, lower, upper)
		})
	}
}

func TestRegistry_ResolveAliases(t *testing.T) {
	reg := fullRegistry(t)

	tests := []struct {
		name string
		want Format
	}{
		{"tts_cache", FormatCache},
		{"TTSPortuguese", FormatTTSPortuguese},
		{"tts_portuguese", FormatTTSPortuguese},
		{"commonvoice_deutsche", FormatCommonVoice},
		{"CommonVoice-DE", FormatCommonVoice},
		{"  LJSpeech ", FormatLJSpeech},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, string(tt.want), resolveTag(t, reg, tt.name))
		})
	}
}

func TestRegistry_ResolveUnknown(t *testing.T) {
	reg := fullRegistry(t)

	for _, name := range []string{"nonexistent", "", "kusal"} {
		_, err := reg.Resolve(name)
		assert.ErrorIs(t, err, ErrUnknownFormat, "name %q", name)
	}
}

func TestRegistry_ResolveUnregistered(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(FormatLJSpeech, tagParser("lj")))

	_, err := reg.Resolve("nancy")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestRegistry_Register(t *testing.T) {
	t.Run("rejects format outside enumeration", func(t *testing.T) {
		reg := NewRegistry()
		err := reg.Register(Format("kusal"), tagParser("k"))
		assert.ErrorIs(t, err, ErrInvalidFormat)
	})

	t.Run("rejects duplicate", func(t *testing.T) {
		reg := NewRegistry()
		require.NoError(t, reg.Register(FormatTWEB, tagParser("a")))
		err := reg.Register(FormatTWEB, tagParser("b"))
		assert.ErrorIs(t, err, ErrDuplicateFormat)
		assert.Equal(t, "a", resolveTag(t, reg, "tweb"))
	})

	t.Run("rejects nil parser", func(t *testing.T) {
		reg := NewRegistry()
		assert.Error(t, reg.Register(FormatTWEB, nil))
	})
}

func TestRegistry_Formats(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(FormatTWEB, tagParser("t")))
	require.NoError(t, reg.Register(FormatCache, tagParser("c")))
	require.NoError(t, reg.Register(FormatNancy, tagParser("n")))

	assert.Equal(t, []Format{FormatCache, FormatNancy, FormatTWEB}, reg.Formats())
}

func TestFormat(t *testing.T) {
	assert.Len(t, Formats(), 7)
	for _, f := range Formats() {
		assert.True(t, f.IsValid(), f)
	}
	assert.False(t, Format("LJSpeech").IsValid())
	assert.Equal(t, []string{"tts_portuguese", "ttsportuguese"}, FormatTTSPortuguese.Aliases())
	assert.Empty(t, FormatNancy.Aliases())

	f, err := ParseFormat("MAILABS")
	require.NoError(t, err)
	assert.Equal(t, FormatMAILabs, f)
}

func TestRowError(t *testing.T) {
	err := error(&RowError{Path: "/data/metadata.csv", Line: 3, Reason: "expected 2 columns"})
	assert.ErrorIs(t, err, ErrMalformedRow)
	assert.Contains(t, err.Error(), "/data/metadata.csv:3")
	assert.Contains(t, err.Error(), "expected 2 columns")
}
