package corpus

import (
	"fmt"
	"sort"
	"strings"
)

// Format identifies a dataset manifest layout.
type Format string

const (
	// FormatCache is the "| " delimited manifest written by feature extraction.
	FormatCache Format = "cache"
	// FormatTWEB is The World English Bible speech dataset.
	FormatTWEB Format = "tweb"
	// FormatMAILabs is the M-AILABS speech dataset.
	FormatMAILabs Format = "mailabs"
	// FormatLJSpeech is the LJ Speech dataset.
	FormatLJSpeech Format = "ljspeech"
	// FormatTTSPortuguese is the TTS-Portuguese corpus.
	FormatTTSPortuguese Format = "tts-portuguese"
	// FormatNancy is the Blizzard 2011 Nancy corpus.
	FormatNancy Format = "nancy"
	// FormatCommonVoice is the German Common Voice release.
	FormatCommonVoice Format = "commonvoice"
)

// formats is the closed set of supported formats.
var formats = []Format{
	FormatCache,
	FormatTWEB,
	FormatMAILabs,
	FormatLJSpeech,
	FormatTTSPortuguese,
	FormatNancy,
	FormatCommonVoice,
}

// aliases maps legacy dataset names to their format.
var aliases = map[string]Format{
	"tts_cache":            FormatCache,
	"ttsportuguese":        FormatTTSPortuguese,
	"tts_portuguese":       FormatTTSPortuguese,
	"commonvoice_deutsche": FormatCommonVoice,
	"commonvoice-de":       FormatCommonVoice,
}

// Formats returns every supported format.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// IsValid returns true if f is one of the supported formats.
func (f Format) IsValid() bool {
	for _, known := range formats {
		if f == known {
			return true
		}
	}
	return false
}

// ParseFormat resolves a dataset name to a Format.
// The lookup is case-insensitive and accepts legacy aliases.
func ParseFormat(name string) (Format, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if f := Format(key); f.IsValid() {
		return f, nil
	}
	if f, ok := aliases[key]; ok {
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// Aliases returns the legacy names that resolve to f, sorted.
func (f Format) Aliases() []string {
	var out []string
	for alias, target := range aliases {
		if target == f {
			out = append(out, alias)
		}
	}
	sort.Strings(out)
	return out
}
