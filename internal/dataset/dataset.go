// Package dataset loads the list of dataset descriptors from a YAML or JSON file.
package dataset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/maauso/corpusprep/internal/corpus"
)

// ErrInvalidFile is returned when a descriptor file fails validation.
var ErrInvalidFile = errors.New("invalid dataset file")

// File is the on-disk layout of a descriptor file.
//
//	datasets:
//	  - name: ljspeech
//	    path: /data/LJSpeech-1.1
//	    meta_file_train: metadata.csv
//	  - name: mailabs
//	    path: /data/mailabs
//	    meta_file_train: en_US/by_book/female/judy/metadata.csv, en_US/by_book/male/elliot/metadata.csv
//	    meta_file_val: null
type File struct {
	Datasets []corpus.Descriptor `json:"datasets" yaml:"datasets" validate:"required,min=1,dive"`
}

var validate = validator.New()

// Load reads and validates a descriptor file. Files ending in .json are
// decoded as JSON, everything else as YAML.
func Load(path string) ([]corpus.Descriptor, error) {
	data, err := os.ReadFile(path) // #nosec G304 - path is supplied by the operator
	if err != nil {
		return nil, fmt.Errorf("read dataset file %s: %w", path, err)
	}
	return Parse(data, strings.ToLower(filepath.Ext(path)) == ".json")
}

// Parse decodes and validates descriptor file contents.
func Parse(data []byte, isJSON bool) ([]corpus.Descriptor, error) {
	var f File
	if isJSON {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	} else {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	if err := validate.Struct(f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}
	for i, d := range f.Datasets {
		if _, err := corpus.ParseFormat(d.Name); err != nil {
			return nil, fmt.Errorf("%w: datasets[%d]: %w", ErrInvalidFile, i, err)
		}
	}
	return f.Datasets, nil
}
