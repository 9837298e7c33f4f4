package formclient

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/okian/diarisk/internal/app"
)

// ErrFormFile is returned when a form file cannot be read or decoded.
var ErrFormFile = errors.New("invalid form file")

// LoadForm reads a form from a YAML or JSON file. JSON is parsed as YAML.
func LoadForm(path string) (app.Form, error) {
	var form app.Form
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
	default:
		return form, fmt.Errorf("%w: %s: unsupported extension", ErrFormFile, path)
	}
	if _, err := os.Stat(path); err != nil {
		return form, fmt.Errorf("%w: %w", ErrFormFile, err)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return form, fmt.Errorf("%w: %s: %w", ErrFormFile, path, err)
	}
	if err := k.UnmarshalWithConf("", &form, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return form, fmt.Errorf("%w: %s: %w", ErrFormFile, path, err)
	}
	return form, nil
}
