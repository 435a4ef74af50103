package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Format is a configuration file encoding.
type Format string

const (
	// FormatJSON decodes the configuration as JSON.
	FormatJSON Format = "json"
	// FormatTOML decodes the configuration as TOML.
	FormatTOML Format = "toml"
)

// FormatFromPath picks a Format from the file extension. Unknown
// extensions are treated as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", ".tml":
		return FormatTOML
	default:
		return FormatJSON
	}
}

// LoadFile reads and decodes a configuration file. The result is not
// validated; call Validate or Normalize for the pipeline it is used with.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data, FormatFromPath(path))
}

// Parse decodes data in the given format. Unknown options and values of
// the wrong shape are reported as *ConfigError.
func Parse(data []byte, format Format) (Config, error) {
	var cfg Config
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return Config{}, jsonConfigError(err)
		}
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return Config{}, tomlConfigError(err)
		}
	default:
		return Config{}, NewConfigError("", fmt.Sprintf("unsupported config format %q", format))
	}
	return cfg, nil
}

func jsonConfigError(err error) *ConfigError {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "config"
		}
		return NewConfigError(lastSegment(field), "must be "+describeType(typeErr.Type))
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return NewConfigError("", fmt.Sprintf("malformed JSON at offset %d: %v", syntaxErr.Offset, err))
	}
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return NewConfigError("", "malformed JSON: unexpected end of input")
	}

	// encoding/json has no typed error for unknown fields.
	if msg := err.Error(); strings.HasPrefix(msg, "json: unknown field ") {
		name := strings.Trim(strings.TrimPrefix(msg, "json: unknown field "), `"`)
		return NewConfigError(name, "is not a recognized option")
	}

	return NewConfigError("", err.Error())
}

func tomlConfigError(err error) *ConfigError {
	var strictErr *toml.StrictMissingError
	if errors.As(err, &strictErr) && len(strictErr.Errors) > 0 {
		return NewConfigError(keyPath(strictErr.Errors[0].Key()), "is not a recognized option")
	}

	var decodeErr *toml.DecodeError
	if errors.As(err, &decodeErr) {
		row, col := decodeErr.Position()
		return NewConfigError(keyPath(decodeErr.Key()), fmt.Sprintf("is invalid at line %d column %d: %v", row, col, err))
	}

	return NewConfigError("", err.Error())
}

func keyPath(key toml.Key) string {
	if len(key) == 0 {
		return "config"
	}
	return strings.Join(key, ".")
}

// lastSegment keeps the innermost field name of a dotted JSON path so the
// message names the option the user wrote, e.g. "allowedNames".
func lastSegment(path string) string {
	if i := strings.LastIndex(path, "."); i >= 0 {
		return path[i+1:]
	}
	return path
}

func describeType(t reflect.Type) string {
	if t == nil {
		return "a valid value"
	}
	switch t.Kind() {
	case reflect.Ptr:
		return describeType(t.Elem())
	case reflect.Slice, reflect.Array:
		switch t.Elem().Kind() {
		case reflect.String:
			return "a list of strings"
		case reflect.Struct:
			return "a list of objects"
		default:
			return "a list"
		}
	case reflect.Struct, reflect.Map:
		return "an object"
	case reflect.String:
		return "a string"
	case reflect.Bool:
		return "a boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "an integer"
	case reflect.Float32, reflect.Float64:
		return "a number"
	default:
		return t.String()
	}
}
