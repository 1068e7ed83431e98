package logging

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// envPrefix namespaces the environment variables LoadOptions consumes:
// LOG_LEVEL, LOG_CONSOLE, LOG_REDACT_PATHS, LOG_FILE_DIR and so on.
const envPrefix = "LOG_"

// LoadOptions assembles Options from three layers with strict priority:
// environment variables over the config file over DefaultOptions. path may
// name a YAML or JSON file; an empty path skips the file layer entirely.
// Programmatic fields (Output, LevelFormatter, Serializers) cannot be
// expressed in config and stay unset.
func LoadOptions(path string) (*Options, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(DefaultOptions(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("loading default options: %w", err)
	}

	if path != emptyString {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("options file %s: %w", path, err)
		}
		parser, err := parserFor(path)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, fmt.Errorf("loading options file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading options from environment: %w", err)
	}

	opts := &Options{}
	if err := k.Unmarshal(emptyString, opts); err != nil {
		return nil, fmt.Errorf("unmarshaling options: %w", err)
	}
	return opts, nil
}

// parserFor picks the file parser by extension.
func parserFor(path string) (koanf.Parser, error) {
	switch {
	case strings.HasSuffix(path, ".yaml"), strings.HasSuffix(path, ".yml"):
		return yaml.Parser(), nil
	case strings.HasSuffix(path, ".json"):
		return json.Parser(), nil
	default:
		return nil, fmt.Errorf("options file %s: unsupported extension", path)
	}
}

// envKey maps an environment variable name onto a koanf path. Only the
// leading REDACT_/FILE_ segment selects a nested section; the remainder
// keeps its underscores so snake_case keys such as disable_timestamp and
// max_size_mb survive the rewrite. List-valued variables use commas
// (LOG_REDACT_PATHS=password,token), split during unmarshal.
func envKey(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, envPrefix))
	for _, section := range []string{"redact", "file"} {
		if strings.HasPrefix(key, section+"_") {
			return section + "." + strings.TrimPrefix(key, section+"_")
		}
	}
	return key
}
