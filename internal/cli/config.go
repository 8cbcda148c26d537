package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	defaultOutputPath = "output.lua"
	defaultTimeout    = 30 * time.Second
	defaultFormat     = "table"
)

var configValidator = validator.New()

// fileConfig mirrors the luadoc section of a .reaper-luadoc.yml file
type fileConfig struct {
	LuaDoc struct {
		Input     string        `yaml:"input"`
		Output    string        `yaml:"output"`
		Version   string        `yaml:"version"`
		Timestamp *bool         `yaml:"timestamp"`
		Timeout   time.Duration `yaml:"timeout"`
	} `yaml:"luadoc"`
}

func readConfigFile(path string) (*fileConfig, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

// validateStruct runs the validate tags on v and reports every failing field
func validateStruct(v any) error {
	err := configValidator.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.Param() != "" {
			problems = append(problems, fmt.Sprintf("%s must satisfy %s=%s (got %v)", fe.Field(), fe.Tag(), fe.Param(), fe.Value()))
		} else {
			problems = append(problems, fmt.Sprintf("%s is %s", fe.Field(), fe.Tag()))
		}
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
}
