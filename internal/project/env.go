package project

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/piwi3910/VedoCalc/internal/model"
)

// ApplyEnv overrides config fields from environment variables. When envFile
// names an existing file it is read with godotenv; variables already set in
// the process environment take precedence over the file. A missing envFile
// is not an error.
func ApplyEnv(config model.AppConfig, envFile string) (model.AppConfig, error) {
	fileVars := map[string]string{}
	if envFile != "" {
		vars, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			fileVars = vars
		case errors.Is(err, os.ErrNotExist):
		default:
			return config, fmt.Errorf("failed to read %s: %w", envFile, err)
		}
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fileVars[key]
		return v, ok
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"FORM_CAPACITY_1", &config.FormCapacity1},
		{"FORM_CAPACITY_2", &config.FormCapacity2},
		{"FORM_CAPACITY_3", &config.FormCapacity3},
		{"CUTOFF_TYPE_1", &config.CutoffType1},
		{"CUTOFF_TYPE_2", &config.CutoffType2},
		{"CUTOFF_TYPE_3", &config.CutoffType3},
	}
	for _, v := range ints {
		s, ok := lookup(v.key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return config, fmt.Errorf("%s: expected an integer, got %q", v.key, s)
		}
		*v.dst = n
	}

	if s, ok := lookup("MAX_FILE_SIZE"); ok {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return config, fmt.Errorf("MAX_FILE_SIZE: expected an integer, got %q", s)
		}
		config.MaxFileSize = n
	}
	if s, ok := lookup("STORAGE_PATH"); ok {
		config.StoragePath = s
	}
	if s, ok := lookup("LOG_LEVEL"); ok {
		config.LogLevel = s
	}
	if s, ok := lookup("OWNER"); ok {
		config.Owner = s
	}

	return config, nil
}
