package model

import "os/user"

// AppConfig holds process-wide configuration. It is read once at startup.
type AppConfig struct {
	// Form capacities (pieces per cutoff)
	FormCapacity1 int `json:"form_capacity_1"`
	FormCapacity2 int `json:"form_capacity_2"`
	FormCapacity3 int `json:"form_capacity_3"`

	// Cutoff-type markers for non-reference rows
	CutoffType1 int `json:"cutoff_type_1"`
	CutoffType2 int `json:"cutoff_type_2"`
	CutoffType3 int `json:"cutoff_type_3"`

	StoragePath string `json:"storage_path"`  // Directory for generated spreadsheets
	MaxFileSize int64  `json:"max_file_size"` // bytes
	LogLevel    string `json:"log_level"`     // "debug", "info", "warn", "error"
	Owner       string `json:"owner"`         // Recorded in output file metadata
}

// DefaultAppConfig returns an AppConfig populated with the production defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		FormCapacity1: 15,
		FormCapacity2: 20,
		FormCapacity3: 10,
		CutoffType1:   8,
		CutoffType2:   9,
		CutoffType3:   10,
		StoragePath:   "storage",
		MaxFileSize:   20 * 1024 * 1024,
		LogLevel:      "info",
		Owner:         currentUser(),
	}
}

// FormConfig builds the immutable form configuration for form types 1, 2 and 3.
func (c AppConfig) FormConfig() (FormConfig, error) {
	return NewFormConfig(
		FormSpec{FormType: 1, Capacity: c.FormCapacity1, CutoffType: c.CutoffType1},
		FormSpec{FormType: 2, Capacity: c.FormCapacity2, CutoffType: c.CutoffType2},
		FormSpec{FormType: 3, Capacity: c.FormCapacity3, CutoffType: c.CutoffType3},
	)
}

func currentUser() string {
	u, err := user.Current()
	if err != nil || u.Username == "" {
		return "unknown"
	}
	return u.Username
}
