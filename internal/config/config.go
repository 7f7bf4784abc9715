package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/riordanpawley/taskflow/internal/domain"
	"gopkg.in/yaml.v3"
)

// File names searched in the project directory, in priority order
const (
	JSONFile = ".taskflow.json"
	YAMLFile = ".taskflow.yaml"
	YMLFile  = ".taskflow.yml"
)

// Config represents the full TaskFlow configuration
type Config struct {
	Timer         TimerConfig   `json:"timer" yaml:"timer"`
	Tasks         TasksConfig   `json:"tasks" yaml:"tasks"`
	Notifications NotifyConfig  `json:"notifications" yaml:"notifications"`
	Logging       LoggingConfig `json:"logging" yaml:"logging"`
}

// TimerConfig contains work/break countdown settings
type TimerConfig struct {
	WorkMinutes  int `json:"workMinutes" yaml:"workMinutes"`
	BreakMinutes int `json:"breakMinutes" yaml:"breakMinutes"`
}

// WorkDuration returns the work phase length
func (c TimerConfig) WorkDuration() time.Duration {
	return time.Duration(c.WorkMinutes) * time.Minute
}

// BreakDuration returns the break phase length
func (c TimerConfig) BreakDuration() time.Duration {
	return time.Duration(c.BreakMinutes) * time.Minute
}

// TasksConfig contains task list defaults
type TasksConfig struct {
	DefaultSort     string `json:"defaultSort" yaml:"defaultSort"`
	DefaultFilter   string `json:"defaultFilter" yaml:"defaultFilter"`
	DefaultPriority string `json:"defaultPriority" yaml:"defaultPriority"`
	DefaultCategory string `json:"defaultCategory" yaml:"defaultCategory"`
}

// Selection returns the initial filter and sort for the task list
func (c TasksConfig) Selection() domain.Selection {
	sel := domain.DefaultSelection()
	if f := domain.Filter(c.DefaultFilter); f.Valid() {
		sel.Filter = f
	}
	if s := domain.Sort(c.DefaultSort); s.Valid() {
		sel.Sort = s
	}
	return sel
}

// Priority returns the priority preselected in the new task form
func (c TasksConfig) Priority() domain.Priority {
	if p := domain.Priority(c.DefaultPriority); p.Valid() {
		return p
	}
	return domain.PriorityMedium
}

// Category returns the category preselected in the new task form
func (c TasksConfig) Category() domain.Category {
	if cat := domain.Category(c.DefaultCategory); cat.Valid() {
		return cat
	}
	return domain.CategoryOther
}

// NotifyConfig contains notification settings
type NotifyConfig struct {
	Enabled               *bool `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	DailyGoal             int   `json:"dailyGoal" yaml:"dailyGoal"`
	WeeklyGoal            int   `json:"weeklyGoal" yaml:"weeklyGoal"`
	ProductivityMilestone int   `json:"productivityMilestone" yaml:"productivityMilestone"`
	ToastSeconds          int   `json:"toastSeconds" yaml:"toastSeconds"`
}

// IsEnabled reports whether notifications are on; unset means on
func (c NotifyConfig) IsEnabled() bool {
	return c.Enabled == nil || *c.Enabled
}

// ToastDuration returns how long a toast stays on screen
func (c NotifyConfig) ToastDuration() time.Duration {
	return time.Duration(c.ToastSeconds) * time.Second
}

// LoggingConfig contains log output settings
type LoggingConfig struct {
	Level string `json:"level" yaml:"level"`
	File  string `json:"file" yaml:"file"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	enabled := true

	return &Config{
		Timer: TimerConfig{
			WorkMinutes:  25,
			BreakMinutes: 5,
		},
		Tasks: TasksConfig{
			DefaultSort:     string(domain.SortByCreated),
			DefaultFilter:   string(domain.FilterAll),
			DefaultPriority: string(domain.PriorityMedium),
			DefaultCategory: string(domain.CategoryOther),
		},
		Notifications: NotifyConfig{
			Enabled:               &enabled,
			DailyGoal:             5,
			WeeklyGoal:            7,
			ProductivityMilestone: 90,
			ToastSeconds:          3,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  filepath.Join(homeDir, ".taskflow", "taskflow.log"),
		},
	}
}

// LoadConfig loads configuration from project path with priority:
// 1. .taskflow.json in project root (with version migration support)
// 2. .taskflow.yaml or .taskflow.yml in project root
// 3. Defaults
func LoadConfig(projectPath string) (*Config, error) {
	jsonPath := filepath.Join(projectPath, JSONFile)
	if data, err := os.ReadFile(jsonPath); err == nil {
		cfg, err := ParseVersionedConfig(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", JSONFile, err)
		}
		return finish(cfg)
	}

	for _, name := range []string{YAMLFile, YMLFile} {
		data, err := os.ReadFile(filepath.Join(projectPath, name))
		if err != nil {
			continue
		}
		cfg, err := ParseYAMLConfig(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
		return finish(cfg)
	}

	return DefaultConfig(), nil
}

// LoadFile loads an explicit config file, choosing the format by extension
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg *Config
	if isYAML(path) {
		cfg, err = ParseYAMLConfig(data)
	} else {
		cfg, err = ParseVersionedConfig(data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return finish(cfg)
}

// ParseYAMLConfig parses a YAML config. YAML files carry no version field
// and always follow the current schema.
func ParseYAMLConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	return &cfg, nil
}

// SaveConfig saves configuration to the specified path. JSON files get
// version information; .yaml and .yml files are written as plain YAML.
func SaveConfig(cfg *Config, path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(cfg)
	} else {
		data, err = MarshalVersionedConfig(cfg)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeWithDefaults fills in missing values with defaults
func MergeWithDefaults(cfg *Config) *Config {
	defaults := DefaultConfig()

	// Merge Timer config
	if cfg.Timer.WorkMinutes == 0 {
		cfg.Timer.WorkMinutes = defaults.Timer.WorkMinutes
	}
	if cfg.Timer.BreakMinutes == 0 {
		cfg.Timer.BreakMinutes = defaults.Timer.BreakMinutes
	}

	// Merge Tasks config
	if cfg.Tasks.DefaultSort == "" {
		cfg.Tasks.DefaultSort = defaults.Tasks.DefaultSort
	}
	if cfg.Tasks.DefaultFilter == "" {
		cfg.Tasks.DefaultFilter = defaults.Tasks.DefaultFilter
	}
	if cfg.Tasks.DefaultPriority == "" {
		cfg.Tasks.DefaultPriority = defaults.Tasks.DefaultPriority
	}
	if cfg.Tasks.DefaultCategory == "" {
		cfg.Tasks.DefaultCategory = defaults.Tasks.DefaultCategory
	}

	// Merge Notifications config
	if cfg.Notifications.Enabled == nil {
		cfg.Notifications.Enabled = defaults.Notifications.Enabled
	}
	if cfg.Notifications.DailyGoal == 0 {
		cfg.Notifications.DailyGoal = defaults.Notifications.DailyGoal
	}
	if cfg.Notifications.WeeklyGoal == 0 {
		cfg.Notifications.WeeklyGoal = defaults.Notifications.WeeklyGoal
	}
	if cfg.Notifications.ProductivityMilestone == 0 {
		cfg.Notifications.ProductivityMilestone = defaults.Notifications.ProductivityMilestone
	}
	if cfg.Notifications.ToastSeconds == 0 {
		cfg.Notifications.ToastSeconds = defaults.Notifications.ToastSeconds
	}

	// Merge Logging config
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = defaults.Logging.Level
	}
	if cfg.Logging.File == "" {
		cfg.Logging.File = defaults.Logging.File
	}

	return cfg
}

// Validate reports every out-of-range or unknown value
func (c *Config) Validate() error {
	var errs []error

	if c.Timer.WorkMinutes < 1 {
		errs = append(errs, fmt.Errorf("timer.workMinutes must be positive, got %d", c.Timer.WorkMinutes))
	}
	if c.Timer.BreakMinutes < 1 {
		errs = append(errs, fmt.Errorf("timer.breakMinutes must be positive, got %d", c.Timer.BreakMinutes))
	}
	if !domain.Sort(c.Tasks.DefaultSort).Valid() {
		errs = append(errs, fmt.Errorf("tasks.defaultSort: unknown sort %q", c.Tasks.DefaultSort))
	}
	if !domain.Filter(c.Tasks.DefaultFilter).Valid() {
		errs = append(errs, fmt.Errorf("tasks.defaultFilter: unknown filter %q", c.Tasks.DefaultFilter))
	}
	if !domain.Priority(c.Tasks.DefaultPriority).Valid() {
		errs = append(errs, fmt.Errorf("tasks.defaultPriority: unknown priority %q", c.Tasks.DefaultPriority))
	}
	if !domain.Category(c.Tasks.DefaultCategory).Valid() {
		errs = append(errs, fmt.Errorf("tasks.defaultCategory: unknown category %q", c.Tasks.DefaultCategory))
	}
	if c.Notifications.ProductivityMilestone < 0 || c.Notifications.ProductivityMilestone > 100 {
		errs = append(errs, fmt.Errorf("notifications.productivityMilestone must be within 0-100, got %d",
			c.Notifications.ProductivityMilestone))
	}
	if _, err := ParseLevel(c.Logging.Level); err != nil {
		errs = append(errs, fmt.Errorf("logging.level: %w", err))
	}

	return errors.Join(errs...)
}

// FilePath returns the config file LoadConfig would read in dir, or the
// JSON file name when none exists yet
func FilePath(dir string) string {
	for _, name := range []string{JSONFile, YAMLFile, YMLFile} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return filepath.Join(dir, JSONFile)
}

// Load is a convenience function that loads config from current directory
func Load() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	return LoadConfig(cwd)
}

func finish(cfg *Config) (*Config, error) {
	cfg = MergeWithDefaults(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
