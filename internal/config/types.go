package config

// AppConfig is the pagesmith configuration document.
type AppConfig struct {
	Log     LogConfig     `yaml:"log"`
	Storage StorageConfig `yaml:"storage"`
	History HistoryConfig `yaml:"history"`
	Export  ExportConfig  `yaml:"export"`
	Deploy  DeployConfig  `yaml:"deploy"`
	Uploads UploadsConfig `yaml:"uploads"`
	Theme   ThemeConfig   `yaml:"theme"`
}

// LogConfig controls the zerolog logger.
type LogConfig struct {
	Level string `yaml:"level" validate:"required,log_level"`
	Human bool   `yaml:"human"`
}

// StorageConfig selects the persistence backend.
type StorageConfig struct {
	Driver string `yaml:"driver" validate:"required,oneof=file sqlite memory"`
	Path   string `yaml:"path" validate:"required_unless=Driver memory"`
}

// HistoryConfig bounds the undo/redo stacks.
type HistoryConfig struct {
	Limit int `yaml:"limit" validate:"min=1,max=500"`
}

// ExportConfig sets static export defaults.
type ExportConfig struct {
	IncludeHidden bool   `yaml:"include_hidden"`
	Title         string `yaml:"title" validate:"max=120"`
	Description   string `yaml:"description" validate:"max=300"`
	Lang          string `yaml:"lang" validate:"omitempty,bcp47_language_tag"`
}

// DeployConfig describes where exports are committed.
type DeployConfig struct {
	Repo    string `yaml:"repo" validate:"required"`
	BaseURL string `yaml:"base_url" validate:"omitempty,url"`
	Author  string `yaml:"author" validate:"max=100"`
	Email   string `yaml:"email" validate:"omitempty,email"`
	Branch  string `yaml:"branch" validate:"omitempty,branch_name"`
}

// UploadsConfig controls asset intake.
type UploadsConfig struct {
	Dir      string `yaml:"dir" validate:"required"`
	MaxBytes int64  `yaml:"max_bytes" validate:"min=1"`
}

// ThemeConfig picks the initial palette.
type ThemeConfig struct {
	Default string `yaml:"default" validate:"required"`
}
