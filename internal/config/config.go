package config

import (
	"fmt"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	StorageBackendFile  = "file"
	StorageBackendMySQL = "mysql"
)

type ServerConfig struct {
	Port                   int        `mapstructure:"port" validate:"min=1,max=65535"`
	CORS                   CORSConfig `mapstructure:"cors"`
	ShutdownTimeoutSeconds int        `mapstructure:"shutdown_timeout_seconds" validate:"min=0"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Dictionary DictionaryConfig `mapstructure:"dictionary"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Templates  TemplatesConfig  `mapstructure:"templates"`
	Database   DatabaseConfig   `mapstructure:"database"`
}

type DictionaryConfig struct {
	JSONFile        string `mapstructure:"json_file" validate:"required"`
	SpreadsheetFile string `mapstructure:"spreadsheet_file" validate:"required"`
	SheetName       string `mapstructure:"sheet_name" validate:"required,sheetname"`
}

type StorageConfig struct {
	Backend string `mapstructure:"backend" validate:"oneof=file mysql"`
}

// TemplatesConfig overrides the embedded page templates.
type TemplatesConfig struct {
	IndexTemplate string `mapstructure:"index_template" validate:"omitempty,file"`
	DocsTemplate  string `mapstructure:"docs_template" validate:"omitempty,file"`
}

type DatabaseConfig struct {
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/wordbook")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("server.port", 5000)
	v.SetDefault("server.shutdown_timeout_seconds", 10)
	v.SetDefault("dictionary.json_file", "dictionary.json")
	v.SetDefault("dictionary.spreadsheet_file", "dictionary.xlsx")
	v.SetDefault("dictionary.sheet_name", "Dictionary")
	v.SetDefault("storage.backend", StorageBackendFile)
	// Templates are optional - if not specified, the embedded pages are used
	v.SetDefault("templates.index_template", "")
	v.SetDefault("templates.docs_template", "")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "wordbook")
	v.SetDefault("database.username", "user")

	if err := v.BindEnv("server.port", "WORDBOOK_PORT"); err != nil {
		return nil, fmt.Errorf("failed to bind WORDBOOK_PORT environment variable: %w", err)
	}
	// Bind database password to environment variable
	if err := v.BindEnv("database.password", "DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind DB_PASSWORD environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
