package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/case-framework/mongo-index-dump/pkg/db"
	indexcatalog "github.com/case-framework/mongo-index-dump/pkg/db/index-catalog"
	indexdefinitions "github.com/case-framework/mongo-index-dump/pkg/exporter/index-definitions"
	"github.com/case-framework/mongo-index-dump/pkg/utils"
	"gopkg.in/yaml.v2"
)

// Environment variables
const (
	ENV_CONFIG_FILE_PATH = "CONFIG_FILE_PATH"

	// Variables to override "secrets" and the target in the config file
	ENV_TARGET_DB_USERNAME = "TARGET_DB_USERNAME"
	ENV_TARGET_DB_PASSWORD = "TARGET_DB_PASSWORD"
	ENV_TARGET_DB_NAME     = "TARGET_DB_NAME"
)

type config struct {
	// Logging configs
	Logging utils.LoggerConfig `json:"logging" yaml:"logging"`

	// DB configs
	DBConfigs struct {
		TargetDB db.DBConfigYaml `json:"target_db" yaml:"target_db"`
	} `json:"db_configs" yaml:"db_configs"`

	Dump DumpConfig `json:"dump" yaml:"dump"`
}

type DumpConfig struct {
	DatabaseName       string                     `json:"database_name" yaml:"database_name"`
	Source             indexcatalog.CatalogSource `json:"source" yaml:"source"`
	ExcludeCollections []string                   `json:"exclude_collections" yaml:"exclude_collections"`
	AnnotateNamespace  bool                       `json:"annotate_namespace" yaml:"annotate_namespace"`
	QueryMaxTime       string                     `json:"query_max_time" yaml:"query_max_time"`
	Output             OutputConfig               `json:"output" yaml:"output"`
}

type OutputConfig struct {
	FilePath    string                       `json:"file_path" yaml:"file_path"`
	Pretty      bool                         `json:"pretty" yaml:"pretty"`
	ExtJSONMode indexdefinitions.ExtJSONMode `json:"ext_json_mode" yaml:"ext_json_mode"`
}

var (
	conf         config
	queryMaxTime time.Duration
)

func init() {
	// Read config from file
	yamlFile, err := os.ReadFile(os.Getenv(ENV_CONFIG_FILE_PATH))
	if err != nil {
		panic(err)
	}

	err = yaml.UnmarshalStrict(yamlFile, &conf)
	if err != nil {
		panic(err)
	}

	// Init logger:
	utils.InitLogger(conf.Logging, os.Stderr)

	// Override secrets from environment variables
	secretsOverride()

	applyDefaults()
	validateConfig()
}

func secretsOverride() {
	if dbUsername := os.Getenv(ENV_TARGET_DB_USERNAME); dbUsername != "" {
		conf.DBConfigs.TargetDB.Username = dbUsername
	}

	if dbPassword := os.Getenv(ENV_TARGET_DB_PASSWORD); dbPassword != "" {
		conf.DBConfigs.TargetDB.Password = dbPassword
	}

	if dbName := os.Getenv(ENV_TARGET_DB_NAME); dbName != "" {
		conf.Dump.DatabaseName = dbName
	}
}

func applyDefaults() {
	if conf.Dump.Source == "" {
		conf.Dump.Source = indexcatalog.CatalogSourceListIndexes
	}
	if conf.Dump.Output.ExtJSONMode == "" {
		conf.Dump.Output.ExtJSONMode = indexdefinitions.ExtJSONModeRelaxed
	}
}

func validateConfig() {
	if conf.DBConfigs.TargetDB.ConnectionStr == "" {
		slog.Error("db_configs.target_db.connection_str is not set")
		panic("db_configs.target_db.connection_str is not set")
	}

	if conf.Dump.DatabaseName == "" {
		slog.Error("dump.database_name is not set", slog.String("env", ENV_TARGET_DB_NAME))
		panic("dump.database_name is not set")
	}

	if !conf.Dump.Source.IsValid() {
		panic(fmt.Sprintf("invalid catalog source for dump.source: %q. Use one of: %v", conf.Dump.Source, []indexcatalog.CatalogSource{indexcatalog.CatalogSourceListIndexes, indexcatalog.CatalogSourceSystemIndexes}))
	}

	if !conf.Dump.Output.ExtJSONMode.IsValid() {
		panic(fmt.Sprintf("invalid extended JSON mode for dump.output.ext_json_mode: %q. Use one of: %v", conf.Dump.Output.ExtJSONMode, []indexdefinitions.ExtJSONMode{indexdefinitions.ExtJSONModeRelaxed, indexdefinitions.ExtJSONModeCanonical}))
	}

	if conf.Dump.QueryMaxTime != "" {
		d, err := utils.ParseDurationString(conf.Dump.QueryMaxTime)
		if err != nil {
			slog.Error("Error parsing dump.query_max_time", slog.String("error", err.Error()))
			panic(err)
		}
		queryMaxTime = d
	}
}
