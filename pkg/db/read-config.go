package db

import (
	"fmt"
	"net/url"
)

// DBConfigFromYamlObj converts the yaml representation into a DBConfig.
// Credentials are optional: a local mongod without auth is addressed by
// connection string only.
func DBConfigFromYamlObj(yamlObj DBConfigYaml) DBConfig {
	return DBConfig{
		URI:             buildURI(yamlObj.ConnectionPrefix, yamlObj.Username, yamlObj.Password, yamlObj.ConnectionStr),
		Timeout:         yamlObj.Timeout,
		IdleConnTimeout: yamlObj.IdleConnTimeout,
		MaxPoolSize:     uint64(yamlObj.MaxPoolSize),
		NoCursorTimeout: yamlObj.UseNoCursorTimeout,
		DBNamePrefix:    yamlObj.DBNamePrefix,
	}
}

func buildURI(prefix string, username string, password string, connStr string) string {
	if username == "" {
		return fmt.Sprintf(`mongodb%s://%s`, prefix, connStr)
	}
	return fmt.Sprintf(`mongodb%s://%s:%s@%s`, prefix, url.QueryEscape(username), url.QueryEscape(password), connStr)
}
