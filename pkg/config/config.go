// Copyright © 2025 Prabhjot Singh Sethi, All Rights reserved
// Author: Prabhjot Singh Sethi <prabhjot.sethi@gmail.com>

package config

import (
	"os"

	"gopkg.in/yaml.v2"
)

const (
	// Environment variable carrying the management api key, kept out
	// of the config file so it is never stored in plain text
	apiKeyEnv = "CONSOLE_API_KEY"
)

// backend auth service config struct
type Backend struct {
	Endpoint string `yaml:"endpoint,omitempty"`
	BasePath string `yaml:"basePath,omitempty"`
}

// mongo db config struct
type MongoDB struct {
	Host string `yaml:"host,omitempty"`
	Port string `yaml:"port,omitempty"`
}

// Base config struct
type BaseConfig struct {
	Backend  *Backend `yaml:"backend,omitempty"`
	ConfigDB *MongoDB `yaml:"configDB,omitempty"`
}

// get the backend auth service information, if the struct is nil it
// ensures sending the default endpoint for base development scenarios
func (c *BaseConfig) GetBackend() *Backend {
	if c.Backend != nil {
		return c.Backend
	}

	return &Backend{
		Endpoint: "http://localhost:3567",
	}
}

// get Config database information, if the struct
// is nil it ensures sending the default mongodb
// config for base development scenarios
func (c *BaseConfig) GetConfigDB() *MongoDB {
	if c.ConfigDB != nil {
		return c.ConfigDB
	}

	return &MongoDB{
		Host: "localhost",
		Port: "27017",
	}
}

// gets the management api key from the environment variable, empty
// when not configured
func GetAPIKey() string {
	val, found := os.LookupEnv(apiKeyEnv)
	if !found {
		return ""
	}
	return val
}

// Parse YAML Config file from the provided config file path
// returns pointer to config structure and error if failed to
// generate the config struct.
// This also ensures handling scenarios when no config file
// is provided
func ParseConfig(filePath string) (*BaseConfig, error) {
	config := &BaseConfig{}
	// Process config file if file path is provided
	if filePath != "" {
		// open the provided config file
		file, err := os.Open(filePath)
		if err != nil {
			return nil, err
		}
		// ensure that we close the file before returning from
		// here, following constructs of release the unused
		// resources for garbage collector to kick in
		defer func() {
			_ = file.Close()
		}()

		// Get a new Yaml decoder
		decoder := yaml.NewDecoder(file)
		// decode the provided yaml config from the config file
		if err := decoder.Decode(config); err != nil {
			return nil, err
		}
	}

	return config, nil
}
