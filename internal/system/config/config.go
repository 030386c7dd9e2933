/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package config provides structures and functions for loading and managing server configurations.
package config

import (
	"os"
	"path/filepath"

	"github.com/asgardeo/mdq/internal/system/log"

	yaml "gopkg.in/yaml.v3"
)

// ServerConfig holds the server configuration details.
type ServerConfig struct {
	Hostname string `yaml:"hostname"`
	Port     int    `yaml:"port"`
	HTTPOnly bool   `yaml:"http_only"`
}

// SecurityConfig holds the security configuration details.
type SecurityConfig struct {
	CertFile string `yaml:"cert_file"`
	KeyFile  string `yaml:"key_file"`
}

// CORSConfig holds the CORS configuration details.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// LanguageConfig holds the UI language configuration details.
type LanguageConfig struct {
	Current  string `yaml:"current"`
	Fallback string `yaml:"fallback"`
}

// DataSource holds the individual database connection details.
type DataSource struct {
	Type     string `yaml:"type"`
	Hostname string `yaml:"hostname"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
	Path     string `yaml:"path"`
	Options  string `yaml:"options"`
}

// DatabaseConfig holds the different database configuration details.
type DatabaseConfig struct {
	Metadata DataSource `yaml:"metadata"`
	Cache    DataSource `yaml:"cache"`
}

// CacheConfig holds the cache configuration details.
type CacheConfig struct {
	Type            string `yaml:"type"`
	Disabled        bool   `yaml:"disabled"`
	Directory       string `yaml:"directory"`
	Size            int    `yaml:"size"`
	TTL             int    `yaml:"ttl"`
	NegativeTTL     int    `yaml:"negative_ttl"`
	EvictionPolicy  string `yaml:"eviction_policy"`
	CleanupInterval int    `yaml:"cleanup_interval"`
}

// MetadataConfig holds the metadata store configuration details.
type MetadataConfig struct {
	Source       string   `yaml:"source"`
	Directory    string   `yaml:"directory"`
	Sets         []string `yaml:"sets"`
	HostedSPFile string   `yaml:"hosted_sp_file"`
}

// SearchConfig holds the entity search configuration details.
type SearchConfig struct {
	MaxResults int `yaml:"max_results"`
}

// TrustConfig holds the trust profile configuration details.
type TrustConfig struct {
	AttributeURI string                    `yaml:"attribute_uri"`
	Profiles     map[string]map[string]any `yaml:"profiles"`
}

// Config holds the complete configuration details of the server.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Security SecurityConfig `yaml:"security"`
	CORS     CORSConfig     `yaml:"cors"`
	Database DatabaseConfig `yaml:"database"`
	Cache    CacheConfig    `yaml:"cache"`
	Language LanguageConfig `yaml:"language"`
	Metadata MetadataConfig `yaml:"metadata"`
	Search   SearchConfig   `yaml:"search"`
	Trust    TrustConfig    `yaml:"trust"`
}

// LoadConfig loads the configurations from the specified YAML file.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	path = filepath.Clean(path)

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if ferr := file.Close(); ferr != nil {
			log.GetLogger().Error("Failed to close config file", log.Error(ferr))
		}
	}()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
