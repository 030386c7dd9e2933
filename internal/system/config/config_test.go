/*
 * Copyright (c) 2025, WSO2 LLC. (https://www.wso2.com).
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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (suite *ConfigTestSuite) writeConfigFile(content string) string {
	path := filepath.Join(suite.T().TempDir(), "deployment.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		suite.T().Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func (suite *ConfigTestSuite) TestLoadConfig() {
	t := suite.T()

	path := suite.writeConfigFile(`
server:
  hostname: "localhost"
  port: 8095
  http_only: true

language:
  current: "nl"
  fallback: "en"

cache:
  type: "inmemory"
  ttl: 3600
  negative_ttl: 600

metadata:
  source: "file"
  sets:
    - "saml20-idp-remote"
    - "saml20-sp-remote"

search:
  max_results: 25

trust:
  attribute_uri: "https://refeds.org/entity-selection-profile"
  profiles:
    incommon:
      strict: true
      entities:
        - match: "registrationAuthority"
          select: "https://incommon.org"
`)

	cfg, err := LoadConfig(path)
	assert.NoError(t, err)
	if !assert.NotNil(t, cfg) {
		return
	}

	assert.Equal(t, "localhost", cfg.Server.Hostname)
	assert.Equal(t, 8095, cfg.Server.Port)
	assert.True(t, cfg.Server.HTTPOnly)

	assert.Equal(t, "nl", cfg.Language.Current)
	assert.Equal(t, "en", cfg.Language.Fallback)

	assert.Equal(t, "inmemory", cfg.Cache.Type)
	assert.Equal(t, 3600, cfg.Cache.TTL)
	assert.Equal(t, 600, cfg.Cache.NegativeTTL)

	assert.Equal(t, "file", cfg.Metadata.Source)
	assert.Equal(t, []string{"saml20-idp-remote", "saml20-sp-remote"}, cfg.Metadata.Sets)

	assert.Equal(t, 25, cfg.Search.MaxResults)

	assert.Equal(t, "https://refeds.org/entity-selection-profile", cfg.Trust.AttributeURI)
	if assert.Contains(t, cfg.Trust.Profiles, "incommon") {
		assert.Equal(t, true, cfg.Trust.Profiles["incommon"]["strict"])
	}
}

func (suite *ConfigTestSuite) TestLoadConfigMissingFile() {
	t := suite.T()

	cfg, err := LoadConfig(filepath.Join(suite.T().TempDir(), "missing.yaml"))
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func (suite *ConfigTestSuite) TestLoadConfigInvalidYAML() {
	t := suite.T()

	path := suite.writeConfigFile("server:\n  port: [not a number\n")

	cfg, err := LoadConfig(path)
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func (suite *ConfigTestSuite) TestRuntimeInitialization() {
	t := suite.T()

	ResetMDQRuntime()
	defer ResetMDQRuntime()

	err := InitializeMDQRuntime("/opt/mdq", &Config{
		Server: ServerConfig{Port: 8095},
	})
	assert.NoError(t, err)

	runtime := GetMDQRuntime()
	if assert.NotNil(t, runtime) {
		assert.Equal(t, "/opt/mdq", runtime.MDQHome)
		assert.Equal(t, 8095, runtime.Config.Server.Port)
	}
}
