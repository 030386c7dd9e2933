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

package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/asgardeo/mdq/internal/system/config"
)

type CacheFactoryTestSuite struct {
	suite.Suite
}

func TestCacheFactorySuite(t *testing.T) {
	suite.Run(t, new(CacheFactoryTestSuite))
}

func (suite *CacheFactoryTestSuite) initRuntime(cacheConfig config.CacheConfig) {
	config.ResetMDQRuntime()
	err := config.InitializeMDQRuntime("/test/mdq/home", &config.Config{Cache: cacheConfig})
	if err != nil {
		suite.T().Fatal("Failed to initialize MDQRuntime:", err)
	}
}

func (suite *CacheFactoryTestSuite) TearDownTest() {
	config.ResetMDQRuntime()
}

func (suite *CacheFactoryTestSuite) TestInMemoryIsTheDefaultBackend() {
	t := suite.T()

	suite.initRuntime(config.CacheConfig{})

	c, err := New[string]("testCache")
	assert.NoError(t, err)
	assert.True(t, c.IsEnabled())

	err = c.Set(CacheKey{Key: "key1"}, "value1")
	assert.NoError(t, err)
	value, ok := c.Get(CacheKey{Key: "key1"})
	assert.True(t, ok)
	assert.Equal(t, "value1", value)
}

func (suite *CacheFactoryTestSuite) TestDisabledConfiguration() {
	t := suite.T()

	suite.initRuntime(config.CacheConfig{Disabled: true})

	c, err := New[string]("testCache")
	assert.NoError(t, err)
	assert.False(t, c.IsEnabled())

	err = c.Set(CacheKey{Key: "key1"}, "value1")
	assert.NoError(t, err)
	_, ok := c.Get(CacheKey{Key: "key1"})
	assert.False(t, ok, "a disabled cache should miss on every read")
}

func (suite *CacheFactoryTestSuite) TestNoneBackendIsDisabled() {
	t := suite.T()

	suite.initRuntime(config.CacheConfig{Type: "none"})

	c, err := New[string]("testCache")
	assert.NoError(t, err)
	assert.False(t, c.IsEnabled())
}

func (suite *CacheFactoryTestSuite) TestUnknownBackendIsAConfigurationError() {
	t := suite.T()

	suite.initRuntime(config.CacheConfig{Type: "memcached"})

	_, err := New[string]("testCache")
	assert.Error(t, err)
}

func (suite *CacheFactoryTestSuite) TestFilesystemBackend() {
	t := suite.T()

	suite.initRuntime(config.CacheConfig{
		Type:      "filesystem",
		Directory: suite.T().TempDir(),
		TTL:       60,
	})

	c, err := New[string]("testCache")
	assert.NoError(t, err)
	assert.True(t, c.IsEnabled())

	err = c.SetWithTTL(CacheKey{Key: "key1"}, "value1", time.Minute)
	assert.NoError(t, err)
	assert.True(t, c.Has(CacheKey{Key: "key1"}))
}
