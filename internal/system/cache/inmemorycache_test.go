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
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type InMemoryCacheTestSuite struct {
	suite.Suite
}

func TestInMemoryCacheSuite(t *testing.T) {
	suite.Run(t, new(InMemoryCacheTestSuite))
}

func (suite *InMemoryCacheTestSuite) TestSetAndGet() {
	t := suite.T()

	c := newInMemoryCache[string]("testCache", true, 10, time.Minute, evictionPolicyLRU)

	err := c.Set(CacheKey{Key: "key1"}, "value1", 0)
	assert.NoError(t, err)

	value, ok := c.Get(CacheKey{Key: "key1"})
	assert.True(t, ok)
	assert.Equal(t, "value1", value)

	_, ok = c.Get(CacheKey{Key: "missing"})
	assert.False(t, ok)
}

func (suite *InMemoryCacheTestSuite) TestPerEntryTTLOverride() {
	t := suite.T()

	c := newInMemoryCache[string]("testCache", true, 10, time.Minute, evictionPolicyLRU)

	// The entry TTL overrides the cache default.
	err := c.Set(CacheKey{Key: "shortlived"}, "value", 20*time.Millisecond)
	assert.NoError(t, err)
	err = c.Set(CacheKey{Key: "longlived"}, "value", 0)
	assert.NoError(t, err)

	_, ok := c.Get(CacheKey{Key: "shortlived"})
	assert.True(t, ok)

	time.Sleep(30 * time.Millisecond)

	_, ok = c.Get(CacheKey{Key: "shortlived"})
	assert.False(t, ok, "entry should expire at its own TTL, not the cache default")
	_, ok = c.Get(CacheKey{Key: "longlived"})
	assert.True(t, ok)
}

func (suite *InMemoryCacheTestSuite) TestHasDoesNotResurrectExpiredEntries() {
	t := suite.T()

	c := newInMemoryCache[string]("testCache", true, 10, time.Minute, evictionPolicyLRU)

	err := c.Set(CacheKey{Key: "key1"}, "value1", 10*time.Millisecond)
	assert.NoError(t, err)
	assert.True(t, c.Has(CacheKey{Key: "key1"}))

	time.Sleep(20 * time.Millisecond)
	assert.False(t, c.Has(CacheKey{Key: "key1"}))
}

func (suite *InMemoryCacheTestSuite) TestEmptyValueIsAHit() {
	t := suite.T()

	c := newInMemoryCache[string]("testCache", true, 10, time.Minute, evictionPolicyLRU)

	// Negative cache entries store an empty value; Has must still report them.
	err := c.Set(CacheKey{Key: "negative"}, "", time.Minute)
	assert.NoError(t, err)

	assert.True(t, c.Has(CacheKey{Key: "negative"}))
	value, ok := c.Get(CacheKey{Key: "negative"})
	assert.True(t, ok)
	assert.Empty(t, value)
}

func (suite *InMemoryCacheTestSuite) TestLRUEviction() {
	t := suite.T()

	c := newInMemoryCache[int]("testCache", true, 3, time.Minute, evictionPolicyLRU)

	for i := 0; i < 3; i++ {
		err := c.Set(CacheKey{Key: fmt.Sprintf("key%d", i)}, i, 0)
		assert.NoError(t, err)
	}

	// Touch key0 so key1 becomes the least recently used.
	_, ok := c.Get(CacheKey{Key: "key0"})
	assert.True(t, ok)

	err := c.Set(CacheKey{Key: "key3"}, 3, 0)
	assert.NoError(t, err)

	_, ok = c.Get(CacheKey{Key: "key1"})
	assert.False(t, ok, "the least recently used entry should be evicted")
	_, ok = c.Get(CacheKey{Key: "key0"})
	assert.True(t, ok)
}

func (suite *InMemoryCacheTestSuite) TestDeleteAndClear() {
	t := suite.T()

	c := newInMemoryCache[string]("testCache", true, 10, time.Minute, evictionPolicyLRU)

	err := c.Set(CacheKey{Key: "key1"}, "value1", 0)
	assert.NoError(t, err)
	err = c.Set(CacheKey{Key: "key2"}, "value2", 0)
	assert.NoError(t, err)

	err = c.Delete(CacheKey{Key: "key1"})
	assert.NoError(t, err)
	_, ok := c.Get(CacheKey{Key: "key1"})
	assert.False(t, ok)

	err = c.Clear()
	assert.NoError(t, err)
	_, ok = c.Get(CacheKey{Key: "key2"})
	assert.False(t, ok)
}

func (suite *InMemoryCacheTestSuite) TestCleanupExpired() {
	t := suite.T()

	c := newInMemoryCache[string]("testCache", true, 10, time.Minute, evictionPolicyLRU)

	err := c.Set(CacheKey{Key: "expired"}, "value", 10*time.Millisecond)
	assert.NoError(t, err)
	err = c.Set(CacheKey{Key: "fresh"}, "value", time.Minute)
	assert.NoError(t, err)

	time.Sleep(20 * time.Millisecond)
	c.CleanupExpired()

	stats := c.GetStats()
	assert.Equal(t, 1, stats.Size)
}

func (suite *InMemoryCacheTestSuite) TestDisabledCacheMissesAlways() {
	t := suite.T()

	c := newInMemoryCache[string]("testCache", false, 10, time.Minute, evictionPolicyLRU)

	err := c.Set(CacheKey{Key: "key1"}, "value1", 0)
	assert.NoError(t, err)

	_, ok := c.Get(CacheKey{Key: "key1"})
	assert.False(t, ok)
	assert.False(t, c.Has(CacheKey{Key: "key1"}))
}
