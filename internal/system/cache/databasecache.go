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
	"encoding/json"
	"fmt"
	"time"

	"github.com/asgardeo/mdq/internal/system/database/client"
	"github.com/asgardeo/mdq/internal/system/database/provider"
	"github.com/asgardeo/mdq/internal/system/log"
)

// databaseCache implements the internal cache interface backed by the cache database.
// Values are stored JSON encoded; expiry is enforced on read and by CleanupExpired.
type databaseCache[T any] struct {
	enabled    bool
	name       string
	ttl        time.Duration
	dbProvider provider.DBProviderInterface
	hitCount   int64
	missCount  int64
}

// newDatabaseCache creates a database cache and ensures its table exists.
func newDatabaseCache[T any](name string, ttl time.Duration) (internalCacheInterface[T], error) {
	cacheTTL := ttl
	if cacheTTL <= 0 {
		cacheTTL = defaultCacheTTL * time.Second
	}

	dc := &databaseCache[T]{
		enabled:    true,
		name:       name,
		ttl:        cacheTTL,
		dbProvider: provider.GetDBProvider(),
	}

	dbClient, err := dc.dbProvider.GetDBClient("cache")
	if err != nil {
		return nil, fmt.Errorf("failed to get cache database client: %w", err)
	}
	if _, err := dbClient.Execute(queryCreateCacheTable); err != nil {
		return nil, fmt.Errorf("failed to prepare cache table: %w", err)
	}

	return dc, nil
}

// getClient returns the cache database client.
func (c *databaseCache[T]) getClient() (client.DBClientInterface, error) {
	return c.dbProvider.GetDBClient("cache")
}

// Set adds or replaces an entry. A non-positive ttl uses the cache default.
func (c *databaseCache[T]) Set(key CacheKey, value T, ttl time.Duration) error {
	if !c.enabled {
		return nil
	}

	dbClient, err := c.getClient()
	if err != nil {
		return fmt.Errorf("failed to get database client: %w", err)
	}

	if ttl <= 0 {
		ttl = c.ttl
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode cache value: %w", err)
	}

	expiryTime := time.Now().Add(ttl).Unix()
	_, err = dbClient.Execute(queryUpsertCacheEntry, c.name, key.ToString(), string(data), expiryTime)
	if err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}
	return nil
}

// Get retrieves an entry, treating missing, undecodable and expired rows as misses.
func (c *databaseCache[T]) Get(key CacheKey) (T, bool) {
	var zero T
	if !c.enabled {
		return zero, false
	}

	entry, ok := c.readEntry(key)
	if !ok {
		c.missCount++
		return zero, false
	}
	c.hitCount++
	return *entry, true
}

// Has reports whether an unexpired row exists for the key.
func (c *databaseCache[T]) Has(key CacheKey) bool {
	if !c.enabled {
		return false
	}
	_, ok := c.readEntry(key)
	return ok
}

// readEntry loads and decodes the row for a key.
func (c *databaseCache[T]) readEntry(key CacheKey) (*T, bool) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "DatabaseCache"),
		log.String("name", c.name))

	dbClient, err := c.getClient()
	if err != nil {
		logger.Warn("Failed to get database client", log.Error(err))
		return nil, false
	}

	results, err := dbClient.Query(queryGetCacheEntry, c.name, key.ToString(), time.Now().Unix())
	if err != nil {
		logger.Warn("Failed to query cache entry", log.Error(err))
		return nil, false
	}
	if len(results) == 0 {
		return nil, false
	}

	raw, ok := results[0]["value"]
	if !ok {
		return nil, false
	}

	var data []byte
	switch v := raw.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		return nil, false
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		logger.Warn("Discarding undecodable cache entry", log.String("key", key.ToString()), log.Error(err))
		if _, err := dbClient.Execute(queryDeleteCacheEntry, c.name, key.ToString()); err != nil {
			logger.Warn("Failed to delete cache entry", log.Error(err))
		}
		return nil, false
	}

	return &value, true
}

// Delete removes the row for the key.
func (c *databaseCache[T]) Delete(key CacheKey) error {
	if !c.enabled {
		return nil
	}

	dbClient, err := c.getClient()
	if err != nil {
		return fmt.Errorf("failed to get database client: %w", err)
	}

	if _, err := dbClient.Execute(queryDeleteCacheEntry, c.name, key.ToString()); err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}
	return nil
}

// Clear removes all rows for this cache.
func (c *databaseCache[T]) Clear() error {
	if !c.enabled {
		return nil
	}

	dbClient, err := c.getClient()
	if err != nil {
		return fmt.Errorf("failed to get database client: %w", err)
	}

	if _, err := dbClient.Execute(queryClearCacheEntries, c.name); err != nil {
		return fmt.Errorf("failed to execute query: %w", err)
	}

	c.hitCount = 0
	c.missCount = 0
	return nil
}

// IsEnabled returns whether the cache is enabled.
func (c *databaseCache[T]) IsEnabled() bool {
	return c.enabled
}

// GetName returns the name of the cache.
func (c *databaseCache[T]) GetName() string {
	return c.name
}

// GetStats returns cache statistics.
func (c *databaseCache[T]) GetStats() CacheStat {
	if !c.enabled {
		return CacheStat{Enabled: false}
	}

	totalOps := c.hitCount + c.missCount
	var hitRate float64
	if totalOps > 0 {
		hitRate = float64(c.hitCount) / float64(totalOps)
	}

	return CacheStat{
		Enabled:   true,
		HitCount:  c.hitCount,
		MissCount: c.missCount,
		HitRate:   hitRate,
	}
}

// CleanupExpired removes all expired rows for this cache.
func (c *databaseCache[T]) CleanupExpired() {
	if !c.enabled {
		return
	}

	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "DatabaseCache"),
		log.String("name", c.name))

	dbClient, err := c.getClient()
	if err != nil {
		logger.Warn("Failed to get database client", log.Error(err))
		return
	}

	cleaned, err := dbClient.Execute(queryCleanupCacheEntries, c.name, time.Now().Unix())
	if err != nil {
		logger.Warn("Failed to clean up expired cache entries", log.Error(err))
		return
	}
	if cleaned > 0 {
		logger.Debug("Expired cache entries cleaned", log.Any("count", cleaned))
	}
}
