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

// Package cache provides a pluggable key/value cache with TTL support behind a single interface.
package cache

import (
	"fmt"
	"sync"
	"time"

	"github.com/asgardeo/mdq/internal/system/config"
	"github.com/asgardeo/mdq/internal/system/log"
)

// internalCacheInterface defines the common interface for internal cache implementations.
type internalCacheInterface[T any] interface {
	Set(key CacheKey, value T, ttl time.Duration) error
	Get(key CacheKey) (T, bool)
	Has(key CacheKey) bool
	Delete(key CacheKey) error
	Clear() error
	IsEnabled() bool
	GetStats() CacheStat
	CleanupExpired()
	GetName() string
}

// CacheInterface defines the common interface for cache operations.
type CacheInterface[T any] interface {
	GetName() string
	Set(key CacheKey, value T) error
	SetWithTTL(key CacheKey, value T, ttl time.Duration) error
	Get(key CacheKey) (T, bool)
	Has(key CacheKey) bool
	Delete(key CacheKey) error
	Clear() error
	IsEnabled() bool
	CleanupExpired()
}

// Cache implements the CacheInterface for individual caches.
type Cache[T any] struct {
	enabled       bool
	cacheName     string
	InternalCache internalCacheInterface[T]
	mu            sync.RWMutex
}

// New creates a new cache instance backed by the configured cache type.
// The "none" type and a disabled configuration both yield a disabled cache
// that misses on every read; an unknown type is a configuration error.
func New[T any](cacheName string) (CacheInterface[T], error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "Cache"),
		log.String("cacheName", cacheName))

	cacheConfig := config.GetMDQRuntime().Config.Cache
	if cacheConfig.Disabled {
		logger.Debug("Caching is disabled, returning empty")
		return &Cache[T]{
			enabled:       false,
			cacheName:     cacheName,
			InternalCache: nil,
		}, nil
	}

	logger.Debug("Initializing the cache")

	evictionPolicy := getEvictionPolicy(cacheConfig)

	size := cacheConfig.Size
	if size <= 0 {
		size = defaultCacheSize
	}

	ttl := cacheConfig.TTL
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}

	var internalCache internalCacheInterface[T]
	switch cacheType(cacheConfig.Type) {
	case cacheTypeInMemory, "":
		internalCache = newInMemoryCache[T](
			cacheName,
			true,
			size,
			time.Duration(ttl)*time.Second,
			evictionPolicy,
		)
	case cacheTypeFilesystem:
		fsCache, err := newFilesystemCache[T](
			cacheName,
			cacheConfig.Directory,
			time.Duration(ttl)*time.Second,
		)
		if err != nil {
			return nil, err
		}
		internalCache = fsCache
	case cacheTypeDatabase:
		dbCache, err := newDatabaseCache[T](
			cacheName,
			time.Duration(ttl)*time.Second,
		)
		if err != nil {
			return nil, err
		}
		internalCache = dbCache
	case cacheTypeNone:
		return &Cache[T]{
			enabled:       false,
			cacheName:     cacheName,
			InternalCache: nil,
		}, nil
	default:
		return nil, fmt.Errorf(
			"cache type must be one of {none,inmemory,filesystem,database}, got %q", cacheConfig.Type)
	}

	cache := &Cache[T]{
		enabled:       true,
		cacheName:     cacheName,
		InternalCache: internalCache,
	}

	return cache, nil
}

// GetName returns the name of the cache.
func (c *Cache[T]) GetName() string {
	return c.cacheName
}

// Set stores a value in the cache with the default TTL.
func (c *Cache[T]) Set(key CacheKey, value T) error {
	return c.SetWithTTL(key, value, 0)
}

// SetWithTTL stores a value in the cache overriding the default TTL.
// A non-positive ttl falls back to the backend default.
func (c *Cache[T]) SetWithTTL(key CacheKey, value T, ttl time.Duration) error {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "Cache"),
		log.String("cacheName", c.cacheName))

	if c.IsEnabled() && c.InternalCache.IsEnabled() {
		c.mu.Lock()
		defer c.mu.Unlock()

		if err := c.InternalCache.Set(key, value, ttl); err != nil {
			logger.Warn("Failed to set value in the cache", log.String("key", key.ToString()), log.Error(err))
		}
	}

	return nil
}

// Get retrieves a value from the cache.
func (c *Cache[T]) Get(key CacheKey) (T, bool) {
	if c.IsEnabled() && c.InternalCache.IsEnabled() {
		c.mu.RLock()
		defer c.mu.RUnlock()

		if value, found := c.InternalCache.Get(key); found {
			return value, true
		}
	}

	var zero T
	return zero, false
}

// Has reports whether the key exists in the cache and has not expired.
func (c *Cache[T]) Has(key CacheKey) bool {
	if c.IsEnabled() && c.InternalCache.IsEnabled() {
		c.mu.RLock()
		defer c.mu.RUnlock()

		return c.InternalCache.Has(key)
	}
	return false
}

// Delete removes a value from the cache.
func (c *Cache[T]) Delete(key CacheKey) error {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "Cache"),
		log.String("cacheName", c.cacheName))

	if c.IsEnabled() && c.InternalCache.IsEnabled() {
		c.mu.Lock()
		defer c.mu.Unlock()

		if err := c.InternalCache.Delete(key); err != nil {
			logger.Warn("Failed to delete value from the cache", log.String("key", key.ToString()), log.Error(err))
		}
	}

	return nil
}

// Clear removes all entries in the cache.
func (c *Cache[T]) Clear() error {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "Cache"),
		log.String("cacheName", c.cacheName))

	if c.IsEnabled() && c.InternalCache.IsEnabled() {
		logger.Debug("Clearing all entries in the cache")

		c.mu.Lock()
		defer c.mu.Unlock()

		if err := c.InternalCache.Clear(); err != nil {
			logger.Warn("Failed to clear the cache", log.Error(err))
		}
	}

	return nil
}

// IsEnabled returns whether the cache is enabled.
func (c *Cache[T]) IsEnabled() bool {
	return c.enabled
}

// CleanupExpired cleans up expired entries in the cache.
func (c *Cache[T]) CleanupExpired() {
	if c.IsEnabled() && c.InternalCache.IsEnabled() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.InternalCache.CleanupExpired()
	}
}

// getEvictionPolicy retrieves the eviction policy from the cache configuration.
func getEvictionPolicy(cacheConfig config.CacheConfig) evictionPolicy {
	policy := cacheConfig.EvictionPolicy
	if policy == "" {
		return evictionPolicyLRU
	}

	switch policy {
	case string(evictionPolicyLRU):
		return evictionPolicyLRU
	case string(evictionPolicyLFU):
		return evictionPolicyLFU
	default:
		log.GetLogger().Warn("Unknown eviction policy, defaulting to LRU")
		return evictionPolicyLRU
	}
}
