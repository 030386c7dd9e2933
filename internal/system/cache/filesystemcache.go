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
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/asgardeo/mdq/internal/system/log"
)

// filesystemCacheEntry is the JSON document persisted per cache key. Expiry is
// kept in nanoseconds so short TTLs are enforced exactly.
type filesystemCacheEntry[T any] struct {
	Value      T     `json:"value"`
	ExpiryTime int64 `json:"expiry_time"`
}

// filesystemCache implements the internal cache interface backed by one file per key.
// Entries survive process restarts; expiry is enforced on read.
type filesystemCache[T any] struct {
	enabled   bool
	name      string
	directory string
	ttl       time.Duration
	mu        sync.RWMutex
	hitCount  int64
	missCount int64
}

// newFilesystemCache creates a filesystem cache rooted at directory/<name>.
func newFilesystemCache[T any](name, directory string, ttl time.Duration) (internalCacheInterface[T], error) {
	if directory == "" {
		return nil, errors.New("cache directory must be configured for the filesystem cache")
	}

	info, err := os.Stat(directory)
	if err != nil {
		return nil, fmt.Errorf("cache directory does not exist: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("cache directory is not a directory: %s", directory)
	}

	cacheDir := filepath.Join(directory, name)
	if err := os.MkdirAll(cacheDir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	cacheTTL := ttl
	if cacheTTL <= 0 {
		cacheTTL = defaultCacheTTL * time.Second
	}

	return &filesystemCache[T]{
		enabled:   true,
		name:      name,
		directory: cacheDir,
		ttl:       cacheTTL,
	}, nil
}

// entryPath maps a cache key to its file path. Keys are hashed so that
// arbitrary key content (URLs, transformed identifiers) stays path safe.
func (c *filesystemCache[T]) entryPath(key CacheKey) string {
	sum := sha256.Sum256([]byte(key.ToString()))
	return filepath.Join(c.directory, hex.EncodeToString(sum[:])+".json")
}

// Set persists an entry. A non-positive ttl uses the cache default.
func (c *filesystemCache[T]) Set(key CacheKey, value T, ttl time.Duration) error {
	if !c.enabled {
		return nil
	}

	if ttl <= 0 {
		ttl = c.ttl
	}
	entry := filesystemCacheEntry[T]{
		Value:      value,
		ExpiryTime: time.Now().Add(ttl).UnixNano(),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return os.WriteFile(c.entryPath(key), data, 0o640)
}

// Get reads an entry, treating a missing, unreadable or expired file as a miss.
func (c *filesystemCache[T]) Get(key CacheKey) (T, bool) {
	var zero T
	if !c.enabled {
		return zero, false
	}

	entry, ok := c.readEntry(key)
	c.mu.Lock()
	if ok {
		c.hitCount++
	} else {
		c.missCount++
	}
	c.mu.Unlock()

	if !ok {
		return zero, false
	}
	return entry.Value, true
}

// Has reports whether an unexpired entry exists for the key.
func (c *filesystemCache[T]) Has(key CacheKey) bool {
	if !c.enabled {
		return false
	}
	_, ok := c.readEntry(key)
	return ok
}

// readEntry loads and validates the entry file for a key, removing it when expired.
func (c *filesystemCache[T]) readEntry(key CacheKey) (*filesystemCacheEntry[T], bool) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "FilesystemCache"),
		log.String("name", c.name))

	path := c.entryPath(key)

	c.mu.RLock()
	data, err := os.ReadFile(filepath.Clean(path))
	c.mu.RUnlock()
	if err != nil {
		return nil, false
	}

	var entry filesystemCacheEntry[T]
	if err := json.Unmarshal(data, &entry); err != nil {
		logger.Warn("Discarding unreadable cache entry", log.String("key", key.ToString()), log.Error(err))
		c.removeEntry(path)
		return nil, false
	}

	if time.Now().UnixNano() > entry.ExpiryTime {
		c.removeEntry(path)
		return nil, false
	}

	return &entry, true
}

// removeEntry deletes an entry file, ignoring files already gone.
func (c *filesystemCache[T]) removeEntry(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.GetLogger().With(log.String(log.LoggerKeyComponentName, "FilesystemCache"),
			log.String("name", c.name)).Warn("Failed to remove cache entry file", log.Error(err))
	}
}

// Delete removes the entry for the key.
func (c *filesystemCache[T]) Delete(key CacheKey) error {
	if !c.enabled {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.Remove(c.entryPath(key)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Clear removes all entry files for this cache.
func (c *filesystemCache[T]) Clear() error {
	if !c.enabled {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entries, err := os.ReadDir(c.directory)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(c.directory, entry.Name())); err != nil && !os.IsNotExist(err) {
			return err
		}
	}

	c.hitCount = 0
	c.missCount = 0
	return nil
}

// IsEnabled returns whether the cache is enabled.
func (c *filesystemCache[T]) IsEnabled() bool {
	return c.enabled
}

// GetName returns the name of the cache.
func (c *filesystemCache[T]) GetName() string {
	return c.name
}

// GetStats returns cache statistics.
func (c *filesystemCache[T]) GetStats() CacheStat {
	if !c.enabled {
		return CacheStat{Enabled: false}
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	size := 0
	if entries, err := os.ReadDir(c.directory); err == nil {
		size = len(entries)
	}

	totalOps := c.hitCount + c.missCount
	var hitRate float64
	if totalOps > 0 {
		hitRate = float64(c.hitCount) / float64(totalOps)
	}

	return CacheStat{
		Enabled:   true,
		Size:      size,
		HitCount:  c.hitCount,
		MissCount: c.missCount,
		HitRate:   hitRate,
	}
}

// CleanupExpired removes all expired entry files.
func (c *filesystemCache[T]) CleanupExpired() {
	if !c.enabled {
		return
	}

	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "FilesystemCache"),
		log.String("name", c.name))

	c.mu.Lock()
	defer c.mu.Unlock()

	entries, err := os.ReadDir(c.directory)
	if err != nil {
		logger.Warn("Failed to list cache directory", log.Error(err))
		return
	}

	now := time.Now().UnixNano()
	cleaned := 0
	for _, dirEntry := range entries {
		if dirEntry.IsDir() {
			continue
		}
		path := filepath.Join(c.directory, dirEntry.Name())
		data, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			continue
		}
		var entry filesystemCacheEntry[T]
		if err := json.Unmarshal(data, &entry); err != nil || now > entry.ExpiryTime {
			if err := os.Remove(path); err == nil {
				cleaned++
			}
		}
	}

	if cleaned > 0 {
		logger.Debug("Expired cache entries cleaned", log.Int("count", cleaned))
	}
}
