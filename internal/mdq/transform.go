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

package mdq

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"regexp"
	"strings"
	"time"

	"github.com/asgardeo/mdq/internal/metadata"
	"github.com/asgardeo/mdq/internal/system/cache"
	"github.com/asgardeo/mdq/internal/system/log"
)

// errUnsupportedAlgorithm is returned when a transformed identifier names a hash
// algorithm that is not supported.
var errUnsupportedAlgorithm = errors.New("unsupported hash algorithm")

// transformedIDPattern matches a transformed identifier of the form {ALGO}hexdigest.
var transformedIDPattern = regexp.MustCompile(`^\{([^}]+)\}(\w+)$`)

// identifierTransformer converts entity IDs to transformed identifiers and back.
// The forward direction is a pure hash; the reverse direction requires scanning
// the catalogue and is the only thing cached. Misses are cached as negative
// entries with a shorter TTL to bound repeated scans for nonexistent hashes.
type identifierTransformer struct {
	idCache     cache.CacheInterface[string]
	negativeTTL time.Duration
}

func newIdentifierTransformer(negativeTTLSeconds int) (*identifierTransformer, error) {
	idCache, err := cache.New[string](transformedIDCacheName)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize transformed ID cache: %w", err)
	}

	if negativeTTLSeconds <= 0 {
		negativeTTLSeconds = defaultNegativeTTL
	}
	return &identifierTransformer{
		idCache:     idCache,
		negativeTTL: time.Duration(negativeTTLSeconds) * time.Second,
	}, nil
}

func newHash(algorithm string) (hash.Hash, error) {
	switch strings.ToLower(algorithm) {
	case "sha1":
		return sha1.New(), nil
	case "sha256":
		return sha256.New(), nil
	case "sha384":
		return sha512.New384(), nil
	case "sha512":
		return sha512.New(), nil
	case "md5":
		return md5.New(), nil
	default:
		return nil, fmt.Errorf("%w: %s", errUnsupportedAlgorithm, algorithm)
	}
}

// transform computes the transformed identifier of an entity ID. The reverse
// mapping is written through to the cache so later resolve calls avoid the
// catalogue scan.
func (t *identifierTransformer) transform(entityID, algorithm string) (string, error) {
	if algorithm == "" {
		algorithm = defaultAlgorithm
	}

	hasher, err := newHash(algorithm)
	if err != nil {
		return "", err
	}
	hasher.Write([]byte(entityID))
	transformedID := "{" + strings.ToUpper(algorithm) + "}" + hex.EncodeToString(hasher.Sum(nil))

	if err := t.idCache.Set(cache.CacheKey{Key: transformedID}, entityID); err != nil {
		log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName)).
			Warn("Failed to cache transformed identifier mapping", log.Error(err))
	}
	return transformedID, nil
}

// defaultTransformedID computes the default-algorithm transformed identifier of
// an entity ID without touching the cache.
func defaultTransformedID(entityID string) string {
	hasher, _ := newHash(defaultAlgorithm)
	hasher.Write([]byte(entityID))
	return "{" + strings.ToUpper(defaultAlgorithm) + "}" + hex.EncodeToString(hasher.Sum(nil))
}

// resolve maps a transformed identifier back to its entity ID. loadEntities
// supplies the candidate catalogue and is only invoked when neither a positive
// nor a negative cache entry exists. An identifier that does not have the
// {ALGO}hex shape is returned unchanged so it can be looked up as a plain
// entity ID. An empty return with a nil error means the identifier resolves to
// nothing.
func (t *identifierTransformer) resolve(transformedID string,
	loadEntities func() ([]metadata.Entity, error)) (string, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	matches := transformedIDPattern.FindStringSubmatch(transformedID)
	if matches == nil {
		return transformedID, nil
	}
	algorithm := strings.ToLower(matches[1])
	if _, err := newHash(algorithm); err != nil {
		return "", err
	}

	// Canonical form so {sha1}x and {SHA1}x share a cache entry.
	canonicalID := "{" + strings.ToUpper(algorithm) + "}" + strings.ToLower(matches[2])
	cacheKey := cache.CacheKey{Key: canonicalID}

	if t.idCache.Has(cacheKey) {
		entityID, _ := t.idCache.Get(cacheKey)
		if entityID == "" {
			logger.Debug("Negative cache hit for transformed identifier",
				log.String("transformedId", canonicalID))
			return "", nil
		}
		return entityID, nil
	}

	entities, err := loadEntities()
	if err != nil {
		return "", err
	}
	for _, entity := range entities {
		candidateID, err := t.transform(entity.EntityID, algorithm)
		if err != nil {
			return "", err
		}
		if candidateID == canonicalID {
			return entity.EntityID, nil
		}
	}

	logger.Debug("Transformed identifier did not resolve, caching negative result",
		log.String("transformedId", canonicalID))
	if err := t.idCache.SetWithTTL(cacheKey, "", t.negativeTTL); err != nil {
		logger.Warn("Failed to cache negative result", log.Error(err))
	}
	return "", nil
}
