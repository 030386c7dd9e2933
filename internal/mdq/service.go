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
	"errors"
	"regexp"
	"strings"

	"github.com/asgardeo/mdq/internal/metadata"
	"github.com/asgardeo/mdq/internal/system/config"
	"github.com/asgardeo/mdq/internal/system/error/serviceerror"
	"github.com/asgardeo/mdq/internal/system/log"
)

// brokenSchemePattern matches entity IDs whose scheme lost a slash to path
// normalization somewhere between the client and this service.
var brokenSchemePattern = regexp.MustCompile(`^(https?):/([^/].*)$`)

// MDQServiceInterface defines the metadata query operations.
type MDQServiceInterface interface {
	// GetEntity resolves an identifier, either an entity ID or a transformed
	// identifier, to its discovery record.
	GetEntity(identifier string) (*Record, *serviceerror.ServiceError)

	// GetEntityWithProfile resolves an identifier and, when both a relying party
	// and a profile name are given, applies the relying party's trust profile.
	GetEntityWithProfile(identifier, relyingPartyID, profileName string) (
		*Record, *serviceerror.ServiceError)

	// SearchEntities returns the discovery records matching a free-text query and
	// an optional role filter.
	SearchEntities(query, entityFilter string) ([]*Record, *serviceerror.ServiceError)

	// SearchEntitiesWithProfile searches and then narrows or annotates the result
	// set with the relying party's trust profile.
	SearchEntitiesWithProfile(query, entityFilter, relyingPartyID, profileName string) (
		[]*Record, *serviceerror.ServiceError)
}

// mdqService is the default implementation of the MDQServiceInterface.
type mdqService struct {
	store        metadata.StoreInterface
	transformer  *identifierTransformer
	normalizer   *normalizer
	metadataSets []string
	maxResults   int
}

// NewMDQService creates the metadata query service over the given store.
func NewMDQService(store metadata.StoreInterface) (MDQServiceInterface, error) {
	cfg := config.GetMDQRuntime().Config

	transformer, err := newIdentifierTransformer(cfg.Cache.NegativeTTL)
	if err != nil {
		return nil, err
	}
	extractor := newProfileExtractor(cfg.Trust.AttributeURI, cfg.Trust.Profiles)

	sets := cfg.Metadata.Sets
	if len(sets) == 0 {
		sets = []string{MetadataSetIdPRemote, MetadataSetSPRemote}
	}

	return &mdqService{
		store:        store,
		transformer:  transformer,
		normalizer:   newNormalizer(cfg.Language.Current, cfg.Language.Fallback, transformer, extractor),
		metadataSets: sets,
		maxResults:   cfg.Search.MaxResults,
	}, nil
}

// GetEntity resolves an identifier to its discovery record.
func (s *mdqService) GetEntity(identifier string) (*Record, *serviceerror.ServiceError) {
	return s.GetEntityWithProfile(identifier, "", "")
}

// GetEntityWithProfile resolves an identifier and optionally applies a trust profile.
func (s *mdqService) GetEntityWithProfile(identifier, relyingPartyID, profileName string) (
	*Record, *serviceerror.ServiceError) {
	record, svcErr := s.resolveRecord(identifier)
	if svcErr != nil {
		return nil, svcErr
	}

	if relyingPartyID == "" || profileName == "" {
		return record, nil
	}

	trustEntity, svcErr := s.resolveRecord(relyingPartyID)
	if svcErr != nil {
		if svcErr.Code == ErrorEntityNotFound.Code {
			// An unknown relying party means no profile applies.
			return record, nil
		}
		return nil, svcErr
	}

	filtered, ok := evaluate(record, trustEntity, profileName)
	if !ok {
		return nil, &ErrorEntityNotFound
	}
	return filtered, nil
}

// SearchEntities returns the records matching a free-text query and role filter.
func (s *mdqService) SearchEntities(query, entityFilter string) (
	[]*Record, *serviceerror.ServiceError) {
	return s.SearchEntitiesWithProfile(query, entityFilter, "", "")
}

// SearchEntitiesWithProfile searches the catalogue and applies a trust profile
// to the result set.
func (s *mdqService) SearchEntitiesWithProfile(query, entityFilter, relyingPartyID,
	profileName string) ([]*Record, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	entityFilter = strings.TrimPrefix(entityFilter, rolePrefix)
	searchTerm := normalizeQuery(query)

	candidates, err := s.listCandidates()
	if err != nil {
		logger.Error("Failed to enumerate metadata entities", log.Error(err))
		return nil, &ErrorMetadataUnavailable
	}

	records := make([]*Record, 0)
	for i := range candidates {
		entity := &candidates[i]
		if entityFilter != "" && !strings.Contains(entity.MetadataSet, "-"+entityFilter+"-") {
			continue
		}
		if searchTerm != "" && !entityMatchesQuery(entity, searchTerm) {
			continue
		}
		record, err := s.normalizer.normalize(entity)
		if err != nil {
			logger.Error("Failed to normalize entity",
				log.String(log.LoggerKeyEntityID, entity.EntityID), log.Error(err))
			return nil, &ErrorInternalServerError
		}
		records = append(records, record)
		if s.maxResults > 0 && len(records) >= s.maxResults {
			break
		}
	}

	if relyingPartyID == "" || profileName == "" {
		return records, nil
	}

	trustEntity, svcErr := s.resolveRecord(relyingPartyID)
	if svcErr != nil {
		if svcErr.Code == ErrorEntityNotFound.Code {
			return records, nil
		}
		return nil, svcErr
	}

	return evaluateBatch(records, trustEntity, profileName, func(record *Record) bool {
		return matchesExtraMetadataQuery(record, searchTerm)
	}), nil
}

// resolveRecord cleans up an identifier, resolves it against the hosted SPs and
// the configured metadata sets, and normalizes the result.
func (s *mdqService) resolveRecord(identifier string) (*Record, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	identifier = strings.TrimSuffix(identifier, ".json")
	if identifier == "" {
		return nil, &ErrorInvalidRequestFormat
	}

	entityID := identifier
	if strings.HasPrefix(identifier, "{") {
		resolved, err := s.transformer.resolve(identifier, s.listAllEntities)
		if err != nil {
			if errors.Is(err, errUnsupportedAlgorithm) {
				return nil, ErrorUnsupportedAlgorithm.WithDescription(err.Error())
			}
			logger.Error("Failed to resolve transformed identifier", log.Error(err))
			return nil, &ErrorMetadataUnavailable
		}
		if resolved == "" {
			return nil, &ErrorEntityNotFound
		}
		entityID = resolved
	}
	entityID = brokenSchemePattern.ReplaceAllString(entityID, "$1://$2")

	entity, err := s.findEntity(entityID)
	if err != nil {
		if errors.Is(err, metadata.ErrEntityNotFound) {
			return nil, &ErrorEntityNotFound
		}
		logger.Error("Failed to look up entity", log.Error(err))
		return nil, &ErrorMetadataUnavailable
	}

	record, err := s.normalizer.normalize(entity)
	if err != nil {
		logger.Error("Failed to normalize entity",
			log.String(log.LoggerKeyEntityID, entityID), log.Error(err))
		return nil, &ErrorInternalServerError
	}
	return record, nil
}

// findEntity consults the hosted SPs first, then the configured metadata sets in order.
func (s *mdqService) findEntity(entityID string) (*metadata.Entity, error) {
	hosted, err := s.store.ListHostedSPs()
	if err != nil {
		return nil, err
	}
	for i := range hosted {
		if hosted[i].EntityID == entityID {
			return &hosted[i], nil
		}
	}

	for _, set := range s.metadataSets {
		entity, err := s.store.GetEntity(entityID, set)
		if err == nil {
			return entity, nil
		}
		if !errors.Is(err, metadata.ErrEntityNotFound) {
			return nil, err
		}
	}
	return nil, metadata.ErrEntityNotFound
}

// listCandidates builds the search candidate set: hosted SPs followed by every
// configured metadata set, preserving store iteration order.
func (s *mdqService) listCandidates() ([]metadata.Entity, error) {
	candidates, err := s.store.ListHostedSPs()
	if err != nil {
		return nil, err
	}
	for _, set := range s.metadataSets {
		entities, err := s.store.ListEntities(set)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, entities...)
	}
	return candidates, nil
}

func (s *mdqService) listAllEntities() ([]metadata.Entity, error) {
	return s.listCandidates()
}

// normalizeQuery lowercases the query and, for addresses, keeps only the part
// after the last @. A query ending in @ is kept whole, otherwise the trailing
// separator would turn it into a match-everything query.
func normalizeQuery(query string) string {
	query = strings.ToLower(strings.TrimSpace(query))
	if idx := strings.LastIndex(query, "@"); idx >= 0 && !strings.HasSuffix(query, "@") {
		query = query[idx+1:]
	}
	return query
}

// entityMatchesQuery reports whether any searchable field of the entity contains
// the query. The first matching field wins.
func entityMatchesQuery(entity *metadata.Entity, query string) bool {
	localized := []map[string]string{
		entity.DisplayName,
		entity.Name,
		entity.OrganizationDisplayName,
		entity.OrganizationName,
	}
	for _, values := range localized {
		for _, value := range values {
			if strings.Contains(strings.ToLower(value), query) {
				return true
			}
		}
	}
	if entity.UIInfo != nil {
		for _, keywords := range entity.UIInfo.Keywords {
			if strings.Contains(strings.ToLower(strings.Join(keywords, " ")), query) {
				return true
			}
		}
	}
	for _, scope := range entity.Scope {
		if strings.Contains(strings.ToLower(scope), query) {
			return true
		}
	}
	return false
}
