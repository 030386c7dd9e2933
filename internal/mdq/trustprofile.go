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
	"encoding/base64"
	"encoding/json"
	"sort"
	"strings"

	"github.com/asgardeo/mdq/internal/metadata"
	"github.com/asgardeo/mdq/internal/system/log"
)

// seenState is the tri-state accumulator of the direct entity-rule pass.
type seenState int

const (
	seenUnset seenState = iota
	seenAllow
	seenDeny
)

// profileExtractor decodes the selection profile document attached to a relying
// party and merges it with the globally configured default profiles.
type profileExtractor struct {
	attributeURI   string
	globalProfiles map[string]TrustProfile
}

func newProfileExtractor(attributeURI string, globalProfiles map[string]map[string]interface{}) *profileExtractor {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	if attributeURI == "" {
		attributeURI = AttributeSelectionProfile
	}

	profiles := make(map[string]TrustProfile, len(globalProfiles))
	for name, body := range globalProfiles {
		data, err := json.Marshal(body)
		if err != nil {
			logger.Warn("Skipping malformed global trust profile",
				log.String(log.LoggerKeyProfileName, name), log.Error(err))
			continue
		}
		var profile TrustProfile
		if err := json.Unmarshal(data, &profile); err != nil {
			logger.Warn("Skipping malformed global trust profile",
				log.String(log.LoggerKeyProfileName, name), log.Error(err))
			continue
		}
		profiles[name] = profile
	}

	return &profileExtractor{
		attributeURI:   attributeURI,
		globalProfiles: profiles,
	}
}

// extract returns the trust profile document of an entity, or nil when neither
// the entity nor the global configuration carries any profile. A malformed
// embedded document is logged and treated as absent, never fatal.
func (p *profileExtractor) extract(entity *metadata.Entity) *TrustInfo {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName),
		log.String(log.LoggerKeyEntityID, entity.EntityID))

	profiles := make(map[string]TrustProfile, len(p.globalProfiles))
	for name, profile := range p.globalProfiles {
		profiles[name] = profile
	}

	for _, value := range entity.EntityAttributes[p.attributeURI] {
		decoded, err := base64.StdEncoding.DecodeString(value)
		if err != nil {
			logger.Warn("Failed to decode selection profile attribute", log.Error(err))
			continue
		}
		var document struct {
			Profiles map[string]TrustProfile `json:"profiles"`
		}
		if err := json.Unmarshal(decoded, &document); err != nil {
			logger.Warn("Failed to parse selection profile document", log.Error(err))
			continue
		}
		for name, profile := range document.Profiles {
			profiles[name] = profile
		}
	}

	if len(profiles) == 0 {
		return nil
	}
	return &TrustInfo{
		Profiles: profiles,
		EntityID: entity.EntityID,
	}
}

// lookupProfile returns the named profile of a relying party record, or nil
// when the record carries no such profile.
func lookupProfile(trustEntity *Record, profileName string) *TrustProfile {
	if trustEntity == nil || trustEntity.TrustInfo == nil || profileName == "" {
		return nil
	}
	profile, ok := trustEntity.TrustInfo.Profiles[profileName]
	if !ok {
		return nil
	}
	return &profile
}

// evaluate applies the named profile of the relying party to a candidate record.
// A missing profile is pass-through, and SP candidates are never filtered. The
// returned bool reports whether the candidate is part of the result at all.
func evaluate(candidate *Record, trustEntity *Record, profileName string) (*Record, bool) {
	if candidate == nil {
		return nil, false
	}
	profile := lookupProfile(trustEntity, profileName)
	if profile == nil || candidate.Type == roleSP {
		return candidate, true
	}
	return evaluateProfile(candidate, profile)
}

// evaluateProfile runs one candidate through a profile body: source resolution
// against extra_md, the ordered direct entity-rule pass, the attribute predicate
// pass, then strict or permissive disposition.
func evaluateProfile(candidate *Record, profile *TrustProfile) (*Record, bool) {
	fromExtraMD := false
	if extra, ok := profile.ExtraMetadata[candidate.EntityID]; ok {
		if extra.EntityID == "" {
			extra.EntityID = candidate.EntityID
		}
		if extra.ID == "" {
			extra.ID = defaultTransformedID(extra.EntityID)
		}
		candidate = &extra
		fromExtraMD = true
	}

	seen := seenUnset
	for _, rule := range profile.Entity {
		if seen == seenAllow {
			break
		}
		matches := rule.EntityID == candidate.EntityID
		if rule.include() {
			if matches {
				seen = seenAllow
			} else {
				seen = seenDeny
			}
		} else {
			if matches {
				seen = seenDeny
			} else {
				seen = seenAllow
			}
		}
	}

	// Entities known only through extra_md are opt-in: they are returned, with a
	// hint, unless a direct rule denies them.
	if fromExtraMD {
		if seen == seenDeny {
			return nil, false
		}
		hinted := *candidate
		hinted.Hint = true
		return &hinted, true
	}

	// Skipped rules still count toward toPass, so a profile with a rule whose
	// match attribute never appears on a candidate cannot be fully satisfied.
	toPass := len(profile.Entities)
	passed := 0
	if seen != seenDeny {
		for _, rule := range profile.Entities {
			if attributeRuleMatches(candidate, rule) {
				passed++
			}
		}
	}
	selected := seen != seenDeny && passed == toPass

	if profile.Strict {
		if !selected {
			return nil, false
		}
		return candidate, true
	}

	if selected {
		hinted := *candidate
		hinted.Hint = true
		return &hinted, true
	}
	return candidate, true
}

// attributeRuleMatches evaluates one predicate rule against a candidate. Rules
// whose match attribute is absent from the candidate never pass.
func attributeRuleMatches(candidate *Record, rule AttributeRule) bool {
	value, ok := candidate.attributeValue(rule.Match)
	if !ok {
		return false
	}
	switch v := value.(type) {
	case []string:
		return containsString(v, rule.Select) == rule.include()
	case string:
		return (v == rule.Select) == rule.include()
	default:
		return false
	}
}

// evaluateBatch applies a profile to a whole candidate set and folds in extra_md
// entities that are not already present. matchesQuery, when non-nil, filters the
// folded-in entities against the active free-text query; it tests the narrower
// extra metadata field set. The result is equivalent to evaluating each
// candidate independently.
func evaluateBatch(candidates []*Record, trustEntity *Record, profileName string,
	matchesQuery func(*Record) bool) []*Record {
	profile := lookupProfile(trustEntity, profileName)
	if profile == nil {
		return candidates
	}

	results := make([]*Record, 0, len(candidates))
	present := make(map[string]bool, len(candidates))
	for _, candidate := range candidates {
		present[candidate.EntityID] = true
		if candidate.Type == roleSP {
			results = append(results, candidate)
			continue
		}
		if record, ok := evaluateProfile(candidate, profile); ok {
			results = append(results, record)
		}
	}

	extraIDs := make([]string, 0, len(profile.ExtraMetadata))
	for entityID := range profile.ExtraMetadata {
		if !present[entityID] {
			extraIDs = append(extraIDs, entityID)
		}
	}
	sort.Strings(extraIDs)
	for _, entityID := range extraIDs {
		extra := profile.ExtraMetadata[entityID]
		if extra.EntityID == "" {
			extra.EntityID = entityID
		}
		if matchesQuery != nil && !matchesQuery(&extra) {
			continue
		}
		if record, ok := evaluateProfile(&extra, profile); ok {
			results = append(results, record)
		}
	}
	return results
}

// matchesExtraMetadataQuery is the free-text match used for folded-in extra_md
// entities. It covers a narrower field set than the catalogue search.
func matchesExtraMetadataQuery(record *Record, query string) bool {
	if query == "" {
		return true
	}
	query = strings.ToLower(query)
	if strings.Contains(strings.ToLower(record.Title), query) {
		return true
	}
	for _, title := range record.TitleLangs {
		if strings.Contains(strings.ToLower(title), query) {
			return true
		}
	}
	for _, tag := range record.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	if strings.Contains(strings.ToLower(record.Keywords), query) {
		return true
	}
	return strings.Contains(strings.ToLower(record.Scope), query)
}
