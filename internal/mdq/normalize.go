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
	"regexp"
	"sort"
	"strings"

	"github.com/asgardeo/mdq/internal/metadata"
)

var geoHintPattern = regexp.MustCompile(`(?i)^geo:([^,;]+),([^,;]+)`)

// normalizer converts metadata entities into discovery records.
type normalizer struct {
	currentLanguage  string
	fallbackLanguage string
	transformer      *identifierTransformer
	profileExtractor *profileExtractor
}

func newNormalizer(currentLanguage, fallbackLanguage string, transformer *identifierTransformer,
	profileExtractor *profileExtractor) *normalizer {
	if fallbackLanguage == "" {
		fallbackLanguage = defaultLanguage
	}
	if currentLanguage == "" {
		currentLanguage = fallbackLanguage
	}
	return &normalizer{
		currentLanguage:  currentLanguage,
		fallbackLanguage: fallbackLanguage,
		transformer:      transformer,
		profileExtractor: profileExtractor,
	}
}

// pickLocalized resolves a localized mapping: current language first, then the
// fallback language, then the lexicographically first entry. Empty input is a
// clean miss, never an error.
func pickLocalized[T any](values map[string]T, current, fallback string) (T, bool) {
	var zero T
	if len(values) == 0 {
		return zero, false
	}
	if v, ok := values[current]; ok {
		return v, true
	}
	if v, ok := values[fallback]; ok {
		return v, true
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return values[keys[0]], true
}

func (n *normalizer) filterLangs(values map[string]string) string {
	v, _ := pickLocalized(values, n.currentLanguage, n.fallbackLanguage)
	return v
}

// normalize builds the discovery record of an entity. Deterministic given the
// entity and the configured languages; the only side effect is the write-through
// identifier cache.
func (n *normalizer) normalize(entity *metadata.Entity) (*Record, error) {
	record := &Record{
		EntityID:          entity.EntityID,
		SAMLEntityID:      entity.EntityID,
		DiscoveryResponse: entity.DiscoveryResponse,
		Tags:              entity.Tags,
	}
	if entity.RegistrationAuthority != "" {
		// Serialized as an array so client filters can treat it like the other
		// multi-valued attributes.
		record.RegistrationAuthority = []string{entity.RegistrationAuthority}
	}

	titleLangs := firstNonEmpty(
		map[string]string(entity.DisplayName),
		map[string]string(entity.Name),
		map[string]string(entity.OrganizationDisplayName),
		map[string]string(entity.OrganizationName),
	)
	record.Title = n.filterLangs(titleLangs)
	record.TitleLangs = titleLangs

	var descrLangs map[string]string
	if entity.UIInfo != nil && len(entity.UIInfo.Description) > 0 {
		descrLangs = entity.UIInfo.Description
	} else {
		descrLangs = entity.Description
	}
	record.Descr = n.filterLangs(descrLangs)
	record.DescrLangs = descrLangs

	if strings.Contains(entity.MetadataSet, "saml20") {
		record.Auth = "saml"
	} else {
		record.Auth = "unknown"
	}
	if strings.Contains(entity.MetadataSet, "-idp-") {
		record.Type = roleIdP
	} else if strings.Contains(entity.MetadataSet, "-sp-") {
		record.Type = roleSP
	}

	record.EntityCategory = entity.EntityAttributes[AttributeEntityCategory]
	record.AssuranceCertification = entity.EntityAttributes[AttributeAssuranceCertification]
	record.EntityCategorySupport = entity.EntityAttributes[AttributeEntityCategorySupport]

	if record.Type == roleIdP {
		record.Hidden = "false"
		if entity.HideFromDiscovery || containsString(record.EntityCategory, CategoryHideFromDiscovery) {
			record.Hidden = "true"
		}
	}

	var mdSource []string
	if entity.RefreshSource != "" {
		mdSource = append(mdSource, entity.RefreshSource)
	}
	mdSource = append(mdSource, entity.MetadataSet)
	for _, tag := range entity.Tags {
		mdSource = append(mdSource, "ssp-tag-"+tag)
	}
	record.MDSource = mdSource

	if len(entity.Scope) > 0 {
		record.Scope = strings.Join(entity.Scope, ",")
		if len(entity.Scope) == 1 {
			record.Domain = entity.Scope[0]
			record.NameTag = strings.ToUpper(strings.Split(entity.Scope[0], ".")[0])
		}
	}

	if entity.UIInfo != nil {
		if logo, ok := pickLocalized(entity.UIInfo.Logo, n.currentLanguage, n.fallbackLanguage); ok {
			record.EntityIcon = &Icon{URL: logo.URL, Width: logo.Width, Height: logo.Height}
		}
		if keywords, ok := pickLocalized(entity.UIInfo.Keywords,
			n.currentLanguage, n.fallbackLanguage); ok {
			record.Keywords = strings.Join(keywords, ",")
		}
		record.PrivacyStatementURL = n.filterLangs(entity.UIInfo.PrivacyStatementURL)
	}
	if record.EntityIcon == nil && entity.Icon != "" {
		record.EntityIcon = &Icon{URL: entity.Icon}
	}

	if entity.DiscoHints != nil && len(entity.DiscoHints.GeolocationHint) > 0 {
		if matches := geoHintPattern.FindStringSubmatch(entity.DiscoHints.GeolocationHint[0]); matches != nil {
			record.Geo = &Geo{Lat: matches[1], Long: matches[2]}
		}
	}

	if entity.ID != "" {
		record.ID = entity.ID
	} else {
		id, err := n.transformer.transform(entity.EntityID, defaultAlgorithm)
		if err != nil {
			return nil, err
		}
		record.ID = id
	}

	if record.Type == roleSP {
		if tinfo := n.profileExtractor.extract(entity); tinfo != nil {
			record.TrustInfo = tinfo
		}
	}

	return record, nil
}

func firstNonEmpty(candidates ...map[string]string) map[string]string {
	for _, c := range candidates {
		if len(c) > 0 {
			return c
		}
	}
	return nil
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
