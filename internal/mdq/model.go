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

// Icon is the resolved logo of an entity.
type Icon struct {
	URL    string `json:"url"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// Geo is a geolocation hint parsed from entity metadata.
type Geo struct {
	Lat  string `json:"lat"`
	Long string `json:"long"`
}

// EntityRule is a direct entity rule of a trust profile. Include defaults to
// true when absent.
type EntityRule struct {
	EntityID string `json:"entity_id"`
	Include  *bool  `json:"include,omitempty"`
}

func (r EntityRule) include() bool {
	return r.Include == nil || *r.Include
}

// AttributeRule is an attribute predicate rule of a trust profile. Match names
// an attribute of the normalized record, Select is the value tested against it.
// Include defaults to true when absent.
type AttributeRule struct {
	Match   string `json:"match"`
	Select  string `json:"select"`
	Include *bool  `json:"include,omitempty"`
}

func (r AttributeRule) include() bool {
	return r.Include == nil || *r.Include
}

// TrustProfile is a named selection policy attached to a relying party.
type TrustProfile struct {
	Strict          bool              `json:"strict"`
	DisplayName     map[string]string `json:"display_name,omitempty"`
	FallbackHandler string            `json:"fallback_handler,omitempty"`
	Entity          []EntityRule      `json:"entity,omitempty"`
	Entities        []AttributeRule   `json:"entities,omitempty"`
	ExtraMetadata   map[string]Record `json:"extra_md,omitempty"`
}

// TrustInfo is the trust profile document attached to a relying party record.
type TrustInfo struct {
	Profiles map[string]TrustProfile `json:"profiles,omitempty"`
	EntityID string                  `json:"entity_id,omitempty"`
}

// Record is the normalized discovery representation of an entity. Absent
// optional fields are omitted from the serialized form.
type Record struct {
	Title                  string            `json:"title,omitempty"`
	Descr                  string            `json:"descr,omitempty"`
	TitleLangs             map[string]string `json:"title_langs,omitempty"`
	DescrLangs             map[string]string `json:"descr_langs,omitempty"`
	Auth                   string            `json:"auth,omitempty"`
	EntityID               string            `json:"entity_id"`
	SAMLEntityID           string            `json:"entityID,omitempty"`
	RegistrationAuthority  []string          `json:"registrationAuthority,omitempty"`
	EntityCategory         []string          `json:"entity_category,omitempty"`
	AssuranceCertification []string          `json:"assurance_certification,omitempty"`
	EntityCategorySupport  []string          `json:"entity_category_support,omitempty"`
	MDSource               []string          `json:"md_source,omitempty"`
	Tags                   []string          `json:"ssp_tags,omitempty"`
	DiscoveryResponse      []string          `json:"discovery_response,omitempty"`
	Type                   string            `json:"type,omitempty"`
	Hidden                 string            `json:"hidden,omitempty"`
	Scope                  string            `json:"scope,omitempty"`
	Domain                 string            `json:"domain,omitempty"`
	NameTag                string            `json:"name_tag,omitempty"`
	EntityIcon             *Icon             `json:"entity_icon_url,omitempty"`
	Keywords               string            `json:"keywords,omitempty"`
	PrivacyStatementURL    string            `json:"privacy_statement_url,omitempty"`
	Geo                    *Geo              `json:"geo,omitempty"`
	ID                     string            `json:"id,omitempty"`
	TrustInfo              *TrustInfo        `json:"tinfo,omitempty"`
	Hint                   bool              `json:"hint,omitempty"`
}

// attributeValue resolves a profile rule's match key against the record. The
// second return value reports whether the attribute is present, so callers can
// distinguish an absent attribute from an empty one.
func (r *Record) attributeValue(name string) (interface{}, bool) {
	switch name {
	case "entity_category":
		if len(r.EntityCategory) > 0 {
			return r.EntityCategory, true
		}
	case "assurance_certification":
		if len(r.AssuranceCertification) > 0 {
			return r.AssuranceCertification, true
		}
	case "entity_category_support":
		if len(r.EntityCategorySupport) > 0 {
			return r.EntityCategorySupport, true
		}
	case "md_source":
		if len(r.MDSource) > 0 {
			return r.MDSource, true
		}
	case "ssp_tags":
		if len(r.Tags) > 0 {
			return r.Tags, true
		}
	case "discovery_response":
		if len(r.DiscoveryResponse) > 0 {
			return r.DiscoveryResponse, true
		}
	case "entity_id":
		if r.EntityID != "" {
			return r.EntityID, true
		}
	case "entityID":
		if r.SAMLEntityID != "" {
			return r.SAMLEntityID, true
		}
	case "registrationAuthority":
		if len(r.RegistrationAuthority) > 0 {
			return r.RegistrationAuthority, true
		}
	case "auth":
		if r.Auth != "" {
			return r.Auth, true
		}
	case "type":
		if r.Type != "" {
			return r.Type, true
		}
	case "hidden":
		if r.Hidden != "" {
			return r.Hidden, true
		}
	case "scope":
		if r.Scope != "" {
			return r.Scope, true
		}
	case "domain":
		if r.Domain != "" {
			return r.Domain, true
		}
	case "name_tag":
		if r.NameTag != "" {
			return r.NameTag, true
		}
	case "title":
		if r.Title != "" {
			return r.Title, true
		}
	case "id":
		if r.ID != "" {
			return r.ID, true
		}
	}
	return nil, false
}
