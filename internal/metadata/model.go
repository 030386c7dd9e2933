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

// Package metadata provides the entity metadata model and the stores that serve it.
package metadata

// LocalizedString maps language codes to a single value per language.
type LocalizedString map[string]string

// LocalizedStringList maps language codes to a list of values per language.
type LocalizedStringList map[string][]string

// Logo describes a logo image for an entity.
type Logo struct {
	URL    string `json:"url"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// UIInfo holds the user interface elements of an entity.
type UIInfo struct {
	DisplayName         LocalizedString     `json:"display_name,omitempty"`
	Description         LocalizedString     `json:"description,omitempty"`
	Keywords            LocalizedStringList `json:"keywords,omitempty"`
	Logo                map[string]Logo     `json:"logo,omitempty"`
	PrivacyStatementURL LocalizedString     `json:"privacy_statement_url,omitempty"`
}

// DiscoHints holds the discovery hints of an entity.
type DiscoHints struct {
	GeolocationHint []string `json:"geolocation_hint,omitempty"`
}

// Entity is a metadata record describing an identity provider or service provider.
// Optional fields are nil or empty when the underlying metadata does not carry them.
type Entity struct {
	EntityID                string              `json:"entity_id"`
	MetadataSet             string              `json:"metadata_set,omitempty"`
	ID                      string              `json:"id,omitempty"`
	DisplayName             LocalizedString     `json:"display_name,omitempty"`
	Name                    LocalizedString     `json:"name,omitempty"`
	Description             LocalizedString     `json:"description,omitempty"`
	OrganizationDisplayName LocalizedString     `json:"organization_display_name,omitempty"`
	OrganizationName        LocalizedString     `json:"organization_name,omitempty"`
	EntityAttributes        map[string][]string `json:"entity_attributes,omitempty"`
	UIInfo                  *UIInfo             `json:"ui_info,omitempty"`
	Scope                   []string            `json:"scope,omitempty"`
	RegistrationAuthority   string              `json:"registration_authority,omitempty"`
	DiscoHints              *DiscoHints         `json:"disco_hints,omitempty"`
	DiscoveryResponse       []string            `json:"discovery_response,omitempty"`
	Tags                    []string            `json:"tags,omitempty"`
	HideFromDiscovery       bool                `json:"hide_from_discovery,omitempty"`
	RefreshSource           string              `json:"refresh_source,omitempty"`
	Icon                    string              `json:"icon,omitempty"`
}
