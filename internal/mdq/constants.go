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

// Package mdq implements metadata query resolution, discovery record normalization,
// transformed identifiers and trust profile evaluation.
package mdq

const loggerComponentName = "MDQService"

// Metadata sets served by the query endpoints.
const (
	// MetadataSetIdPRemote holds remote identity providers.
	MetadataSetIdPRemote = "saml20-idp-remote"
	// MetadataSetSPRemote holds remote service providers.
	MetadataSetSPRemote = "saml20-sp-remote"
)

// Entity attribute URIs recognized during record normalization.
const (
	// AttributeEntityCategory carries the entity category values of an entity.
	AttributeEntityCategory = "http://macedir.org/entity-category"
	// AttributeEntityCategorySupport carries the supported entity categories of an entity.
	AttributeEntityCategorySupport = "http://macedir.org/entity-category-support"
	// AttributeAssuranceCertification carries the assurance certifications of an entity.
	AttributeAssuranceCertification = "urn:oasis:names:tc:SAML:attribute:assurance-certification"
	// AttributeSelectionProfile carries a base64 encoded entity selection profile document.
	AttributeSelectionProfile = "https://refeds.org/entity-selection-profile"
	// CategoryHideFromDiscovery marks an entity as hidden from discovery interfaces.
	CategoryHideFromDiscovery = "http://refeds.org/category/hide-from-discovery"
)

// rolePrefix is stripped from role names given in entity filters.
const rolePrefix = "{http://pyff.io/role}"

// Role names accepted in entity filters.
const (
	roleIdP = "idp"
	roleSP  = "sp"
)

// defaultEntityFilter is applied when a list request names no entity filter:
// the discovery feed serves identity providers unless asked otherwise.
const defaultEntityFilter = roleIdP

const (
	defaultAlgorithm   = "sha1"
	defaultNegativeTTL = 3600
	defaultLanguage    = "en"
)

// transformedIDCacheName backs the bidirectional transformed identifier lookups.
const transformedIDCacheName = "TransformedIDCache"
