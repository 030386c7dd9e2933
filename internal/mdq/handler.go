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
	"encoding/json"
	"net/http"
	"strings"

	"github.com/asgardeo/mdq/internal/system/constants"
	"github.com/asgardeo/mdq/internal/system/error/apierror"
	"github.com/asgardeo/mdq/internal/system/error/serviceerror"
	"github.com/asgardeo/mdq/internal/system/log"
)

const (
	cacheControlPublic  = "public, max-age=3600"
	cacheControlPrivate = "private"
	cacheControlNoStore = "private, no-store"
)

// MDQHandler handles the metadata query HTTP requests.
type MDQHandler struct {
	service MDQServiceInterface
}

// NewMDQHandler creates a new MDQHandler over the given service.
func NewMDQHandler(service MDQServiceInterface) *MDQHandler {
	return &MDQHandler{
		service: service,
	}
}

// HandleEntityListRequest handles GET /entities: a search over the catalogue,
// optionally narrowed by the relying party's trust profile.
func (h *MDQHandler) HandleEntityListRequest(w http.ResponseWriter, r *http.Request) {
	if !h.accepts(r) {
		h.writeServiceError(w, &ErrorNotAcceptable)
		return
	}

	query := queryParam(r, "q", "query")
	entityFilter := strings.ToLower(queryParam(r, "entity_filter"))
	if entityFilter == "" {
		entityFilter = defaultEntityFilter
	}
	relyingPartyID := queryParam(r, "entityID", "entityid")
	profileName := queryParam(r, "trustProfile", "trustprofile")

	records, svcErr := h.service.SearchEntitiesWithProfile(query, entityFilter,
		relyingPartyID, profileName)
	if svcErr != nil {
		h.writeServiceError(w, svcErr)
		return
	}

	cacheControl := cacheControlPublic
	if relyingPartyID != "" && profileName != "" {
		cacheControl = cacheControlPrivate
	}
	if len(records) == 0 {
		cacheControl = cacheControlNoStore
	}
	h.writeJSON(w, http.StatusOK, cacheControl, records)
}

// HandleEntityRequest handles GET /entities/{identifier}: a single entity lookup
// by entity ID or transformed identifier.
func (h *MDQHandler) HandleEntityRequest(w http.ResponseWriter, r *http.Request) {
	if !h.accepts(r) {
		h.writeServiceError(w, &ErrorNotAcceptable)
		return
	}

	identifier := r.PathValue("identifier")
	relyingPartyID := queryParam(r, "entityID", "entityid")
	profileName := queryParam(r, "trustProfile", "trustprofile")

	record, svcErr := h.service.GetEntityWithProfile(identifier, relyingPartyID, profileName)
	if svcErr != nil {
		h.writeServiceError(w, svcErr)
		return
	}

	cacheControl := cacheControlPublic
	if relyingPartyID != "" && profileName != "" {
		cacheControl = cacheControlPrivate
	}
	h.writeJSON(w, http.StatusOK, cacheControl, record)
}

// accepts reports whether the client accepts JSON responses. The debug query
// parameter bypasses the check for manual inspection from a browser.
func (h *MDQHandler) accepts(r *http.Request) bool {
	if r.URL.Query().Has("debug") {
		return true
	}
	accept := r.Header.Get(constants.AcceptHeaderName)
	if accept == "" {
		return true
	}
	return strings.Contains(accept, constants.ContentTypeJSON) || strings.Contains(accept, "*/*")
}

func (h *MDQHandler) writeJSON(w http.ResponseWriter, status int, cacheControl string,
	payload interface{}) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "MDQHandler"))

	w.Header().Set(constants.ContentTypeHeaderName, constants.ContentTypeJSON)
	w.Header().Set(constants.CacheControlHeaderName, cacheControl)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("Error encoding response body", log.Error(err))
	}
}

func (h *MDQHandler) writeServiceError(w http.ResponseWriter, svcErr *serviceerror.ServiceError) {
	status := http.StatusInternalServerError
	if svcErr.Type == serviceerror.ClientErrorType {
		switch svcErr.Code {
		case ErrorEntityNotFound.Code:
			status = http.StatusNotFound
		case ErrorNotAcceptable.Code:
			status = http.StatusNotAcceptable
		default:
			status = http.StatusBadRequest
		}
	}

	errResp := apierror.ErrorResponse{
		Code:        svcErr.Code,
		Message:     svcErr.Error,
		Description: svcErr.ErrorDescription,
	}
	h.writeJSON(w, status, cacheControlNoStore, errResp)
}

// queryParam returns the first non-empty value among the given parameter names.
func queryParam(r *http.Request, names ...string) string {
	for _, name := range names {
		if value := r.URL.Query().Get(name); value != "" {
			return value
		}
	}
	return ""
}
