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

package services

import (
	"fmt"
	"net/http"

	"github.com/asgardeo/mdq/internal/mdq"
	"github.com/asgardeo/mdq/internal/metadata"
	"github.com/asgardeo/mdq/internal/system/middleware"
)

// MDQService is the service for metadata query operations.
type MDQService struct {
	mdqHandler *mdq.MDQHandler
}

// NewMDQService creates a new instance of MDQService.
func NewMDQService(mux *http.ServeMux) (ServiceInterface, error) {
	store, err := metadata.NewStore()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize metadata store: %w", err)
	}
	mdqService, err := mdq.NewMDQService(store)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize MDQ service: %w", err)
	}

	instance := &MDQService{
		mdqHandler: mdq.NewMDQHandler(mdqService),
	}
	instance.RegisterRoutes(mux)

	return instance, nil
}

// RegisterRoutes registers the routes for metadata query operations.
func (s *MDQService) RegisterRoutes(mux *http.ServeMux) {
	opts1 := middleware.CORSOptions{
		AllowedMethods:   "GET",
		AllowedHeaders:   "Content-Type, Authorization",
		AllowCredentials: true,
	}

	mux.HandleFunc(middleware.WithCORS("OPTIONS /entities",
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}, opts1))
	mux.HandleFunc(middleware.WithCORS("GET /entities",
		s.mdqHandler.HandleEntityListRequest, opts1))

	mux.HandleFunc(middleware.WithCORS("OPTIONS /entities/{identifier...}",
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}, opts1))
	mux.HandleFunc(middleware.WithCORS("GET /entities/{identifier...}",
		s.mdqHandler.HandleEntityRequest, opts1))
}
