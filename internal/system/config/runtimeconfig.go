/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
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

package config

import "sync"

// MDQRuntime holds the runtime configuration for the MDQ server.
type MDQRuntime struct {
	MDQHome string `yaml:"mdq_home"`
	Config  Config `yaml:"config"`
}

var (
	runtimeConfig *MDQRuntime
	once          sync.Once
)

// InitializeMDQRuntime initializes the MDQRuntime configuration.
func InitializeMDQRuntime(mdqHome string, config *Config) error {
	once.Do(func() {
		runtimeConfig = &MDQRuntime{
			MDQHome: mdqHome,
			Config:  *config,
		}
	})

	return nil
}

// GetMDQRuntime returns the MDQRuntime configuration.
func GetMDQRuntime() *MDQRuntime {
	if runtimeConfig == nil {
		panic("MDQRuntime is not initialized")
	}
	return runtimeConfig
}

// ResetMDQRuntime resets the MDQRuntime.
// This should only be used in tests to reset the singleton state.
func ResetMDQRuntime() {
	runtimeConfig = nil
	once = sync.Once{}
}
