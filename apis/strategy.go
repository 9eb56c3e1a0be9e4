/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package apis

// Strategy is a pluggable loading step. A Loader chains multiple
// strategies in order (e.g., Registry -> Source -> Document).
type Strategy interface {
	// TryLoad attempts to load the module named by specifier according to cfg.
	// It returns handled=false to fall through to the next strategy. When
	// handled is true, err reports a failure of this strategy and stops the chain.
	TryLoad(specifier string, cfg Config) (module any, handled bool, err error)
}
