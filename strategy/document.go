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

package strategy

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"dirpx.dev/rfxpath/apis"
)

// documentExts lists the extensions served by the document strategy.
// JSON documents decode through the YAML parser.
var documentExts = []string{".yaml", ".yml", ".json"}

// NewDocumentStrategy creates an apis.Strategy that loads YAML or JSON
// documents as data modules. Only path specifiers are handled; "./x" finds
// x.yaml, x.yml or x.json. Mappings decode to map[string]any.
func NewDocumentStrategy() apis.Strategy {
	return &documentStrategy{}
}

// documentStrategy decodes documents and memoizes the results.
type documentStrategy struct {
	cache memo
}

// Ensure documentStrategy implements apis.Strategy.
var _ apis.Strategy = (*documentStrategy)(nil)

// TryLoad decodes the document named by specifier.
func (s *documentStrategy) TryLoad(specifier string, cfg apis.Config) (any, bool, error) {
	return tryLoadFile(&s.cache, specifier, cfg, documentExts, loadDocument)
}

func loadDocument(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("document: read %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("document: %s is empty", path)
	}
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("document: decode %s: %w", path, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("document: %s decodes to null", path)
	}
	return doc, nil
}
