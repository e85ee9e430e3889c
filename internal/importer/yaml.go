package importer

import (
	"fmt"
	"io"
	"regexp"
	"sort"
	"time"

	"github.com/nikbrunner/tabzero/internal/model"
	"gopkg.in/yaml.v3"
)

// homepageEntry is one bookmark in a Homepage bookmarks.yaml.
type homepageEntry struct {
	Icon string `yaml:"icon"`
	Abbr string `yaml:"abbr"`
	Href string `yaml:"href"`
}

// The file is a list of single-key maps: - Group: [ - Name: [{ href }] ]
type homepageGroup map[string][]map[string][]homepageEntry

var templateVar = regexp.MustCompile(`\{\{[^}]+\}\}`)

// ParseHomepageYAML reads a Homepage dashboard bookmarks.yaml. Each group
// becomes a category, each named entry a bookmark.
func ParseHomepageYAML(r io.Reader) (model.Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("read bookmarks yaml: %w", err)
	}

	// Homepage template variables ({{HOMEPAGE_VAR_...}}) are not valid YAML scalars.
	data = templateVar.ReplaceAll(data, []byte(`""`))

	var groups []homepageGroup
	if err := yaml.Unmarshal(data, &groups); err != nil {
		return model.Snapshot{}, fmt.Errorf("parse bookmarks yaml: %w", err)
	}

	b := newSnapshotBuilder(time.Now())
	for _, group := range groups {
		for _, groupName := range sortedKeys(group) {
			for _, named := range group[groupName] {
				for _, title := range sortedKeys(named) {
					for _, entry := range named[title] {
						if entry.Href == "" {
							continue
						}
						b.add(groupName, title, entry.Href, entry.Icon, nil)
					}
				}
			}
		}
	}
	return b.snapshot(), nil
}

// sortedKeys makes multi-key maps deterministic. Homepage files use one
// key per list item, so order normally follows the file.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
