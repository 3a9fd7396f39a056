package catalog

import (
	"errors"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// IndexFile is the name of the index document under a repository root.
const IndexFile = "index.yml"

// Index maps concrete version strings to artifact paths relative to the
// vendor's repository root.
type Index map[string]string

// ParseIndex decodes an index document. Keys are taken verbatim from the
// document so versions such as "1.10" are not reinterpreted as numbers.
func ParseIndex(data []byte, root string) (Index, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &IndexLoadError{Root: root, Err: err}
	}
	if len(doc.Content) == 0 {
		return nil, &IndexLoadError{Root: root, Err: errors.New("empty index")}
	}

	m := resolveAlias(doc.Content[0])
	if m.Kind != yaml.MappingNode {
		return nil, &IndexLoadError{Root: root, Err: errors.New("expected a mapping of versions to paths")}
	}

	idx := make(Index, len(m.Content)/2)
	for i := 0; i+1 < len(m.Content); i += 2 {
		k := m.Content[i]
		v := resolveAlias(m.Content[i+1])
		if v.Kind != yaml.ScalarNode || v.ShortTag() == "!!null" || v.Value == "" {
			return nil, &IndexLoadError{Root: root, Err: fmt.Errorf("line %d: version %q has no path", k.Line, k.Value)}
		}
		if _, dup := idx[k.Value]; dup {
			return nil, &IndexLoadError{Root: root, Err: fmt.Errorf("line %d: duplicate version %q", k.Line, k.Value)}
		}
		idx[k.Value] = v.Value
	}
	return idx, nil
}

// Versions returns the index's versions in a stable order.
func (i Index) Versions() []string {
	out := make([]string, 0, len(i))
	for v := range i {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// IndexURI returns the location of a repository root's index.
func IndexURI(root string) string {
	return root + "/" + IndexFile
}
