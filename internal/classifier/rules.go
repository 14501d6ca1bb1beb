package classifier

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"kharcha/internal/core"
)

// ruleFile is the on-disk shape of a keyword rule override:
//
//	categories:
//	  - name: food
//	    keywords: [grocery, swiggy]
//	  - name: transport
//	    keywords: [uber, auto]
type ruleFile struct {
	Categories []struct {
		Name     string   `yaml:"name"`
		Keywords []string `yaml:"keywords"`
	} `yaml:"categories"`
}

// NewFromFile builds a classifier from a YAML rule file, replacing the
// built-in table. Category names must belong to the taxonomy; the file's
// ordering is ignored and rules are re-sorted into taxonomy priority order
// so matching stays deterministic.
func NewFromFile(path string) (*Classifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rule file: %w", err)
	}

	var rf ruleFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parse rule file %s: %w", path, err)
	}
	if len(rf.Categories) == 0 {
		return nil, fmt.Errorf("rule file %s: no categories", path)
	}

	rules := make([]rule, 0, len(rf.Categories))
	for _, rc := range rf.Categories {
		cat := core.Category(strings.ToLower(strings.TrimSpace(rc.Name)))
		if !cat.IsValid() {
			return nil, fmt.Errorf("rule file %s: %w: %q", path, core.ErrInvalidCategory, rc.Name)
		}
		kws := make([]string, 0, len(rc.Keywords))
		for _, kw := range rc.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw != "" {
				kws = append(kws, kw)
			}
		}
		if len(kws) == 0 {
			continue
		}
		rules = append(rules, rule{category: cat, keywords: kws})
	}

	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].category.Rank() < rules[j].category.Rank()
	})

	return &Classifier{rules: rules}, nil
}
