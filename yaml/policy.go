// Package yaml loads heuristic policy overrides from YAML files.
package yaml

import (
	"os"

	"github.com/pagexio/pagex"
	"gopkg.in/yaml.v3"
)

// policyFile mirrors pagex.Policy with every field optional so a file only
// overrides what it names.
type policyFile struct {
	ArticlePathMarker string   `yaml:"article_path_marker"`
	MinTitleLength    int      `yaml:"min_title_length"`
	PlaceholderTitle  string   `yaml:"placeholder_title"`
	AdKeywords        []string `yaml:"ad_keywords"`
	PromoHandles      []string `yaml:"promo_handles"`
	RequireSameHost   *bool    `yaml:"require_same_host"`
}

// LoadPolicy reads a policy override file and overlays it onto
// pagex.DefaultPolicy. Fields the file leaves unset keep their defaults.
func LoadPolicy(path string) (pagex.Policy, error) {
	policy := pagex.DefaultPolicy()

	data, err := os.ReadFile(path)
	if err != nil {
		return policy, pagex.Errorf(pagex.EINVALID, "reading policy file %s: %v", path, err)
	}

	var file policyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return policy, pagex.Errorf(pagex.EINVALID, "parsing policy file %s: %v", path, err)
	}

	if file.ArticlePathMarker != "" {
		policy.ArticlePathMarker = file.ArticlePathMarker
	}
	if file.MinTitleLength > 0 {
		policy.MinTitleLength = file.MinTitleLength
	}
	if file.PlaceholderTitle != "" {
		policy.PlaceholderTitle = file.PlaceholderTitle
	}
	if file.AdKeywords != nil {
		policy.AdKeywords = file.AdKeywords
	}
	if file.PromoHandles != nil {
		policy.PromoHandles = file.PromoHandles
	}
	if file.RequireSameHost != nil {
		policy.RequireSameHost = *file.RequireSameHost
	}

	return policy, nil
}
