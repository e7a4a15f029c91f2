package wisdom

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Master is one mentor figure within a content module.
type Master struct {
	Name           string   `json:"name"`
	Expertise      string   `json:"expertise"`
	KeyPrinciples  []string `json:"key_principles"`
	DailyPractices []string `json:"daily_practices"`
}

// ModuleContent is the static corpus for one focus module.
type ModuleContent struct {
	Masters         []Master `json:"masters"`
	DailyInsights   []string `json:"daily_insights"`
	SkillChallenges []string `json:"skill_challenges"`
}

// Registry resolves a module name to its content. Implementations return
// (nil, nil) for modules that simply do not exist.
type Registry interface {
	LoadModule(name string) (*ModuleContent, error)
}

// DirRegistry loads <dir>/<name>_masters.json files, memoizing each module
// for the process lifetime.
type DirRegistry struct {
	dir  string
	memo map[string]*ModuleContent
}

func NewDirRegistry(dir string) *DirRegistry {
	return &DirRegistry{dir: dir, memo: make(map[string]*ModuleContent)}
}

func (r *DirRegistry) LoadModule(name string) (*ModuleContent, error) {
	if mc, ok := r.memo[name]; ok {
		return mc, nil
	}

	data, err := os.ReadFile(filepath.Join(r.dir, name+"_masters.json"))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load module %s: %w", name, err)
	}

	var mc ModuleContent
	if err := json.Unmarshal(data, &mc); err != nil {
		return nil, fmt.Errorf("load module %s: %w", name, err)
	}
	r.memo[name] = &mc
	return &mc, nil
}

// StaticRegistry serves modules from a fixed in-memory map.
type StaticRegistry map[string]*ModuleContent

func (r StaticRegistry) LoadModule(name string) (*ModuleContent, error) {
	return r[name], nil
}
