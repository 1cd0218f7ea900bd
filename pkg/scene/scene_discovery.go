package scene

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Value accepted by -scene
	Name        string `json:"name"`        // Scene name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Type        string `json:"type"`        // "builtin" or "config"
	FilePath    string `json:"filePath"`    // Path to the JSON config (config type only)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

const builtinGroup = "Built-in Scenes"

var builtinInfo = map[string]SceneInfo{
	"simple": {
		Name:        "Simple Scene",
		Description: "Two cubes and a metallic sphere over a plane, lit by 1500K, 3000K and 6000K blackbodies",
	},
	"cube": {
		Name:        "Cube",
		Description: "Tilted Lambert cube with a child cube, one warm light",
	},
}

// ListConfigScenes scans dir for JSON scene configs.
// A missing directory yields an empty list.
func ListConfigScenes(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	var scenes []SceneInfo
	for _, filePath := range files {
		info, err := ParseSceneMetadata(filePath)
		if err != nil {
			// Skip unreadable configs, the rest may still be usable
			fmt.Printf("Warning: failed to parse metadata for %s: %v\n", filePath, err)
			continue
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})
	return scenes, nil
}

// ParseSceneMetadata reads only the name, description and group of a scene
// config, falling back to the file name
func ParseSceneMetadata(filePath string) (SceneInfo, error) {
	nameWithoutExt := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	info := SceneInfo{
		ID:       filePath,
		Name:     titleCase(nameWithoutExt),
		Group:    "Scene Configs",
		Type:     "config",
		FilePath: filePath,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return info, err
	}
	var meta struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Group       string `json:"group"`
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return info, err
	}

	if meta.Name != "" {
		info.Name = meta.Name
	}
	if meta.Group != "" {
		info.Group = meta.Group
	}
	info.Description = meta.Description
	return info, nil
}

// ListAllScenes returns the built-in scenes followed by the configs in dir,
// grouped by category with the built-in group first
func ListAllScenes(dir string) ([]SceneGroup, error) {
	var all []SceneInfo
	for _, id := range BuiltinSceneNames() {
		info := builtinInfo[id]
		info.ID = id
		info.Group = builtinGroup
		info.Type = "builtin"
		if info.Name == "" {
			info.Name = titleCase(id)
		}
		all = append(all, info)
	}

	configs, err := ListConfigScenes(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list scene configs: %w", err)
	}
	all = append(all, configs...)

	groupMap := make(map[string][]SceneInfo)
	var groupNames []string
	for _, info := range all {
		if _, seen := groupMap[info.Group]; !seen && info.Group != builtinGroup {
			groupNames = append(groupNames, info.Group)
		}
		groupMap[info.Group] = append(groupMap[info.Group], info)
	}
	sort.Strings(groupNames)

	groups := []SceneGroup{{Name: builtinGroup, Scenes: groupMap[builtinGroup]}}
	for _, name := range groupNames {
		groups = append(groups, SceneGroup{Name: name, Scenes: groupMap[name]})
	}
	return groups, nil
}

// LoadScene resolves a -scene value: a built-in ID or a path to a JSON config
func LoadScene(name string) (*Scene, error) {
	if s, err := NewBuiltinScene(name); err == nil {
		return s, nil
	}
	if strings.EqualFold(filepath.Ext(name), ".json") {
		cfg, err := LoadConfig(name)
		if err != nil {
			return nil, err
		}
		return cfg.Build()
	}
	return nil, fmt.Errorf("unknown scene %q (want one of %s or a .json config)", name, strings.Join(BuiltinSceneNames(), ", "))
}

// LoadSceneWithin loads a built-in scene by name, or a config that lies under
// root. Every mesh file the config references must lie under root too.
func LoadSceneWithin(name, root string) (*Scene, error) {
	if s, err := NewBuiltinScene(name); err == nil {
		return s, nil
	}
	if !strings.EqualFold(filepath.Ext(name), ".json") {
		return nil, fmt.Errorf("unknown scene %q (want one of %s or a config under %s)", name, strings.Join(BuiltinSceneNames(), ", "), root)
	}
	if !insideDir(root, name) {
		return nil, fmt.Errorf("scene config %q is outside %s", name, root)
	}

	cfg, err := LoadConfig(name)
	if err != nil {
		return nil, err
	}
	for _, file := range cfg.MeshFiles() {
		if !insideDir(root, file) {
			return nil, fmt.Errorf("%s: mesh file %q is outside %s", name, file, root)
		}
	}
	return cfg.Build()
}

// insideDir reports whether path names something strictly below root
func insideDir(root, path string) bool {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return false
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(absRoot, absPath)
	if err != nil || rel == "." || rel == ".." {
		return false
	}
	return !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// titleCase converts a filename-style string to title case
// e.g., "cornell-empty" -> "Cornell Empty"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
