package conan

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// BuildInfoFile is the document name conan's json generator writes into the
// install directory.
const BuildInfoFile = "conanbuildinfo.json"

// Conanfiles lists the file names conan recognizes as a project recipe.
var Conanfiles = []string{"conanfile.py", "conanfile.txt"}

// BuildInfo is the conanbuildinfo.json document, reduced to the fields this
// tool consumes.
type BuildInfo struct {
	Dependencies []Dependency `json:"dependencies"`
}

// Dependency describes one resolved conan package.
type Dependency struct {
	Name         string   `json:"name"`
	IncludePaths []string `json:"include_paths"`
	BinPaths     []string `json:"bin_paths"`
	Defines      []string `json:"defines"`
}

// ReadBuildInfo parses the conanbuildinfo.json document at path.
func ReadBuildInfo(path string) (*BuildInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read build info: %w", err)
	}

	var info BuildInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &info, nil
}

// FindConanfile returns the path of the conanfile within dir, or an error
// when dir holds neither recipe variant.
func FindConanfile(dir string) (string, error) {
	for _, name := range Conanfiles {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no conanfile.py or conanfile.txt in %s", dir)
}
