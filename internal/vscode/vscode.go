// Package vscode assembles and writes the generated .vscode documents.
// Both files are fully regenerated on every run, never merged with prior
// contents.
package vscode

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DirName is the editor configuration directory within a project.
	DirName = ".vscode"

	// PropertiesFile holds the C/C++ extension's IntelliSense settings.
	PropertiesFile = "c_cpp_properties.json"

	// SettingsFile holds workspace settings; only the clang-format path is
	// managed here.
	SettingsFile = "settings.json"

	configurationName = "conan"
)

// Configuration is one entry of the c_cpp_properties.json configurations
// list.
type Configuration struct {
	Name         string   `json:"name"`
	IncludePath  []string `json:"includePath"`
	Defines      []string `json:"defines"`
	CompilerPath string   `json:"compilerPath,omitempty"`
}

// Properties is the c_cpp_properties.json document.
type Properties struct {
	Configurations []Configuration `json:"configurations"`
}

// Settings is the settings.json document.
type Settings struct {
	ClangFormatPath string `json:"C_Cpp.clang_format_path"`
}

// NewProperties builds a single-configuration properties document named
// "conan". compilerPath may be empty; it is omitted from the output then.
func NewProperties(includes, defines []string, compilerPath string) *Properties {
	if includes == nil {
		includes = []string{}
	}
	if defines == nil {
		defines = []string{}
	}
	return &Properties{
		Configurations: []Configuration{{
			Name:         configurationName,
			IncludePath:  includes,
			Defines:      defines,
			CompilerPath: compilerPath,
		}},
	}
}

// Write regenerates both documents under <projectDir>/.vscode, creating the
// directory when missing, and returns the paths it wrote.
func Write(projectDir string, props *Properties, settings *Settings) ([]string, error) {
	dir := filepath.Join(projectDir, DirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dir, err)
	}

	propertiesPath := filepath.Join(dir, PropertiesFile)
	if err := writeJSON(propertiesPath, props); err != nil {
		return nil, err
	}

	settingsPath := filepath.Join(dir, SettingsFile)
	if err := writeJSON(settingsPath, settings); err != nil {
		return nil, err
	}

	return []string{propertiesPath, settingsPath}, nil
}

func writeJSON(path string, doc any) error {
	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
