package scriptdef

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"scriptctl/internal/workspace"
)

// ManifestSearchPath is an ordered list of directories to search for
// definition manifests. Earlier entries take priority over later ones.
type ManifestSearchPath []string

// DefaultSearchPath returns a 3-tier search path (highest priority first):
//  1. the project .sctl directory (configDir)
//  2. ~/.sctl/ (user-level)
//  3. $SCTL_ROOT/.sctl/ (orchestrator-level)
func DefaultSearchPath(configDir string) ManifestSearchPath {
	var path ManifestSearchPath

	// Project-level (highest priority).
	path = append(path, configDir)

	// User-level
	if home, err := os.UserHomeDir(); err == nil {
		path = append(path, filepath.Join(home, workspace.DirName))
	}

	// Orchestrator-level
	if root := os.Getenv(workspace.EnvRoot); root != "" {
		path = append(path, filepath.Join(root, workspace.DirName))
	}

	return path
}

// Manifest declares user-defined script definitions for one directory tier.
type Manifest struct {
	Definitions []ManifestDefinition `yaml:"definitions" toml:"definitions"`
}

// ManifestDefinition declares one definition: which engine interprets its
// scripts and which file patterns it claims.
type ManifestDefinition struct {
	Name      string   `yaml:"name" toml:"name"`
	ClassName string   `yaml:"className" toml:"className"`
	Engine    string   `yaml:"engine" toml:"engine"` // js, expr, or cel
	Patterns  []string `yaml:"patterns" toml:"patterns"`
}

// engineFor maps a manifest engine name to a built-in definition that
// supplies evaluation for manifest-declared definitions.
func engineFor(name string) (Definition, error) {
	switch name {
	case "js":
		return NewJSDefinition(), nil
	case "expr":
		return NewExprDefinition(), nil
	case "cel":
		return NewCELDefinition(), nil
	default:
		return nil, fmt.Errorf("scriptdef: unknown engine %q (want js, expr, or cel)", name)
	}
}

// manifestDefinition is a user-declared definition delegating evaluation
// to one of the built-in engines.
type manifestDefinition struct {
	name      string
	className string
	patterns  []string
	engine    Definition
}

func (d *manifestDefinition) DefinitionName() string { return d.name }

func (d *manifestDefinition) ClassName() string { return d.className }

func (d *manifestDefinition) Matches(fileName string) bool { return matchAny(d.patterns, fileName) }

func (d *manifestDefinition) Eval(src string, env map[string]any) (any, error) {
	return d.engine.Eval(src, env)
}

// LoadManifests reads definitions.yaml and definitions.toml from each
// directory in path. The file extension determines the parser. All tiers
// contribute; when two manifests declare the same class name, the earlier
// tier wins.
func LoadManifests(path ManifestSearchPath) ([]Definition, error) {
	fileNames := []string{"definitions.yaml", "definitions.toml"}

	var defs []Definition
	seen := make(map[string]bool)

	for _, dir := range path {
		for _, fileName := range fileNames {
			filePath := filepath.Join(dir, fileName)
			data, err := os.ReadFile(filePath)
			if err != nil {
				if os.IsNotExist(err) {
					continue
				}
				return nil, fmt.Errorf("reading manifest %s: %w", filePath, err)
			}

			manifest := &Manifest{}
			if strings.HasSuffix(fileName, ".yaml") {
				if err := yaml.Unmarshal(data, manifest); err != nil {
					return nil, fmt.Errorf("parsing manifest %s: %w", filePath, err)
				}
			} else {
				if err := toml.Unmarshal(data, manifest); err != nil {
					return nil, fmt.Errorf("parsing manifest %s: %w", filePath, err)
				}
			}

			for _, decl := range manifest.Definitions {
				def, err := fromDeclaration(decl)
				if err != nil {
					return nil, fmt.Errorf("manifest %s: %w", filePath, err)
				}
				if seen[def.ClassName()] {
					continue
				}
				seen[def.ClassName()] = true
				defs = append(defs, def)
			}
		}
	}

	return defs, nil
}

func fromDeclaration(decl ManifestDefinition) (Definition, error) {
	if decl.Name == "" {
		return nil, fmt.Errorf("definition name is required")
	}
	engine, err := engineFor(decl.Engine)
	if err != nil {
		return nil, err
	}

	className := decl.ClassName
	if className == "" {
		className = "scriptctl/scriptdef.Manifest/" + decl.Name
	}

	return &manifestDefinition{
		name:      decl.Name,
		className: className,
		patterns:  decl.Patterns,
		engine:    engine,
	}, nil
}
