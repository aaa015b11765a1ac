package sources

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// defaultDenylist excludes taxonomic classes the explore feature is not
// interested in. The feature targets charismatic vertebrates.
var defaultDenylist = []string{
	"Fungi",
	"Bacteria",
	"Protista",
	"Insecta",
	"Arachnida",
	"Mollusca",
	"Annelida",
	"Nematoda",
	"Platyhelminthes",
	"Plankton",
	"Cestoda",
	"Trematoda",
	"Gastropoda",
	"Bivalvia",
}

// denylistFile is the YAML shape of an override file.
type denylistFile struct {
	Classes []string `yaml:"classes"`
}

// loadDenylist returns the excluded-class set, reading the override file
// when a path is configured.
func loadDenylist(path string) (map[string]struct{}, error) {
	classes := defaultDenylist

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read taxon denylist: %w", err)
		}
		var file denylistFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse taxon denylist: %w", err)
		}
		if len(file.Classes) > 0 {
			classes = file.Classes
		}
	}

	set := make(map[string]struct{}, len(classes))
	for _, class := range classes {
		set[class] = struct{}{}
	}
	return set, nil
}
