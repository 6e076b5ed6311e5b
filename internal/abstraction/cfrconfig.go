package abstraction

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// CFRConfig identifies the CFR run a strategy came from. The evaluator only
// needs the name, which is a component of the strategy directory.
type CFRConfig struct {
	Name string `hcl:"name"`
}

// LoadCFRConfig reads and decodes a CFR configuration file.
func LoadCFRConfig(filename string) (*CFRConfig, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse CFR params %s: %s", filename, diags.Error())
	}

	var cc CFRConfig
	diags = gohcl.DecodeBody(file.Body, nil, &cc)
	if diags.HasErrors() {
		return nil, fmt.Errorf("decode CFR params %s: %s", filename, diags.Error())
	}
	if cc.Name == "" {
		return nil, fmt.Errorf("CFR params %s: name is required", filename)
	}
	return &cc, nil
}
