package layerdoc

import (
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"
)

// Load reads and parses a layer document, dispatching on the file
// extension: .yaml/.yml or .cue. The parsed document is validated; the
// first structural violation is returned (use Document.Validate for the
// full list).
func Load(path string) (*Document, error) {
	doc, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	if errs := doc.Validate(); len(errs) > 0 {
		return nil, errs[0]
	}
	return doc, nil
}

// ParseFile reads and parses a document without validating it. Callers
// that want every structural violation (not just the first) parse here
// and run Document.Validate themselves.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &DocError{Code: CodeNotFound, Message: fmt.Sprintf("document not found: %s", path), Err: err}
		}
		return nil, &DocError{Code: CodeNotFound, Message: fmt.Sprintf("reading %s: %v", path, err), Err: err}
	}

	var doc *Document
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		doc, err = ParseYAML(data)
	case ".cue":
		doc, err = ParseCUE(data, path)
	default:
		return nil, &DocError{
			Code:    CodeUnknownFormat,
			Message: fmt.Sprintf("unsupported document format %q (want .yaml, .yml or .cue)", filepath.Ext(path)),
		}
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// ParseYAML parses a YAML layer document. Structural validation is the
// caller's job (Load does it; direct callers use Document.Validate).
func ParseYAML(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &DocError{Code: CodeParse, Message: fmt.Sprintf("parsing YAML document: %v", err), Err: err}
	}
	if len(doc.Layers) == 0 {
		return nil, &DocError{Code: CodeParse, Message: "document declares no layers"}
	}
	return &doc, nil
}

// ParseCUE parses a CUE layer document. The document must export a
// `layers` list matching the shared schema; CUE positions are carried
// into errors where available.
func ParseCUE(data []byte, filename string) (*Document, error) {
	ctx := cuecontext.New()
	value := ctx.CompileBytes(data, cue.Filename(filename))
	if err := value.Err(); err != nil {
		return nil, &DocError{Code: CodeParse, Message: fmt.Sprintf("compiling CUE document: %v", err), Pos: value.Pos(), Err: err}
	}

	layersVal := value.LookupPath(cue.ParsePath("layers"))
	if !layersVal.Exists() {
		return nil, &DocError{Code: CodeParse, Message: "document declares no layers", Pos: value.Pos()}
	}

	var doc Document
	if err := layersVal.Decode(&doc.Layers); err != nil {
		return nil, &DocError{Code: CodeParse, Message: fmt.Sprintf("decoding layers: %v", err), Pos: layersVal.Pos(), Err: err}
	}
	if len(doc.Layers) == 0 {
		return nil, &DocError{Code: CodeParse, Message: "document declares no layers", Pos: layersVal.Pos()}
	}
	return &doc, nil
}
