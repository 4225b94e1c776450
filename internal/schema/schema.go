// Package schema is the reliability boundary around LLM output: every stage
// response is an opaque string until it parses as JSON and validates against
// the stage's schema. Violations are returned as strings so the pipeline can
// feed them back into the regeneration prompt.
package schema

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed outline.schema.json
var outlineSchemaJSON string

//go:embed atomset.schema.json
var atomSetSchemaJSON string

//go:embed script.schema.json
var scriptSchemaJSON string

// defaultPrinter formats schema validation error messages
var defaultPrinter = message.NewPrinter(language.English)

var (
	outlineSchema *jsonschema.Schema
	atomSetSchema *jsonschema.Schema
	scriptSchema  *jsonschema.Schema
)

func init() {
	outlineSchema = mustCompile(outlineSchemaJSON, "outline.schema.json")
	atomSetSchema = mustCompile(atomSetSchemaJSON, "atomset.schema.json")
	scriptSchema = mustCompile(scriptSchemaJSON, "script.schema.json")
}

func mustCompile(raw string, name string) *jsonschema.Schema {
	var doc any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		panic(fmt.Sprintf("parse embedded %s: %v", name, err))
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, doc); err != nil {
		panic(fmt.Sprintf("add %s resource: %v", name, err))
	}

	sch, err := compiler.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("compile %s: %v", name, err))
	}
	return sch
}

// Sanitize strips markdown code fences some models wrap JSON output in
func Sanitize(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// ValidateOutlineJSON validates raw bytes against the outline schema
func ValidateOutlineJSON(data []byte) []string {
	return validateJSONBytes(outlineSchema, data)
}

// ValidateAtomSetJSON validates raw bytes against the teaching-atom schema
func ValidateAtomSetJSON(data []byte) []string {
	return validateJSONBytes(atomSetSchema, data)
}

// ValidateScriptJSON validates raw bytes against the dialogue-script schema
func ValidateScriptJSON(data []byte) []string {
	return validateJSONBytes(scriptSchema, data)
}

func validateJSONBytes(sch *jsonschema.Schema, data []byte) []string {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(string(data)))
	if err != nil {
		return []string{fmt.Sprintf("JSON parse error: %v", err)}
	}

	if err := sch.Validate(doc); err == nil {
		return nil
	} else if ve, ok := err.(*jsonschema.ValidationError); ok {
		var errs []string
		collectErrors(ve, &errs)
		return errs
	} else {
		return []string{fmt.Sprintf("schema: %v", err)}
	}
}

func collectErrors(ve *jsonschema.ValidationError, errs *[]string) {
	if len(ve.Causes) == 0 {
		loc := "/"
		if len(ve.InstanceLocation) > 0 {
			loc = "/" + strings.Join(ve.InstanceLocation, "/")
		}
		*errs = append(*errs, fmt.Sprintf("%s: %s", loc, ve.ErrorKind.LocalizedString(defaultPrinter)))
		return
	}
	for _, c := range ve.Causes {
		collectErrors(c, errs)
	}
}
