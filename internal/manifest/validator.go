package manifest

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/guillaumearm/create-node-project/internal/project"
)

//go:embed schema/*.schema.json
var schemaFS embed.FS

const (
	packageSchema = "package.schema.json"
	cliSchema     = "cli.schema.json"
)

var (
	compiled    map[string]*jsonschema.Schema
	compileOnce sync.Once
	compileErr  error
	printer     = message.NewPrinter(language.English)
)

// ValidationResult contains the outcome of a schema validation.
type ValidationResult struct {
	Valid  bool
	Issues []ValidationIssue
}

// ValidationIssue represents a single validation error.
type ValidationIssue struct {
	Path    string // Instance location (e.g., "/name", "/bin/mytool")
	Message string // Human-readable error message
	Keyword string // Schema keyword that failed
}

// getSchemas compiles the embedded JSON schemas once.
func getSchemas() (map[string]*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		for _, name := range []string{packageSchema, cliSchema} {
			data, err := schemaFS.ReadFile("schema/" + name)
			if err != nil {
				compileErr = fmt.Errorf("reading schema %s: %w", name, err)
				return
			}
			doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
			if err != nil {
				compileErr = fmt.Errorf("unmarshaling schema %s: %w", name, err)
				return
			}
			if err := c.AddResource(name, doc); err != nil {
				compileErr = fmt.Errorf("adding schema resource %s: %w", name, err)
				return
			}
		}

		compiled = make(map[string]*jsonschema.Schema, 2)
		for _, name := range []string{packageSchema, cliSchema} {
			s, err := c.Compile(name)
			if err != nil {
				compileErr = fmt.Errorf("compiling schema %s: %w", name, err)
				return
			}
			compiled[name] = s
		}
	})
	return compiled, compileErr
}

// Validate checks a rewritten manifest against the schema of its project
// type. cli projects are also checked for cliName and bin naming the
// project itself, which a schema cannot express.
// The error return is for schema compilation or encoding failures.
func Validate(m *Manifest, typ project.Type) (*ValidationResult, error) {
	schemas, err := getSchemas()
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	schema := schemas[packageSchema]
	if typ.IsCLI() {
		schema = schemas[cliSchema]
	}

	data, err := m.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("encoding manifest: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("preparing JSON for validation: %w", err)
	}

	var issues []ValidationIssue
	if err := schema.Validate(inst); err != nil {
		validationErr, ok := err.(*jsonschema.ValidationError)
		if !ok {
			return nil, fmt.Errorf("unexpected validation error type: %w", err)
		}
		issues = extractIssues(validationErr)
	}

	if typ.IsCLI() {
		issues = append(issues, checkCLIIdentity(m)...)
	}

	return &ValidationResult{Valid: len(issues) == 0, Issues: issues}, nil
}

// ValidateFile reads a manifest file and validates it.
func ValidateFile(path string, typ project.Type) (*ValidationResult, error) {
	m, err := Load(path)
	if err != nil {
		return nil, err
	}
	return Validate(m, typ)
}

func checkCLIIdentity(m *Manifest) []ValidationIssue {
	id, err := m.Identity()
	if err != nil {
		// type mismatches are already reported by the schema
		return nil
	}

	var issues []ValidationIssue
	if id.CLIName != "" && id.CLIName != id.Name {
		issues = append(issues, ValidationIssue{
			Path:    "/cliName",
			Message: fmt.Sprintf("must equal name %q, got %q", id.Name, id.CLIName),
			Keyword: "cliName",
		})
	}

	entries, err := id.BinEntries()
	if err != nil || len(entries) == 0 {
		return issues
	}
	if _, ok := entries[id.Name]; !ok {
		issues = append(issues, ValidationIssue{
			Path:    "/bin",
			Message: fmt.Sprintf("must declare an executable named %q", id.Name),
			Keyword: "bin",
		})
	}
	return issues
}

// extractIssues walks the ValidationError tree and returns leaf-level issues.
func extractIssues(ve *jsonschema.ValidationError) []ValidationIssue {
	var issues []ValidationIssue
	collectValidationIssues(ve, &issues)

	if len(issues) == 0 {
		return []ValidationIssue{{
			Message: ve.Error(),
		}}
	}
	return deduplicateIssues(issues)
}

// collectValidationIssues recursively walks the error tree to find leaf errors
// with specific property information.
func collectValidationIssues(ve *jsonschema.ValidationError, issues *[]ValidationIssue) {
	if len(ve.Causes) == 0 {
		path := "/" + strings.Join(ve.InstanceLocation, "/")
		if len(ve.InstanceLocation) == 0 {
			path = ""
		}

		keyword := ""
		if ve.ErrorKind != nil {
			kwPath := ve.ErrorKind.KeywordPath()
			if len(kwPath) > 0 {
				keyword = kwPath[len(kwPath)-1]
			}
		}

		msg := ""
		if ve.ErrorKind != nil {
			msg = ve.ErrorKind.LocalizedString(printer)
		}

		// "not" reports an empty keyword path.
		if _, ok := ve.ErrorKind.(*kind.Not); ok {
			keyword = "not"
		}

		// Skip generic container errors that aren't informative.
		if keyword == "allOf" || keyword == "$ref" || keyword == "" {
			return
		}

		// Template-only fields are declared with an empty "not" schema.
		if keyword == "not" {
			msg = "template-only field must be removed"
		}

		*issues = append(*issues, ValidationIssue{
			Path:    path,
			Message: msg,
			Keyword: keyword,
		})
		return
	}

	for _, cause := range ve.Causes {
		collectValidationIssues(cause, issues)
	}
}

// deduplicateIssues removes duplicate issues (same path + keyword + message).
func deduplicateIssues(issues []ValidationIssue) []ValidationIssue {
	seen := make(map[string]bool)
	var result []ValidationIssue
	for _, issue := range issues {
		key := issue.Path + "|" + issue.Keyword + "|" + issue.Message
		if !seen[key] {
			seen[key] = true
			result = append(result, issue)
		}
	}
	return result
}
