package quiz

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"
)

// CurrentVersion is the quiz format version this build writes.
const CurrentVersion = "v1.0.0"

// ErrUnsupportedVersion is returned for quiz files from a different major
// format version.
var ErrUnsupportedVersion = errors.New("unsupported quiz version")

const schemaURL = "schema://quiz.json"

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		raw, err := json.Marshal(SchemaDefinition)
		if err != nil {
			compileErr = fmt.Errorf("marshal quiz schema: %w", err)
			return
		}
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
		if err != nil {
			compileErr = fmt.Errorf("parse quiz schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add quiz schema: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}

// Parse decodes and checks a quiz payload. The payload must match
// SchemaDefinition, carry a compatible version (when present) and pass
// validators, or DefaultValidators when none are given.
func Parse(data []byte, validators ...Validator) (*Quiz, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("invalid quiz JSON: %w", err)
	}
	sch, err := compiledSchema()
	if err != nil {
		return nil, err
	}
	if err := sch.Validate(doc); err != nil {
		return nil, fmt.Errorf("quiz does not match schema: %w", err)
	}

	var q Quiz
	if err := json.Unmarshal(data, &q); err != nil {
		return nil, fmt.Errorf("decode quiz: %w", err)
	}
	if err := checkVersion(&q); err != nil {
		return nil, err
	}

	if len(validators) == 0 {
		validators = DefaultValidators()
	}
	if err := Validate(&q, validators...); err != nil {
		return nil, err
	}
	return &q, nil
}

// Load reads and parses a quiz file.
func Load(path string) (*Quiz, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read quiz: %w", err)
	}
	return Parse(data)
}

// Marshal encodes q as indented JSON, stamping the current version when
// none is set.
func Marshal(q *Quiz) ([]byte, error) {
	out := *q
	if out.Version == "" {
		out.Version = CurrentVersion
	}
	return json.MarshalIndent(out, "", "  ")
}

// checkVersion normalizes q.Version to canonical semver and rejects other
// major versions. An empty version is treated as current.
func checkVersion(q *Quiz) error {
	if q.Version == "" {
		q.Version = CurrentVersion
		return nil
	}
	v := q.Version
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return fmt.Errorf("%w: %q is not a semantic version", ErrUnsupportedVersion, q.Version)
	}
	if semver.Major(v) != semver.Major(CurrentVersion) {
		return fmt.Errorf("%w: %s (want %s.x)", ErrUnsupportedVersion, q.Version, semver.Major(CurrentVersion))
	}
	q.Version = semver.Canonical(v)
	return nil
}
