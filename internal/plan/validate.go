package plan

import (
	_ "embed"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

//go:embed schema.cue
var schemaCUE string

// Validation error codes (E120-E129)
const (
	ErrSchemaViolation = "E120" // value outside the CUE schema
	ErrNoGroups        = "E121" // at least one group required
	ErrDuplicateLabel  = "E122" // group labels must be unique
	ErrSchemaInvalid   = "E129" // embedded schema failed to compile
)

// ValidationError represents a plan validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Validate checks a plan against the schema and returns all errors found.
// A nil result means every group can be computed.
func Validate(p *Plan) []ValidationError {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return []ValidationError{{Field: "schema", Message: err.Error(), Code: ErrSchemaInvalid}}
	}

	// Encode a copy so a nil group list becomes [] rather than null.
	encoded := *p
	if encoded.Groups == nil {
		encoded.Groups = []Group{}
	}

	var errs []ValidationError

	value := ctx.Encode(&encoded).Unify(schema.LookupPath(cue.ParsePath("#Plan")))
	if err := value.Validate(cue.Concrete(true)); err != nil {
		for _, e := range cueerrors.Errors(err) {
			format, args := e.Msg()
			errs = append(errs, ValidationError{
				Field:   fieldPath(e.Path()),
				Message: fmt.Sprintf(format, args...),
				Code:    ErrSchemaViolation,
			})
		}
	}

	if len(p.Groups) == 0 {
		errs = append(errs, ValidationError{
			Field:   "groups",
			Message: "at least one group is required",
			Code:    ErrNoGroups,
		})
	}

	seen := make(map[string]int, len(p.Groups))
	for i, g := range p.Groups {
		if first, ok := seen[g.Label]; ok {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("groups.%d.label", i),
				Message: fmt.Sprintf("duplicate label %q (first at groups.%d)", g.Label, first),
				Code:    ErrDuplicateLabel,
			})
			continue
		}
		seen[g.Label] = i
	}

	return errs
}

// fieldPath joins a CUE error path, dropping any leading definition label.
func fieldPath(path []string) string {
	for len(path) > 0 && strings.HasPrefix(path[0], "#") {
		path = path[1:]
	}
	return strings.Join(path, ".")
}
