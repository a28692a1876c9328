// Package configs loads the run configuration of the handheld tools from CUE
// files.
package configs

import (
	"fmt"
	"os"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// Schema constrains every configuration file and supplies the defaults.
const Schema = `
registers: [=~"^.$"]: int
registers: X: int | *1

signal: close({
	register: =~"^.$" | *"X"
	offset:   int & >=0 | *20
	period:   int | *40
})

crt: close({
	register: =~"^.$" | *"X"
	width:    int | *40
	radius:   int | *1
	strict:   bool | *false
})
`

// Loader unifies configuration files with the schema.
// Files are read once, on first use.
type Loader struct {
	getValue func() (cue.Value, error)
}

// NewLoader creates a loader for the given CUE files. With no files, the
// loader yields the schema defaults.
func NewLoader(filePaths ...string) Loader {
	return Loader{
		getValue: sync.OnceValues(func() (value cue.Value, err error) {
			ctx := cuecontext.New()

			value = ctx.CompileString("close({"+Schema+"})", cue.Filename("schema.cue"))
			if err = value.Err(); err != nil {
				return
			}

			for _, filePath := range filePaths {
				var content []byte
				content, err = os.ReadFile(filePath)
				if err != nil {
					return
				}

				file := ctx.CompileBytes(content, cue.Filename(filePath))
				if err = file.Err(); err != nil {
					return
				}

				value = value.Unify(file)
				if err = value.Validate(); err != nil {
					err = fmt.Errorf("%v: %w", filePath, err)
					return
				}
			}

			err = value.Validate(cue.Concrete(true))
			return
		}),
	}
}

// Assign decodes the value at a CUE path into target.
func (l Loader) Assign(path string, target any) error {
	value, err := l.getValue()
	if err != nil {
		return err
	}

	value = value.LookupPath(cue.ParsePath(path))
	if err := value.Err(); err != nil {
		return err
	}

	return value.Decode(target)
}

// Config decodes the complete configuration.
func (l Loader) Config() (cfg Config, err error) {
	value, err := l.getValue()
	if err != nil {
		return
	}

	err = value.Decode(&cfg)
	return
}
