// Package driver runs one generation pass: read a schema, render both
// documents and write them atomically.
package driver

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"boxgen/internal/diagnostic"
	"boxgen/internal/gen"
	"boxgen/internal/schema"
)

// StdinName is the input name that reads the schema from standard input.
const StdinName = "-"

// Driver ties schema loading, generation and output together.
type Driver struct {
	config gen.GeneratorConfig
	log    *zap.SugaredLogger
	stdin  io.Reader
}

// New creates a Driver. stdin is read when the input name is StdinName.
func New(config gen.GeneratorConfig, log *zap.SugaredLogger, stdin io.Reader) *Driver {
	return &Driver{config: config, log: log, stdin: stdin}
}

// Load reads and validates the schema named by input, logging every warning.
func (d *Driver) Load(input string) (*schema.TypeSchema, error) {
	var (
		s        *schema.TypeSchema
		warnings []diagnostic.Diagnostic
		err      error
	)

	if input == StdinName {
		s, warnings, err = schema.Read(d.stdin)
	} else {
		s, warnings, err = schema.LoadFile(input)
	}

	for _, w := range warnings {
		d.log.Warnw(w.Message, "input", input, "code", w.Code, "field", w.Field)
	}

	if err != nil {
		return nil, err
	}

	d.log.Debugw("schema loaded", "input", input, "type", s.Name, "fields", len(s.Fields))

	return s, nil
}

// Generate renders the schema named by input and writes both documents to
// outputDir. It returns the written paths.
func (d *Driver) Generate(input, outputDir string) ([]string, error) {
	s, err := d.Load(input)
	if err != nil {
		return nil, err
	}

	art, err := gen.NewGenerator(d.config).Generate(s)
	if err != nil {
		return nil, errors.Wrapf(err, "generating %s", s.Name)
	}

	written, err := gen.WriteFiles(art.Files(), outputDir)
	if err != nil {
		return nil, err
	}

	for _, path := range written {
		d.log.Infow("wrote file", "path", path)
	}

	return written, nil
}

// Check validates the schema named by input and prints the strategy chosen
// for every field.
func (d *Driver) Check(input string, out io.Writer) error {
	s, err := d.Load(input)
	if err != nil {
		return err
	}

	frags, err := gen.NewGenerator(d.config).Fragments(s)
	if err != nil {
		return errors.Wrapf(err, "checking %s", s.Name)
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "%s: %d field(s), %d setter(s), constructor %s, from_internal %t, to_internal %t\n",
		s.Name, len(s.Fields), len(s.Setters()), visibility(s.PublicConstructor()),
		s.GenerateFromExternal, s.GenerateToExternal)
	fmt.Fprintln(tw, "FIELD\tKIND\tSTORAGE\tOWNERSHIP\tNULLABLE\tSETTER")

	for _, f := range frags {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%t\t%t\n",
			f.Names.Snake, f.Field.Kind, f.Storage, f.Owner, f.Field.Nullable, f.Field.HasSetter)
	}

	return errors.Wrap(tw.Flush(), "writing summary")
}

func visibility(public bool) string {
	if public {
		return "public"
	}

	return "internal"
}
