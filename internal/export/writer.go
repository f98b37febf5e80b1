package export

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/cotstudio/cot/internal/api"
)

// Writer encodes annotation pages incrementally. Write may be called once
// per page; Close emits any trailing structure the encoding needs.
type Writer interface {
	Write(annotations []api.Annotation) error
	Close() error
}

// NewWriter builds the Writer for a validated format.
func NewWriter(format Format, out io.Writer) (Writer, error) {
	switch format {
	case FormatJSON:
		return &jsonWriter{out: out}, nil
	case FormatNDJSON:
		return &ndjsonWriter{enc: json.NewEncoder(out)}, nil
	case FormatYAML:
		return &yamlWriter{out: out}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// jsonWriter emits a single pretty-printed JSON array, element by element.
type jsonWriter struct {
	out   io.Writer
	wrote bool
}

func (w *jsonWriter) Write(annotations []api.Annotation) error {
	for i := range annotations {
		data, err := json.MarshalIndent(&annotations[i], "  ", "  ")
		if err != nil {
			return fmt.Errorf("encoding annotation: %w", err)
		}

		prefix := ",\n  "
		if !w.wrote {
			prefix = "[\n  "
			w.wrote = true
		}
		if _, err := io.WriteString(w.out, prefix); err != nil {
			return err
		}
		if _, err := w.out.Write(data); err != nil {
			return err
		}
	}
	return nil
}

func (w *jsonWriter) Close() error {
	if !w.wrote {
		_, err := io.WriteString(w.out, "[]\n")
		return err
	}
	_, err := io.WriteString(w.out, "\n]\n")
	return err
}

// ndjsonWriter emits one JSON object per line.
type ndjsonWriter struct {
	enc *json.Encoder
}

func (w *ndjsonWriter) Write(annotations []api.Annotation) error {
	for i := range annotations {
		if err := w.enc.Encode(&annotations[i]); err != nil {
			return fmt.Errorf("encoding annotation: %w", err)
		}
	}
	return nil
}

func (w *ndjsonWriter) Close() error { return nil }

// yamlWriter emits one top-level YAML sequence. Marshalling each page as
// its own slice keeps the output a single valid list, since top-level
// sequence chunks concatenate cleanly.
type yamlWriter struct {
	out   io.Writer
	wrote bool
}

func (w *yamlWriter) Write(annotations []api.Annotation) error {
	if len(annotations) == 0 {
		return nil
	}

	data, err := yaml.Marshal(annotations)
	if err != nil {
		return fmt.Errorf("encoding annotations: %w", err)
	}
	if _, err := w.out.Write(data); err != nil {
		return err
	}
	w.wrote = true
	return nil
}

func (w *yamlWriter) Close() error {
	if !w.wrote {
		_, err := io.WriteString(w.out, "[]\n")
		return err
	}
	return nil
}
