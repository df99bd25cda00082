package indexdefinitions

import (
	"fmt"
	"io"

	"go.mongodb.org/mongo-driver/bson"
)

type ExtJSONMode string

const (
	ExtJSONModeRelaxed   ExtJSONMode = "relaxed"
	ExtJSONModeCanonical ExtJSONMode = "canonical"
)

func (mode ExtJSONMode) IsValid() bool {
	switch mode {
	case ExtJSONModeRelaxed, ExtJSONModeCanonical:
		return true
	default:
		return false
	}
}

const prettyIndent = "    "

type ExportOptions struct {
	Mode   ExtJSONMode
	Pretty bool
}

// IndexExporter writes index definition documents as the elements of a
// single JSON array.
type IndexExporter struct {
	writer    io.Writer
	canonical bool
	pretty    bool
	counter   int
}

func NewIndexExporter(
	writer io.Writer,
	opts ExportOptions,
) (*IndexExporter, error) {
	if writer == nil {
		return nil, fmt.Errorf("writer not initialized")
	}

	mode := opts.Mode
	if mode == "" {
		mode = ExtJSONModeRelaxed
	}
	if !mode.IsValid() {
		return nil, fmt.Errorf("unsupported extended JSON mode: %s", opts.Mode)
	}

	ie := &IndexExporter{
		writer:    writer,
		canonical: mode == ExtJSONModeCanonical,
		pretty:    opts.Pretty,
	}

	if err := ie.init(); err != nil {
		return nil, err
	}

	return ie, nil
}

func (ie *IndexExporter) init() error {
	_, err := ie.writer.Write([]byte("["))
	return err
}

func (ie *IndexExporter) WriteIndex(indexDef bson.Raw) error {
	rV, err := ie.marshal(indexDef)
	if err != nil {
		return err
	}

	sep := ""
	if ie.counter > 0 {
		sep = ","
	}
	if ie.pretty {
		sep += "\n" + prettyIndent
	}
	if sep != "" {
		if _, err = ie.writer.Write([]byte(sep)); err != nil {
			return err
		}
	}

	if _, err = ie.writer.Write(rV); err != nil {
		return err
	}

	ie.counter += 1
	return nil
}

func (ie *IndexExporter) marshal(indexDef bson.Raw) ([]byte, error) {
	if ie.pretty {
		return bson.MarshalExtJSONIndent(indexDef, ie.canonical, false, prettyIndent, prettyIndent)
	}
	return bson.MarshalExtJSON(indexDef, ie.canonical, false)
}

// Count returns the number of index definitions written so far.
func (ie *IndexExporter) Count() int {
	return ie.counter
}

func (ie *IndexExporter) Finish() error {
	closing := "]"
	if ie.pretty && ie.counter > 0 {
		closing = "\n]"
	}
	_, err := ie.writer.Write([]byte(closing))
	return err
}
