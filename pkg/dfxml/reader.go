package dfxml

import (
	"encoding/xml"
	"io"
)

// ReadReport parses a report produced by Writer, returning the source
// image description and every file object in document order.
func ReadReport(r io.Reader) (Source, []FileObject, error) {
	dec := xml.NewDecoder(r)

	var src Source
	var files []FileObject
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Source{}, nil, err
		}

		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch se.Name.Local {
		case "source":
			if err := dec.DecodeElement(&src, &se); err != nil {
				return Source{}, nil, err
			}
		case "fileobject":
			var fo FileObject
			if err := dec.DecodeElement(&fo, &se); err != nil {
				return Source{}, nil, err
			}
			files = append(files, fo)
		}
	}
	return src, files, nil
}
