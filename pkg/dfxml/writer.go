// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
package dfxml

import (
	"encoding/xml"
	"io"
)

// Writer streams a report document: the header is written up front,
// file objects are appended one at a time, and Close terminates the
// document.
type Writer struct {
	enc *xml.Encoder
}

// NewWriter writes the XML declaration and the report header to out and
// returns a Writer ready to accept file objects.
func NewWriter(out io.Writer, hdr Header) (*Writer, error) {
	if _, err := io.WriteString(out, xml.Header); err != nil {
		return nil, err
	}

	enc := xml.NewEncoder(out)
	enc.Indent("", "  ")

	start := xml.StartElement{
		Name: xml.Name{Local: "dfxml"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "xmloutputversion"}, Value: xmlOutputVersion},
		},
	}
	if err := enc.EncodeToken(start); err != nil {
		return nil, err
	}

	for _, section := range []struct {
		name string
		v    any
	}{
		{"metadata", hdr.Metadata},
		{"creator", hdr.Creator},
		{"source", hdr.Source},
	} {
		elem := xml.StartElement{Name: xml.Name{Local: section.name}}
		if err := enc.EncodeElement(section.v, elem); err != nil {
			return nil, err
		}
	}

	return &Writer{enc: enc}, nil
}

// WriteFile appends one file object to the report.
func (w *Writer) WriteFile(obj FileObject) error {
	elem := xml.StartElement{Name: xml.Name{Local: "fileobject"}}
	return w.enc.EncodeElement(obj, elem)
}

// Close terminates the document and flushes the encoder.
func (w *Writer) Close() error {
	if err := w.enc.EncodeToken(xml.EndElement{Name: xml.Name{Local: "dfxml"}}); err != nil {
		return err
	}
	return w.enc.Flush()
}
