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

// Package dfxml writes and reads the DFXML-flavoured reports produced
// by the export command: one fileobject per directory entry of a
// mounted image, one byte_run per contiguous run of the file's FAT
// chain.
package dfxml

import (
	"os"
	"runtime"
	"time"
)

// xmlOutputVersion is the DFXML schema version stamped on every report.
const xmlOutputVersion = "1.0"

// DefaultMetadata identifies the document against the DFXML namespaces.
var DefaultMetadata = Metadata{
	Xmlns:    "http://www.forensicswiki.org/wiki/Category:Digital_Forensics_XML",
	XmlnsXsi: "http://www.w3.org/2001/XMLSchema-instance",
	XmlnsDC:  "http://purl.org/dc/elements/1.1/",
	Type:     "Filesystem Report",
}

// Metadata carries the namespace attributes of the report document.
type Metadata struct {
	Xmlns    string `xml:"xmlns,attr"`
	XmlnsXsi string `xml:"xmlns:xsi,attr"`
	XmlnsDC  string `xml:"xmlns:dc,attr"`
	Type     string `xml:"dc:type"`
}

// Creator describes the software that produced the report.
type Creator struct {
	Package              string  `xml:"package"`
	Version              string  `xml:"version"`
	ExecutionEnvironment ExecEnv `xml:"execution_environment"`
}

// ExecEnv records where the report was generated.
type ExecEnv struct {
	OS    string `xml:"os_sysname"`
	Arch  string `xml:"arch"`
	Host  string `xml:"host"`
	UID   int    `xml:"uid"`
	Start string `xml:"start_time"`
}

// Source describes the image the report was taken from, in the image's
// own geometry terms.
type Source struct {
	ImageFilename string `xml:"image_filename"`
	BlockSize     int    `xml:"sectorsize"`
	TotalBlocks   int    `xml:"total_blocks"`
	ImageSize     uint64 `xml:"image_size"`
}

// Header is everything preceding the file objects in a report.
type Header struct {
	Metadata Metadata
	Creator  Creator
	Source   Source
}

// FileObject is one directory entry of the image. FirstBlock is the
// entry's first data block FAT index; the byte runs cover the file's
// chain in logical order.
type FileObject struct {
	Filename   string    `xml:"filename"`
	FileSize   uint64    `xml:"filesize"`
	FirstBlock uint16    `xml:"first_data_blk"`
	ByteRuns   []ByteRun `xml:"byte_runs>byte_run"`
}

// ByteRun maps a logical span of the file onto a physical span of the
// image.
type ByteRun struct {
	Offset    uint64 `xml:"offset,attr"`
	ImgOffset uint64 `xml:"img_offset,attr"`
	Length    uint64 `xml:"len,attr"`
}

// GetExecEnv probes the current process environment for the report
// header.
func GetExecEnv() ExecEnv {
	host, err := os.Hostname()
	if err != nil {
		host = "unknown_host"
	}

	return ExecEnv{
		OS:    runtime.GOOS,
		Arch:  runtime.GOARCH,
		Host:  host,
		UID:   os.Getuid(),
		Start: time.Now().UTC().Format("2006-01-02T15:04:05Z"),
	}
}
