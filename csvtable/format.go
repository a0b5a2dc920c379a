// Package csvtable reads CSV data into table rows
// and writes table views as CSV.
//
// Parsing detects the character encoding, the field separator
// and the line endings when no explicit Format is given,
// including an optional "sep=X" header line as written by spreadsheet tools.
package csvtable

import (
	"errors"
	"fmt"
)

// Format describes the encoding and structural format of CSV data.
type Format struct {
	// Encoding of the CSV data,
	// like "UTF-8", "UTF-16LE", "ISO 8859-1", "Windows 1252" or "Macintosh"
	Encoding string `json:"encoding"`

	// Separator is the single character field delimiter,
	// commonly "," or ";" or "\t"
	Separator string `json:"separator"`

	// Newline is one of "\n", "\r\n" or "\n\r"
	Newline string `json:"newline"`
}

// NewFormat returns a UTF-8 Format with separator and "\r\n" newlines.
func NewFormat(separator string) *Format {
	return &Format{
		Encoding:  "UTF-8",
		Separator: separator,
		Newline:   "\r\n",
	}
}

// Validate returns an error if the format can't be used for parsing.
// It can be called on a nil receiver.
func (f *Format) Validate() error {
	switch {
	case f == nil:
		return errors.New("<nil> csvtable.Format")
	case f.Encoding == "":
		return errors.New("missing csvtable.Format.Encoding")
	case f.Separator == "":
		return errors.New("missing csvtable.Format.Separator")
	case len(f.Separator) > 1:
		return fmt.Errorf("invalid csvtable.Format.Separator: %q", f.Separator)
	case f.Newline == "":
		return errors.New("missing csvtable.Format.Newline")
	case f.Newline != "\n" && f.Newline != "\n\r" && f.Newline != "\r\n":
		return fmt.Errorf("invalid csvtable.Format.Newline: %q", f.Newline)
	}
	return nil
}

// FormatDetectionConfig configures the encodings tried
// when detecting the format of CSV data.
type FormatDetectionConfig struct {
	// Encodings in priority order
	Encodings []string `json:"encodings"`

	// EncodingTests are strings with characters that are encoded
	// differently by the Encodings. An encoding is selected
	// if the decoded data contains one of them.
	EncodingTests []string `json:"encodingTests"`
}

// NewDefaultFormatDetectionConfig returns a FormatDetectionConfig
// for European and Cyrillic CSV files.
func NewDefaultFormatDetectionConfig() *FormatDetectionConfig {
	return &FormatDetectionConfig{
		Encodings: []string{
			"UTF-8",
			"UTF-16LE",
			"ISO 8859-1",
			"Windows 1252", // like ANSI
			"Macintosh",
		},
		EncodingTests: []string{
			"ä", "Ä", "ö", "Ö", "ü", "Ü", "ß", "§", "€",
			"д", "Д", "ъ", "Ъ", "б", "Б", "л", "Л", "и", "И", "ж",
		},
	}
}
