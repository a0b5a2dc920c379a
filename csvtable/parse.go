package csvtable

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/domonda/go-types/charset"
)

// ParseDetectFormat detects the format of data and parses it into records.
//
// The encoding is the first of config.Encodings that decodes
// one of config.EncodingTests, falling back to UTF-8.
// Newlines are "\r\n" if the data contains any, else "\n".
// The separator is taken from a "sep=X" header line
// or else is the most frequent of comma, semicolon and tab
// with comma winning ties.
// A nil config uses NewDefaultFormatDetectionConfig.
func ParseDetectFormat(data []byte, config *FormatDetectionConfig) (records [][]string, format *Format, err error) {
	if config == nil {
		config = NewDefaultFormatDetectionConfig()
	}
	format, data, err = detectFormat(data, config)
	if err != nil || len(data) == 0 {
		return nil, format, err
	}
	records, err = parseRecords(data, format)
	return records, format, err
}

// ParseWithFormat parses data encoded with an explicitly known format.
// A "sep=X" header line is removed if it matches format.Separator,
// a different declared separator is an error.
func ParseWithFormat(data []byte, format *Format) (records [][]string, err error) {
	if err = format.Validate(); err != nil {
		return nil, err
	}
	data, err = decode(data, format.Encoding)
	if err != nil {
		return nil, err
	}
	data = sanitizeUTF8(data)

	first, rest, _ := bytes.Cut(data, []byte(format.Newline))
	if headerSep := parseSepHeaderLine(first); headerSep != "" {
		if headerSep != format.Separator {
			return nil, fmt.Errorf("separator %q in header line is different from format separator %q", headerSep, format.Separator)
		}
		data = rest
	}
	return parseRecords(data, format)
}

func decode(data []byte, encoding string) ([]byte, error) {
	if encoding == "UTF-8" {
		return charset.TrimBOM(data, charset.BOMUTF8), nil
	}
	enc, err := charset.GetEncoding(encoding)
	if err != nil {
		return nil, err
	}
	return enc.Decode(data)
}

func detectFormat(data []byte, config *FormatDetectionConfig) (format *Format, decoded []byte, err error) {
	if config == nil {
		return nil, nil, errors.New("FormatDetectionConfig must not be nil")
	}
	format = new(Format)

	encodings := make([]charset.Encoding, 0, len(config.Encodings))
	for _, name := range config.Encodings {
		enc, err := charset.GetEncoding(name)
		if err != nil {
			return nil, nil, err
		}
		encodings = append(encodings, enc)
	}
	data, format.Encoding, err = charset.AutoDecode(data, encodings, config.EncodingTests)
	if err != nil {
		return nil, nil, err
	}
	if format.Encoding == "" {
		format.Encoding = "UTF-8"
	}
	data = sanitizeUTF8(data)

	if bytes.Contains(data, []byte("\r\n")) {
		format.Newline = "\r\n"
	} else {
		format.Newline = "\n"
	}

	first, rest, _ := bytes.Cut(data, []byte(format.Newline))
	if format.Separator = parseSepHeaderLine(first); format.Separator != "" {
		return format, rest, nil
	}

	var commas, semicolons, tabs int
	for line := range bytes.SplitSeq(data, []byte(format.Newline)) {
		commas += bytes.Count(line, []byte{','})
		semicolons += bytes.Count(line, []byte{';'})
		tabs += bytes.Count(line, []byte{'\t'})
	}
	switch {
	case semicolons > commas && semicolons > tabs:
		format.Separator = ";"
	case tabs > commas && tabs > semicolons:
		format.Separator = "\t"
	default:
		format.Separator = ","
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return format, nil, nil
	}
	return format, data, nil
}

// parseRecords reads decoded UTF-8 data with encoding/csv.
// Quoted fields may contain separators, escaped quotes and newlines.
// Records may have different numbers of fields.
func parseRecords(data []byte, format *Format) (records [][]string, err error) {
	if format.Newline == "\n\r" {
		data = bytes.ReplaceAll(data, []byte("\n\r"), []byte("\n"))
	}
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = rune(format.Separator[0])
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
}

// parseSepHeaderLine returns X for a line "sep=X" or "SEP=X",
// optionally enclosed in double quotes, else an empty string.
func parseSepHeaderLine(line []byte) (sep string) {
	line = bytes.TrimSuffix(line, []byte{'\r'})
	if len(line) < 5 {
		return ""
	}
	if line[0] == '"' && line[len(line)-1] == '"' {
		line = line[1 : len(line)-1]
	}
	if len(line) != 5 {
		return ""
	}
	if !bytes.HasPrefix(line, []byte("sep=")) && !bytes.HasPrefix(line, []byte("SEP=")) {
		return ""
	}
	return string(line[4:5])
}

func sanitizeUTF8(str []byte) []byte {
	return bytes.Map(
		func(r rune) rune {
			switch r {
			// \u00a0 is No-Break Space (NBSP)
			case '\uFFFD', '\u00a0':
				return ' '
			default:
				return r
			}
		},
		str,
	)
}
