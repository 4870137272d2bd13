// Package langdef has functions for loading lexical definitions using the
// SLC language definition file format, a TOML-based format that describes
// the keyword, operator, punctuation, comment, and string-literal tables the
// scanner classifies against.
package langdef

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/BurntSushi/toml"

	"github.com/mawais/slc/simplelang/scan"
)

// FileInfo contains the essential information all SLC format files must
// contain. It can be obtained from a file by reading it into memory and
// calling ScanFileInfo on the bytes.
type FileInfo struct {
	Format string `toml:"format"`
	Type   string `toml:"type"`
}

// LoadLanguageFile loads a lexical definition from an SLC language file.
func LoadLanguageFile(path string) (scan.Language, error) {
	data, loadErr := os.ReadFile(path)
	if loadErr != nil {
		return scan.Language{}, loadErr
	}

	lang, err := ParseLanguageData(data)
	if err != nil {
		return scan.Language{}, fmt.Errorf("%q: %w", path, err)
	}
	return lang, nil
}

// ParseLanguageData unmarshals, validates, and converts the bytes of an SLC
// language file into a usable lexical definition.
func ParseLanguageData(data []byte) (scan.Language, error) {
	unmarshaled, err := unmarshalLanguage(data)
	if err != nil {
		return scan.Language{}, err
	}

	return parseLanguage(unmarshaled)
}

// ScanFileInfo takes the given bytes and attempts to read the SLC format
// common header info from them. The bytes are read up to the first instance
// of a table definition header and those bytes are parsed for the info.
func ScanFileInfo(data []byte) (FileInfo, error) {
	// only run the toml parser up to the end of the top-lev table
	var topLevelEnd int = -1
	var onNewLine bool
	for b := range data {
		if onNewLine {
			if data[b] == '[' {
				topLevelEnd = b
				break
			}
		}

		if data[b] == '\n' {
			onNewLine = true
		} else if !unicode.IsSpace(rune(data[b])) {
			onNewLine = false
		}
	}

	scanData := data
	if topLevelEnd != -1 {
		scanData = data[:topLevelEnd]
	}

	var info FileInfo
	err := toml.Unmarshal(scanData, &info)
	return info, err
}

// unmarshalLanguage unmarshals a language definition from the given bytes.
// It does not validate the definition beyond the header.
func unmarshalLanguage(tomlData []byte) (topLevelLanguage, error) {
	var tl topLevelLanguage
	if tomlErr := toml.Unmarshal(tomlData, &tl); tomlErr != nil {
		return tl, tomlErr
	}

	if strings.ToUpper(tl.Format) != "SLC" {
		return tl, fmt.Errorf("in header: 'format' key must exist and be set to 'SLC'")
	}
	if strings.ToUpper(tl.Type) != "LANGUAGE" {
		return tl, fmt.Errorf("in header: 'type' must exist and be set to 'LANGUAGE'")
	}

	return tl, nil
}
