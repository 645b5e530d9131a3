package errors

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
)

// pdbIDRegex matches a classic four-character PDB identifier (e.g. "1ABC").
var pdbIDRegex = regexp.MustCompile(`^[0-9][A-Za-z0-9]{3}$`)

// ValidatePDBID validates a PDB structure identifier.
func ValidatePDBID(id string) error {
	if id == "" {
		return InvalidParameter("pdb_id", "is required")
	}
	if !pdbIDRegex.MatchString(id) {
		return InvalidParameter("pdb_id", "%q is not a PDB identifier (digit followed by three alphanumerics)", id)
	}
	return nil
}

// ValidateChainID validates a single-character chain identifier.
func ValidateChainID(id rune) error {
	if id > unicode.MaxASCII || !(unicode.IsLetter(id) || unicode.IsDigit(id)) {
		return InvalidParameter("chain", "%q is not a chain identifier (single letter or digit)", id)
	}
	return nil
}

// structureExts lists the structure file formats the service accepts.
var structureExts = map[string]bool{
	".pdb": true,
	".ent": true,
	".cif": true,
}

// ValidateStructureFilename validates the name of an uploaded structure file.
// It must be a plain basename with a structure file extension.
func ValidateStructureFilename(name string) error {
	if name == "" {
		return InvalidParameter("file_name", "is required")
	}
	if strings.ContainsAny(name, "/\\") {
		return InvalidParameter("file_name", "cannot contain path separators")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return InvalidParameter("file_name", "contains control characters")
		}
	}
	if !structureExts[strings.ToLower(filepath.Ext(name))] {
		return InvalidParameter("file_name", "%q must end in .pdb, .ent or .cif", name)
	}
	return nil
}

// ValidateURL validates a base URL string.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return InvalidParameter("base_url", "cannot be empty")
	}
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return InvalidParameter("base_url", "must use http or https scheme")
	}
	return nil
}
