package cenfis

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// transliterations maps the Latin-1 letters the device can't display to
// plain ASCII. Every other non-ASCII character becomes a space.
var transliterations = map[rune]string{
	'À': "A", 'Á': "A", 'Â': "A", 'Ã': "A", 'Ä': "AE", 'Å': "A", 'Æ': "AE",
	'Ç': "C",
	'È': "E", 'É': "E", 'Ê': "E", 'Ë': "E",
	'Ì': "I", 'Í': "I", 'Î': "I", 'Ï': "I",
	'Ð': "D", 'Ñ': "N",
	'Ò': "O", 'Ó': "O", 'Ô': "O", 'Õ': "O", 'Ö': "OE", 'Ø': "O",
	'Ù': "U", 'Ú': "U", 'Û': "U", 'Ü': "UE",
	'Ý': "Y",
	'ß': "SS",
	'à': "a", 'á': "a", 'â': "a", 'ã': "a", 'ä': "ae", 'å': "a", 'æ': "ae",
	'ç': "c",
	'è': "e", 'é': "e", 'ê': "e", 'ë': "e",
	'ì': "i", 'í': "i", 'î': "i", 'ï': "i",
	'ð': "d", 'ñ': "n",
	'ò': "o", 'ó': "o", 'ô': "o", 'õ': "o", 'ö': "oe", 'ø': "o",
	'ù': "u", 'ú': "u", 'û': "u", 'ü': "ue",
	'ý': "y", 'ÿ': "y",
}

// toASCII transliterates and upper-cases an airspace name. Names that are
// not valid UTF-8 are taken as Latin-1.
func toASCII(name string) string {
	if !utf8.ValidString(name) {
		if s, err := charmap.ISO8859_1.NewDecoder().String(name); err == nil {
			name = s
		}
	}

	var sb strings.Builder
	for _, r := range name {
		switch {
		case r < utf8.RuneSelf:
			sb.WriteRune(r)
		case transliterations[r] != "":
			sb.WriteString(transliterations[r])
		default:
			sb.WriteByte(' ')
		}
	}
	return strings.ToUpper(sb.String())
}

// names is an airspace name split into the record's name fields.
type names struct {
	name, name2, name3, name4 string

	// typeOverride replaces the type string when set.
	typeOverride string

	// noFirstVertex suppresses the record's own first vertex.
	noFirstVertex bool
}

const nameSeparator = "|"

// decodeNames splits a display name into the record name fields.
//
// A reader upstream joins extra fields into the name with '|':
// "name|type", "name|name2|type" or "name|name2|name3|type". The last
// fragment of a joined name is the type override. Plain names instead have
// their legacy annotations (ED prefixes, HX, TRA) pulled out.
func decodeNames(raw string) names {
	name := toASCII(raw)
	if strings.Contains(name, nameSeparator) {
		return splitNames(name)
	}
	return legacyNames(name)
}

func splitNames(name string) names {
	var (
		parts = strings.SplitN(name, nameSeparator, 4)
		n     = names{name: parts[0]}
	)

	switch len(parts) {
	case 4:
		n.name2, n.name3, n.name4 = parts[1], parts[2], parts[3]
	case 3:
		n.name2, n.name4 = parts[1], parts[2]
	case 2:
		n.name4 = parts[1]
	}

	if n.name4 != "" {
		n.typeOverride, n.noFirstVertex = typeOverride(n.name4)
		n.name4 = ""
	}
	return n
}

// typeOverride reproduces the upstream encoder treating a leading
// underscore as "don't emit a first vertex for this record".
func typeOverride(s string) (string, bool) {
	if strings.HasPrefix(s, "_") {
		return s[1:], true
	}
	return s, false
}

func legacyNames(name string) names {
	var n names

	switch {
	case strings.HasPrefix(name, "EDR"):
		name, n.name4 = name[2:], "ED"
	case strings.HasPrefix(name, "ED-R"), strings.HasPrefix(name, "ED-D"):
		name, n.name4 = name[3:], "ED"
	}

	switch {
	case strings.HasPrefix(name, "HX"):
		name, n.name3 = strings.TrimLeft(name[2:], " "), "HX"
	case strings.HasSuffix(name, " (HX)"):
		name, n.name3 = strings.TrimSuffix(name, " (HX)"), "HX"
	}

	if strings.HasSuffix(name, " (TRA)") {
		name, n.name2 = strings.TrimSuffix(name, " (TRA)"), "TRA"
	}

	n.name = name
	return n
}
