// Package textnorm normaliza texto de entrada: decodificación de charset, espacios y orden alfabético.
package textnorm

import (
	"io"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/language"
	"golang.org/x/text/transform"
)

// DecodeReader envuelve r para decodificar a UTF-8 según charset.
// ISO-8859-1/Latin-1 y Windows-1252 se decodifican; cualquier otro valor se asume UTF-8.
func DecodeReader(r io.Reader, charset string) io.Reader {
	switch strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(charset), "_", "-")) {
	case "ISO-8859-1", "ISO8859-1", "LATIN1", "LATIN-1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	case "WINDOWS-1252", "CP1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder())
	}
	return r
}

// Clean recorta y colapsa espacios internos.
func Clean(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Collator colación del español sin distinguir mayúsculas.
// No es seguro para uso concurrente: crear uno por llamada.
func Collator() *collate.Collator {
	return collate.New(language.Spanish, collate.IgnoreCase)
}
