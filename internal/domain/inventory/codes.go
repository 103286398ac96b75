package inventory

import (
	"crypto/rand"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const alphanumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Slug normaliza un nombre para usarlo en códigos: sin tildes, mayúsculas, espacios a guion bajo.
func Slug(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, strings.TrimSpace(name))
	if err != nil {
		folded = name
	}
	var b strings.Builder
	for _, r := range strings.ToUpper(folded) {
		switch {
		case r == ' ' || r == '-':
			b.WriteByte('_')
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'):
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "ITEM"
	}
	return b.String()
}

// SerialNumber genera el número de serie de un artículo: <slug>-<secuencia>-<8 alfanuméricos>.
func SerialNumber(name string, seq int64) string {
	return fmt.Sprintf("%s-%d-%s", Slug(name), seq, randomAlnum(8))
}

// InstanceCode genera el código único de una unidad: <serial>-<8 hex del uuid en mayúsculas>.
func InstanceCode(serial string) string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return serial + "-" + id[:8]
}

func randomAlnum(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return strings.ToUpper(uuid.New().String()[:n])
	}
	for i := range buf {
		buf[i] = alphanumeric[int(buf[i])%len(alphanumeric)]
	}
	return string(buf)
}
