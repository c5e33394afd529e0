package textnorm

import (
	"bytes"
	"io"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeReader_Latin1(t *testing.T) {
	// "Ñandú" en ISO-8859-1
	raw := []byte{0xD1, 'a', 'n', 'd', 0xFA}

	out, err := io.ReadAll(DecodeReader(bytes.NewReader(raw), "iso-8859-1"))

	require.NoError(t, err)
	assert.Equal(t, "Ñandú", string(out))
}

func TestDecodeReader_UTF8SinCambios(t *testing.T) {
	out, err := io.ReadAll(DecodeReader(bytes.NewReader([]byte("Café")), "utf-8"))

	require.NoError(t, err)
	assert.Equal(t, "Café", string(out))
}

func TestClean(t *testing.T) {
	assert.Equal(t, "La Picada del Sur", Clean("  La   Picada\tdel Sur \n"))
	assert.Equal(t, "", Clean("   "))
}

func TestCollator_OrdenEspañol(t *testing.T) {
	names := []string{"zapata", "Ñuñoa", "nube", "Árbol", "oliva"}
	col := Collator()

	sort.SliceStable(names, func(i, j int) bool {
		return col.CompareString(names[i], names[j]) < 0
	})

	assert.Equal(t, []string{"Árbol", "nube", "Ñuñoa", "oliva", "zapata"}, names)
}
