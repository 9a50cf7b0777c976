package symtab_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfq-lang/pfqcore/internal/interfaces"
	"github.com/pfq-lang/pfqcore/internal/symtab"
)

func entryStub() interfaces.SymbolEntry {
	return interfaces.SymbolEntry{Signature: "Int -> Buf -> Action Buf"}
}

func TestTable_RegisterAndLookup(t *testing.T) {
	tab := symtab.New()
	_, ok := tab.Lookup("missing")
	assert.False(t, ok)

	tab.Register("dummy", entryStub())
	e, ok := tab.Lookup("dummy")
	require.True(t, ok)
	assert.Equal(t, "Int -> Buf -> Action Buf", e.Signature)
}

func TestReference_ContainsIllustrativeNamespace(t *testing.T) {
	tab := symtab.Reference(nil)
	for _, name := range []string{"dummy", "vdummy", "inc", "dec", "mark", "crc16", "crc16_equals", "filter", "inv", "log_msg", "log_buff", "log_packet"} {
		_, ok := tab.Lookup(name)
		assert.True(t, ok, "expected %q to be registered", name)
	}
}
