package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseConvertedLedger(t *testing.T) {
	ledger := "# comment\nFoo\n\n  Bar  \n#Baz\n"
	converted := parseConvertedLedger([]byte(ledger))
	assert.Equal(t, map[string]bool{"Foo": true, "Bar": true}, converted)
}

func TestParseConvertedLedgerEmpty(t *testing.T) {
	assert.Empty(t, parseConvertedLedger(nil))
	assert.Empty(t, parseConvertedLedger([]byte("# only comments\n")))
}
