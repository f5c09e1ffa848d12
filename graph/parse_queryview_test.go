package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const queryviewFixture = `<?xml version="1.1" encoding="UTF-8"?>
<query version="2">
  <rule class="cc_binary" name="//a:A--linux_glibc_x86_64">
    <string name="soong_module_name" value="A"/>
    <string name="soong_module_variant" value="linux_glibc_x86_64"/>
    <rule-input name="//b:B--linux_glibc_x86_64"/>
    <rule-input name="//a:A--linux_glibc_x86_64"/>
    <rule-input name="//lic:lic--none"/>
    <rule-input name="//a:src.c"/>
  </rule>
  <rule class="cc_library" name="//b:B--linux_glibc_x86_64">
    <string name="soong_module_name" value="B"/>
    <string name="soong_module_variant" value="linux_glibc_x86_64"/>
  </rule>
  <rule class="cc_library" name="//b:B--windows_x86_64">
    <string name="soong_module_name" value="B"/>
    <string name="soong_module_variant" value="windows_x86_64"/>
    <rule-input name="//w:W--windows_x86_64"/>
  </rule>
  <rule class="license" name="//lic:lic--none">
    <string name="soong_module_name" value="lic"/>
  </rule>
  <rule class="cc_library" name="//w:W--windows_x86_64">
    <string name="soong_module_name" value="W"/>
    <string name="soong_module_variant" value="windows_x86_64"/>
  </rule>
</query>`

func TestQueryviewParser(t *testing.T) {
	p := &QueryviewParser{Filter: NewFilter()}
	adj, err := p.Parse([]byte(queryviewFixture))
	require.NoError(t, err)

	a := Module{Name: "A", Kind: "cc_binary", Dirname: "a"}
	b := Module{Name: "B", Kind: "cc_library", Dirname: "b"}

	assert.Len(t, adj, 2)
	require.Contains(t, adj, a)
	require.Contains(t, adj, b)

	// Variant-qualified deps resolve to logical names; the self
	// reference, the ignored license rule and the plain source file
	// input are all dropped.
	assert.Equal(t, []string{"B"}, adj.SortedDeps(a))
	// B's windows variant is excluded entirely, so its dep on the
	// windows-only W never materializes.
	assert.Empty(t, adj.SortedDeps(b))

	for m := range adj {
		assert.NotEqual(t, "lic", m.Name)
		assert.NotEqual(t, "W", m.Name)
	}
}

func TestQueryviewParserMissingName(t *testing.T) {
	p := &QueryviewParser{Filter: NewFilter()}
	_, err := p.Parse([]byte(`<query><rule class="cc_library"/></query>`))
	assert.Error(t, err)
}

func TestQueryviewParserMalformed(t *testing.T) {
	p := &QueryviewParser{Filter: NewFilter()}
	_, err := p.Parse([]byte(`<query><rule`))
	assert.Error(t, err)
}

func TestLabelToDir(t *testing.T) {
	assert.Equal(t, "system/core/adbd", labelToDir("//system/core/adbd:adbd--linux_glibc_x86_64"))
	assert.Equal(t, "a", labelToDir("//a:b"))
}
