package wikitext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanParameters_Labelled(t *testing.T) {
	t.Parallel()

	params := ScanParameters("{{{1|default}}}", nil, nil)

	require.Len(t, params, 1)
	p := params[0]
	assert.Equal(t, "1", p.Key)
	require.NotNil(t, p.Default)
	assert.Equal(t, "default", *p.Default)
	assert.Equal(t, 0, p.StartIndex)
	assert.Equal(t, 15, p.EndIndex)
	assert.Equal(t, 0, p.NestLevel)
}

func TestScanParameters_Unlabelled(t *testing.T) {
	t.Parallel()

	params := ScanParameters("{{{name}}}", nil, nil)

	require.Len(t, params, 1)
	assert.Equal(t, "name", params[0].Key)
	assert.Nil(t, params[0].Default)
}

func TestScanParameters_Nested(t *testing.T) {
	t.Parallel()

	input := "{{{1|{{{2|}}}}}}"
	params := ScanParameters(input, nil, nil)

	require.Len(t, params, 2)

	outer := params[0]
	assert.Equal(t, "1", outer.Key)
	assert.Equal(t, 0, outer.NestLevel)
	assert.Equal(t, 0, outer.StartIndex)
	assert.Equal(t, len(input), outer.EndIndex)
	require.NotNil(t, outer.Default)
	assert.Equal(t, "{{{2|}}}", *outer.Default)

	inner := params[1]
	assert.Equal(t, "2", inner.Key)
	assert.Equal(t, 1, inner.NestLevel)
	require.NotNil(t, inner.Default)
	assert.Equal(t, "", *inner.Default)
}

func TestScanParameters_BraceRepair(t *testing.T) {
	t.Parallel()

	// The naive lazy match ends inside the nested template; the repair
	// step extends through the closing brace run.
	input := "{{{a|{{b}}}}}"
	params := ScanParameters(input, nil, nil)

	require.Len(t, params, 1)
	p := params[0]
	assert.Equal(t, "a", p.Key)
	require.NotNil(t, p.Default)
	assert.Equal(t, "{{b}}", *p.Default)
	assert.Equal(t, input, p.Text)
}

func TestScanParameters_SkipFlag(t *testing.T) {
	t.Parallel()

	params := ScanParameters("<nowiki>{{{1}}}</nowiki>{{{2}}}", nil, nil)

	require.Len(t, params, 2)
	assert.True(t, params[0].Skip)
	assert.False(t, params[1].Skip)
}

func TestScanParameters_KeyTrimmed(t *testing.T) {
	t.Parallel()

	params := ScanParameters("{{{ name | d }}}", nil, nil)

	require.Len(t, params, 1)
	assert.Equal(t, "name", params[0].Key)
	require.NotNil(t, params[0].Default)
	assert.Equal(t, " d ", *params[0].Default)
}
