package sitecfg_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gowikitext/pkg/sitecfg"
)

func TestDefaultSiteLookups(t *testing.T) {
	t.Parallel()

	site := sitecfg.Default()

	tests := []struct {
		name   string
		wantID int
		wantOK bool
	}{
		{"Template", sitecfg.NSTemplate, true},
		{"template", sitecfg.NSTemplate, true},
		{"TEMPLATE", sitecfg.NSTemplate, true},
		{"Image", sitecfg.NSFile, true},
		{"image_talk", sitecfg.NSFileTalk, true},
		{"File", sitecfg.NSFile, true},
		{"WP", sitecfg.NSProject, true},
		{"", sitecfg.NSMain, true},
		{"Bogus", 0, false},
	}

	for _, tc := range tests {
		id, ok := site.NamespaceID(tc.name)
		assert.Equal(t, tc.wantOK, ok, "name %q", tc.name)
		if tc.wantOK {
			assert.Equal(t, tc.wantID, id, "name %q", tc.name)
		}
	}
}

func TestDefaultSiteInterwiki(t *testing.T) {
	t.Parallel()

	site := sitecfg.Default()

	iw, ok := site.Interwiki("commons")
	require.True(t, ok)
	assert.False(t, iw.Local)

	iw, ok = site.Interwiki("EN")
	require.True(t, ok)
	assert.True(t, iw.Local)

	_, ok = site.Interwiki("nosuchwiki")
	assert.False(t, ok)
}

func TestBuildRejectsDuplicates(t *testing.T) {
	t.Parallel()

	s := &sitecfg.Site{
		Namespaces: []sitecfg.Namespace{
			{ID: 0, Name: ""},
			{ID: 0, Name: "Main"},
		},
	}
	require.Error(t, s.Build())

	s = &sitecfg.Site{
		Interwikis: []sitecfg.Interwiki{
			{Prefix: "en"},
			{Prefix: "EN"},
		},
	}
	require.Error(t, s.Build())
}

func TestUpperFirst(t *testing.T) {
	t.Parallel()

	site := sitecfg.Default()

	tests := []struct {
		in   string
		want string
	}{
		{"foo", "Foo"},
		{"Foo", "Foo"},
		{"", ""},
		{"über", "Über"},
		{"ß-page", "ß-page"}, // override table keeps the platform form
		{"ι", "Ι"},
		{"1foo", "1foo"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, site.UpperFirst(tc.in), "input %q", tc.in)
	}
}

func TestTagRegistry(t *testing.T) {
	t.Parallel()

	assert.Equal(t, sitecfg.TierHTML, sitecfg.TagTierOf("span"))
	assert.Equal(t, sitecfg.TierExtension, sitecfg.TagTierOf("nowiki"))
	assert.Equal(t, sitecfg.TierExtension, sitecfg.TagTierOf("syntaxhighlight"))
	assert.Equal(t, sitecfg.TierUnknown, sitecfg.TagTierOf("madeup"))

	assert.True(t, sitecfg.IsValidTag("gallery"))
	assert.False(t, sitecfg.IsValidTag("blink"))
}

func TestYAMLRoundTrip(t *testing.T) {
	t.Parallel()

	site := sitecfg.Default()
	data, err := site.ToYAML()
	require.NoError(t, err)

	reloaded, err := sitecfg.FromYAML(data)
	require.NoError(t, err)

	assert.Equal(t, site.Namespaces, reloaded.Namespaces)
	assert.Equal(t, site.Interwikis, reloaded.Interwikis)
	assert.Equal(t, site.SkipTags, reloaded.SkipTags)
	assert.Equal(t, site.CapitalLinks, reloaded.CapitalLinks)

	id, ok := reloaded.NamespaceID("Category")
	require.True(t, ok)
	assert.Equal(t, sitecfg.NSCategory, id)
}

func TestFromYAMLPartialOverride(t *testing.T) {
	t.Parallel()

	doc := []byte("skipTags:\n  - \"!--\"\n  - nowiki\n  - score\n")
	site, err := sitecfg.FromYAML(doc)
	require.NoError(t, err)

	assert.Equal(t, []string{"!--", "nowiki", "score"}, site.SkipTags)

	// Untouched tables fall back to defaults.
	id, ok := site.NamespaceID("User talk")
	require.True(t, ok)
	assert.Equal(t, sitecfg.NSUserTalk, id)
}
