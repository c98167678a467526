package langdetect_test

import (
	"testing"

	"github.com/yaklabco/gowikitext/pkg/langdetect"
	"github.com/yaklabco/gowikitext/pkg/wikitext"
)

func BenchmarkDetect(b *testing.B) {
	code := []byte("package main\n\nimport \"fmt\"\n\nfunc main() {\n\tfmt.Println(\"hi\")\n}\n")
	for range b.N {
		langdetect.Detect(code)
	}
}

func BenchmarkSuggest(b *testing.B) {
	tags := wikitext.ScanTags("<syntaxhighlight>def foo(x):\n    return x\n</syntaxhighlight>", nil)
	if len(tags) != 1 {
		b.Fatal("expected one tag")
	}
	b.ResetTimer()
	for range b.N {
		langdetect.Suggest(tags[0])
	}
}
