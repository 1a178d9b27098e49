package boundary

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/structhound/structhound/internal/lexer"
)

func detect(t *testing.T, text string) []Span {
	t.Helper()
	return Detect("lib/sample.dart", text, lexer.Scan(text))
}

func TestDetectSimpleMethod(t *testing.T) {
	text := strings.Join([]string{
		"class Foo {",
		"  void greet(String name) {",
		"    print(name);",
		"  }",
		"}",
		"",
	}, "\n")

	spans := detect(t, text)
	require.Len(t, spans, 1)
	assert.Equal(t, "greet", spans[0].Name)
	assert.Equal(t, 2, spans[0].StartLine)
	assert.Equal(t, 4, spans[0].EndLine)
	assert.Equal(t, 3, spans[0].Lines)
}

func TestDetectOneLineBody(t *testing.T) {
	text := "int answer() { return 42; }\n"
	spans := detect(t, text)
	require.Len(t, spans, 1)
	assert.Equal(t, spans[0].StartLine, spans[0].EndLine)
	assert.Equal(t, 1, spans[0].Lines)
}

func TestDetectBraceInStringClosesOnCorrectLine(t *testing.T) {
	text := strings.Join([]string{
		"void render() {",
		"  var open = \"{\";",
		"  var close = '}';",
		"  emit(open);",
		"}",
		"",
	}, "\n")

	spans := detect(t, text)
	require.Len(t, spans, 1)
	assert.Equal(t, 1, spans[0].StartLine)
	assert.Equal(t, 5, spans[0].EndLine, "string braces must not close the span early")
}

func TestDetectBraceInCommentIgnored(t *testing.T) {
	text := strings.Join([]string{
		"void run() {",
		"  // fake close }",
		"  /* and another",
		"     } inside block */",
		"  step();",
		"}",
		"",
	}, "\n")

	spans := detect(t, text)
	require.Len(t, spans, 1)
	assert.Equal(t, 6, spans[0].EndLine)
}

func TestDetectSpansOrderedAndNonOverlapping(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 4; i++ {
		fmt.Fprintf(&b, "void step%d() {\n  work();\n}\n", i)
	}

	spans := detect(t, b.String())
	require.Len(t, spans, 4)
	for i := 1; i < len(spans); i++ {
		assert.True(t, spans[i].StartLine > spans[i-1].EndLine,
			"span %d overlaps span %d", i, i-1)
	}
	for _, s := range spans {
		assert.GreaterOrEqual(t, s.EndLine, s.StartLine)
	}
}

func TestDetectNestedDeclarationNotReported(t *testing.T) {
	text := strings.Join([]string{
		"Widget build(BuildContext context) {",
		"  Widget inner(String label) {",
		"    return Text(label);",
		"  }",
		"  return inner('x');",
		"}",
		"",
	}, "\n")

	spans := detect(t, text)
	require.Len(t, spans, 1)
	assert.Equal(t, "build", spans[0].Name)
	assert.Equal(t, 6, spans[0].EndLine)
}

func TestDetectGenericReturnTypes(t *testing.T) {
	for _, line := range []string{
		"Future<void> loadData(String id, bool force) async {",
		"Stream<List<int>> watch() {",
		"Map<String, int> counts() {",
		"CustomThing make() {",
		"static String label() {",
		"@override",
	} {
		_, ok := MatchHeader(line)
		if strings.HasPrefix(line, "@override") {
			assert.False(t, ok, "bare annotation must not match: %q", line)
		} else {
			assert.True(t, ok, "expected header match: %q", line)
		}
	}
}

func TestDetectNonHeadersRejected(t *testing.T) {
	for _, line := range []string{
		"final name = compute();",
		"if (ready) {",
		"for (var i = 0; i < n; i++) {",
		"String s = \"void f() {\";",
		"_private helper() {", // lowercase non-keyword return type
	} {
		_, ok := MatchHeader(line)
		assert.False(t, ok, "unexpected header match: %q", line)
	}
}

func TestDetectUnbalancedSpanDropped(t *testing.T) {
	text := "void broken() {\n  never.closed();\n"
	spans := detect(t, text)
	assert.Empty(t, spans)
}

func TestDetectHeaderInsideBlockCommentSkipped(t *testing.T) {
	text := strings.Join([]string{
		"/*",
		"void ghost() {",
		"}",
		"*/",
		"void real() {",
		"}",
		"",
	}, "\n")

	spans := detect(t, text)
	require.Len(t, spans, 1)
	assert.Equal(t, "real", spans[0].Name)
}

func TestHeadersSeesNestedDeclarations(t *testing.T) {
	text := strings.Join([]string{
		"Widget build(BuildContext context) {",
		"  Widget inner(String label) {",
		"    return Text(label);",
		"  }",
		"}",
		"",
	}, "\n")

	headers := Headers(text, lexer.Scan(text))
	require.Len(t, headers, 2)
	assert.Equal(t, "build", headers[0].Name)
	assert.Equal(t, "inner", headers[1].Name)
}

func TestHeaderSignatureCapturesParams(t *testing.T) {
	hdr, ok := MatchHeader("  Future<void> loadData(String id, bool force) async {")
	require.True(t, ok)
	assert.Equal(t, "Future<void> loadData(String id, bool force)", hdr.Signature)
}
