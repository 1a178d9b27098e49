package violations

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findKind(vs []Violation, k Kind) (Violation, bool) {
	for _, v := range vs {
		if v.Kind == k {
			return v, true
		}
	}
	return Violation{}, false
}

func TestSRPRoleKeywordOverlap(t *testing.T) {
	text := "class TaskServiceManager {\n}\n"
	vs := InspectSOLID("lib/task.dart", text, DefaultSolidLimits)

	v, ok := findKind(vs, SRP)
	require.True(t, ok)
	assert.Equal(t, High, v.Severity)
	assert.Equal(t, "TaskServiceManager", v.Symbol)
	assert.Equal(t, 2, v.Measurement)
}

func TestSRPSingleRoleAccepted(t *testing.T) {
	vs := InspectSOLID("lib/task.dart", "class TaskService {\n}\n", DefaultSolidLimits)
	assert.Empty(t, vs)
}

func TestSRPTooManyPublicMethods(t *testing.T) {
	var b strings.Builder
	b.WriteString("class Api {\n")
	for i := 0; i < 16; i++ {
		fmt.Fprintf(&b, "  void method%d() {}\n", i)
	}
	b.WriteString("}\n")

	vs := InspectSOLID("lib/api.dart", b.String(), DefaultSolidLimits)
	v, ok := findKind(vs, SRP)
	require.True(t, ok)
	assert.Equal(t, Medium, v.Severity)
	assert.Equal(t, 16, v.Measurement)
}

func TestSRPPrivateMethodsNotCounted(t *testing.T) {
	var b strings.Builder
	b.WriteString("class Api {\n")
	for i := 0; i < 16; i++ {
		fmt.Fprintf(&b, "  _void method%d() {}\n", i)
	}
	b.WriteString("}\n")

	vs := InspectSOLID("lib/api.dart", b.String(), DefaultSolidLimits)
	assert.Empty(t, vs)
}

func TestSRPTooManyImports(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 21; i++ {
		fmt.Fprintf(&b, "import 'pkg_%d.dart';\n", i)
	}
	b.WriteString("class Hub {\n}\n")

	vs := InspectSOLID("lib/hub.dart", b.String(), DefaultSolidLimits)
	v, ok := findKind(vs, SRP)
	require.True(t, ok)
	assert.Equal(t, Low, v.Severity)
	assert.Equal(t, 21, v.Measurement)
}

func TestDIPConcreteInstantiations(t *testing.T) {
	var b strings.Builder
	b.WriteString("class Wiring {\n")
	for i := 0; i < 6; i++ {
		fmt.Fprintf(&b, "  final dep%d = ConcreteDep%d();\n", i, i)
	}
	b.WriteString("}\n")

	vs := InspectSOLID("lib/wiring.dart", b.String(), DefaultSolidLimits)
	v, ok := findKind(vs, DIP)
	require.True(t, ok)
	assert.Equal(t, Medium, v.Severity)
	assert.Equal(t, 6, v.Measurement)
}

func TestDIPAllowlistedTypesIgnored(t *testing.T) {
	text := `class Wiring {
  final a = String();
  final b = List();
  final c = Map();
  final d = Set();
  final e = Widget();
  final f = State();
  final g = lowercase();
}
`
	vs := InspectSOLID("lib/wiring.dart", text, DefaultSolidLimits)
	_, ok := findKind(vs, DIP)
	assert.False(t, ok)
}

func TestOCPSwitchWithManyCases(t *testing.T) {
	var b strings.Builder
	b.WriteString("class Router {\n  void route(int kind) {\n    switch (kind) {\n")
	for i := 0; i < 6; i++ {
		fmt.Fprintf(&b, "      case %d: go%d(); break;\n", i, i)
	}
	b.WriteString("    }\n  }\n}\n")

	vs := InspectSOLID("lib/router.dart", b.String(), DefaultSolidLimits)
	v, ok := findKind(vs, OCP)
	require.True(t, ok)
	assert.Equal(t, Medium, v.Severity)
	assert.Equal(t, 6, v.Measurement)
	assert.Equal(t, "Router", v.Symbol)
}

func TestOCPSmallSwitchAccepted(t *testing.T) {
	text := "class Router {\n  void route(int k) {\n    switch (k) {\n      case 1: a(); break;\n      case 2: b(); break;\n    }\n  }\n}\n"
	vs := InspectSOLID("lib/router.dart", text, DefaultSolidLimits)
	_, ok := findKind(vs, OCP)
	assert.False(t, ok)
}

func TestNoClassNoFindings(t *testing.T) {
	text := "void main() {\n  run();\n}\n"
	assert.Nil(t, InspectSOLID("lib/main.dart", text, DefaultSolidLimits))
}
