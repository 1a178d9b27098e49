package violations

import (
	"fmt"
	"regexp"
	"strings"
)

// SolidLimits configures the SOLID heuristics. Each check is an independent
// boolean with a fixed severity; none of them feeds the impact score.
type SolidLimits struct {
	PublicMethodLimit int // SRP, default 15
	ImportLimit       int // SRP, default 20
	ConcreteDepLimit  int // DIP, default 5
	SwitchCaseLimit   int // OCP, default 5
}

var DefaultSolidLimits = SolidLimits{
	PublicMethodLimit: 15,
	ImportLimit:       20,
	ConcreteDepLimit:  5,
	SwitchCaseLimit:   5,
}

// roleKeywords are architectural role names whose co-occurrence in a single
// class name suggests the class does more than one job.
var roleKeywords = []string{
	"Repository", "Service", "Controller", "Manager", "Handler", "Provider", "Builder",
}

// concreteTypeAllowlist holds constructor-looking names that are value types
// or framework plumbing, not injectable dependencies.
var concreteTypeAllowlist = map[string]struct{}{
	"String": {},
	"List":   {},
	"Map":    {},
	"Set":    {},
	"Widget": {},
	"State":  {},
}

var (
	firstClassPattern   = regexp.MustCompile(`class\s+(\w+)`)
	publicMethodPattern = regexp.MustCompile(`(?m)^\s*(\w+)\s+\w+\s*\(`)
	importCountPattern  = regexp.MustCompile(`import\s+['"]`)
	constructorPattern  = regexp.MustCompile(`=\s*(\w+)\s*\(`)
	switchPattern       = regexp.MustCompile(`(?s)switch\s*\([^)]+\)\s*\{([^}]+)\}`)
	casePattern         = regexp.MustCompile(`case\s+`)
)

// InspectSOLID runs the SRP, DIP and OCP heuristics over one file's raw
// text. Pure and stateless, so files can be inspected in parallel. Files
// without a class declaration produce no findings: every heuristic reports
// against the file's first declared class.
func InspectSOLID(filePath, text string, limits SolidLimits) []Violation {
	classMatch := firstClassPattern.FindStringSubmatch(text)
	if classMatch == nil {
		return nil
	}
	className := classMatch[1]

	var out []Violation

	// SRP: several architectural roles baked into one class name.
	roles := 0
	for _, kw := range roleKeywords {
		if strings.Contains(className, kw) {
			roles++
		}
	}
	if roles > 1 {
		out = append(out, Violation{
			Kind:        SRP,
			File:        filePath,
			Symbol:      className,
			Measurement: roles,
			Severity:    High,
			Reason:      fmt.Sprintf("class name combines %d responsibilities", roles),
		})
	}

	// SRP: too many public methods.
	publicMethods := 0
	for _, m := range publicMethodPattern.FindAllStringSubmatch(text, -1) {
		if !strings.HasPrefix(m[1], "_") {
			publicMethods++
		}
	}
	if publicMethods > limits.PublicMethodLimit {
		out = append(out, Violation{
			Kind:        SRP,
			File:        filePath,
			Symbol:      className,
			Measurement: publicMethods,
			Severity:    Medium,
			Reason:      fmt.Sprintf("too many public methods: %d", publicMethods),
		})
	}

	// SRP: too many imports.
	imports := len(importCountPattern.FindAllString(text, -1))
	if imports > limits.ImportLimit {
		out = append(out, Violation{
			Kind:        SRP,
			File:        filePath,
			Symbol:      className,
			Measurement: imports,
			Severity:    Low,
			Reason:      fmt.Sprintf("too many dependencies (imports): %d", imports),
		})
	}

	// DIP: assignments that instantiate concrete types directly.
	concrete := 0
	for _, m := range constructorPattern.FindAllStringSubmatch(text, -1) {
		name := m[1]
		if name == "" || name[0] < 'A' || name[0] > 'Z' {
			continue
		}
		if _, allowed := concreteTypeAllowlist[name]; allowed {
			continue
		}
		concrete++
	}
	if concrete > limits.ConcreteDepLimit {
		out = append(out, Violation{
			Kind:        DIP,
			File:        filePath,
			Symbol:      className,
			Measurement: concrete,
			Severity:    Medium,
			Reason:      fmt.Sprintf("concrete dependencies instantiated directly: %d", concrete),
		})
	}

	// OCP: switch statements with many cases. The switch body is matched up
	// to the first closing brace, so nested blocks truncate the case count;
	// the heuristic accepts that undercount.
	for _, m := range switchPattern.FindAllStringSubmatch(text, -1) {
		cases := len(casePattern.FindAllString(m[1], -1))
		if cases > limits.SwitchCaseLimit {
			out = append(out, Violation{
				Kind:        OCP,
				File:        filePath,
				Symbol:      className,
				Measurement: cases,
				Severity:    Medium,
				Reason:      fmt.Sprintf("switch with %d cases, consider a strategy", cases),
			})
		}
	}

	return out
}
