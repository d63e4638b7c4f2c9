package transform

import (
	"strings"

	"github.com/miru-lang/miru/ast"
)

// Options configures toString generation. The zero value is not useful;
// start from DefaultOptions.
type Options struct {
	IncludeSuper           bool
	IncludeSuperProperties bool
	IncludeSuperFields     bool
	Cache                  bool
	Excludes               []string
	Includes               []string
	LeftDelimiter          string
	RightDelimiter         string
	NameValueSeparator     string
	FieldSeparator         string
	IncludeNames           bool
	IncludeFields          bool
	IgnoreNulls            bool
	IncludePackage         bool
	AllProperties          bool
	AllNames               bool
	Pojo                   bool
	UseGetters             bool
}

// DefaultOptions returns the option defaults of the annotation surface.
func DefaultOptions() Options {
	return Options{
		LeftDelimiter:      "(",
		RightDelimiter:     ")",
		NameValueSeparator: ":",
		FieldSeparator:     ", ",
		IncludePackage:     true,
		AllProperties:      true,
		UseGetters:         true,
	}
}

const (
	toStringName     = "toString"
	fallbackName     = "_toString"
	cacheFieldName   = "$to$string"
	selfMarker       = "(this)"
	superElementName = "super"
)

var (
	stringBuilderType = ast.Make("java.lang.StringBuilder")
	formatHelperType  = ast.Make("miru.runtime.FormatHelper")
	objectsType       = ast.Make("java.util.Objects")
)

// element is one emitted value in the rendered string.
type element struct {
	name  string
	typ   *ast.ClassNode
	value ast.Expression
}

// CreateToString synthesizes a string-rendering method on the class.
// Precondition failures become diagnostics at the class node and abandon
// generation for this class only. A hand-written method with the target
// name wins; the synthesized method then lands under the private fallback
// name instead, and an existing synthesized method makes the whole call a
// no-op.
func CreateToString(cn *ast.ClassNode, opts Options, diags *Diagnostics) {
	if cn.IsInterface() {
		diags.AddError(cn.Base(), "toString generation cannot be applied to interface %s", cn.Name())
		return
	}
	if len(opts.Includes) > 0 && len(opts.Excludes) > 0 {
		diags.AddError(cn.Base(), "toString generation for %s: includes and excludes cannot both be given", cn.Name())
		return
	}
	if containsName(opts.Includes, superElementName) {
		opts.IncludeSuper = true
	}
	if opts.IncludeSuper && (cn.SuperClass() == nil || ast.IsObjectType(cn.SuperClass())) {
		diags.AddError(cn.Base(), "toString generation for %s: includeSuper=true but the class has no superclass", cn.Name())
		return
	}

	name := toStringName
	modifiers := ast.AccPublic
	if existing := cn.DeclaredMethod(toStringName, 0); existing != nil {
		if ast.IsGenerated(existing.Base()) {
			return
		}
		if cn.DeclaredMethod(fallbackName, 0) != nil {
			return
		}
		name = fallbackName
		modifiers = ast.AccPrivate
	}

	elements := collectElements(cn, opts)
	if opts.IncludeSuper {
		// direct superclass call, never dynamic dispatch
		elements = append(elements, element{name: superElementName, value: ast.CallSuperX(toStringName)})
	}
	if !checkNames(cn, opts, elements, diags) {
		return
	}
	elements = filterElements(elements, opts)

	stmts, resultExpr := renderStatements(cn, opts, elements)

	var body *ast.BlockStatement
	if opts.Cache {
		cacheField := cn.DeclaredField(cacheFieldName)
		if cacheField == nil {
			cacheField = ast.NewFieldNode(cacheFieldName, ast.AccPrivate|ast.AccSynthetic, ast.StringType, nil)
			cn.AddField(cacheField)
		}
		// Unsynchronized null-check-then-assign: a concurrent first call
		// recomputes the same value, and either write may win.
		compute := ast.BlockS(append(stmts, ast.AssignS(ast.FieldX(cacheField), resultExpr))...)
		body = ast.BlockS(
			ast.IfS(ast.EqualsNullX(ast.FieldX(cacheField)), compute),
			ast.ReturnS(ast.FieldX(cacheField)),
		)
	} else {
		body = ast.BlockS(append(stmts, ast.ReturnS(resultExpr))...)
	}

	ast.AddGeneratedMethod(cn, name, modifiers, ast.StringType, nil, nil, body)
}

// collectElements gathers the ordered value list: the class's own
// properties, getter-backed pseudo-properties and, when asked, plain
// fields, then superclass members with ancestors outermost-first.
func collectElements(cn *ast.ClassNode, opts Options) []element {
	var elements []element

	for _, p := range cn.Properties() {
		if skipElement(p.Name(), p.IsStatic(), opts) {
			continue
		}
		value := ast.Expression(ast.FieldX(p.Field()))
		if opts.UseGetters {
			value = ast.GetterThisX(p)
		}
		elements = append(elements, element{name: p.Name(), typ: p.Type(), value: value})
	}

	if opts.AllProperties {
		for _, m := range cn.Methods() {
			name, ok := getterProperty(m)
			if !ok || cn.HasProperty(name) || skipElement(name, m.IsStatic(), opts) {
				continue
			}
			elements = append(elements, element{
				name:  name,
				typ:   m.ReturnType(),
				value: ast.CallX(ast.ThisX(), m.Name()),
			})
		}
	}

	if opts.IncludeFields {
		for _, f := range cn.Fields() {
			if cn.HasProperty(f.Name()) || skipElement(f.Name(), f.IsStatic(), opts) {
				continue
			}
			elements = append(elements, element{name: f.Name(), typ: f.Type(), value: ast.FieldX(f)})
		}
	}

	if opts.IncludeSuperProperties || opts.IncludeSuperFields {
		var ancestors []*ast.ClassNode
		for sc := cn.SuperClass(); sc != nil && !ast.IsObjectType(sc); sc = sc.SuperClass() {
			ancestors = append(ancestors, sc)
		}
		for i := len(ancestors) - 1; i >= 0; i-- {
			sc := ancestors[i]
			if opts.IncludeSuperProperties {
				for _, p := range sc.Properties() {
					if skipElement(p.Name(), p.IsStatic(), opts) {
						continue
					}
					// super state is reached through its accessor
					elements = append(elements, element{
						name:  p.Name(),
						typ:   p.Type(),
						value: ast.GetterThisX(p),
					})
				}
			}
			if opts.IncludeSuperFields {
				for _, f := range sc.Fields() {
					if sc.HasProperty(f.Name()) || skipElement(f.Name(), f.IsStatic(), opts) {
						continue
					}
					elements = append(elements, element{name: f.Name(), typ: f.Type(), value: ast.FieldX(f)})
				}
			}
		}
	}

	return elements
}

func skipElement(name string, isStatic bool, opts Options) bool {
	if isStatic || name == cacheFieldName {
		return true
	}
	return !opts.AllNames && strings.Contains(name, "$")
}

// getterProperty maps a zero-argument getter method to its property name.
func getterProperty(m *ast.MethodNode) (string, bool) {
	name := m.Name()
	if !strings.HasPrefix(name, "get") || len(name) <= 3 || name == "getClass" {
		return "", false
	}
	if len(m.Parameters()) != 0 || m.IsStatic() || m.IsVoidMethod() || m.IsAbstract() {
		return "", false
	}
	return strings.ToLower(name[3:4]) + name[4:], true
}

// checkNames verifies every include/exclude entry names a visible element.
func checkNames(cn *ast.ClassNode, opts Options, elements []element, diags *Diagnostics) bool {
	known := make(map[string]bool, len(elements)+1)
	known[superElementName] = true
	for _, e := range elements {
		known[e.name] = true
	}
	ok := true
	for _, name := range opts.Includes {
		if !known[name] {
			diags.AddError(cn.Base(), "toString generation for %s: 'includes' names unknown property %q", cn.Name(), name)
			ok = false
		}
	}
	for _, name := range opts.Excludes {
		if !known[name] {
			diags.AddError(cn.Base(), "toString generation for %s: 'excludes' names unknown property %q", cn.Name(), name)
			ok = false
		}
	}
	return ok
}

func filterElements(elements []element, opts Options) []element {
	if len(opts.Excludes) > 0 {
		kept := elements[:0]
		for _, e := range elements {
			// excludes filter members only, not the superclass element
			if e.name == superElementName || !containsName(opts.Excludes, e.name) {
				kept = append(kept, e)
			}
		}
		return kept
	}
	if len(opts.Includes) > 0 {
		// explicit include order wins over declaration order; an element
		// kept despite missing from the list sorts ahead of the rest
		var ordered []element
		for _, e := range elements {
			if e.name == superElementName && !containsName(opts.Includes, e.name) {
				ordered = append(ordered, e)
			}
		}
		for _, name := range opts.Includes {
			for _, e := range elements {
				if e.name == name {
					ordered = append(ordered, e)
					break
				}
			}
		}
		return ordered
	}
	return elements
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// renderStatements builds the body statements that fill a builder variable
// and returns them with the final string expression.
func renderStatements(cn *ast.ClassNode, opts Options, elements []element) ([]ast.Statement, ast.Expression) {
	result := ast.LocalVarX("_result")
	stmts := []ast.Statement{
		ast.DeclS(result, ast.CtorX(stringBuilderType)),
	}

	className := cn.Name()
	if !opts.IncludePackage {
		className = cn.NameWithoutPackage()
	}
	stmts = append(stmts, appendS(result, ast.ConstX(className+opts.LeftDelimiter)))

	// With ignoreNulls the first emitted element is only known at run time,
	// so separators hang off a flag variable; otherwise it is static.
	var first *ast.VariableExpression
	if opts.IgnoreNulls {
		first = ast.LocalVarX("$toStringFirst")
		stmts = append(stmts, ast.DeclS(first, ast.ConstX(true)))
	}

	emitted := 0
	separator := func() ast.Statement {
		if first != nil {
			return ast.IfElseS(ast.BoolX(first),
				ast.AssignS(first, ast.ConstX(false)),
				appendS(result, ast.ConstX(opts.FieldSeparator)))
		}
		if emitted == 0 {
			return nil
		}
		return appendS(result, ast.ConstX(opts.FieldSeparator))
	}

	for _, e := range elements {
		var elemStmts []ast.Statement
		if sep := separator(); sep != nil {
			elemStmts = append(elemStmts, sep)
		}
		if opts.IncludeNames {
			elemStmts = append(elemStmts, appendS(result, ast.ConstX(e.name+opts.NameValueSeparator)))
		}
		rendered := renderValue(opts, e.value)
		if canBeSelf(cn, e.typ) {
			elemStmts = append(elemStmts, ast.IfElseS(
				ast.SameX(e.value, ast.ThisX()),
				appendS(result, ast.ConstX(selfMarker)),
				appendS(result, rendered)))
		} else {
			elemStmts = append(elemStmts, appendS(result, rendered))
		}
		if opts.IgnoreNulls {
			stmts = append(stmts, ast.IfS(ast.NotNullX(e.value), ast.BlockS(elemStmts...)))
		} else {
			stmts = append(stmts, elemStmts...)
		}
		emitted++
	}

	stmts = append(stmts, appendS(result, ast.ConstX(opts.RightDelimiter)))
	return stmts, ast.CallX(result, toStringName)
}

// canBeSelf reports whether a value of the declared type could be the
// receiver itself, which must render as a fixed marker instead of recursing.
// Only the enclosing class and its subtypes qualify.
func canBeSelf(cn *ast.ClassNode, typ *ast.ClassNode) bool {
	if typ == nil {
		return false
	}
	return typ.IsDerivedFrom(cn)
}

func renderValue(opts Options, value ast.Expression) ast.Expression {
	if opts.Pojo {
		return ast.StaticCallX(objectsType, toStringName, value)
	}
	return ast.StaticCallX(formatHelperType, toStringName, value)
}

func appendS(result *ast.VariableExpression, value ast.Expression) ast.Statement {
	return ast.StmtS(ast.CallX(result, "append", value))
}
