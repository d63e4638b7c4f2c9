package resolve

import (
	"errors"
	"testing"

	"github.com/miru-lang/miru/ast"
	"github.com/miru-lang/miru/mirror"
)

func TestResolveClass(t *testing.T) {
	t.Run("primitives and arrays", func(t *testing.T) {
		r := NewResolver(testCatalog())
		node, err := r.ResolveClass("int")
		if err != nil {
			t.Fatal(err)
		}
		if node != ast.IntType {
			t.Error("primitive must resolve to its singleton")
		}
		arr, err := r.ResolveClass("java.lang.String[]")
		if err != nil {
			t.Fatal(err)
		}
		if !arr.IsArray() || arr.ComponentType().Name() != "java.lang.String" {
			t.Errorf("got %s", arr)
		}
	})

	t.Run("cached per resolver", func(t *testing.T) {
		r := NewResolver(testCatalog())
		a, err := r.ResolveClass("java.lang.String")
		if err != nil {
			t.Fatal(err)
		}
		b, _ := r.ResolveClass("java.lang.String")
		if a != b {
			t.Error("repeated resolution must return the cached node")
		}
	})

	t.Run("self-referential description terminates", func(t *testing.T) {
		c := testCatalog()
		c.Register(&mirror.ClassDescription{
			Name:      "com.example.Linked",
			Modifiers: ast.AccPublic,
			SuperName: "java.lang.Object",
			Fields: []mirror.FieldDescription{
				{Name: "next", Modifiers: ast.AccPublic, Descriptor: "Lcom/example/Linked;"},
			},
		})
		r := NewResolver(c)
		node, err := r.ResolveClass("com.example.Linked")
		if err != nil {
			t.Fatal(err)
		}
		if node.DeclaredField("next").Type() != node {
			t.Error("self-typed field must reuse the node under construction")
		}
	})

	t.Run("missing class is a load failure", func(t *testing.T) {
		r := NewResolver(testCatalog())
		_, err := r.ResolveClass("com.example.Missing")
		var le *LoadError
		if !errors.As(err, &le) {
			t.Fatalf("err = %v, want LoadError", err)
		}
		if le.Class != "com.example.Missing" {
			t.Errorf("offending class = %s", le.Class)
		}
	})

	t.Run("missing dependency is a config failure wrapping a load failure", func(t *testing.T) {
		c := testCatalog()
		c.Register(&mirror.ClassDescription{
			Name:      "com.example.Broken",
			SuperName: "java.lang.Object",
			Fields: []mirror.FieldDescription{
				{Name: "gone", Descriptor: "Lcom/example/Gone;"},
			},
		})
		r := NewResolver(c)
		_, err := r.ResolveClass("com.example.Broken")
		var ce *ConfigError
		if !errors.As(err, &ce) {
			t.Fatalf("err = %v, want ConfigError", err)
		}
		var le *LoadError
		if !errors.As(err, &le) || le.Class != "com.example.Gone" {
			t.Errorf("cause should name the missing dependency, got %v", err)
		}
	})
}

func TestResolveMembers(t *testing.T) {
	c := testCatalog()
	c.Register(&mirror.ClassDescription{
		Name:      "com.example.Person",
		Modifiers: ast.AccPublic,
		SuperName: "java.lang.Object",
		Fields: []mirror.FieldDescription{
			{Name: "name", Modifiers: ast.AccPublic, Descriptor: "Ljava/lang/String;"},
			{Name: "tags", Modifiers: ast.AccPrivate, Descriptor: "Ljava/util/List;",
				Signature: "Ljava/util/List<Ljava/lang/String;>;"},
			{Name: "counter", Modifiers: ast.AccPublic | ast.AccStatic, Descriptor: "I"},
		},
		Methods: []mirror.MethodDescription{
			{
				Name: "lookup", Modifiers: ast.AccPublic,
				Descriptor:     "(Ljava/lang/String;I)Ljava/util/List;",
				Signature:      "(Ljava/lang/String;I)Ljava/util/List<Ljava/lang/Integer;>;",
				ParameterNames: []string{"key", "limit"},
				Exceptions:     []string{"java.lang.Exception"},
			},
		},
		Constructors: []mirror.MethodDescription{
			{Name: "<init>", Modifiers: ast.AccPublic, Descriptor: "(Ljava/lang/String;)V"},
		},
	})
	r := NewResolver(c)
	node, err := r.ResolveClass("com.example.Person")
	if err != nil {
		t.Fatal(err)
	}

	t.Run("field with generic signature", func(t *testing.T) {
		tags := node.DeclaredField("tags")
		if tags == nil {
			t.Fatal("field missing")
		}
		args := tags.Type().GenericsTypes()
		if len(args) != 1 || args[0].Type().Name() != "java.lang.String" {
			t.Errorf("generic field type = %s", tags.Type())
		}
	})

	t.Run("public instance fields become properties", func(t *testing.T) {
		if !node.HasProperty("name") {
			t.Error("public instance field should be a property")
		}
		if node.HasProperty("tags") || node.HasProperty("counter") {
			t.Error("private and static fields are not properties")
		}
	})

	t.Run("method types pair descriptor with signature", func(t *testing.T) {
		m := node.DeclaredMethod("lookup", 2)
		if m == nil {
			t.Fatal("method missing")
		}
		params := m.Parameters()
		if params[0].Name() != "key" || params[1].Name() != "limit" {
			t.Errorf("parameter names = %s, %s", params[0].Name(), params[1].Name())
		}
		if params[1].Type() != ast.IntType {
			t.Errorf("second parameter = %s", params[1].Type())
		}
		ret := m.ReturnType()
		if len(ret.GenericsTypes()) != 1 || ret.GenericsTypes()[0].Type().Name() != "java.lang.Integer" {
			t.Errorf("return type = %s", ret)
		}
		if len(m.Exceptions()) != 1 {
			t.Errorf("exceptions = %v", m.Exceptions())
		}
	})

	t.Run("constructor registered", func(t *testing.T) {
		ctors := node.Constructors()
		if len(ctors) != 1 || len(ctors[0].Parameters()) != 1 {
			t.Fatalf("constructors = %v", ctors)
		}
		if !ctors[0].IsConstructor() {
			t.Error("constructor must use the reserved name")
		}
	})
}

func TestRoundTripParameterizedField(t *testing.T) {
	c := testCatalog()
	c.Register(&mirror.ClassDescription{
		Name:      "com.example.Index",
		Modifiers: ast.AccPublic,
		SuperName: "java.lang.Object",
		Fields: []mirror.FieldDescription{
			{
				Name: "byName", Modifiers: ast.AccPublic,
				Descriptor: "Ljava/util/Map;",
				Signature:  "Ljava/util/Map<Ljava/lang/String;Ljava/util/List<Ljava/lang/Integer;>;>;",
			},
		},
	})
	r := NewResolver(c)
	node, err := r.ResolveClass("com.example.Index")
	if err != nil {
		t.Fatal(err)
	}
	typ := node.DeclaredField("byName").Type()
	args := typ.GenericsTypes()
	if len(args) != 2 {
		t.Fatalf("argument count = %d", len(args))
	}
	for i, arg := range args {
		if arg.IsWildcard() {
			t.Errorf("argument %d is a wildcard", i)
		}
	}
	if args[0].Type().Name() != "java.lang.String" {
		t.Errorf("key type = %s", args[0].Type())
	}
	list := args[1].Type()
	if list.Name() != "java.util.List" {
		t.Fatalf("value type = %s", list)
	}
	inner := list.GenericsTypes()
	if len(inner) != 1 || inner[0].Type().Name() != "java.lang.Integer" {
		t.Errorf("nested argument = %v", inner)
	}
}

func TestConstructorAnnotationPadding(t *testing.T) {
	ann := []mirror.AnnotationDescription{{Type: "com.example.Tagged"}}

	t.Run("inner class pads one synthetic parameter", func(t *testing.T) {
		c := testCatalog()
		c.Register(&mirror.ClassDescription{
			Name:      "com.example.Outer$Inner",
			Modifiers: ast.AccPublic,
			SuperName: "java.lang.Object",
			Constructors: []mirror.MethodDescription{{
				Name:                 "<init>",
				Descriptor:           "(Ljava/lang/Object;I)V",
				ParameterAnnotations: [][]mirror.AnnotationDescription{ann},
			}},
		})
		r := NewResolver(c)
		node, err := r.ResolveClass("com.example.Outer$Inner")
		if err != nil {
			t.Fatal(err)
		}
		params := node.Constructors()[0].Parameters()
		if len(params[0].Annotations()) != 0 {
			t.Error("synthetic outer-reference parameter must stay unannotated")
		}
		if len(params[1].Annotations()) != 1 {
			t.Error("annotation must shift to the declared parameter")
		}
	})

	t.Run("enum pads two synthetic parameters", func(t *testing.T) {
		c := testCatalog()
		c.Register(&mirror.ClassDescription{
			Name:      "com.example.Color",
			Modifiers: ast.AccPublic | ast.AccEnum,
			SuperName: "java.lang.Object",
			Constructors: []mirror.MethodDescription{{
				Name:                 "<init>",
				Descriptor:           "(Ljava/lang/String;II)V",
				ParameterAnnotations: [][]mirror.AnnotationDescription{ann},
			}},
		})
		r := NewResolver(c)
		node, err := r.ResolveClass("com.example.Color")
		if err != nil {
			t.Fatal(err)
		}
		params := node.Constructors()[0].Parameters()
		if len(params[2].Annotations()) != 1 {
			t.Error("annotation must land on the declared parameter")
		}
	})

	t.Run("unexplained mismatch is fatal", func(t *testing.T) {
		c := testCatalog()
		c.Register(&mirror.ClassDescription{
			Name:      "com.example.Plain",
			Modifiers: ast.AccPublic,
			SuperName: "java.lang.Object",
			Constructors: []mirror.MethodDescription{{
				Name:                 "<init>",
				Descriptor:           "(III)V",
				ParameterAnnotations: [][]mirror.AnnotationDescription{ann},
			}},
		})
		r := NewResolver(c)
		_, err := r.ResolveClass("com.example.Plain")
		var ie *InternalError
		if !errors.As(err, &ie) {
			t.Fatalf("err = %v, want InternalError", err)
		}
	})

	t.Run("top-level class gets no padding allowance", func(t *testing.T) {
		c := testCatalog()
		c.Register(&mirror.ClassDescription{
			Name:      "com.example.TopLevel",
			Modifiers: ast.AccPublic,
			SuperName: "java.lang.Object",
			Constructors: []mirror.MethodDescription{{
				Name:                 "<init>",
				Descriptor:           "(Ljava/lang/Object;I)V",
				ParameterAnnotations: [][]mirror.AnnotationDescription{ann},
			}},
		})
		r := NewResolver(c)
		_, err := r.ResolveClass("com.example.TopLevel")
		var ie *InternalError
		if !errors.As(err, &ie) {
			t.Fatalf("err = %v, want InternalError", err)
		}
	})

	t.Run("allowance is configurable", func(t *testing.T) {
		c := testCatalog()
		c.Register(&mirror.ClassDescription{
			Name:      "com.example.Outer2$Nested",
			Modifiers: ast.AccPublic,
			SuperName: "java.lang.Object",
			Constructors: []mirror.MethodDescription{{
				Name:                 "<init>",
				Descriptor:           "(III)V",
				ParameterAnnotations: [][]mirror.AnnotationDescription{ann},
			}},
		})
		r := NewResolver(c, WithSyntheticParams(mirror.SyntheticParams{OuterRef: 2, EnumExtra: 2}))
		if _, err := r.ResolveClass("com.example.Outer2$Nested"); err != nil {
			t.Fatalf("padding within configured allowance failed: %v", err)
		}
	})
}

func TestAnnotationDefaults(t *testing.T) {
	c := testCatalog()
	c.Register(&mirror.ClassDescription{
		Name:      "com.example.Marker",
		Modifiers: ast.AccPublic | ast.AccInterface | ast.AccAnnotation,
		Methods: []mirror.MethodDescription{
			{Name: "value", Modifiers: ast.AccPublic | ast.AccAbstract,
				Descriptor: "()Ljava/lang/String;", DefaultValue: "none"},
		},
		Annotations: []mirror.AnnotationDescription{
			{Type: "java.lang.annotation.Retention", Values: map[string]any{"value": "RUNTIME"}},
		},
	})
	r := NewResolver(c)
	node, err := r.ResolveClass("com.example.Marker")
	if err != nil {
		t.Fatal(err)
	}

	t.Run("default value becomes a return statement", func(t *testing.T) {
		m := node.DeclaredMethod("value", 0)
		if m == nil || m.Code() == nil {
			t.Fatal("default value not attached")
		}
		ret, ok := m.FirstStatement().(*ast.ReturnStatement)
		if !ok {
			t.Fatalf("first statement = %T", m.FirstStatement())
		}
		if ret.Expression.(*ast.ConstantExpression).Value != "none" {
			t.Error("default value lost")
		}
	})

	t.Run("retention policy flags", func(t *testing.T) {
		anns := node.Annotations()
		if len(anns) != 1 || !anns[0].HasRuntimeRetention() {
			t.Errorf("annotations = %v", anns)
		}
	})
}
