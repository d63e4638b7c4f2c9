package ast

import "testing"

func TestMethodTypeDescriptor(t *testing.T) {
	m := NewMethodNode("find", AccPublic, StringType,
		[]*Parameter{NewParameter(IntType, "index")}, nil, nil)

	want := "java.lang.String find(int)"
	if got := m.TypeDescriptor(); got != want {
		t.Fatalf("descriptor = %q, want %q", got, want)
	}

	t.Run("invalidated on return type change", func(t *testing.T) {
		m.SetReturnType(VoidType)
		if got := m.TypeDescriptor(); got != "void find(int)" {
			t.Errorf("stale descriptor after SetReturnType: %q", got)
		}
	})

	t.Run("invalidated on parameter change", func(t *testing.T) {
		m.SetParameters([]*Parameter{NewParameter(StringType, "key")})
		if got := m.TypeDescriptor(); got != "void find(java.lang.String)" {
			t.Errorf("stale descriptor after SetParameters: %q", got)
		}
	})
}

func TestMethodScope(t *testing.T) {
	m := NewMethodNode("run", AccPublic|AccStatic, VoidType,
		[]*Parameter{NewParameter(IntType, "n")}, nil, nil)

	if m.VariableScope().DeclaredVariable("n") == nil {
		t.Fatal("parameter missing from scope")
	}
	if !m.VariableScope().InStaticContext() {
		t.Error("static method scope must be static")
	}

	m.SetParameters([]*Parameter{NewParameter(StringType, "s")})
	scope := m.VariableScope()
	if scope.DeclaredVariable("n") != nil {
		t.Error("old parameter still in scope after SetParameters")
	}
	if scope.DeclaredVariable("s") == nil {
		t.Error("scope not rebuilt from new parameters")
	}
}

func TestReservedNames(t *testing.T) {
	ctor := NewConstructorNode(AccPublic, nil, nil, nil)
	if !ctor.IsConstructor() {
		t.Error("constructor name not recognized")
	}
	clinit := NewMethodNode(StaticInitializerName, AccStatic, VoidType, nil, nil, nil)
	if !clinit.IsStaticInitializer() {
		t.Error("static initializer name not recognized")
	}
}

func TestFirstStatement(t *testing.T) {
	inner := ReturnS(ConstX(1))
	m := NewMethodNode("f", AccPublic, IntType, nil, nil, BlockS(BlockS(inner)))
	if got := m.FirstStatement(); got != inner {
		t.Errorf("FirstStatement did not descend nested blocks: %T", got)
	}
}

func TestGeneratedMarking(t *testing.T) {
	cn := NewClassNode("Demo", AccPublic)
	m := AddGeneratedMethod(cn, "helper", AccPublic, VoidType, nil, nil, BlockS())
	if !IsGenerated(&m.BaseNode) {
		t.Error("generated method not marked")
	}
	if m.Modifiers()&AccSynthetic == 0 {
		t.Error("generated method not synthetic")
	}
	if cn.DeclaredMethod("helper", 0) != m {
		t.Error("method not registered on class")
	}
}
