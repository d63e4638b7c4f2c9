package ast

import "testing"

func TestRedirect(t *testing.T) {
	t.Run("transparent member access", func(t *testing.T) {
		target := NewClassNode("com.example.Target", AccPublic)
		target.AddField(NewFieldNode("value", AccPublic, StringType, nil))

		ref := NewClassNode("com.example.Target", 0)
		ref.SetRedirect(target)

		if got := ref.DeclaredField("value"); got == nil {
			t.Fatal("field not visible through redirect")
		}
		if !ref.Equals(target) {
			t.Error("reference should equal its redirect target")
		}
	})

	t.Run("refuses cycles", func(t *testing.T) {
		a := NewClassNode("A", 0)
		b := NewClassNode("B", 0)
		a.SetRedirect(b)
		b.SetRedirect(a)
		if b.HasRedirect() {
			t.Error("cyclic redirect must be refused")
		}
	})

	t.Run("walk terminates on long chains", func(t *testing.T) {
		nodes := make([]*ClassNode, 10)
		for i := range nodes {
			nodes[i] = NewClassNode("N", 0)
			if i > 0 {
				nodes[i-1].SetRedirect(nodes[i])
			}
		}
		if got := nodes[0].Redirect(); got != nodes[9] {
			t.Errorf("expected chain tail, got %p", got)
		}
	})

	t.Run("generics stay on the reference", func(t *testing.T) {
		erasure := NewClassNode("java.util.List", AccPublic|AccInterface)
		ref := erasure.PlainNodeReference()
		ref.SetGenericsTypes([]*GenericsType{NewGenericsType(StringType)})

		if erasure.GenericsTypes() != nil {
			t.Error("erasure must not see the reference's type arguments")
		}
		if len(ref.GenericsTypes()) != 1 {
			t.Error("reference lost its type arguments")
		}
	})
}

func TestMake(t *testing.T) {
	t.Run("canonical cache", func(t *testing.T) {
		a := Make("com.example.Shared")
		b := Make("com.example.Shared")
		if a != b {
			t.Error("Make must return the shared canonical node")
		}
		if MakeWithoutCaching("com.example.Shared") == a {
			t.Error("MakeWithoutCaching must return a fresh node")
		}
	})

	t.Run("primitives are canonical", func(t *testing.T) {
		if Make("int") != IntType {
			t.Error("int must map to the primitive singleton")
		}
		if MakeWithoutCaching("boolean") != BooleanType {
			t.Error("primitives stay canonical even without caching")
		}
	})

	t.Run("array suffix", func(t *testing.T) {
		arr := Make("java.lang.String[]")
		if !arr.IsArray() {
			t.Fatal("expected array node")
		}
		if arr.ComponentType().Name() != "java.lang.String" {
			t.Errorf("component = %s", arr.ComponentType().Name())
		}
	})
}

func TestMakeArray(t *testing.T) {
	arr := StringType.MakeArray()
	if arr.Name() != "java.lang.String[]" {
		t.Errorf("name = %s", arr.Name())
	}
	if !arr.IsArray() || arr.ComponentType() != StringType {
		t.Error("component type lost")
	}
}

func TestIsDerivedFrom(t *testing.T) {
	object := NewClassNode("java.lang.Object", AccPublic)
	animal := NewClassNode("Animal", AccPublic)
	animal.SetSuperClass(object)
	dog := NewClassNode("Dog", AccPublic)
	dog.SetSuperClass(animal)

	if !dog.IsDerivedFrom(animal) || !dog.IsDerivedFrom(object) {
		t.Error("derivation chain not followed")
	}
	if animal.IsDerivedFrom(dog) {
		t.Error("derivation is directional")
	}

	t.Run("cyclic hierarchy terminates", func(t *testing.T) {
		a := NewClassNode("A", 0)
		b := NewClassNode("B", 0)
		a.SetSuperClass(b)
		b.SetSuperClass(a)
		_ = a.IsDerivedFrom(NewClassNode("C", 0)) // must not hang
	})
}

func TestString(t *testing.T) {
	list := NewClassNode("java.util.List", AccPublic|AccInterface)
	ref := list.PlainNodeReference()
	ref.SetGenericsTypes([]*GenericsType{NewGenericsType(StringType)})
	if got := ref.String(); got != "java.util.List<java.lang.String>" {
		t.Errorf("String() = %q", got)
	}
}
