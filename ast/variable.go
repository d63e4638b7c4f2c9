package ast

// Variable is anything a name in a method body can resolve to.
type Variable interface {
	Name() string
	Type() *ClassNode
}

// VariableScope tracks the variables visible in a method or closure body.
// A method's scope is rebuilt whenever its parameter list is replaced, so
// the two never disagree.
type VariableScope struct {
	declared        map[string]Variable
	inStaticContext bool
}

func NewVariableScope() *VariableScope {
	return &VariableScope{declared: make(map[string]Variable)}
}

// PutDeclaredVariable registers a variable under its name.
func (s *VariableScope) PutDeclaredVariable(v Variable) {
	s.declared[v.Name()] = v
}

// DeclaredVariable returns the variable bound to name, or nil.
func (s *VariableScope) DeclaredVariable(name string) Variable {
	return s.declared[name]
}

func (s *VariableScope) InStaticContext() bool     { return s.inStaticContext }
func (s *VariableScope) SetInStaticContext(b bool) { s.inStaticContext = b }
