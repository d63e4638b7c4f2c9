package ast

// ConstructorNode is a constructor declaration. It is a MethodNode with the
// reserved constructor name.
type ConstructorNode struct {
	MethodNode
}

func NewConstructorNode(modifiers int, parameters []*Parameter, exceptions []*ClassNode, code Statement) *ConstructorNode {
	cn := &ConstructorNode{}
	cn.name = ConstructorName
	cn.exceptions = exceptions
	cn.code = code
	cn.modifiers = modifiers
	cn.SetReturnType(VoidType)
	cn.SetParameters(parameters)
	return cn
}
