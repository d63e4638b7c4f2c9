package ast

// AnnotationNode is an annotation attached to a declaration, with its
// member values as expressions.
type AnnotationNode struct {
	BaseNode

	classNode *ClassNode
	members   map[string]Expression

	runtimeRetention bool
	sourceRetention  bool
	classRetention   bool
}

func NewAnnotationNode(classNode *ClassNode) *AnnotationNode {
	return &AnnotationNode{classNode: classNode}
}

func (a *AnnotationNode) ClassNode() *ClassNode { return a.classNode }

func (a *AnnotationNode) Member(name string) Expression {
	return a.members[name]
}

func (a *AnnotationNode) SetMember(name string, value Expression) {
	if a.members == nil {
		a.members = make(map[string]Expression)
	}
	a.members[name] = value
}

func (a *AnnotationNode) Members() map[string]Expression { return a.members }

func (a *AnnotationNode) HasRuntimeRetention() bool  { return a.runtimeRetention }
func (a *AnnotationNode) SetRuntimeRetention(b bool) { a.runtimeRetention = b }
func (a *AnnotationNode) HasSourceRetention() bool   { return a.sourceRetention }
func (a *AnnotationNode) SetSourceRetention(b bool)  { a.sourceRetention = b }
func (a *AnnotationNode) HasClassRetention() bool    { return a.classRetention }
func (a *AnnotationNode) SetClassRetention(b bool)   { a.classRetention = b }
