// Package schema implements the structural shape contracts that gate every
// gateway operation. A schema is a tree of tagged nodes built once at
// startup; validation compares key sets level by level and never inspects
// scalar values.
package schema

// Node is one entry in a schema tree: a Scalar placeholder, an Object of
// named sub-nodes, or a Group of repeated objects.
type Node interface {
	node()
}

// Scalar marks a leaf whose value is never type- or content-checked.
type Scalar struct{}

// Object is a fixed key set mapping field names to sub-nodes.
type Object map[string]Node

// Group describes a sequence of repeated sub-groups sharing one element shape.
type Group struct {
	Elem Object
}

func (Scalar) node() {}
func (Object) node() {}
func (Group) node()  {}

// Matches reports whether data is shaped exactly like the schema. The
// top-level key sets must be equal as sets; every composite value in data is
// then validated recursively against the corresponding sub-template. The
// first mismatch fails the whole check, with no per-field diagnostics.
func Matches(data map[string]interface{}, s Object) bool {
	if len(data) != len(s) {
		return false
	}
	for key := range data {
		if _, ok := s[key]; !ok {
			return false
		}
	}

	for key, value := range data {
		if !matchesNode(value, s[key]) {
			return false
		}
	}
	return true
}

// matchesNode validates a single value against its sub-template. Recursion
// is driven by the data: scalar values always pass, composite values must
// find a composite template of the same kind.
func matchesNode(value interface{}, n Node) bool {
	switch v := value.(type) {
	case map[string]interface{}:
		obj, ok := n.(Object)
		if !ok {
			return false
		}
		return Matches(v, obj)
	case []interface{}:
		group, ok := n.(Group)
		if !ok {
			return false
		}
		for _, elem := range v {
			if m, ok := elem.(map[string]interface{}); ok {
				if !Matches(m, group.Elem) {
					return false
				}
			}
		}
		return true
	case []map[string]interface{}:
		group, ok := n.(Group)
		if !ok {
			return false
		}
		for _, elem := range v {
			if !Matches(elem, group.Elem) {
				return false
			}
		}
		return true
	default:
		return true
	}
}
