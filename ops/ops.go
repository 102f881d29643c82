// Package ops implements the operator dispatch interface external
// evaluators consume: a pure lookup from (operand types, shapes,
// operation) to an opaque kernel handle, with no knowledge of how the
// handle is actually executed.
package ops

import "github.com/mabel-dev/draken"

// Kind identifies the category of operation being dispatched.
type Kind uint8

const (
	Add Kind = iota
	Sub
	Mul
	Div
	Eq
	Ne
	Gt
	Ge
	Lt
	Le
	And
	Or
	Xor
)

func (k Kind) isArithmetic() bool {
	return k == Add || k == Sub || k == Mul || k == Div
}

func (k Kind) isComparison() bool {
	return k == Eq || k == Ne || k == Gt || k == Ge || k == Lt || k == Le
}

func (k Kind) isBoolean() bool {
	return k == And || k == Or || k == Xor
}

// Handle is an opaque reference to a concrete kernel, resolved by the
// vector layer; ops itself never executes anything.
type Handle struct {
	Left      draken.Type
	LeftScalar  bool
	Right     draken.Type
	RightScalar bool
	Op        Kind
}

// GetOp looks up the kernel handle for an operation over operands of the
// given types and scalar/vector shapes. It returns (handle, true) when the
// combination is supported, (zero, false) otherwise. Compatibility rules:
//   - comparison and arithmetic require identical left/right types
//   - arithmetic further requires numeric types
//   - boolean ops require both sides Bool
//   - scalar-on-left with vector-on-right is unsupported; vector-vector,
//     vector-scalar and scalar-scalar are the supported shapes
func GetOp(leftType draken.Type, leftIsScalar bool, rightType draken.Type, rightIsScalar bool, op Kind) (Handle, bool) {
	if leftIsScalar && !rightIsScalar {
		return Handle{}, false
	}

	switch {
	case op.isArithmetic():
		if leftType != rightType || !leftType.IsNumeric() {
			return Handle{}, false
		}
	case op.isComparison():
		if leftType != rightType {
			return Handle{}, false
		}
	case op.isBoolean():
		if leftType != draken.Bool || rightType != draken.Bool {
			return Handle{}, false
		}
	default:
		return Handle{}, false
	}

	return Handle{Left: leftType, LeftScalar: leftIsScalar, Right: rightType, RightScalar: rightIsScalar, Op: op}, true
}
