package tree

import (
	"math"
	"math/big"
)

// Equivalent reports whether a and b are structurally equal. Mappings must
// have the same keys with equivalent values, sequences must contain
// equivalent elements in any order, and numbers compare by value.
// Mapping key order is ignored.
func Equivalent(a, b Node) bool {
	if IsNull(a) || IsNull(b) {
		return IsNull(a) && IsNull(b)
	}

	switch x := a.(type) {
	case *Mapping:
		y, ok := b.(*Mapping)
		if !ok || x.Len() != y.Len() {
			return false
		}

		for _, key := range x.keys {
			yv, ok := y.values[key]
			if !ok || !Equivalent(x.values[key], yv) {
				return false
			}
		}

		return true

	case Sequence:
		y, ok := b.(Sequence)
		if !ok || len(x) != len(y) {
			return false
		}

		return sameElements(x, y)

	case Scalar:
		y, ok := b.(Scalar)
		if !ok {
			return false
		}

		return scalarEqual(x, y)
	}

	return false
}

// sameElements matches every element of x against a distinct element of y.
// Greedy matching is sufficient because Equivalent is an equivalence
// relation.
func sameElements(x, y Sequence) bool {
	used := make([]bool, len(y))

next:
	for _, xv := range x {
		for j, yv := range y {
			if !used[j] && Equivalent(xv, yv) {
				used[j] = true

				continue next
			}
		}

		return false
	}

	return true
}

func scalarEqual(x, y Scalar) bool {
	xk, yk := x.Kind(), y.Kind()

	if isNumber(xk) && isNumber(yk) {
		xf, xok := bigFloat(x.v)
		yf, yok := bigFloat(y.v)

		return xok && yok && xf.Cmp(yf) == 0
	}

	return xk == yk && x.v == y.v
}

func isNumber(k Kind) bool {
	return k == KindInt || k == KindFloat
}

func bigFloat(v any) (*big.Float, bool) {
	switch n := v.(type) {
	case int64:
		return new(big.Float).SetInt64(n), true
	case uint64:
		return new(big.Float).SetUint64(n), true
	case float64:
		if math.IsNaN(n) {
			return nil, false
		}

		return new(big.Float).SetFloat64(n), true
	}

	return nil, false
}
