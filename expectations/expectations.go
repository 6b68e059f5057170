// Package expectations computes closed-form expectations of kernel and
// mean-function products under a distribution over latent inputs, as used in
// variational sparse Gaussian process approximations. Formulas are selected
// by multiple dispatch on the runtime kinds of the distribution and the two
// (object, feature) operand pairs.
package expectations

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"c4science.ch/source/gpexp/dispatch"
	"c4science.ch/source/gpexp/dists"
	"c4science.ch/source/gpexp/features"
)

// Tensor is a batched result, one matrix per data point. Rank-2 results
// (e.g. eKxz, NxM) are batches of 1xM rows.
type Tensor = []*mat.Dense

var (
	// ErrNotImplemented marks a combination that is registered only to
	// block recursion or to fail fast; hitting it means a more specific
	// formula is missing.
	ErrNotImplemented = errors.New("no specific expectation formula implemented")

	// ErrBadOperand is returned when an operand argument is neither an
	// object nor an (object, feature) pair.
	ErrBadOperand = errors.New("operand must be an object or an (object, feature) pair")
)

// Operand pairs an object (kernel or mean function) with an optional
// inducing feature.
type Operand struct {
	Object  dispatch.Typed
	Feature features.InducingFeature
}

// Pair builds an explicit (object, feature) operand.
func Pair(obj dispatch.Typed, feat features.InducingFeature) Operand {
	return Operand{Object: obj, Feature: feat}
}

// Handler computes one expectation. Handlers are pure: they read the
// distribution and operands and return a fresh tensor. They may re-enter the
// evaluator to compose formulas. nghp is forwarded untouched; handlers that
// have no use for it ignore it.
type Handler func(ev *Evaluator, p dists.Distribution,
	obj1 dispatch.Typed, feat1 features.InducingFeature,
	obj2 dispatch.Typed, feat2 features.InducingFeature,
	nghp *int) (Tensor, error)

// Evaluator is the public entry point. It owns a registry of expectation
// handlers; NewEvaluator pre-registers the full formula set.
type Evaluator struct {
	reg *dispatch.Registry[Handler]
}

func NewEvaluator() *Evaluator {
	ev := Scoped()
	registerMisc(ev.reg)
	registerLinears(ev.reg)
	registerSqExp(ev.reg)
	return ev
}

// Scoped returns an evaluator with an empty registry, for callers (and
// tests) that want full control over the registered handler set.
func Scoped() *Evaluator {
	return &Evaluator{
		reg: dispatch.NewRegistry[Handler](),
	}
}

// Register adds a handler under one or more signatures.
func (ev *Evaluator) Register(h Handler, sigs ...dispatch.Signature) {
	for _, sig := range sigs {
		ev.reg.Register(sig, h)
	}
}

// Expectation computes <f(x)> under p, where f is determined by the one or
// two operands. Each operand may be passed as a bare object, an Operand
// pair, or nil for "not supplied". Resolution and handler errors surface to
// the caller unchanged.
func (ev *Evaluator) Expectation(p dists.Distribution, arg1, arg2 any, nghp *int) (Tensor, error) {
	op1, err := normalize(arg1)
	if err != nil {
		return nil, err
	}
	op2, err := normalize(arg2)
	if err != nil {
		return nil, err
	}
	key := dispatch.Key{
		dispatch.KindOf(p),
		dispatch.KindOf(op1.Object),
		dispatch.KindOf(op1.Feature),
		dispatch.KindOf(op2.Object),
		dispatch.KindOf(op2.Feature),
	}
	h, err := ev.reg.Resolve(key)
	if err != nil {
		return nil, err
	}
	return h(ev, p, op1.Object, op1.Feature, op2.Object, op2.Feature, nghp)
}

func normalize(arg any) (Operand, error) {
	switch v := arg.(type) {
	case nil:
		return Operand{}, nil
	case Operand:
		return v, nil
	case dispatch.Typed:
		return Operand{Object: v}, nil
	default:
		return Operand{}, fmt.Errorf("%w: got %T", ErrBadOperand, arg)
	}
}
