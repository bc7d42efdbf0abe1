package object

import "github.com/kannanvijayan/whisper/internal/heap"

// ScopeObject is the plain lexical scope variant: a delegate list plus a
// property dict, with no further specialization.
type ScopeObject struct{ BaseObject }

func NewScopeObject(delegates []Wobject) *ScopeObject {
	s := &ScopeObject{BaseObject: NewBaseObject(heap.FormatScopeObject, delegates)}
	s.bind(s)
	return s
}

// CallScope is a function activation scope: its sole delegate is the
// function's captured lexical scope, and it is where @retcont gets bound
// when a scripted function is entered.
type CallScope struct{ BaseObject }

func NewCallScope(captured Wobject) *CallScope {
	c := &CallScope{BaseObject: NewBaseObject(heap.FormatCallScope, []Wobject{captured})}
	c.bind(c)
	return c
}

// ModuleScope holds the top-level bindings of one source file.
type ModuleScope struct{ BaseObject }

func NewModuleScope(parent Wobject) *ModuleScope {
	var delegates []Wobject
	if parent != nil {
		delegates = []Wobject{parent}
	}
	m := &ModuleScope{BaseObject: NewBaseObject(heap.FormatModuleScope, delegates)}
	m.bind(m)
	return m
}

// GlobalScope is the root of the delegate chain: it holds the default
// @... syntactic-handler bindings that make_global_scope seeds.
type GlobalScope struct{ BaseObject }

func NewGlobalScope() *GlobalScope {
	g := &GlobalScope{BaseObject: NewBaseObject(heap.FormatGlobalScope, nil)}
	g.bind(g)
	return g
}
