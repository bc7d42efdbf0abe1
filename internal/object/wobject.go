package object

import "github.com/kannanvijayan/whisper/internal/heap"

// Wobject is the abstract capability every heap object participating in
// property lookup satisfies: its own delegates, and the lookup/define
// protocol that walks them.
type Wobject interface {
	heap.Thing
	GetDelegates() []Wobject
	LookupProperty(name string) (PropertyDescriptor, LookupState, bool)
	DefineProperty(name string, desc PropertyDescriptor)
	// HeapTag satisfies value.HeapRef so a Wobject can be boxed directly
	// via value.ObjectRef without an intermediate concrete-type
	// conversion (every implementation embeds BaseObject, which supplies
	// it).
	HeapTag() uint8
}

// LookupState records the receiver a Method descriptor must be reified
// against: the object LookupProperty was originally called on, not the
// delegate that happened to hold the binding. This is what "self under
// delegation" means here — a method inherited through a delegate chain
// still sees the original receiver as self, the same rule JavaScript's
// prototype chain or Kernel's ancestor lists use.
type LookupState struct {
	FoundAt Wobject
}

// BaseObject implements the Wobject capability; every concrete object
// kind (ScopeObject, CallScope, ModuleScope, GlobalScope, and any future
// Wobject) embeds it and calls bind(self) once constructed so that
// LookupState.FoundAt names the outer type rather than this struct.
type BaseObject struct {
	header    heap.Header
	self      Wobject
	Delegates []Wobject
	Dict      *PropertyDict
}

func NewBaseObject(format heap.Format, delegates []Wobject) BaseObject {
	return BaseObject{
		header:    heap.NewHeader(format, 1),
		Delegates: delegates,
		Dict:      NewPropertyDict(),
	}
}

func (o *BaseObject) bind(self Wobject) { o.self = self }

func (o *BaseObject) HeapHeader() *heap.Header { return &o.header }
func (o *BaseObject) Address() uintptr         { return o.header.Address() }

// HeapTag satisfies value.HeapRef so a ScopeObject/CallScope/ModuleScope/
// GlobalScope can be carried directly inside a value.Box via ObjectRef.
func (o *BaseObject) HeapTag() uint8 { return o.header.HeapTag() }

func (o *BaseObject) Scan(visit func(heap.Thing)) {
	visit(o.Dict)
	for _, d := range o.Delegates {
		visit(d)
	}
}

func (o *BaseObject) GetDelegates() []Wobject { return o.Delegates }

// LookupProperty searches the object's own dict first, then its delegates
// in order, depth-first, with the first match winning. The returned
// LookupState always names this object as the receiver, even when the
// match came from a delegate several levels down — delegation changes
// where a binding is found, never who self is.
func (o *BaseObject) LookupProperty(name string) (PropertyDescriptor, LookupState, bool) {
	if desc, ok := o.Dict.Get(name); ok {
		return desc, LookupState{FoundAt: o.self}, true
	}
	for _, d := range o.Delegates {
		if desc, _, ok := d.LookupProperty(name); ok {
			return desc, LookupState{FoundAt: o.self}, true
		}
	}
	return PropertyDescriptor{}, LookupState{}, false
}

func (o *BaseObject) DefineProperty(name string, desc PropertyDescriptor) {
	o.Dict.Define(name, desc)
}
