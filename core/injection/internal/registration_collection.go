package internal

import (
	"reflect"
	"sync"

	"github.com/SimonG96/LightweightIocContainer-sub000/core/container"
	"github.com/SimonG96/LightweightIocContainer-sub000/core/injection"
)

type RegistrationCollection struct {
	lock sync.RWMutex

	registrations container.List[*injection.Registration]
	byInterface   map[reflect.Type]*injection.Registration
	byDefinition  map[string]*injection.Registration
}

func NewRegistrationCollection() *RegistrationCollection {
	return &RegistrationCollection{
		byInterface:  make(map[reflect.Type]*injection.Registration),
		byDefinition: make(map[string]*injection.Registration),
	}
}

// Add stores every registration or none of them if one of the types is already registered.
func (ss *RegistrationCollection) Add(registrations ...*injection.Registration) error {
	ss.lock.Lock()
	defer ss.lock.Unlock()

	interfaces := container.NewSet[reflect.Type]()
	definitions := container.NewSet[string]()
	for _, r := range registrations {
		if r.IsOpenGeneric() {
			if _, ok := ss.byDefinition[r.Definition()]; ok || definitions.Contains(r.Definition()) {
				return &injection.MultipleRegistrationError{Type: r.InterfaceType()}
			}
			definitions.Add(r.Definition())
			continue
		}
		if _, ok := ss.byInterface[r.InterfaceType()]; ok || interfaces.Contains(r.InterfaceType()) {
			return &injection.MultipleRegistrationError{Type: r.InterfaceType()}
		}
		interfaces.Add(r.InterfaceType())
	}

	for _, r := range registrations {
		if r.IsOpenGeneric() {
			ss.byDefinition[r.Definition()] = r
		} else {
			ss.byInterface[r.InterfaceType()] = r
		}
		ss.registrations.Add(r)
	}
	return nil
}

// Find looks ty up as a registered interface, then as an implementation, then as an
// instantiation of an open generic definition.
func (ss *RegistrationCollection) Find(ty reflect.Type) *injection.Registration {
	ss.lock.RLock()
	defer ss.lock.RUnlock()

	if r, ok := ss.byInterface[ty]; ok {
		return r
	}

	var found *injection.Registration
	ss.registrations.ScanIf(func(r *injection.Registration) bool {
		if !r.IsOpenGeneric() && !r.IsFactoryAdapter() && r.ImplementationType() == ty {
			found = r
			return false
		}
		return true
	})
	if found != nil {
		return found
	}

	if definition, ok := injection.GenericDefinition(ty); ok {
		return ss.byDefinition[definition]
	}
	return nil
}

// Contains reports whether ty is registered as an interface or as an instantiation of an open generic.
func (ss *RegistrationCollection) Contains(ty reflect.Type) bool {
	ss.lock.RLock()
	defer ss.lock.RUnlock()

	if _, ok := ss.byInterface[ty]; ok {
		return true
	}
	if definition, ok := injection.GenericDefinition(ty); ok {
		_, ok = ss.byDefinition[definition]
		return ok
	}
	return false
}

func (ss *RegistrationCollection) Registrations() []*injection.Registration {
	ss.lock.RLock()
	defer ss.lock.RUnlock()

	return ss.registrations.Copy()
}

func (ss *RegistrationCollection) Len() int {
	ss.lock.RLock()
	defer ss.lock.RUnlock()

	return ss.registrations.Len()
}

func (ss *RegistrationCollection) Clear() {
	ss.lock.Lock()
	defer ss.lock.Unlock()

	ss.registrations.Clear()
	ss.byInterface = make(map[reflect.Type]*injection.Registration)
	ss.byDefinition = make(map[string]*injection.Registration)
}
