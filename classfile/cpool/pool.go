/*
 * Lagertha - a JVM class file toolchain
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package cpool

import "fmt"

// TypeError reports that a constant pool index resolved to an entry of an
// unexpected kind.
type TypeError struct {
	Index    uint16
	Expected Kind
	Actual   Kind
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("constant pool entry at index %d: expected %s, got %s",
		e.Index, e.Expected, e.Actual)
}

// NotFoundError reports an out-of-range constant pool index, or one that
// Get rejects as an occupied-but-Unused slot.
type NotFoundError struct {
	Index uint16
	Size  int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("constant pool entry not found at index %d (pool size %d)", e.Index, e.Size)
}

// Pool is the read-side, 1-indexed view of a class file's constant_pool
// table. Index 0 is never valid; wide entries (Long, Double) occupy their
// own slot plus a following Unused slot, mirroring the JVM's layout.
type Pool struct {
	entries []Entry // entries[0] is the unused placeholder for index 0
}

// NewPool wraps entries as read; entries[0] should be an UnusedEntry.
func NewPool(entries []Entry) *Pool {
	return &Pool{entries: entries}
}

// Len returns count, the constant_pool_count value (len(entries), including
// the unused index-0 slot and any Unused slots following wide entries).
func (p *Pool) Len() int { return len(p.entries) }

// get returns the raw entry at index, or NotFoundError for index 0 or an
// out-of-range index. An index landing on an occupied-but-Unused slot (the
// second slot of a Long/Double entry) is returned as-is: it is not a missing
// entry, so the typed accessors below surface it as a TypeError against
// their own expected kind, same as any other kind mismatch.
func (p *Pool) get(index uint16) (Entry, error) {
	if index == 0 || int(index) >= len(p.entries) {
		return nil, &NotFoundError{Index: index, Size: len(p.entries)}
	}
	e := p.entries[index]
	if e == nil {
		return nil, &NotFoundError{Index: index, Size: len(p.entries)}
	}
	return e, nil
}

// Get returns the raw entry at index, treating an occupied-but-Unused slot
// (the slot following a Long/Double entry) as not found: a generic caller
// has no expected kind to report a TypeError against, unlike the typed
// accessors below.
func (p *Pool) Get(index uint16) (Entry, error) {
	e, err := p.get(index)
	if err != nil {
		return nil, err
	}
	if _, ok := e.(UnusedEntry); ok {
		return nil, &NotFoundError{Index: index, Size: len(p.entries)}
	}
	return e, nil
}

// GetUtf8 returns the string value of a Utf8 entry at index.
func (p *Pool) GetUtf8(index uint16) (string, error) {
	e, err := p.get(index)
	if err != nil {
		return "", err
	}
	u, ok := e.(Utf8Entry)
	if !ok {
		return "", &TypeError{Index: index, Expected: KindUtf8, Actual: e.Kind()}
	}
	return u.Value, nil
}

// GetClass returns the ClassEntry at index.
func (p *Pool) GetClass(index uint16) (ClassEntry, error) {
	e, err := p.get(index)
	if err != nil {
		return ClassEntry{}, err
	}
	c, ok := e.(ClassEntry)
	if !ok {
		return ClassEntry{}, &TypeError{Index: index, Expected: KindClass, Actual: e.Kind()}
	}
	return c, nil
}

// GetClassName resolves a Class entry at index through to its Utf8 name.
func (p *Pool) GetClassName(index uint16) (string, error) {
	c, err := p.GetClass(index)
	if err != nil {
		return "", err
	}
	return p.GetUtf8(c.NameIndex)
}

// GetNameAndType returns the NameAndTypeEntry at index.
func (p *Pool) GetNameAndType(index uint16) (NameAndType, error) {
	e, err := p.get(index)
	if err != nil {
		return NameAndType{}, err
	}
	nt, ok := e.(NameAndTypeEntry)
	if !ok {
		return NameAndType{}, &TypeError{Index: index, Expected: KindNameAndType, Actual: e.Kind()}
	}
	return nt.NameAndType, nil
}

// GetString resolves a String entry at index through to its Utf8 value.
func (p *Pool) GetString(index uint16) (string, error) {
	e, err := p.get(index)
	if err != nil {
		return "", err
	}
	s, ok := e.(StringEntry)
	if !ok {
		return "", &TypeError{Index: index, Expected: KindString, Actual: e.Kind()}
	}
	return p.GetUtf8(s.Utf8Index)
}

// GetInteger returns the int32 value of an Integer entry at index.
func (p *Pool) GetInteger(index uint16) (int32, error) {
	e, err := p.get(index)
	if err != nil {
		return 0, err
	}
	v, ok := e.(IntegerEntry)
	if !ok {
		return 0, &TypeError{Index: index, Expected: KindInteger, Actual: e.Kind()}
	}
	return v.Value, nil
}

// GetFloat returns the float32 value of a Float entry at index.
func (p *Pool) GetFloat(index uint16) (float32, error) {
	e, err := p.get(index)
	if err != nil {
		return 0, err
	}
	v, ok := e.(FloatEntry)
	if !ok {
		return 0, &TypeError{Index: index, Expected: KindFloat, Actual: e.Kind()}
	}
	return v.Value, nil
}

// GetLong returns the int64 value of a Long entry at index.
func (p *Pool) GetLong(index uint16) (int64, error) {
	e, err := p.get(index)
	if err != nil {
		return 0, err
	}
	v, ok := e.(LongEntry)
	if !ok {
		return 0, &TypeError{Index: index, Expected: KindLong, Actual: e.Kind()}
	}
	return v.Value, nil
}

// GetDouble returns the float64 value of a Double entry at index.
func (p *Pool) GetDouble(index uint16) (float64, error) {
	e, err := p.get(index)
	if err != nil {
		return 0, err
	}
	v, ok := e.(DoubleEntry)
	if !ok {
		return 0, &TypeError{Index: index, Expected: KindDouble, Actual: e.Kind()}
	}
	return v.Value, nil
}

// GetFieldRef returns the Reference backing a Fieldref entry at index.
func (p *Pool) GetFieldRef(index uint16) (Reference, error) {
	e, err := p.get(index)
	if err != nil {
		return Reference{}, err
	}
	r, ok := e.(FieldRefEntry)
	if !ok {
		return Reference{}, &TypeError{Index: index, Expected: KindFieldRef, Actual: e.Kind()}
	}
	return r.Ref, nil
}

// GetMethodRef returns the Reference backing a Methodref entry at index.
func (p *Pool) GetMethodRef(index uint16) (Reference, error) {
	e, err := p.get(index)
	if err != nil {
		return Reference{}, err
	}
	r, ok := e.(MethodRefEntry)
	if !ok {
		return Reference{}, &TypeError{Index: index, Expected: KindMethodRef, Actual: e.Kind()}
	}
	return r.Ref, nil
}

// GetInterfaceMethodRef returns the Reference backing an
// InterfaceMethodref entry at index.
func (p *Pool) GetInterfaceMethodRef(index uint16) (Reference, error) {
	e, err := p.get(index)
	if err != nil {
		return Reference{}, err
	}
	r, ok := e.(InterfaceMethodRefEntry)
	if !ok {
		return Reference{}, &TypeError{Index: index, Expected: KindInterfaceMethodRef, Actual: e.Kind()}
	}
	return r.Ref, nil
}

// GetMethodHandle returns the MethodHandleEntry at index, with its
// reference_kind validated.
func (p *Pool) GetMethodHandle(index uint16) (MethodHandleEntry, error) {
	e, err := p.get(index)
	if err != nil {
		return MethodHandleEntry{}, err
	}
	mh, ok := e.(MethodHandleEntry)
	if !ok {
		return MethodHandleEntry{}, &TypeError{Index: index, Expected: KindMethodHandle, Actual: e.Kind()}
	}
	if !MethodHandleKind(mh.ReferenceKind).Valid() {
		return MethodHandleEntry{}, fmt.Errorf("invalid method handle reference_kind %d at index %d", mh.ReferenceKind, index)
	}
	return mh, nil
}

// GetMethodType returns the Utf8 descriptor index of a MethodType entry.
func (p *Pool) GetMethodType(index uint16) (uint16, error) {
	e, err := p.get(index)
	if err != nil {
		return 0, err
	}
	mt, ok := e.(MethodTypeEntry)
	if !ok {
		return 0, &TypeError{Index: index, Expected: KindMethodType, Actual: e.Kind()}
	}
	return mt.DescriptorIndex, nil
}

// GetDynamic returns the Dynamic value backing a Dynamic entry at index.
func (p *Pool) GetDynamic(index uint16) (Dynamic, error) {
	e, err := p.get(index)
	if err != nil {
		return Dynamic{}, err
	}
	d, ok := e.(DynamicEntry)
	if !ok {
		return Dynamic{}, &TypeError{Index: index, Expected: KindDynamic, Actual: e.Kind()}
	}
	return d.Dynamic, nil
}

// GetInvokeDynamic returns the Dynamic value backing an InvokeDynamic entry
// at index.
func (p *Pool) GetInvokeDynamic(index uint16) (Dynamic, error) {
	e, err := p.get(index)
	if err != nil {
		return Dynamic{}, err
	}
	d, ok := e.(InvokeDynamicEntry)
	if !ok {
		return Dynamic{}, &TypeError{Index: index, Expected: KindInvokeDynamic, Actual: e.Kind()}
	}
	return d.Dynamic, nil
}
