/*
 * Lagertha - a JVM class file toolchain
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package cpool

// Builder interns constant pool entries while assembling a class file,
// reusing an existing index whenever an equal Utf8, Class, String,
// NameAndType, Fieldref, or Methodref entry was already added. The other
// Add methods are not interned: each call appends a new entry. It
// mirrors the javac/jasm convention that the pool is built bottom-up:
// indices referenced by a later entry (e.g. a Methodref's NameAndType) must
// already exist before that entry is added.
type Builder struct {
	entries     []Entry
	utf8ByValue map[string]uint16
	classByName map[uint16]uint16
	stringByVal map[uint16]uint16
	natByPair   map[NameAndType]uint16
	methodref   map[Reference]uint16
	fieldref    map[Reference]uint16
}

// NewBuilder starts a pool with the mandatory index-0 Unused slot.
func NewBuilder() *Builder {
	return &Builder{
		entries:     []Entry{UnusedEntry{}},
		utf8ByValue: make(map[string]uint16),
		classByName: make(map[uint16]uint16),
		stringByVal: make(map[uint16]uint16),
		natByPair:   make(map[NameAndType]uint16),
		methodref:   make(map[Reference]uint16),
		fieldref:    make(map[Reference]uint16),
	}
}

// add appends entry and returns its 1-based index. Wide entries (Long,
// Double) push a following UnusedEntry to occupy the extra slot the JVM
// reserves for them.
func (b *Builder) add(e Entry) uint16 {
	index := uint16(len(b.entries))
	b.entries = append(b.entries, e)
	switch e.(type) {
	case LongEntry, DoubleEntry:
		b.entries = append(b.entries, UnusedEntry{})
	}
	return index
}

// AddUtf8 interns value, returning its existing index if already present.
func (b *Builder) AddUtf8(value string) uint16 {
	if idx, ok := b.utf8ByValue[value]; ok {
		return idx
	}
	idx := b.add(Utf8Entry{Value: value})
	b.utf8ByValue[value] = idx
	return idx
}

// AddClass interns a Class entry referencing nameIndex (the Utf8 index of
// the internal class name).
func (b *Builder) AddClass(nameIndex uint16) uint16 {
	if idx, ok := b.classByName[nameIndex]; ok {
		return idx
	}
	idx := b.add(ClassEntry{NameIndex: nameIndex})
	b.classByName[nameIndex] = idx
	return idx
}

// AddString interns a String entry referencing utf8Index.
func (b *Builder) AddString(utf8Index uint16) uint16 {
	if idx, ok := b.stringByVal[utf8Index]; ok {
		return idx
	}
	idx := b.add(StringEntry{Utf8Index: utf8Index})
	b.stringByVal[utf8Index] = idx
	return idx
}

// AddNameAndType interns a NameAndType entry.
func (b *Builder) AddNameAndType(nameIndex, descriptorIndex uint16) uint16 {
	key := NameAndType{NameIndex: nameIndex, DescriptorIndex: descriptorIndex}
	if idx, ok := b.natByPair[key]; ok {
		return idx
	}
	idx := b.add(NameAndTypeEntry{NameAndType: key})
	b.natByPair[key] = idx
	return idx
}

// AddFieldRef interns a Fieldref entry.
func (b *Builder) AddFieldRef(classIndex, nameAndTypeIndex uint16) uint16 {
	key := Reference{ClassIndex: classIndex, NameAndTypeIndex: nameAndTypeIndex}
	if idx, ok := b.fieldref[key]; ok {
		return idx
	}
	idx := b.add(FieldRefEntry{Ref: key})
	b.fieldref[key] = idx
	return idx
}

// AddMethodRef interns a Methodref entry.
func (b *Builder) AddMethodRef(classIndex, nameAndTypeIndex uint16) uint16 {
	key := Reference{ClassIndex: classIndex, NameAndTypeIndex: nameAndTypeIndex}
	if idx, ok := b.methodref[key]; ok {
		return idx
	}
	idx := b.add(MethodRefEntry{Ref: key})
	b.methodref[key] = idx
	return idx
}

// AddInterfaceMethodRef adds an InterfaceMethodref entry. Unlike
// AddFieldRef and AddMethodRef it is not interned: every call appends a new
// entry, even for a (class, name-and-type) pair already added.
func (b *Builder) AddInterfaceMethodRef(classIndex, nameAndTypeIndex uint16) uint16 {
	return b.add(InterfaceMethodRefEntry{Ref: Reference{ClassIndex: classIndex, NameAndTypeIndex: nameAndTypeIndex}})
}

// AddInteger adds an Integer entry. Not interned: every call appends a new
// entry, even for a value already added.
func (b *Builder) AddInteger(value int32) uint16 {
	return b.add(IntegerEntry{Value: value})
}

// AddFloat adds a Float entry.
func (b *Builder) AddFloat(value float32) uint16 {
	return b.add(FloatEntry{Value: value})
}

// AddLong adds a Long entry, consuming two constant pool slots.
func (b *Builder) AddLong(value int64) uint16 {
	return b.add(LongEntry{Value: value})
}

// AddDouble adds a Double entry, consuming two constant pool slots.
func (b *Builder) AddDouble(value float64) uint16 {
	return b.add(DoubleEntry{Value: value})
}

// AddMethodHandle adds a MethodHandle entry.
func (b *Builder) AddMethodHandle(kind MethodHandleKind, referenceIndex uint16) uint16 {
	return b.add(MethodHandleEntry{ReferenceKind: uint8(kind), ReferenceIndex: referenceIndex})
}

// AddMethodType adds a MethodType entry.
func (b *Builder) AddMethodType(descriptorIndex uint16) uint16 {
	return b.add(MethodTypeEntry{DescriptorIndex: descriptorIndex})
}

// AddDynamic adds a Dynamic (condy) entry.
func (b *Builder) AddDynamic(bootstrapMethodAttrIndex, nameAndTypeIndex uint16) uint16 {
	return b.add(DynamicEntry{Dynamic: Dynamic{
		BootstrapMethodAttrIndex: bootstrapMethodAttrIndex,
		NameAndTypeIndex:         nameAndTypeIndex,
	}})
}

// AddInvokeDynamic adds an InvokeDynamic entry.
func (b *Builder) AddInvokeDynamic(bootstrapMethodAttrIndex, nameAndTypeIndex uint16) uint16 {
	return b.add(InvokeDynamicEntry{Dynamic: Dynamic{
		BootstrapMethodAttrIndex: bootstrapMethodAttrIndex,
		NameAndTypeIndex:         nameAndTypeIndex,
	}})
}

// Len returns the current constant_pool_count (including the leading
// Unused slot and any Unused slots trailing wide entries).
func (b *Builder) Len() int { return len(b.entries) }

// Build finalizes the builder into a read-only Pool.
func (b *Builder) Build() *Pool {
	out := make([]Entry, len(b.entries))
	copy(out, b.entries)
	return NewPool(out)
}
