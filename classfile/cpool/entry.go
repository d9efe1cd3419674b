/*
 * Lagertha - a JVM class file toolchain
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package cpool implements the class-file constant pool: a read-side typed
// model (Pool) and a write-side interning model (Builder), per the JVM
// specification's constant pool tag table.
package cpool

import "fmt"

// Kind identifies the tag of a constant pool entry.
//
// https://docs.oracle.com/javase/specs/jvms/se17/html/jvms-4.html#jvms-4.4-210
type Kind uint8

const (
	KindUnused             Kind = 0
	KindUtf8               Kind = 1
	KindInteger            Kind = 3
	KindFloat              Kind = 4
	KindLong               Kind = 5
	KindDouble             Kind = 6
	KindClass              Kind = 7
	KindString             Kind = 8
	KindFieldRef           Kind = 9
	KindMethodRef           Kind = 10
	KindInterfaceMethodRef Kind = 11
	KindNameAndType        Kind = 12
	KindMethodHandle       Kind = 15
	KindMethodType         Kind = 16
	KindDynamic            Kind = 17
	KindInvokeDynamic      Kind = 18
	KindModule             Kind = 19
	KindPackage            Kind = 20
)

func (k Kind) String() string {
	switch k {
	case KindUnused:
		return "Unused"
	case KindUtf8:
		return "Utf8"
	case KindInteger:
		return "Integer"
	case KindFloat:
		return "Float"
	case KindLong:
		return "Long"
	case KindDouble:
		return "Double"
	case KindClass:
		return "Class"
	case KindString:
		return "String"
	case KindFieldRef:
		return "Fieldref"
	case KindMethodRef:
		return "Methodref"
	case KindInterfaceMethodRef:
		return "InterfaceMethodref"
	case KindNameAndType:
		return "NameAndType"
	case KindMethodHandle:
		return "MethodHandle"
	case KindMethodType:
		return "MethodType"
	case KindDynamic:
		return "Dynamic"
	case KindInvokeDynamic:
		return "InvokeDynamic"
	case KindModule:
		return "Module"
	case KindPackage:
		return "Package"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Reference is the shared shape of Fieldref/Methodref/InterfaceMethodref
// entries: a class index and a name-and-type index.
type Reference struct {
	ClassIndex      uint16
	NameAndTypeIndex uint16
}

// NameAndType is a (name, descriptor) pair used by refs and dynamic entries.
type NameAndType struct {
	NameIndex       uint16
	DescriptorIndex uint16
}

// Dynamic backs both the Dynamic and InvokeDynamic entries: a bootstrap
// method table index plus a name-and-type index.
type Dynamic struct {
	BootstrapMethodAttrIndex uint16
	NameAndTypeIndex         uint16
}

// MethodHandleKind is the reference_kind of a MethodHandle entry.
//
// https://docs.oracle.com/javase/specs/jvms/se17/html/jvms-4.html#jvms-4.4.8
type MethodHandleKind uint8

const (
	RefGetField         MethodHandleKind = 1
	RefGetStatic        MethodHandleKind = 2
	RefPutField         MethodHandleKind = 3
	RefPutStatic        MethodHandleKind = 4
	RefInvokeVirtual    MethodHandleKind = 5
	RefInvokeStatic     MethodHandleKind = 6
	RefInvokeSpecial    MethodHandleKind = 7
	RefNewInvokeSpecial MethodHandleKind = 8
	RefInvokeInterface  MethodHandleKind = 9
)

func (k MethodHandleKind) Valid() bool {
	return k >= RefGetField && k <= RefInvokeInterface
}

// Entry is one logical constant pool slot. Concrete types implement it; the
// zero value of the interface never occurs in a Pool (Unused is explicit).
type Entry interface {
	Kind() Kind
}

type UnusedEntry struct{}

func (UnusedEntry) Kind() Kind { return KindUnused }

type Utf8Entry struct{ Value string }

func (Utf8Entry) Kind() Kind { return KindUtf8 }

type IntegerEntry struct{ Value int32 }

func (IntegerEntry) Kind() Kind { return KindInteger }

type FloatEntry struct{ Value float32 }

func (FloatEntry) Kind() Kind { return KindFloat }

type LongEntry struct{ Value int64 }

func (LongEntry) Kind() Kind { return KindLong }

type DoubleEntry struct{ Value float64 }

func (DoubleEntry) Kind() Kind { return KindDouble }

// ClassEntry's Value is the Utf8 index holding the (possibly array)
// internal class name, e.g. "java/lang/Object" or "[Ljava/lang/String;".
type ClassEntry struct{ NameIndex uint16 }

func (ClassEntry) Kind() Kind { return KindClass }

type StringEntry struct{ Utf8Index uint16 }

func (StringEntry) Kind() Kind { return KindString }

type FieldRefEntry struct{ Ref Reference }

func (FieldRefEntry) Kind() Kind { return KindFieldRef }

type MethodRefEntry struct{ Ref Reference }

func (MethodRefEntry) Kind() Kind { return KindMethodRef }

type InterfaceMethodRefEntry struct{ Ref Reference }

func (InterfaceMethodRefEntry) Kind() Kind { return KindInterfaceMethodRef }

type NameAndTypeEntry struct{ NameAndType NameAndType }

func (NameAndTypeEntry) Kind() Kind { return KindNameAndType }

type MethodHandleEntry struct {
	ReferenceKind  uint8
	ReferenceIndex uint16
}

func (MethodHandleEntry) Kind() Kind { return KindMethodHandle }

type MethodTypeEntry struct{ DescriptorIndex uint16 }

func (MethodTypeEntry) Kind() Kind { return KindMethodType }

type DynamicEntry struct{ Dynamic Dynamic }

func (DynamicEntry) Kind() Kind { return KindDynamic }

type InvokeDynamicEntry struct{ Dynamic Dynamic }

func (InvokeDynamicEntry) Kind() Kind { return KindInvokeDynamic }

type ModuleEntry struct{ NameIndex uint16 }

func (ModuleEntry) Kind() Kind { return KindModule }

type PackageEntry struct{ NameIndex uint16 }

func (PackageEntry) Kind() Kind { return KindPackage }
