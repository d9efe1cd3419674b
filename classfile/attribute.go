/*
 * Lagertha - a JVM class file toolchain
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classfile

import "github.com/obito-git/lagertha/classfile/bytecode"

// ClassAttribute, FieldAttribute, and MethodAttribute are marker
// interfaces discriminating attribute payloads by the location they were
// read from. SharedAttribute implements all three, since Synthetic,
// Deprecated, Signature, and the Runtime(In)visible(Type)?Annotations
// attributes are legal at every location.
type ClassAttribute interface{ isClassAttribute() }
type FieldAttribute interface{ isFieldAttribute() }
type MethodAttribute interface{ isMethodAttribute() }

// CodeBodyAttribute marks attributes nested inside a Code attribute's own
// attribute table (LineNumberTable, LocalVariableTable, StackMapTable, and
// the shared variants that may appear there).
type CodeBodyAttribute interface{ isCodeBodyAttribute() }

// SharedKind discriminates the attribute kinds legal at every location.
type SharedKind int

const (
	SharedSynthetic SharedKind = iota
	SharedDeprecated
	SharedSignature
	SharedRuntimeVisibleAnnotations
	SharedRuntimeInvisibleAnnotations
	SharedRuntimeVisibleTypeAnnotations
	SharedRuntimeInvisibleTypeAnnotations
)

// SharedAttribute is the payload for every location-independent attribute
// kind; which fields are populated depends on Kind.
type SharedAttribute struct {
	Kind SharedKind

	SignatureIndex uint16 // SharedSignature

	Annotations []Annotation // SharedRuntimeVisible/InvisibleAnnotations

	TypeAnnotations []TypeAnnotation // SharedRuntimeVisible/InvisibleTypeAnnotations
}

func (SharedAttribute) isClassAttribute()    {}
func (SharedAttribute) isFieldAttribute()    {}
func (SharedAttribute) isMethodAttribute()   {}
func (SharedAttribute) isCodeBodyAttribute() {}

// sharedAttributeNames maps an attribute name to its SharedKind, for names
// legal at every location.
var sharedAttributeNames = map[string]SharedKind{
	"Synthetic":                          SharedSynthetic,
	"Deprecated":                         SharedDeprecated,
	"Signature":                          SharedSignature,
	"RuntimeVisibleAnnotations":          SharedRuntimeVisibleAnnotations,
	"RuntimeInvisibleAnnotations":        SharedRuntimeInvisibleAnnotations,
	"RuntimeVisibleTypeAnnotations":      SharedRuntimeVisibleTypeAnnotations,
	"RuntimeInvisibleTypeAnnotations":    SharedRuntimeInvisibleTypeAnnotations,
}

// --- field-only attributes ---

// ConstantValueAttribute gives a static final field its compile-time
// constant value, by constant-pool index.
type ConstantValueAttribute struct{ ValueIndex uint16 }

func (ConstantValueAttribute) isFieldAttribute() {}

// --- method-only attributes ---

// ExceptionTableEntry is one row of a Code attribute's exception table.
type ExceptionTableEntry struct {
	StartPC   uint16
	EndPC     uint16
	HandlerPC uint16
	CatchType uint16 // 0 means "any" (finally)
}

// CodeAttribute is a method body: its operand-stack/local-variable bounds,
// decoded instructions, exception handlers, and nested attributes.
type CodeAttribute struct {
	MaxStack       uint16
	MaxLocals      uint16
	Code           []byte
	Instructions   []bytecode.Instruction
	ExceptionTable []ExceptionTableEntry
	Attributes     []CodeBodyAttribute
}

func (CodeAttribute) isMethodAttribute() {}

// ExceptionsAttribute lists the checked exception types a method declares.
type ExceptionsAttribute struct{ ExceptionIndexTable []uint16 }

func (ExceptionsAttribute) isMethodAttribute() {}

// MethodParameter is one entry of a MethodParameters attribute.
type MethodParameter struct {
	NameIndex   uint16 // 0 means unnamed
	AccessFlags uint16
}

// MethodParametersAttribute records formal parameter names/flags not
// otherwise recoverable from the descriptor.
type MethodParametersAttribute struct{ Parameters []MethodParameter }

func (MethodParametersAttribute) isMethodAttribute() {}

// AnnotationDefaultAttribute records an annotation-interface element's
// default value.
type AnnotationDefaultAttribute struct{ Value ElementValue }

func (AnnotationDefaultAttribute) isMethodAttribute() {}

// ParameterAnnotations is one formal parameter's annotation list, as used
// by RuntimeVisible/InvisibleParameterAnnotations.
type ParameterAnnotations struct{ Annotations []Annotation }

// RuntimeVisibleParameterAnnotationsAttribute / RuntimeInvisible... carry
// per-parameter annotation lists.
type RuntimeVisibleParameterAnnotationsAttribute struct {
	Parameters []ParameterAnnotations
}

func (RuntimeVisibleParameterAnnotationsAttribute) isMethodAttribute() {}

type RuntimeInvisibleParameterAnnotationsAttribute struct {
	Parameters []ParameterAnnotations
}

func (RuntimeInvisibleParameterAnnotationsAttribute) isMethodAttribute() {}

// --- code-body-only attributes ---

// LineNumberEntry maps a bytecode offset to a source line.
type LineNumberEntry struct {
	StartPC    uint16
	LineNumber uint16
}

type LineNumberTableAttribute struct{ Entries []LineNumberEntry }

func (LineNumberTableAttribute) isCodeBodyAttribute() {}

// LocalVariableEntry is one live-range row of a LocalVariableTable.
type LocalVariableEntry struct {
	StartPC        uint16
	Length         uint16
	NameIndex      uint16
	DescriptorIndex uint16
	Index          uint16
}

type LocalVariableTableAttribute struct{ Entries []LocalVariableEntry }

func (LocalVariableTableAttribute) isCodeBodyAttribute() {}

// LocalVariableTypeEntry is LocalVariableTable's generic-signature analogue.
type LocalVariableTypeEntry struct {
	StartPC        uint16
	Length         uint16
	NameIndex      uint16
	SignatureIndex uint16
	Index          uint16
}

type LocalVariableTypeTableAttribute struct{ Entries []LocalVariableTypeEntry }

func (LocalVariableTypeTableAttribute) isCodeBodyAttribute() {}

type StackMapTableAttribute struct{ Frames []StackMapFrame }

func (StackMapTableAttribute) isCodeBodyAttribute() {}

// --- class-only attributes ---

type SourceFileAttribute struct{ SourceFileIndex uint16 }

func (SourceFileAttribute) isClassAttribute() {}

// InnerClassEntry is one row of an InnerClasses attribute.
type InnerClassEntry struct {
	InnerClassInfoIndex uint16
	OuterClassInfoIndex uint16 // 0 if not a member
	InnerNameIndex      uint16 // 0 if anonymous
	InnerClassAccessFlags uint16
}

type InnerClassesAttribute struct{ Classes []InnerClassEntry }

func (InnerClassesAttribute) isClassAttribute() {}

// BootstrapMethodEntry is one row of a BootstrapMethods attribute, backing
// invokedynamic/Dynamic constant-pool entries.
type BootstrapMethodEntry struct {
	MethodRefIndex uint16
	Arguments      []uint16
}

type BootstrapMethodsAttribute struct{ Methods []BootstrapMethodEntry }

func (BootstrapMethodsAttribute) isClassAttribute() {}

type EnclosingMethodAttribute struct {
	ClassIndex  uint16
	MethodIndex uint16 // 0 if not enclosed by a method
}

func (EnclosingMethodAttribute) isClassAttribute() {}

type NestHostAttribute struct{ HostClassIndex uint16 }

func (NestHostAttribute) isClassAttribute() {}

type NestMembersAttribute struct{ Classes []uint16 }

func (NestMembersAttribute) isClassAttribute() {}

// RecordComponent is one component of a Record attribute; it carries the
// same attribute kinds as a field (Signature, annotations) but never
// ConstantValue.
type RecordComponent struct {
	NameIndex       uint16
	DescriptorIndex uint16
	Attributes      []FieldAttribute
}

type RecordAttribute struct{ Components []RecordComponent }

func (RecordAttribute) isClassAttribute() {}

type PermittedSubclassesAttribute struct{ Classes []uint16 }

func (PermittedSubclassesAttribute) isClassAttribute() {}

// ModuleRequiresEntry is one `requires` directive of a Module attribute.
type ModuleRequiresEntry struct {
	Index          uint16
	Flags          uint16
	VersionIndex   uint16 // 0 if absent
}

// ModuleExportsEntry is one `exports` directive.
type ModuleExportsEntry struct {
	Index    uint16
	Flags    uint16
	ToIndex  []uint16
}

// ModuleOpensEntry is one `opens` directive.
type ModuleOpensEntry struct {
	Index   uint16
	Flags   uint16
	ToIndex []uint16
}

// ModuleProvidesEntry is one `provides ... with ...` directive.
type ModuleProvidesEntry struct {
	Index     uint16
	WithIndex []uint16
}

type ModuleAttribute struct {
	ModuleNameIndex uint16
	ModuleFlags     uint16
	ModuleVersionIndex uint16
	Requires        []ModuleRequiresEntry
	Exports         []ModuleExportsEntry
	Opens           []ModuleOpensEntry
	UsesIndex       []uint16
	Provides        []ModuleProvidesEntry
}

func (ModuleAttribute) isClassAttribute() {}

type ModulePackagesAttribute struct{ PackageIndex []uint16 }

func (ModulePackagesAttribute) isClassAttribute() {}

type ModuleMainClassAttribute struct{ MainClassIndex uint16 }

func (ModuleMainClassAttribute) isClassAttribute() {}

type SourceDebugExtensionAttribute struct{ DebugExtension []byte }

func (SourceDebugExtensionAttribute) isClassAttribute() {}
