/*
 * Lagertha - a JVM class file toolchain
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classfile

// Annotation is a single runtime-visible or runtime-invisible annotation
// instance: a type reference plus its element-value pairs.
type Annotation struct {
	TypeIndex         uint16
	ElementValuePairs []ElementValuePair
}

// ElementValuePair is one (name, value) entry of an Annotation.
type ElementValuePair struct {
	NameIndex uint16
	Value     ElementValue
}

// ElementValue is an annotation element's value. Like cpool's CpType-style
// read helpers, this flattens the JVM's tagged element_value union into one
// struct keyed by Tag rather than a closed set of Go types, since the tag
// space (primitive const refs, enum consts, class literals, nested
// annotations, and arrays) is naturally a flat switch at decode time.
type ElementValue struct {
	Tag byte // 'B','C','D','F','I','J','S','Z','s','e','c','@','['

	ConstValueIndex uint16 // const_value_index: B C D F I J S Z s

	EnumTypeNameIndex  uint16 // enum_const_value.type_name_index: e
	EnumConstNameIndex uint16 // enum_const_value.const_name_index: e

	ClassInfoIndex uint16 // class_info_index: c

	AnnotationValue *Annotation // annotation_value: @

	ArrayValues []ElementValue // array_value.values: [
}

// TypeAnnotation is a single RuntimeVisible/InvisibleTypeAnnotations entry.
type TypeAnnotation struct {
	Target            TargetInfo
	TargetPath        []TypePathEntry
	TypeIndex         uint16
	ElementValuePairs []ElementValuePair
}

// TypePathEntry is one step of a type_path, selecting into a nested type
// (array element, nested type, wildcard bound, type argument).
type TypePathEntry struct {
	Kind     uint8
	ArgIndex uint8
}

// TargetKind discriminates the 10 target_info shapes a TypeAnnotation can
// carry, per JVM specification table 4.7.20-A.
type TargetKind int

const (
	TargetTypeParameter TargetKind = iota
	TargetSupertype
	TargetTypeParameterBound
	TargetEmpty
	TargetFormalParameter
	TargetThrows
	TargetLocalVar
	TargetCatch
	TargetOffset
	TargetTypeArgument
)

// LocalVarTarget describes one live range of a local variable annotated by
// a TargetLocalVar target_info.
type LocalVarTarget struct {
	StartPC int
	Length  int
	Index   int
}

// TargetInfo is the decoded target_info payload of a TypeAnnotation. Only
// the fields relevant to Kind are populated.
type TargetInfo struct {
	Kind TargetKind

	TypeParameterIndex uint8 // TargetTypeParameter, TargetTypeParameterBound
	BoundIndex         uint8 // TargetTypeParameterBound

	SupertypeIndex uint16 // TargetSupertype

	FormalParameterIndex uint8 // TargetFormalParameter

	ThrowsTypeIndex uint16 // TargetThrows

	LocalVars []LocalVarTarget // TargetLocalVar

	ExceptionTableIndex uint16 // TargetCatch

	Offset uint16 // TargetOffset, TargetTypeArgument

	TypeArgumentIndex uint8 // TargetTypeArgument
}
