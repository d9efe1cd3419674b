/*
 * Lagertha - a JVM class file toolchain
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package classfile decodes the JVM .class binary format into an in-memory
// tree: a constant pool, access flags, fields, methods (with decoded
// bytecode), and attributes at every level.
package classfile

import (
	"fmt"

	"github.com/obito-git/lagertha/classfile/bytecode"
	"github.com/obito-git/lagertha/classfile/cpool"
	"github.com/obito-git/lagertha/cursor"
	"github.com/obito-git/lagertha/descriptor"
)

const magic = 0xCAFEBABE

// ClassFile is the fully decoded contents of one .class file.
type ClassFile struct {
	MinorVersion uint16
	MajorVersion uint16

	ConstantPool *cpool.Pool

	AccessFlags AccessFlags
	ThisClass   uint16
	SuperClass  uint16 // 0 for java/lang/Object

	Interfaces []uint16

	Fields  []FieldInfo
	Methods []MethodInfo

	Attributes []ClassAttribute
}

// FieldInfo is one field_info entry.
type FieldInfo struct {
	AccessFlags     AccessFlags
	NameIndex       uint16
	DescriptorIndex uint16
	Attributes      []FieldAttribute
}

// MethodInfo is one method_info entry.
type MethodInfo struct {
	AccessFlags     AccessFlags
	NameIndex       uint16
	DescriptorIndex uint16
	Attributes      []MethodAttribute
}

// Decode parses a complete .class file from data, validating structure and
// resolving every attribute and instruction it contains.
func Decode(data []byte) (*ClassFile, error) {
	c := cursor.New(data)

	gotMagic, err := c.U32()
	if err != nil {
		return nil, err
	}
	if gotMagic != magic {
		return nil, &WrongMagicError{Got: gotMagic}
	}

	minor, err := c.U16()
	if err != nil {
		return nil, err
	}
	major, err := c.U16()
	if err != nil {
		return nil, err
	}

	pool, err := readConstantPool(c)
	if err != nil {
		return nil, err
	}

	accessFlags, err := c.U16()
	if err != nil {
		return nil, err
	}
	thisClass, err := c.U16()
	if err != nil {
		return nil, err
	}
	superClass, err := c.U16()
	if err != nil {
		return nil, err
	}

	interfaceCount, err := c.U16()
	if err != nil {
		return nil, err
	}
	interfaces := make([]uint16, interfaceCount)
	for i := range interfaces {
		if interfaces[i], err = c.U16(); err != nil {
			return nil, err
		}
	}

	fieldCount, err := c.U16()
	if err != nil {
		return nil, err
	}
	fields := make([]FieldInfo, fieldCount)
	for i := range fields {
		if fields[i], err = readFieldInfo(c, pool); err != nil {
			return nil, err
		}
	}

	methodCount, err := c.U16()
	if err != nil {
		return nil, err
	}
	methods := make([]MethodInfo, methodCount)
	for i := range methods {
		if methods[i], err = readMethodInfo(c, pool); err != nil {
			return nil, err
		}
	}

	classAttrCount, err := c.U16()
	if err != nil {
		return nil, err
	}
	classAttrs := make([]ClassAttribute, 0, classAttrCount)
	seen := map[string]bool{}
	for i := 0; i < int(classAttrCount); i++ {
		name, attr, err := readClassAttribute(c, pool)
		if err != nil {
			return nil, err
		}
		if isSingletonAttribute(name) {
			if seen[name] {
				return nil, &DuplicatedAttributeError{Name: name}
			}
			seen[name] = true
		}
		classAttrs = append(classAttrs, attr)
	}

	if rem := c.Remaining(); rem != 0 {
		return nil, &TrailingBytesError{Remaining: rem}
	}

	return &ClassFile{
		MinorVersion: minor,
		MajorVersion: major,
		ConstantPool: pool,
		AccessFlags:  AccessFlags(accessFlags),
		ThisClass:    thisClass,
		SuperClass:   superClass,
		Interfaces:   interfaces,
		Fields:       fields,
		Methods:      methods,
		Attributes:   classAttrs,
	}, nil
}

// isSingletonAttribute reports whether name may appear at most once per
// field/method/class; unrecognised names are assumed repeatable (the
// decoder already rejects names it doesn't know, so this only gates
// duplicate checks among known shared/location attributes).
func isSingletonAttribute(name string) bool {
	switch name {
	case "ConstantValue", "Code", "Exceptions", "Signature", "Synthetic",
		"Deprecated", "SourceFile", "InnerClasses", "EnclosingMethod",
		"BootstrapMethods", "NestHost", "NestMembers", "Record",
		"PermittedSubclasses", "Module", "ModulePackages", "ModuleMainClass",
		"SourceDebugExtension", "MethodParameters", "AnnotationDefault",
		"StackMapTable", "LineNumberTable", "LocalVariableTable",
		"LocalVariableTypeTable":
		return true
	default:
		return false
	}
}

func readConstantPool(c *cursor.Cursor) (*cpool.Pool, error) {
	count, err := c.U16()
	if err != nil {
		return nil, err
	}
	entries := make([]cpool.Entry, count)
	entries[0] = cpool.UnusedEntry{}

	for i := uint16(1); i < count; i++ {
		tag, err := c.U8()
		if err != nil {
			return nil, err
		}
		entry, wide, err := readConstantEntry(c, tag)
		if err != nil {
			return nil, err
		}
		entries[i] = entry
		if wide {
			i++
			if i < count {
				entries[i] = cpool.UnusedEntry{}
			}
		}
	}
	return cpool.NewPool(entries), nil
}

func readConstantEntry(c *cursor.Cursor, tag uint8) (cpool.Entry, bool, error) {
	switch cpool.Kind(tag) {
	case cpool.KindUtf8:
		length, err := c.U16()
		if err != nil {
			return nil, false, err
		}
		raw, err := c.Bytes(int(length))
		if err != nil {
			return nil, false, err
		}
		return cpool.Utf8Entry{Value: string(raw)}, false, nil

	case cpool.KindInteger:
		v, err := c.I32()
		return cpool.IntegerEntry{Value: v}, false, err

	case cpool.KindFloat:
		v, err := c.F32()
		return cpool.FloatEntry{Value: v}, false, err

	case cpool.KindLong:
		v, err := c.I64()
		return cpool.LongEntry{Value: v}, true, err

	case cpool.KindDouble:
		v, err := c.F64()
		return cpool.DoubleEntry{Value: v}, true, err

	case cpool.KindClass:
		idx, err := c.U16()
		return cpool.ClassEntry{NameIndex: idx}, false, err

	case cpool.KindString:
		idx, err := c.U16()
		return cpool.StringEntry{Utf8Index: idx}, false, err

	case cpool.KindFieldRef:
		ref, err := readReference(c)
		return cpool.FieldRefEntry{Ref: ref}, false, err

	case cpool.KindMethodRef:
		ref, err := readReference(c)
		return cpool.MethodRefEntry{Ref: ref}, false, err

	case cpool.KindInterfaceMethodRef:
		ref, err := readReference(c)
		return cpool.InterfaceMethodRefEntry{Ref: ref}, false, err

	case cpool.KindNameAndType:
		nameIdx, err := c.U16()
		if err != nil {
			return nil, false, err
		}
		descIdx, err := c.U16()
		if err != nil {
			return nil, false, err
		}
		return cpool.NameAndTypeEntry{NameAndType: cpool.NameAndType{NameIndex: nameIdx, DescriptorIndex: descIdx}}, false, nil

	case cpool.KindMethodHandle:
		kind, err := c.U8()
		if err != nil {
			return nil, false, err
		}
		refIdx, err := c.U16()
		if err != nil {
			return nil, false, err
		}
		if !cpool.MethodHandleKind(kind).Valid() {
			return nil, false, &InvalidMethodHandleKindError{Kind: kind}
		}
		return cpool.MethodHandleEntry{ReferenceKind: kind, ReferenceIndex: refIdx}, false, nil

	case cpool.KindMethodType:
		descIdx, err := c.U16()
		return cpool.MethodTypeEntry{DescriptorIndex: descIdx}, false, err

	case cpool.KindDynamic:
		dyn, err := readDynamic(c)
		return cpool.DynamicEntry{Dynamic: dyn}, false, err

	case cpool.KindInvokeDynamic:
		dyn, err := readDynamic(c)
		return cpool.InvokeDynamicEntry{Dynamic: dyn}, false, err

	case cpool.KindModule:
		idx, err := c.U16()
		return cpool.ModuleEntry{NameIndex: idx}, false, err

	case cpool.KindPackage:
		idx, err := c.U16()
		return cpool.PackageEntry{NameIndex: idx}, false, err

	default:
		return nil, false, &UnknownTagError{Tag: tag}
	}
}

func readReference(c *cursor.Cursor) (cpool.Reference, error) {
	classIdx, err := c.U16()
	if err != nil {
		return cpool.Reference{}, err
	}
	natIdx, err := c.U16()
	if err != nil {
		return cpool.Reference{}, err
	}
	return cpool.Reference{ClassIndex: classIdx, NameAndTypeIndex: natIdx}, nil
}

func readDynamic(c *cursor.Cursor) (cpool.Dynamic, error) {
	bsmIdx, err := c.U16()
	if err != nil {
		return cpool.Dynamic{}, err
	}
	natIdx, err := c.U16()
	if err != nil {
		return cpool.Dynamic{}, err
	}
	return cpool.Dynamic{BootstrapMethodAttrIndex: bsmIdx, NameAndTypeIndex: natIdx}, nil
}

// readAttributeHeader reads an attribute_info's name_index and
// attribute_length, resolves the name, and returns the raw payload bytes
// (sized exactly to attribute_length) for a location-specific reader to
// parse with its own cursor. This keeps a malformed or only-partially
// understood attribute body from desynchronising the outer cursor.
func readAttributeHeader(c *cursor.Cursor, pool *cpool.Pool) (string, []byte, error) {
	nameIdx, err := c.U16()
	if err != nil {
		return "", nil, err
	}
	name, err := pool.GetUtf8(nameIdx)
	if err != nil {
		return "", nil, err
	}
	length, err := c.U32()
	if err != nil {
		return "", nil, err
	}
	payload, err := c.Bytes(int(length))
	if err != nil {
		return "", nil, err
	}
	return name, payload, nil
}

func readFieldInfo(c *cursor.Cursor, pool *cpool.Pool) (FieldInfo, error) {
	accessFlags, err := c.U16()
	if err != nil {
		return FieldInfo{}, err
	}
	nameIdx, err := c.U16()
	if err != nil {
		return FieldInfo{}, err
	}
	descIdx, err := c.U16()
	if err != nil {
		return FieldInfo{}, err
	}
	fieldDesc, err := pool.GetUtf8(descIdx)
	if err != nil {
		return FieldInfo{}, err
	}
	if _, err := descriptor.ParseType(fieldDesc); err != nil {
		return FieldInfo{}, &InvalidFieldDescriptorError{Descriptor: fieldDesc, Err: err}
	}
	attrCount, err := c.U16()
	if err != nil {
		return FieldInfo{}, err
	}

	attrs := make([]FieldAttribute, 0, attrCount)
	seen := map[string]bool{}
	for i := 0; i < int(attrCount); i++ {
		name, attr, err := readFieldAttribute(c, pool)
		if err != nil {
			return FieldInfo{}, err
		}
		if isSingletonAttribute(name) {
			if seen[name] {
				return FieldInfo{}, &DuplicatedAttributeError{Name: name}
			}
			seen[name] = true
		}
		attrs = append(attrs, attr)
	}

	return FieldInfo{
		AccessFlags:     AccessFlags(accessFlags),
		NameIndex:       nameIdx,
		DescriptorIndex: descIdx,
		Attributes:      attrs,
	}, nil
}

func readFieldAttribute(c *cursor.Cursor, pool *cpool.Pool) (string, FieldAttribute, error) {
	name, payload, err := readAttributeHeader(c, pool)
	if err != nil {
		return "", nil, err
	}
	if kind, ok := sharedAttributeNames[name]; ok {
		attr, err := readSharedAttribute(kind, payload, pool)
		return name, attr, err
	}
	switch name {
	case "ConstantValue":
		pc := cursor.New(payload)
		idx, err := pc.U16()
		return name, ConstantValueAttribute{ValueIndex: idx}, err
	default:
		return name, nil, &UnknownAttributeError{Name: name, Location: "field"}
	}
}

func readMethodInfo(c *cursor.Cursor, pool *cpool.Pool) (MethodInfo, error) {
	accessFlags, err := c.U16()
	if err != nil {
		return MethodInfo{}, err
	}
	nameIdx, err := c.U16()
	if err != nil {
		return MethodInfo{}, err
	}
	descIdx, err := c.U16()
	if err != nil {
		return MethodInfo{}, err
	}
	methodDesc, err := pool.GetUtf8(descIdx)
	if err != nil {
		return MethodInfo{}, err
	}
	if _, err := descriptor.ParseMethod(methodDesc); err != nil {
		return MethodInfo{}, &InvalidMethodDescriptorError{Descriptor: methodDesc, Err: err}
	}
	attrCount, err := c.U16()
	if err != nil {
		return MethodInfo{}, err
	}

	attrs := make([]MethodAttribute, 0, attrCount)
	seen := map[string]bool{}
	hasCode := false
	for i := 0; i < int(attrCount); i++ {
		name, attr, err := readMethodAttribute(c, pool)
		if err != nil {
			return MethodInfo{}, err
		}
		if name == "Code" {
			hasCode = true
		}
		if isSingletonAttribute(name) {
			if seen[name] {
				return MethodInfo{}, &DuplicatedAttributeError{Name: name}
			}
			seen[name] = true
		}
		attrs = append(attrs, attr)
	}

	flags := AccessFlags(accessFlags)
	if hasCode && (flags.Has(AccNative) || flags.Has(AccAbstract)) {
		methodName, nameErr := pool.GetUtf8(nameIdx)
		if nameErr != nil {
			methodName = fmt.Sprintf("<index %d>", nameIdx)
		}
		return MethodInfo{}, &CodeAttrIsAmbiguousForNativeError{MethodName: methodName}
	}

	return MethodInfo{
		AccessFlags:     flags,
		NameIndex:       nameIdx,
		DescriptorIndex: descIdx,
		Attributes:      attrs,
	}, nil
}

func readMethodAttribute(c *cursor.Cursor, pool *cpool.Pool) (string, MethodAttribute, error) {
	name, payload, err := readAttributeHeader(c, pool)
	if err != nil {
		return "", nil, err
	}
	if kind, ok := sharedAttributeNames[name]; ok {
		attr, err := readSharedAttribute(kind, payload, pool)
		return name, attr, err
	}

	switch name {
	case "Code":
		attr, err := readCodeAttribute(payload, pool)
		return name, attr, err

	case "Exceptions":
		pc := cursor.New(payload)
		n, err := pc.U16()
		if err != nil {
			return "", nil, err
		}
		idxs := make([]uint16, n)
		for i := range idxs {
			if idxs[i], err = pc.U16(); err != nil {
				return "", nil, err
			}
		}
		return name, ExceptionsAttribute{ExceptionIndexTable: idxs}, nil

	case "MethodParameters":
		pc := cursor.New(payload)
		n, err := pc.U8()
		if err != nil {
			return "", nil, err
		}
		params := make([]MethodParameter, n)
		for i := range params {
			nIdx, err := pc.U16()
			if err != nil {
				return "", nil, err
			}
			flags, err := pc.U16()
			if err != nil {
				return "", nil, err
			}
			params[i] = MethodParameter{NameIndex: nIdx, AccessFlags: flags}
		}
		return name, MethodParametersAttribute{Parameters: params}, nil

	case "AnnotationDefault":
		pc := cursor.New(payload)
		val, err := readElementValue(pc)
		return name, AnnotationDefaultAttribute{Value: val}, err

	case "RuntimeVisibleParameterAnnotations", "RuntimeInvisibleParameterAnnotations":
		pc := cursor.New(payload)
		params, err := readParameterAnnotations(pc)
		if err != nil {
			return "", nil, err
		}
		if name == "RuntimeVisibleParameterAnnotations" {
			return name, RuntimeVisibleParameterAnnotationsAttribute{Parameters: params}, nil
		}
		return name, RuntimeInvisibleParameterAnnotationsAttribute{Parameters: params}, nil

	default:
		return name, nil, &UnknownAttributeError{Name: name, Location: "method"}
	}
}

func readParameterAnnotations(pc *cursor.Cursor) ([]ParameterAnnotations, error) {
	n, err := pc.U8()
	if err != nil {
		return nil, err
	}
	params := make([]ParameterAnnotations, n)
	for i := range params {
		cnt, err := pc.U16()
		if err != nil {
			return nil, err
		}
		anns := make([]Annotation, cnt)
		for j := range anns {
			if anns[j], err = readAnnotation(pc); err != nil {
				return nil, err
			}
		}
		params[i] = ParameterAnnotations{Annotations: anns}
	}
	return params, nil
}

func readCodeAttribute(payload []byte, pool *cpool.Pool) (*CodeAttribute, error) {
	c := cursor.New(payload)

	maxStack, err := c.U16()
	if err != nil {
		return nil, err
	}
	maxLocals, err := c.U16()
	if err != nil {
		return nil, err
	}
	codeLen, err := c.U32()
	if err != nil {
		return nil, err
	}
	code, err := c.Bytes(int(codeLen))
	if err != nil {
		return nil, err
	}

	instructions, err := bytecode.Decode(code, 0)
	if err != nil {
		return nil, err
	}

	excCount, err := c.U16()
	if err != nil {
		return nil, err
	}
	exc := make([]ExceptionTableEntry, excCount)
	for i := range exc {
		startPC, err := c.U16()
		if err != nil {
			return nil, err
		}
		endPC, err := c.U16()
		if err != nil {
			return nil, err
		}
		handlerPC, err := c.U16()
		if err != nil {
			return nil, err
		}
		catchType, err := c.U16()
		if err != nil {
			return nil, err
		}
		exc[i] = ExceptionTableEntry{StartPC: startPC, EndPC: endPC, HandlerPC: handlerPC, CatchType: catchType}
	}

	attrCount, err := c.U16()
	if err != nil {
		return nil, err
	}
	attrs := make([]CodeBodyAttribute, 0, attrCount)
	seen := map[string]bool{}
	for i := 0; i < int(attrCount); i++ {
		name, attr, err := readCodeBodyAttribute(c, pool)
		if err != nil {
			return nil, err
		}
		if isSingletonAttribute(name) {
			if seen[name] {
				return nil, &DuplicatedAttributeError{Name: name}
			}
			seen[name] = true
		}
		attrs = append(attrs, attr)
	}

	return &CodeAttribute{
		MaxStack:       maxStack,
		MaxLocals:      maxLocals,
		Code:           code,
		Instructions:   instructions,
		ExceptionTable: exc,
		Attributes:     attrs,
	}, nil
}

func readCodeBodyAttribute(c *cursor.Cursor, pool *cpool.Pool) (string, CodeBodyAttribute, error) {
	name, payload, err := readAttributeHeader(c, pool)
	if err != nil {
		return "", nil, err
	}
	if kind, ok := sharedAttributeNames[name]; ok {
		attr, err := readSharedAttribute(kind, payload, pool)
		return name, attr, err
	}

	switch name {
	case "LineNumberTable":
		pc := cursor.New(payload)
		n, err := pc.U16()
		if err != nil {
			return "", nil, err
		}
		entries := make([]LineNumberEntry, n)
		for i := range entries {
			startPC, err := pc.U16()
			if err != nil {
				return "", nil, err
			}
			line, err := pc.U16()
			if err != nil {
				return "", nil, err
			}
			entries[i] = LineNumberEntry{StartPC: startPC, LineNumber: line}
		}
		return name, LineNumberTableAttribute{Entries: entries}, nil

	case "LocalVariableTable":
		pc := cursor.New(payload)
		n, err := pc.U16()
		if err != nil {
			return "", nil, err
		}
		entries := make([]LocalVariableEntry, n)
		for i := range entries {
			if entries[i], err = readLocalVariableEntry(pc); err != nil {
				return "", nil, err
			}
		}
		return name, LocalVariableTableAttribute{Entries: entries}, nil

	case "LocalVariableTypeTable":
		pc := cursor.New(payload)
		n, err := pc.U16()
		if err != nil {
			return "", nil, err
		}
		entries := make([]LocalVariableTypeEntry, n)
		for i := range entries {
			startPC, err := pc.U16()
			if err != nil {
				return "", nil, err
			}
			length, err := pc.U16()
			if err != nil {
				return "", nil, err
			}
			nameIdx, err := pc.U16()
			if err != nil {
				return "", nil, err
			}
			sigIdx, err := pc.U16()
			if err != nil {
				return "", nil, err
			}
			index, err := pc.U16()
			if err != nil {
				return "", nil, err
			}
			entries[i] = LocalVariableTypeEntry{StartPC: startPC, Length: length, NameIndex: nameIdx, SignatureIndex: sigIdx, Index: index}
		}
		return name, LocalVariableTypeTableAttribute{Entries: entries}, nil

	case "StackMapTable":
		pc := cursor.New(payload)
		frames, err := readStackMapFrames(pc)
		return name, StackMapTableAttribute{Frames: frames}, err

	default:
		return name, nil, &UnknownAttributeError{Name: name, Location: "code"}
	}
}

func readLocalVariableEntry(pc *cursor.Cursor) (LocalVariableEntry, error) {
	startPC, err := pc.U16()
	if err != nil {
		return LocalVariableEntry{}, err
	}
	length, err := pc.U16()
	if err != nil {
		return LocalVariableEntry{}, err
	}
	nameIdx, err := pc.U16()
	if err != nil {
		return LocalVariableEntry{}, err
	}
	descIdx, err := pc.U16()
	if err != nil {
		return LocalVariableEntry{}, err
	}
	index, err := pc.U16()
	if err != nil {
		return LocalVariableEntry{}, err
	}
	return LocalVariableEntry{StartPC: startPC, Length: length, NameIndex: nameIdx, DescriptorIndex: descIdx, Index: index}, nil
}

func readClassAttribute(c *cursor.Cursor, pool *cpool.Pool) (string, ClassAttribute, error) {
	name, payload, err := readAttributeHeader(c, pool)
	if err != nil {
		return "", nil, err
	}
	if kind, ok := sharedAttributeNames[name]; ok {
		attr, err := readSharedAttribute(kind, payload, pool)
		return name, attr, err
	}

	switch name {
	case "SourceFile":
		pc := cursor.New(payload)
		idx, err := pc.U16()
		return name, SourceFileAttribute{SourceFileIndex: idx}, err

	case "InnerClasses":
		pc := cursor.New(payload)
		n, err := pc.U16()
		if err != nil {
			return "", nil, err
		}
		classes := make([]InnerClassEntry, n)
		for i := range classes {
			innerIdx, err := pc.U16()
			if err != nil {
				return "", nil, err
			}
			outerIdx, err := pc.U16()
			if err != nil {
				return "", nil, err
			}
			innerNameIdx, err := pc.U16()
			if err != nil {
				return "", nil, err
			}
			innerFlags, err := pc.U16()
			if err != nil {
				return "", nil, err
			}
			classes[i] = InnerClassEntry{InnerClassInfoIndex: innerIdx, OuterClassInfoIndex: outerIdx, InnerNameIndex: innerNameIdx, InnerClassAccessFlags: innerFlags}
		}
		return name, InnerClassesAttribute{Classes: classes}, nil

	case "EnclosingMethod":
		pc := cursor.New(payload)
		classIdx, err := pc.U16()
		if err != nil {
			return "", nil, err
		}
		methodIdx, err := pc.U16()
		return name, EnclosingMethodAttribute{ClassIndex: classIdx, MethodIndex: methodIdx}, err

	case "BootstrapMethods":
		pc := cursor.New(payload)
		n, err := pc.U16()
		if err != nil {
			return "", nil, err
		}
		methods := make([]BootstrapMethodEntry, n)
		for i := range methods {
			methodRefIdx, err := pc.U16()
			if err != nil {
				return "", nil, err
			}
			argCount, err := pc.U16()
			if err != nil {
				return "", nil, err
			}
			args := make([]uint16, argCount)
			for j := range args {
				if args[j], err = pc.U16(); err != nil {
					return "", nil, err
				}
			}
			methods[i] = BootstrapMethodEntry{MethodRefIndex: methodRefIdx, Arguments: args}
		}
		return name, BootstrapMethodsAttribute{Methods: methods}, nil

	case "NestHost":
		pc := cursor.New(payload)
		idx, err := pc.U16()
		return name, NestHostAttribute{HostClassIndex: idx}, err

	case "NestMembers":
		pc := cursor.New(payload)
		classes, err := readU16List(pc)
		return name, NestMembersAttribute{Classes: classes}, err

	case "Record":
		pc := cursor.New(payload)
		n, err := pc.U16()
		if err != nil {
			return "", nil, err
		}
		components := make([]RecordComponent, n)
		for i := range components {
			if components[i], err = readRecordComponent(pc, pool); err != nil {
				return "", nil, err
			}
		}
		return name, RecordAttribute{Components: components}, nil

	case "PermittedSubclasses":
		pc := cursor.New(payload)
		classes, err := readU16List(pc)
		return name, PermittedSubclassesAttribute{Classes: classes}, err

	case "Module":
		pc := cursor.New(payload)
		attr, err := readModuleAttribute(pc)
		return name, attr, err

	case "ModulePackages":
		pc := cursor.New(payload)
		pkgs, err := readU16List(pc)
		return name, ModulePackagesAttribute{PackageIndex: pkgs}, err

	case "ModuleMainClass":
		pc := cursor.New(payload)
		idx, err := pc.U16()
		return name, ModuleMainClassAttribute{MainClassIndex: idx}, err

	case "SourceDebugExtension":
		return name, SourceDebugExtensionAttribute{DebugExtension: payload}, nil

	default:
		return name, nil, &UnknownAttributeError{Name: name, Location: "class"}
	}
}

// readU16List reads a u16 count followed by that many u16 values, the
// shape shared by NestMembers, PermittedSubclasses, ModulePackages, and a
// Module attribute's uses_index.
func readU16List(pc *cursor.Cursor) ([]uint16, error) {
	n, err := pc.U16()
	if err != nil {
		return nil, err
	}
	out := make([]uint16, n)
	for i := range out {
		if out[i], err = pc.U16(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func readRecordComponent(pc *cursor.Cursor, pool *cpool.Pool) (RecordComponent, error) {
	nameIdx, err := pc.U16()
	if err != nil {
		return RecordComponent{}, err
	}
	descIdx, err := pc.U16()
	if err != nil {
		return RecordComponent{}, err
	}
	attrCount, err := pc.U16()
	if err != nil {
		return RecordComponent{}, err
	}
	attrs := make([]FieldAttribute, 0, attrCount)
	for i := 0; i < int(attrCount); i++ {
		_, attr, err := readFieldAttribute(pc, pool)
		if err != nil {
			return RecordComponent{}, err
		}
		attrs = append(attrs, attr)
	}
	return RecordComponent{NameIndex: nameIdx, DescriptorIndex: descIdx, Attributes: attrs}, nil
}

func readModuleAttribute(pc *cursor.Cursor) (ModuleAttribute, error) {
	nameIdx, err := pc.U16()
	if err != nil {
		return ModuleAttribute{}, err
	}
	flags, err := pc.U16()
	if err != nil {
		return ModuleAttribute{}, err
	}
	versionIdx, err := pc.U16()
	if err != nil {
		return ModuleAttribute{}, err
	}

	reqCount, err := pc.U16()
	if err != nil {
		return ModuleAttribute{}, err
	}
	requires := make([]ModuleRequiresEntry, reqCount)
	for i := range requires {
		idx, err := pc.U16()
		if err != nil {
			return ModuleAttribute{}, err
		}
		reqFlags, err := pc.U16()
		if err != nil {
			return ModuleAttribute{}, err
		}
		reqVersionIdx, err := pc.U16()
		if err != nil {
			return ModuleAttribute{}, err
		}
		requires[i] = ModuleRequiresEntry{Index: idx, Flags: reqFlags, VersionIndex: reqVersionIdx}
	}

	expCount, err := pc.U16()
	if err != nil {
		return ModuleAttribute{}, err
	}
	exports := make([]ModuleExportsEntry, expCount)
	for i := range exports {
		idx, err := pc.U16()
		if err != nil {
			return ModuleAttribute{}, err
		}
		expFlags, err := pc.U16()
		if err != nil {
			return ModuleAttribute{}, err
		}
		to, err := readU16List(pc)
		if err != nil {
			return ModuleAttribute{}, err
		}
		exports[i] = ModuleExportsEntry{Index: idx, Flags: expFlags, ToIndex: to}
	}

	openCount, err := pc.U16()
	if err != nil {
		return ModuleAttribute{}, err
	}
	opens := make([]ModuleOpensEntry, openCount)
	for i := range opens {
		idx, err := pc.U16()
		if err != nil {
			return ModuleAttribute{}, err
		}
		openFlags, err := pc.U16()
		if err != nil {
			return ModuleAttribute{}, err
		}
		to, err := readU16List(pc)
		if err != nil {
			return ModuleAttribute{}, err
		}
		opens[i] = ModuleOpensEntry{Index: idx, Flags: openFlags, ToIndex: to}
	}

	uses, err := readU16List(pc)
	if err != nil {
		return ModuleAttribute{}, err
	}

	provCount, err := pc.U16()
	if err != nil {
		return ModuleAttribute{}, err
	}
	provides := make([]ModuleProvidesEntry, provCount)
	for i := range provides {
		idx, err := pc.U16()
		if err != nil {
			return ModuleAttribute{}, err
		}
		with, err := readU16List(pc)
		if err != nil {
			return ModuleAttribute{}, err
		}
		provides[i] = ModuleProvidesEntry{Index: idx, WithIndex: with}
	}

	return ModuleAttribute{
		ModuleNameIndex:    nameIdx,
		ModuleFlags:        flags,
		ModuleVersionIndex: versionIdx,
		Requires:           requires,
		Exports:            exports,
		Opens:              opens,
		UsesIndex:          uses,
		Provides:           provides,
	}, nil
}

func readSharedAttribute(kind SharedKind, payload []byte, pool *cpool.Pool) (SharedAttribute, error) {
	c := cursor.New(payload)
	switch kind {
	case SharedSynthetic, SharedDeprecated:
		return SharedAttribute{Kind: kind}, nil

	case SharedSignature:
		idx, err := c.U16()
		if err != nil {
			return SharedAttribute{}, err
		}
		sig, err := pool.GetUtf8(idx)
		if err != nil {
			return SharedAttribute{}, err
		}
		if err := descriptor.ParseClassSignature(sig); err != nil {
			return SharedAttribute{}, &InvalidSignatureError{Err: err}
		}
		return SharedAttribute{Kind: kind, SignatureIndex: idx}, nil

	case SharedRuntimeVisibleAnnotations, SharedRuntimeInvisibleAnnotations:
		n, err := c.U16()
		if err != nil {
			return SharedAttribute{}, err
		}
		anns := make([]Annotation, n)
		for i := range anns {
			if anns[i], err = readAnnotation(c); err != nil {
				return SharedAttribute{}, err
			}
		}
		return SharedAttribute{Kind: kind, Annotations: anns}, nil

	case SharedRuntimeVisibleTypeAnnotations, SharedRuntimeInvisibleTypeAnnotations:
		n, err := c.U16()
		if err != nil {
			return SharedAttribute{}, err
		}
		tas := make([]TypeAnnotation, n)
		for i := range tas {
			if tas[i], err = readTypeAnnotation(c); err != nil {
				return SharedAttribute{}, err
			}
		}
		return SharedAttribute{Kind: kind, TypeAnnotations: tas}, nil

	default:
		return SharedAttribute{}, fmt.Errorf("unhandled shared attribute kind %d", kind)
	}
}

func readAnnotation(c *cursor.Cursor) (Annotation, error) {
	typeIdx, err := c.U16()
	if err != nil {
		return Annotation{}, err
	}
	n, err := c.U16()
	if err != nil {
		return Annotation{}, err
	}
	pairs := make([]ElementValuePair, n)
	for i := range pairs {
		nameIdx, err := c.U16()
		if err != nil {
			return Annotation{}, err
		}
		val, err := readElementValue(c)
		if err != nil {
			return Annotation{}, err
		}
		pairs[i] = ElementValuePair{NameIndex: nameIdx, Value: val}
	}
	return Annotation{TypeIndex: typeIdx, ElementValuePairs: pairs}, nil
}

func readElementValue(c *cursor.Cursor) (ElementValue, error) {
	tag, err := c.U8()
	if err != nil {
		return ElementValue{}, err
	}
	switch tag {
	case 'B', 'C', 'D', 'F', 'I', 'J', 'S', 'Z', 's':
		idx, err := c.U16()
		return ElementValue{Tag: tag, ConstValueIndex: idx}, err

	case 'e':
		typeNameIdx, err := c.U16()
		if err != nil {
			return ElementValue{}, err
		}
		constNameIdx, err := c.U16()
		return ElementValue{Tag: tag, EnumTypeNameIndex: typeNameIdx, EnumConstNameIndex: constNameIdx}, err

	case 'c':
		classInfoIdx, err := c.U16()
		return ElementValue{Tag: tag, ClassInfoIndex: classInfoIdx}, err

	case '@':
		ann, err := readAnnotation(c)
		if err != nil {
			return ElementValue{}, err
		}
		return ElementValue{Tag: tag, AnnotationValue: &ann}, nil

	case '[':
		n, err := c.U16()
		if err != nil {
			return ElementValue{}, err
		}
		vals := make([]ElementValue, n)
		for i := range vals {
			if vals[i], err = readElementValue(c); err != nil {
				return ElementValue{}, err
			}
		}
		return ElementValue{Tag: tag, ArrayValues: vals}, nil

	default:
		return ElementValue{}, fmt.Errorf("unknown element_value tag %q", tag)
	}
}

func readTypeAnnotation(c *cursor.Cursor) (TypeAnnotation, error) {
	targetType, err := c.U8()
	if err != nil {
		return TypeAnnotation{}, err
	}
	target, err := readTargetInfo(c, targetType)
	if err != nil {
		return TypeAnnotation{}, err
	}

	pathLen, err := c.U8()
	if err != nil {
		return TypeAnnotation{}, err
	}
	path := make([]TypePathEntry, pathLen)
	for i := range path {
		kind, err := c.U8()
		if err != nil {
			return TypeAnnotation{}, err
		}
		argIdx, err := c.U8()
		if err != nil {
			return TypeAnnotation{}, err
		}
		path[i] = TypePathEntry{Kind: kind, ArgIndex: argIdx}
	}

	typeIdx, err := c.U16()
	if err != nil {
		return TypeAnnotation{}, err
	}
	n, err := c.U16()
	if err != nil {
		return TypeAnnotation{}, err
	}
	pairs := make([]ElementValuePair, n)
	for i := range pairs {
		nameIdx, err := c.U16()
		if err != nil {
			return TypeAnnotation{}, err
		}
		val, err := readElementValue(c)
		if err != nil {
			return TypeAnnotation{}, err
		}
		pairs[i] = ElementValuePair{NameIndex: nameIdx, Value: val}
	}

	return TypeAnnotation{Target: target, TargetPath: path, TypeIndex: typeIdx, ElementValuePairs: pairs}, nil
}

// readTargetInfo decodes a type_annotation's target_info, collapsing the
// JVM specification's ~20 target_type byte values onto the 10 TargetKind
// buckets that share an operand shape (e.g. a class's and a method's type
// parameter both decode to TargetTypeParameter; only the type_type byte
// that produced them differs, and that byte carries no further payload).
func readTargetInfo(c *cursor.Cursor, targetType uint8) (TargetInfo, error) {
	switch targetType {
	case 0x00, 0x01: // type_parameter_target (class, method)
		idx, err := c.U8()
		return TargetInfo{Kind: TargetTypeParameter, TypeParameterIndex: idx}, err

	case 0x10: // supertype_target
		idx, err := c.U16()
		return TargetInfo{Kind: TargetSupertype, SupertypeIndex: idx}, err

	case 0x11, 0x12: // type_parameter_bound_target (class, method)
		paramIdx, err := c.U8()
		if err != nil {
			return TargetInfo{}, err
		}
		boundIdx, err := c.U8()
		return TargetInfo{Kind: TargetTypeParameterBound, TypeParameterIndex: paramIdx, BoundIndex: boundIdx}, err

	case 0x13, 0x14, 0x15: // empty_target (field, method return, receiver)
		return TargetInfo{Kind: TargetEmpty}, nil

	case 0x16: // formal_parameter_target
		idx, err := c.U8()
		return TargetInfo{Kind: TargetFormalParameter, FormalParameterIndex: idx}, err

	case 0x17: // throws_target
		idx, err := c.U16()
		return TargetInfo{Kind: TargetThrows, ThrowsTypeIndex: idx}, err

	case 0x40, 0x41: // localvar_target (local_variable, resource_variable)
		n, err := c.U16()
		if err != nil {
			return TargetInfo{}, err
		}
		vars := make([]LocalVarTarget, n)
		for i := range vars {
			startPC, err := c.U16()
			if err != nil {
				return TargetInfo{}, err
			}
			length, err := c.U16()
			if err != nil {
				return TargetInfo{}, err
			}
			idx, err := c.U16()
			if err != nil {
				return TargetInfo{}, err
			}
			vars[i] = LocalVarTarget{StartPC: int(startPC), Length: int(length), Index: int(idx)}
		}
		return TargetInfo{Kind: TargetLocalVar, LocalVars: vars}, nil

	case 0x42: // catch_target
		idx, err := c.U16()
		return TargetInfo{Kind: TargetCatch, ExceptionTableIndex: idx}, err

	case 0x43, 0x44, 0x45, 0x46: // offset_target (instanceof, new, ctor ref, method ref)
		off, err := c.U16()
		return TargetInfo{Kind: TargetOffset, Offset: off}, err

	case 0x47, 0x48, 0x49, 0x4A, 0x4B: // type_argument_target
		off, err := c.U16()
		if err != nil {
			return TargetInfo{}, err
		}
		idx, err := c.U8()
		return TargetInfo{Kind: TargetTypeArgument, Offset: off, TypeArgumentIndex: idx}, err

	default:
		return TargetInfo{}, fmt.Errorf("unknown type annotation target_type 0x%02X", targetType)
	}
}

func readStackMapFrames(c *cursor.Cursor) ([]StackMapFrame, error) {
	n, err := c.U16()
	if err != nil {
		return nil, err
	}
	frames := make([]StackMapFrame, n)
	var pc int // running offset; the first frame's offset_delta is absolute
	for i := range frames {
		tag, err := c.U8()
		if err != nil {
			return nil, err
		}
		kind, ok := ClassifyFrameTag(tag)
		if !ok {
			return nil, &UnknownStackFrameTypeError{Tag: tag}
		}

		frame := StackMapFrame{Kind: kind, Tag: tag}

		switch kind {
		case FrameSame:
			pc = advanceFrameOffset(pc, i, int(tag))

		case FrameSameLocals1StackItem:
			item, err := readVerificationType(c)
			if err != nil {
				return nil, err
			}
			frame.Stack = []VerificationType{item}
			pc = advanceFrameOffset(pc, i, int(tag)-64)

		case FrameSameLocals1StackItemExtended:
			delta, err := c.U16()
			if err != nil {
				return nil, err
			}
			item, err := readVerificationType(c)
			if err != nil {
				return nil, err
			}
			frame.Stack = []VerificationType{item}
			pc = advanceFrameOffset(pc, i, int(delta))

		case FrameChop:
			delta, err := c.U16()
			if err != nil {
				return nil, err
			}
			frame.ChopCount = 251 - int(tag)
			pc = advanceFrameOffset(pc, i, int(delta))

		case FrameSameFrameExtended:
			delta, err := c.U16()
			if err != nil {
				return nil, err
			}
			pc = advanceFrameOffset(pc, i, int(delta))

		case FrameAppend:
			delta, err := c.U16()
			if err != nil {
				return nil, err
			}
			count := int(tag) - 251
			locals := make([]VerificationType, count)
			for j := range locals {
				if locals[j], err = readVerificationType(c); err != nil {
					return nil, err
				}
			}
			frame.Locals = locals
			pc = advanceFrameOffset(pc, i, int(delta))

		case FrameFull:
			delta, err := c.U16()
			if err != nil {
				return nil, err
			}
			localCount, err := c.U16()
			if err != nil {
				return nil, err
			}
			locals := make([]VerificationType, localCount)
			for j := range locals {
				if locals[j], err = readVerificationType(c); err != nil {
					return nil, err
				}
			}
			stackCount, err := c.U16()
			if err != nil {
				return nil, err
			}
			stack := make([]VerificationType, stackCount)
			for j := range stack {
				if stack[j], err = readVerificationType(c); err != nil {
					return nil, err
				}
			}
			frame.Locals = locals
			frame.Stack = stack
			pc = advanceFrameOffset(pc, i, int(delta))
		}

		frame.Offset = uint16(pc)
		frames[i] = frame
	}
	return frames, nil
}

// advanceFrameOffset folds a frame's offset_delta into the running bytecode
// offset: the first frame's offset is its delta verbatim, every later
// frame's offset is the previous frame's offset plus delta plus one.
func advanceFrameOffset(pc, frameIndex, delta int) int {
	if frameIndex == 0 {
		return delta
	}
	return pc + delta + 1
}

func readVerificationType(c *cursor.Cursor) (VerificationType, error) {
	tag, err := c.U8()
	if err != nil {
		return VerificationType{}, err
	}
	switch tag {
	case 0:
		return VerificationType{Kind: VerifyTop}, nil
	case 1:
		return VerificationType{Kind: VerifyInteger}, nil
	case 2:
		return VerificationType{Kind: VerifyFloat}, nil
	case 3:
		return VerificationType{Kind: VerifyDouble}, nil
	case 4:
		return VerificationType{Kind: VerifyLong}, nil
	case 5:
		return VerificationType{Kind: VerifyNull}, nil
	case 6:
		return VerificationType{Kind: VerifyUninitializedThis}, nil
	case 7:
		idx, err := c.U16()
		return VerificationType{Kind: VerifyObject, Index: idx}, err
	case 8:
		off, err := c.U16()
		return VerificationType{Kind: VerifyUninitialized, Index: off}, err
	default:
		return VerificationType{}, fmt.Errorf("unknown verification_type_info tag %d", tag)
	}
}
