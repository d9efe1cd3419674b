/*
 * Lagertha - a JVM class file toolchain
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classfile

import "fmt"

// WrongMagicError reports a file not beginning with 0xCAFEBABE.
type WrongMagicError struct{ Got uint32 }

func (e *WrongMagicError) Error() string {
	return fmt.Sprintf("wrong magic: got 0x%08X, want 0xCAFEBABE", e.Got)
}

// TrailingBytesError reports unconsumed bytes after a structurally complete
// class file.
type TrailingBytesError struct{ Remaining int }

func (e *TrailingBytesError) Error() string {
	return fmt.Sprintf("%d trailing byte(s) after class file", e.Remaining)
}

// UnknownTagError reports a constant-pool tag byte outside the known set.
type UnknownTagError struct{ Tag uint8 }

func (e *UnknownTagError) Error() string {
	return fmt.Sprintf("unknown constant pool tag %d", e.Tag)
}

// UnknownAttributeError reports an attribute name not recognised at its
// location (field, method, class, or code).
type UnknownAttributeError struct {
	Name     string
	Location string
}

func (e *UnknownAttributeError) Error() string {
	return fmt.Sprintf("unknown attribute %q at %s", e.Name, e.Location)
}

// AttributeIsNotSharedError reports an attribute name recognised only as a
// location-specific variant being dispatched through the shared path, or
// vice versa.
type AttributeIsNotSharedError struct{ Name string }

func (e *AttributeIsNotSharedError) Error() string {
	return fmt.Sprintf("attribute %q is not a shared attribute kind", e.Name)
}

// DuplicatedAttributeError reports an attribute name that is only allowed
// once per method/field but appeared more than once.
type DuplicatedAttributeError struct{ Name string }

func (e *DuplicatedAttributeError) Error() string {
	return fmt.Sprintf("duplicated attribute %q", e.Name)
}

// CodeAttrIsAmbiguousForNativeError reports a native or abstract method
// carrying a Code attribute, which the JVM specification forbids.
type CodeAttrIsAmbiguousForNativeError struct{ MethodName string }

func (e *CodeAttrIsAmbiguousForNativeError) Error() string {
	return fmt.Sprintf("method %q is native or abstract but declares a Code attribute", e.MethodName)
}

// UnknownStackFrameTypeError reports a stack-map frame tag byte with no
// defined variant.
type UnknownStackFrameTypeError struct{ Tag uint8 }

func (e *UnknownStackFrameTypeError) Error() string {
	return fmt.Sprintf("unknown stack map frame type %d", e.Tag)
}

// InvalidMethodHandleKindError reports a MethodHandle constant whose
// reference_kind is outside 1..=9.
type InvalidMethodHandleKindError struct{ Kind uint8 }

func (e *InvalidMethodHandleKindError) Error() string {
	return fmt.Sprintf("invalid method handle reference_kind %d", e.Kind)
}

// InvalidFieldDescriptorError reports a field_info descriptor_index whose
// Utf8 value is not a syntactically valid field descriptor.
type InvalidFieldDescriptorError struct {
	Descriptor string
	Err        error
}

func (e *InvalidFieldDescriptorError) Error() string {
	return fmt.Sprintf("invalid field descriptor %q: %s", e.Descriptor, e.Err)
}

func (e *InvalidFieldDescriptorError) Unwrap() error { return e.Err }

// InvalidMethodDescriptorError reports a method_info descriptor_index whose
// Utf8 value is not a syntactically valid method descriptor.
type InvalidMethodDescriptorError struct {
	Descriptor string
	Err        error
}

func (e *InvalidMethodDescriptorError) Error() string {
	return fmt.Sprintf("invalid method descriptor %q: %s", e.Descriptor, e.Err)
}

func (e *InvalidMethodDescriptorError) Unwrap() error { return e.Err }

// InvalidSignatureError reports a Signature attribute whose Utf8 payload is
// not a syntactically well-formed generic signature.
type InvalidSignatureError struct {
	Err error
}

func (e *InvalidSignatureError) Error() string { return e.Err.Error() }
func (e *InvalidSignatureError) Unwrap() error { return e.Err }
