/*
 * Lagertha - a JVM class file toolchain
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classfile

// AccessFlags is the bitset carried by a class, field, or method. Which
// bits are meaningful depends on where the flags appear; all three
// locations share one representation per the JVM specification.
type AccessFlags uint16

const (
	AccPublic       AccessFlags = 0x0001
	AccPrivate      AccessFlags = 0x0002
	AccProtected    AccessFlags = 0x0004
	AccStatic       AccessFlags = 0x0008
	AccFinal        AccessFlags = 0x0010
	AccSuper        AccessFlags = 0x0020 // class: ACC_SUPER; method: ACC_SYNCHRONIZED shares this bit
	AccSynchronized             = AccSuper
	AccVolatile     AccessFlags = 0x0040 // field: ACC_VOLATILE; method: ACC_BRIDGE shares this bit
	AccBridge                   = AccVolatile
	AccTransient    AccessFlags = 0x0080 // field: ACC_TRANSIENT; method: ACC_VARARGS shares this bit
	AccVarargs                  = AccTransient
	AccNative       AccessFlags = 0x0100
	AccInterface    AccessFlags = 0x0200
	AccAbstract     AccessFlags = 0x0400
	AccStrict       AccessFlags = 0x0800
	AccSynthetic    AccessFlags = 0x1000
	AccAnnotation   AccessFlags = 0x2000
	AccEnum         AccessFlags = 0x4000
	AccModule       AccessFlags = 0x8000
)

func (f AccessFlags) Has(bit AccessFlags) bool { return f&bit != 0 }
