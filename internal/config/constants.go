// Package config holds platform and file-format constants shared across
// the datashape type system, its parser, and its registry.
package config

import "strconv"

// Version is the current library version.
var Version = "0.1.0"

const SourceFileExt = ".ndt"

// SourceFileExtensions are all recognized datashape source file extensions.
var SourceFileExtensions = []string{".ndt", ".datashape"}

// TrimSourceExt removes any recognized source extension from a filename.
// Returns the original string if no extension matches.
func TrimSourceExt(name string) string {
	for _, ext := range SourceFileExtensions {
		if len(name) >= len(ext) && name[len(name)-len(ext):] == ext {
			return name[:len(name)-len(ext)]
		}
	}
	return name
}

// HasSourceExt returns true if the path ends with any recognized source extension.
func HasSourceExt(path string) bool {
	for _, ext := range SourceFileExtensions {
		if len(path) >= len(ext) && path[len(path)-len(ext):] == ext {
			return true
		}
	}
	return false
}

// IsTestMode marks that the library is exercising its own test suite.
// It is false by default and no package in this module reads it.
var IsTestMode = false

// PointerSize is the target's pointer width in bytes. strconv.IntSize
// reports the platform int width (32 or 64), which on every supported Go
// target matches the pointer width; there is no portable pointer-width
// query in the standard library that doesn't involve unsafe.Sizeof on a
// concrete pointer type, and this avoids pulling unsafe into a package
// that otherwise has no use for it.
const PointerSize = strconv.IntSize / 8

// PointerAlign is the alignment of a machine pointer, equal to its size
// on every platform Go targets.
const PointerAlign = PointerSize

// Encoding unit sizes in bytes, keyed by the encoding names used in §3.1.
const (
	UnitAscii = 1
	UnitUtf8  = 1
	UnitUtf16 = 2
	UnitUcs2  = 2
	UnitUtf32 = 4
)

// Scalar sizes and alignments, in bytes. Both are equal for every
// primitive scalar except void (size 0, align 1) and complex, where
// alignment is half the size (matching the real/imaginary component
// width).
const (
	SizeVoid  = 0
	SizeBool  = 1
	SizeInt8  = 1
	SizeInt16 = 2
	SizeInt32 = 4
	SizeInt64 = 8

	SizeUint8  = 1
	SizeUint16 = 2
	SizeUint32 = 4
	SizeUint64 = 8

	SizeFloat16 = 2
	SizeFloat32 = 4
	SizeFloat64 = 8

	SizeComplex64  = 8
	SizeComplex128 = 16

	AlignComplex64  = 4
	AlignComplex128 = 8
)

// Platform alias names registered by the typedef registry's init().
const (
	AliasSize    = "size"
	AliasIntptr  = "intptr"
	AliasUintptr = "uintptr"
)
