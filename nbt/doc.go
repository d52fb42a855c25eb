// Package nbt decodes binary tag trees and provides fallible navigation
// over the result.
//
// A tree is a closed union of thirteen tag types identified by a single
// byte on the wire: TAG_End through TAG_LongArray (ids 0 through 12). All
// multi-byte fields are big-endian. Trees are immutable once decoded.
//
// # Core Types
//
// **Decoder**: Reads trees from an io.Reader
//   - DecodeRoot: Decodes a complete named tree (type byte, name, payload)
//   - DecodeValue: Decodes one unnamed value (type byte, payload)
//   - DecodeTypedValue: Decodes a payload whose type is supplied by the caller
//
// **Tag**: One immutable node of a decoded tree
//   - Scalar accessors: AsInt8 through AsFloat64, AsString
//   - Container accessors: AsByteArray, AsList, AsCompound, AsIntArray, AsLongArray
//   - Navigation: Key for compound entries, Index for list elements
//
// **Result**: The outcome of a navigation step, carrying either a tag or
// the error that ended the chain. It offers the same accessors as Tag.
//
// # Navigation Workflow
//
// Key and Index return Result, so lookups chain without intermediate error
// checks and the first failing step decides the outcome:
//
//	name, root, err := nbt.DecodeRoot(bytes.NewReader(data))
//	if err != nil {
//	    return err
//	}
//
//	zPos, err := root.Key("Level").Key("zPos").AsInt32()
//
// Every accessor failure wraps a sentinel from the errs package, so callers
// classify outcomes with errors.Is:
//
//	if errors.Is(err, errs.ErrKeyNotFound) { ... }
//
// # Failure Model
//
// Decoding is atomic: any I/O underrun, unknown tag type byte, invalid
// UTF-8 string or negative array length aborts the decode and no partial
// tree is returned. Accessors never panic; a mismatched access reports the
// requested type and out-of-range lookups report the offending key or
// index.
package nbt
