// Package conv provides value coercion for cells of unknown representation.
// Scalar helpers (ToBool, ToSigned, ToUnsigned, ToFloat, ToTime, ToString) are range checked;
// Converter is a reflection-based fallback for slices, maps, structs and convertible types.
package conv
