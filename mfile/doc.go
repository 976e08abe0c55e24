// Package mfile loads NT-MDT NOVA ".m" exports into named numeric arrays.
//
// NOVA's "Export to .m" writes one assignment per line using a small subset
// of the MATLAB/Octave array syntax:
//
//	X = [236227.1094 241782.6650 247338.2207];
//	M = [1 2 ;3 4 ];
//	Map = zeros(3,3,2);
//	Map(:,:,1) = [0 2 4 ;6 8 10 ;12 14 16 ];
//
// A row literal with a single row binds a [Vector]; several rows bind a
// [Matrix]. A zeros declaration with three dimensions allocates a [Tensor],
// whose planes are then filled one at a time by slice assignments. The plane
// index in the source is 1-based.
//
// Each line is parsed into a [Statement] and folded into a [Dataset] by an
// [Assembler]. [LoadFile], [LoadReader], and [LoadString] drive the whole
// pipeline:
//
//	ds, err := mfile.LoadFile(ctx, "scan.m")
//	if err != nil {
//		return err
//	}
//
//	spec, err := ds.Spectrum(0, 0)
//
// Loading is all-or-nothing: the first malformed statement aborts the load
// with a [*LineError] carrying the line number, and no partial dataset is
// returned.
//
// # Grammar
//
//	Statement → Target '=' Value [';'] [Comment]
//	Target    → Identifier [ '(' ':' ',' ':' ',' Integer ')' ]
//	Value     → "zeros" '(' Integer { ',' Integer } ')' | Literal
//	Literal   → '[' Row { ';' Row } [';'] ']'
//	Comment   → "//" ... | '%' ...
//
// Values inside a row are separated by exactly one space and are written in
// fixed-point decimal notation. Lines that are blank, a single character
// long, or start with a comment are skipped.
//
// # Datasets
//
// A [Dataset] is read-only once returned. Besides typed lookups it offers
// accessors for the names the exporter uses ([NameX], [NameY], [NameMap],
// [NameWavelength], [NameRamanShift]), serialization back to ".m" syntax,
// JSON, and YAML, and expression evaluation with expr-lang:
//
//	v, err := ds.Evaluate(ctx, `max(spectrum(0, 0))`)
package mfile
