// Package lang evaluates documents of time expressions, one expression per
// line.
//
// Each line evaluates to a timestamp (Unix seconds), a duration
// (milliseconds), a UTC offset directive, or nothing. Lines may refer back to
// earlier lines, and an offset directive changes the time zone that later
// date-time literals are read in and displayed with.
//
// # Grammar
//
// Informal EBNF, alternatives tried left to right:
//
//	Expression   → Atom ( _ ('+' | '-') _ Atom )*
//	Atom         → '(' _ Expression _ ')' | Durations | Timestamp | Reference
//	Durations    → Term Term*
//	Term         → Number 's' End | Number 'm' End | Number 'h' End
//	             | Number 'd' | Number "ms" End
//	Timestamp    → '-' Number End | Number End | DateTime | "now"
//	DateTime     → "'" YYYY '-'+ MM '-'+ DD ' '+ hh ':'+ mm ':'+ ss "'"
//	             | "'" YYYY '-'+ MM '-'+ DD 'T'+ hh ':'+ mm ':'+ ss "'"
//	             | "'" YYYY '/'+ MM '/'+ DD ' '+ hh ':'+ mm ':'+ ss "'"
//	Reference    → '#'+ Digit+
//	Number       → Digit+ ( '.' Digit* )?
//	End          → not followed by an ASCII letter
//	_            → ' '*
//
// A line that is not an expression may be an offset directive, "#UTC+N" or
// "#UTC-N" with N at most 23.
//
// # Arithmetic
//
// The kind of a sum or difference depends on its operands:
//
//	duration  ± duration  → duration
//	timestamp ± duration  → timestamp
//	duration  + timestamp → timestamp
//	duration  - timestamp → timestamp (duration seconds minus timestamp)
//	timestamp ± timestamp → duration  (seconds)
//
// Adjacent duration terms add, so "4h5m30s" equals "4h + 5m + 30s". Anything
// involving an offset or nothing, and any overflow, evaluates to nothing.
//
// # Example
//
//	#UTC+2                       UTC+2
//	'2024-03-01 09:00:00'        2024-03-01 09:00:00+02:00
//	#2 + 1d12h                   2024-03-02 21:00:00+02:00
//	#3 - #2                      1d12h
//	#9 + 1s                      ...
package lang
