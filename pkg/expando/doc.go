/*
Package expando renders %-directive templates into fixed-capacity,
column-aware text for terminal status lines.

A template is scanned left to right. Literal text is copied through a
width helper so multi-byte characters are never split, and each
%-directive is resolved by a caller-supplied callback or by the built-in
padding and justification logic. Output respects two budgets at once: a
byte capacity (maxLen, of which one byte stays reserved for a string
terminator) and a display-column count. When either runs out the scan
truncates instead of overflowing.

# Directives

	%%          a literal percent sign
	%x          replacement text for directive character x
	%5x %-5x    right/left pad the replacement to 5 columns
	%.3x %5.3x  cap the replacement at 3 columns
	%_x %:x     lowercase the replacement / replace '.' with '_'
	%<x?if>     render "if" when x is present
	%<x?if&else>render "if" when present, "else" otherwise
	%?x?if&else? legacy spelling of the same conditional
	%>c         right-justify the rest of the line, filling with c
	%*c         like %>c, but the right side wins when space is short
	%|c         fill with c to the end of the line

\n, \t, \r, \f and \v escapes are interpreted outside directives; any
other escaped character is copied literally.

# Conditionals

Branches nest: a branch may contain further %< conditionals, tracked by
depth, and a literal %> fill directive inside a branch passes through
uninterpreted. What a directive character means, and whether it counts
as present, is entirely up to the callback; the engine only parses the
branches and hands them over.

# Filters

A template ending in an unescaped '|' is not scanned at all. It is
split into shell words, each word is itself rendered (with filtering
disabled), the rendered words are single-quoted and joined, and the
resulting command line runs through /bin/sh. The command's output,
minus trailing newlines, becomes the render result. If that output ends
in a single unescaped '%', it is re-rendered as a new template, so
filter commands can emit directives of their own; output ending in '%%'
stays literal.

# Errors

Rendering never fails. Malformed input truncates at the point of
failure, an overfull budget truncates at a character boundary, and a
filter that cannot be spawned or read contributes an empty string and a
log event. Check inspects a template ahead of time and reports the
constructs rendering would stop at.
*/
package expando
