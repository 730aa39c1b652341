// Package mython implements an interpreter for Mython, a small
// indentation-structured dynamic language with the following constructs:
//   - Literals for signed integers, strings, True/False, and None.
//   - Variables and assignment; dotted field access on class instances.
//   - Arithmetic (+, -, *, /) and comparison (<, >, ==, !=, <=, >=)
//     expressions, with parentheses for grouping.
//   - Logical operators (and/or/not) over booleans, short-circuiting.
//   - `if`/`else` with two-space indented suites.
//   - User-defined classes with single inheritance, methods with an
//     implicit self, instance fields, and the __init__, __str__, __add__,
//     __eq__, and __lt__ dunder methods.
//   - `print`, `return` inside methods, and the `str(x)` builtin form.
//
// Comments beginning with `#` run to end of line. Indentation is exactly
// two spaces per level; the lexer synthesizes NEWLINE, INDENT, and DEDENT
// tokens from it. The interpreter enforces an optional step quota and a
// method recursion limit.
//
// The embedding surface is NewLexer → Parse → Execute for the pieces, or
// Engine.Compile and Script.Run for the usual path. Session adds a
// persistent scope for line-at-a-time evaluation.
package mython
