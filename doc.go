// Package argot is a parser combinator library for command line
// arguments. Instead of scanning left to right, it tokenizes the whole
// command line into a shared pool and lets each parser consume tokens
// from anywhere in its scope, so options, arguments, and positionals
// compose freely and may appear in any order.
//
// Primitive parsers consume one kind of token: [Named.Switch] and
// [Named.Argument] for flags, [Positional] for bare words, [Command]
// for subcommands. Combinators build structure on top of them:
// [Construct] sequences parsers into a struct, [OrElse] and [Choice]
// resolve alternatives by speculative evaluation, [Many], [Optional],
// and [Fallback] handle repetition and absence, [Adjacent] and
// [Anywhere] narrow where a group of tokens may sit.
//
// A finished parser is wrapped by [New] into an [Invoker], which adds
// the --help and --version handling and the top level error reporting:
//
//	speed := argot.Long("speed").Alias('s').
//		Help("cruising speed").Argument("SPEED")
//	opts := argot.New(argot.Fallback[string](speed, "10"),
//		argot.WithProgName("demo"),
//	).Run()
//
// When two alternatives both succeed, the one that consumed the
// earliest token wins, and tokens consumed only by the loser are
// reported as conflicts rather than generic parse failures.
package argot
