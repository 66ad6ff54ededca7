// Package token converts raw command-line arguments into classified tokens.
//
// Classification happens exactly once, before any parser runs. Each raw
// argument becomes one or more [Token] values:
//
//   - "--name" and "--name=value" become [Long] flags, the attached value
//     splitting off into a trailing [Word];
//   - "-c" becomes a [Short] flag, and "-c=value" a [Short] flag with its
//     value split off the same way;
//   - a bundled short form such as "-abc" is resolved against the caller's
//     known flag letters and known value-taking letters (see [Tokenize]);
//   - "--" switches every subsequent argument to [PosWord], including ones
//     that look like flags;
//   - anything else is a [Word].
//
// The only error this package can produce is [AmbiguityError]: a bundled
// short form that reads both as a run of flags and as a flag with an
// attached value. Classification stops at the offending argument.
package token
