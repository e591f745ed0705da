// Package dictionary recovers human-readable text for hashed identifiers.
//
// A [Table] maps a hash back to the word that produced it. Two kinds exist:
// [StringCode] tables key words with [hash.String], and [PathCode] tables key
// asset paths with the extension-aware [hash.Hasher.PathCode]. Tables are
// built once per run from word lists and are read-only afterwards, so they
// can be shared by every document without locking.
//
// # Building
//
// Every word hashes independently, so [Build] fans the work out over a
// bounded errgroup. Workers hash their share of the list and merge it into a
// single map under a mutex; [errgroup.Group.Wait] is the completion barrier
// after which the table is frozen.
//
// # Collisions
//
// When two different words share a hash, the word that appears first in the
// list wins. The outcome therefore does not depend on goroutine scheduling.
// [Table.Collisions] reports how many such words were dropped.
//
// # Lookup
//
// A miss from [Table.Lookup] means the caller renders the raw decimal hash
// instead. Dictionary text is a rendering aid only; hash identity is what
// round-trips.
//
// [errgroup.Group.Wait]: https://pkg.go.dev/golang.org/x/sync/errgroup#Group.Wait
package dictionary
