// Package hash implements the engine's naming hashes.
//
// Effect files never store names. Node types, string codes and asset paths
// are all referenced by hash, so every lookup in vfxtool starts here:
//
//   - [String] is the 48-bit StrCode hash. It identifies node types in the
//     schema registry and keys the string dictionary.
//   - [FileName] is the 50-bit file-name hash used inside path codes.
//   - [Hasher.PathCode] combines a file-name hash with the type id of the
//     file extension to form the 64-bit PathCode stored in node properties.
//
// All functions are pure and safe for concurrent use. A [Hasher] is
// immutable after construction.
//
// # Example
//
//	key := hash.String("FxColorNode")
//	h := hash.NewHasher(map[string]uint64{"ftex": 1})
//	code := h.PathCode("/Assets/tpp/fx/texture/smoke.ftex")
package hash
