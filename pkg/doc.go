// Package pkg holds the vfxtool libraries.
//
// # Overview
//
// vfxtool converts VFX effect graphs between the engine's binary format
// (.vfx, versions GZ and TPP) and an editable XML tree. The libraries are
// layered bottom-up:
//
//  1. [hash] - string and path codes (CityHash64 with seeds)
//  2. [dictionary] - word lists turned into hash -> text tables
//  3. [schema] - node type definitions, one registry per version
//  4. [vfx] - the document model and the binary and tree codecs
//  5. [convert] - batch conversion, hash dumps and codec setup
//
// Supporting packages: [config] (TOML settings), [cache] (dictionary table
// cache), [errors] (coded errors), [observability] (conversion hooks),
// [render] (node-link diagrams of effect graphs) and [buildinfo].
//
// # Data Flow
//
//	definitions/ + dictionaries
//	         ↓
//	    [convert.LoadCodec] (registry, tables, hasher)
//	         ↓
//	    .vfx ⇄ [vfx.Document] ⇄ .vfx.xml
//
// # Quick Start
//
//	cfg, _ := config.Load("vfxtool.toml")
//	codec, _ := convert.LoadCodec(ctx, cfg, cache.NewNullCache(), nil)
//	doc, _ := codec.ReadBinary(data)
//	_ = codec.WriteTree(os.Stdout, doc)
package pkg
