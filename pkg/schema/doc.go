// Package schema describes the property layout of effect node types.
//
// A node in a .vfx file is a type hash followed by its property values with
// no tags, lengths or separators, so nothing can be decoded without knowing
// the layout of the type. A [Definition] supplies that layout: an ordered
// list of [Property] descriptors, each with a [Type] and a fixed arity.
//
// Layouts differ between engine releases even for identically named types,
// so a [Registry] keeps one namespace per [Version]. A hash resolved in the
// GZ namespace says nothing about the TPP namespace.
//
// Definitions are usually loaded from one JSON or YAML file per type:
//
//	{
//	  "name": "FxColorNode",
//	  "properties": [
//	    {"name": "color", "type": "Vector4"},
//	    {"name": "keys", "type": "float", "arraySize": 4}
//	  ]
//	}
//
// Type names are resolved to the closed [Type] enum once at load time.
package schema
