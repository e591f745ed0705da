// Package vfx decodes and encodes effect node graphs.
//
// A [Document] is an ordered list of typed nodes, the directed edges
// between them, and named variation tables that remap node indices. It has
// two forms:
//
//   - the binary .vfx form read by the engine
//   - an XML tree form meant for hand editing
//
// A [Codec] converts between the forms. It needs a [schema.Registry] to
// know the property layout of every node type and, optionally, dictionary
// tables that turn hashed strings and paths back into text.
//
// # Binary Layout
//
// All integers are little-endian:
//
//	"vfx" | version:u16 | nodeCount:u16 | edgeCount:u16 | variationCount:u16 | reserved:4
//	nodes:      typeHash:u64 | properties in schema order
//	edges:      source, target (u8 each below 255 nodes, u16 otherwise)
//	variations: name:u32 | pairCount:u32 | pairCount x (target:u16, new:u16)
//
// Header counts are always recomputed from the document on write.
//
// # Tree Layout
//
//	<vfx version="TPP">
//	  <nodes>
//	    <node class="Test">
//	      <property name="Value" type="uint32">
//	        <value>42</value>
//	      </property>
//	    </node>
//	  </nodes>
//	  <edges>
//	    <edge source="0" target="1"/>
//	  </edges>
//	  <variations>
//	    <variation name="7">
//	      <variationNodes targetNode="0" newNode="1"/>
//	    </variation>
//	  </variations>
//	</vfx>
//
// String and path codes render as dictionary text when the hash is known
// and as the decimal hash otherwise. On read, any code value that is not a
// decimal number is hashed, so hand-typed names survive without a
// dictionary entry.
//
// # Failure
//
// Reads either succeed completely or return an error and no document. A
// node type missing from the registry makes the rest of the binary
// undecodable, so it fails the whole read.
package vfx
