// Package schema provides the declarative definitions compiled into
// schematics, their YAML and JSON encodings, and structural validation.
//
// A definition file has the following structure:
//
//	version: "1"
//	schemas:
//	  - name: Shape
//	    input: ShapeInput         # optional, defaults to <name>Input
//	    variants:
//	      - name: Empty           # kind inferred: no fields -> unit
//	      - name: Circle
//	        kind: positional
//	        fields:
//	          - type: float32     # passthrough
//	      - name: Sprite
//	        fields:
//	          - type: Image
//	            asset: true       # runtime AssetPath/HandleID union
//	      - name: Icon
//	        kind: named
//	        fields:
//	          - name: image
//	            type: Image
//	            asset: { path: icons/default.png, preload: true }
//	          - name: target
//	            type: Entity
//	            entity: ../target # literal entity path
//	          - name: owner
//	            type: Entity
//	            entity: true      # runtime EntityAccess
//	          - name: color
//	            type: Color
//	            from: ColorInput  # user conversion from ColorInput
//
// # Attribute shorthands
//
// "asset" accepts true (runtime union), a string (literal path) or a mapping
// with "path" and "preload". "entity" accepts true (runtime address), a
// string (literal path) or a mapping with "path". Preload defaults to true.
//
// # Kind inference
//
// When "kind" is omitted it is inferred: no fields means unit, any named
// field means named, otherwise positional.
//
// Validation here is structural only (names, duplicates, kinds). Policy
// attributes are checked by the policy resolver, which is the single
// authority on field policies.
package schema
