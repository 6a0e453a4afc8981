// Package pipeline drives schematics against the asset server and entity
// tree. For every Input value discovery runs first, the discovered
// dependencies are handed to the server, and only then is the value
// constructed.
package pipeline
