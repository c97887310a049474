// Package config loads and validates the bandex configuration file.
//
// The configuration lists the restaurants to show, with their display
// colors, and the foods the user likes or dislikes:
//
//	bandex:
//	  restaurants:
//	    - id: 6
//	      color: blue
//	    - id: 8
//	      color: [187, 35, 51]
//	  foods:
//	    liked:
//	      - strogonoff
//	      - feijoada: [6, 8]
//	    disliked:
//	      - fígado
//
// Files are YAML; JSON documents are accepted as well. A file may hold
// several YAML documents: the bandex sections of all of them are merged in
// order and documents without a bandex key are ignored.
//
// The file is located by Resolve, in order of precedence:
//
//  1. the path given on the command line
//  2. the BANDEX_CONFIG_FILE environment variable
//  3. <user config dir>/bandex/config.yaml, when it exists
//  4. the built-in defaults (see Default)
//
// Loaded configurations are validated with Validate, which reports every
// violation at once. Schema returns the equivalent JSON Schema.
package config
