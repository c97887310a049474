// Package dwr reads replies produced by Direct Web Remoting (DWR) endpoints.
//
// A DWR "plaincall" reply is a JavaScript snippet that hands an array literal
// to a callback:
//
//	//#DWR-REPLY
//	dwr.engine.remote.handleCallback("0","a",[{codrtn:6,nomrtn:"Restaurante Central",obscdp:null}]);
//
// Keys are unquoted and strings use JavaScript escapes, so the payload is not
// JSON. Parse extracts the objects between the first "[{" and the last "}]"
// and returns them as flat maps of decoded values. Null values are dropped.
package dwr
