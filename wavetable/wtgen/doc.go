// Package wtgen reads wtgen-1 documents and builds wavetables from them.
//
// A document is JSON of the form
//
//	{
//	  "schema": "wtgen-1",
//	  "program": {"nodes": [{"op": "spectralData", "p": {
//	    "codec": "harm-noise-framepack-v1",
//	    "data": "<base64 framepack>",
//	    "tableSize": 2048, "frames": 64,
//	    "harmonics": {"count": 64, "ampScale": 1},
//	    "noise": {"bands": 16, "dbRange": 60, "banding": {"loBin": 65, "hiBin": 1024}}
//	  }}]}
//	}
//
// Only the first program node is evaluated. Everything in "p" except codec
// and data is optional; present values are checked against the payload header.
package wtgen
