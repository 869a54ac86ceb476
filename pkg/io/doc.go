// Package io provides JSON import and export for dependency graphs.
//
// # JSON Format
//
//	{
//	  "meta": {"run_id": "4f1c…", "root": "demo", "levels": 2, "optional": false},
//	  "nodes": [
//	    {"id": "demo", "url": "https://demo.rs"},
//	    {"id": "left", "url": "https://left.rs"}
//	  ],
//	  "edges": [
//	    {"from": "demo", "to": "left", "label": "depends", "req": "^1.0"}
//	  ]
//	}
//
// The run id is the one attached to the CLI's log lines, so an exported file
// can be matched to the run that produced it.
package io
