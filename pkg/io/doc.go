// Package io provides JSON import and export for resolved shot lists.
//
// # Overview
//
// A shot list is the output of a scan: the latest render per shot and the
// department it came from. Exporting it lets a supervisor review, reorder or
// trim the selection before compositing, and re-render a sheet later from
// exactly the same files even after newer renders land.
//
// # JSON Format
//
//	{
//	  "sequence": "SEQ010",
//	  "shots": [
//	    {"path": "/mnt/p/SEQ010/sh010/CMP/work/renders/sh010.v003.0001.png", "dept": "CMP"},
//	    {"path": "/mnt/p/SEQ010/sh020/LGT/work/renders/sh020.v007.0001.png", "dept": "LGT"}
//	  ]
//	}
//
// "sequence" is optional. Each shot needs a non-empty "path"; "dept" may be
// omitted for renders without a department tag. Shot order is preserved.
//
// # Import
//
// Use [ImportJSON] to read a shot list from a file path, or [ReadJSON] to read
// from any io.Reader:
//
//	list, err := io.ImportJSON("shots.json")
//
// Both reject empty and duplicate paths.
//
// # Export
//
// Use [ExportJSON] to write a shot list to a file, or [WriteJSON] to write to
// any io.Writer.
package io
