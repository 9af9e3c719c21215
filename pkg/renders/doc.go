// Package renders finds the latest rendered frames of every shot in a
// sequence folder.
//
// # Versioned Renders
//
// Render files follow the grammar
//
//	<base_name>.v<NNN>.<FFFF>.png
//
// where NNN is a three-digit version and FFFF a four-digit frame number.
// [LatestVersions] groups the files of one directory by base name and keeps
// only the highest version of each; every frame of that version survives.
//
// # Shot Resolution
//
// A [Walker] recognises shot work directories by their last two path
// segments:
//
//	<shot>/CMP/work/renders/*.png   composite department (preferred)
//	<shot>/LGT/work/renders/*.png   lighting department (fallback)
//
// Each composite work directory resolves independently: its own renders when
// it has any, otherwise those of the lighting sibling, never both.
//
//	w, err := renders.NewWalker(renders.Config{})
//	shots, err := w.Walk("/show/25_proj/sequences/SEQ010")
//	for _, s := range shots {
//	    fmt.Println(s.Dept, s.Path)
//	}
package renders
