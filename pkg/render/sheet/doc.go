// Package sheet rasterizes a contact sheet from loaded thumbnails.
//
// Rendering is a two-step process:
//
//	res, err := sheet.LoadThumbnails(shots, 200, sheet.PolicySkip, logger)
//	img, plan, err := sheet.Render(res.Thumbnails, sheet.Options{
//	    Title:   "Contact Sheet for SEQ010",
//	    Labeled: true,
//	})
//	data, err := sheet.EncodeJPEG(img, 95)
//
// Thumbnails are loaded once and can be rendered repeatedly, which is how the
// pipeline produces the unlabeled and labeled sheets from one decode pass.
//
// # Text
//
// Text colour is black or white depending on the background luminance. The
// title is centred using the ink bounds of the rendered string. Labels read
// <shot>_<dept>_v<NNN> and sit in the top-left corner of each cell's column.
// Fonts come from a [fonts.Resolver], which never fails.
package sheet
