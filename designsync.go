// Package designsync writes visually edited design values back into project
// source files.
//
// An Engine is bound to one project root. It scans the root for design
// tokens (CSS custom properties), shadow definitions (stylesheets, design-token
// files, Sass variables and framework presets) and keeps the result until
// Rescan. Edits arrive as a Request naming a file, a target and a new value;
// the Engine rewrites only the bytes of that value and writes the whole file
// back atomically.
//
// # Scanning
//
//	engine, err := designsync.New("path/to/app")
//	result, err := engine.Scan(ctx)
//	for _, name := range result.ShadowOrder {
//		fmt.Println(name, result.Shadows[name].Value)
//	}
//
// # Editing
//
//	resp, err := engine.Apply(ctx, designsync.Request{
//		FilePath:   "src/app.css",
//		Kind:       designsync.KindCSSVariable,
//		Identifier: "--shadow-md",
//		Value:      "0 4px 6px -1px rgb(0 0 0 / 0.1)",
//		Create:     true,
//	})
//
// Errors wrap the sentinels of internal/apperr (not found, ambiguous,
// invalid path, unparsable, invalid request); use errors.Is to branch on
// them. The sentinels are re-exported here.
package designsync

import "github.com/yacobolo/designsync/internal/apperr"

// Error sentinels returned by Engine methods.
var (
	ErrNotFound       = apperr.ErrNotFound
	ErrAmbiguous      = apperr.ErrAmbiguous
	ErrInvalidPath    = apperr.ErrInvalidPath
	ErrUnparsable     = apperr.ErrUnparsable
	ErrInvalidRequest = apperr.ErrInvalidRequest
)
