// Package binder fills request structs from HTTP requests.
//
// JSON decodes the body strictly (unknown fields rejected, 1 MB limit).
// Path copies router path parameters into string fields tagged `path:"name"`.
//
//	type setReasonRequest struct {
//	    Name   string `path:"chinese_name"`
//	    Reason string `path:"reason"`
//	}
//
//	handler.Wrap(h, handler.WithBinders(binder.Path(chi.URLParam)))
package binder
