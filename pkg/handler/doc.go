// Package handler provides typed HTTP handlers: a request struct is bound
// from the incoming request, passed to a HandlerFunc, and the returned
// Response renders itself.
//
//	type addRequest struct {
//	    Address string `json:"address"`
//	}
//
//	h := handler.HandlerFunc[addRequest](func(ctx handler.Context, req addRequest) handler.Response {
//	    if err := svc.AddRecipient(req.Address); err != nil {
//	        return handler.Error(err)
//	    }
//	    return handler.JSON(req, handler.WithStatus(http.StatusCreated))
//	})
//
//	r.Post("/recipients", handler.Wrap(h, handler.WithBinders(binder.JSON())))
//
// Binding failures and errors returned from Render go to the ErrorHandler.
// The default one writes a JSON error envelope; HTTPError sets the status.
package handler
