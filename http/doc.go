// Package http serves the kvtodo resource API over HTTP.
//
// # Routes
//
// The resource segment "todos" is matched as the first path segment or
// behind a single prefix segment, so /todos and /v1/todos are equivalent.
// Segments after the id and the query string are ignored.
//
//	GET    /todos       list every item as a JSON array
//	POST   /todos       create an item from {"title": "..."}
//	PUT    /todos/{id}  write {"title": "..."} under id (upsert)
//	DELETE /todos/{id}  remove id
//
// Create, update and delete answer 200 with a short text/plain message.
// Unmatched paths and unsupported methods answer 404 with an empty body.
//
// # Errors
//
// Failures are JSON error responses produced by HandleError:
//
//	400 invalid_input   malformed body, missing title or invalid id
//	404 not_found       missing resource
//	500 internal_error  store or body read failure
//
// # Usage
//
//	handler := http.NewHandler(&http.HandlerConfig{
//	    Metrics: http.NewMetrics(prometheus.DefaultRegisterer),
//	}, service)
//	server := &nethttp.Server{Addr: ":5708", Handler: handler.Router()}
//
// The service parameter must implement the Service interface with List,
// Create, Update and Delete methods; kvtodo.TodoService does.
//
// # Middleware
//
// Router always installs chi's Recoverer so a panicking handler becomes a
// 500. Metrics.Middleware and CORS are added when configured.
package http
