// Package webformapi exposes the webform adapter over HTTP.
//
// Routes, relative to the base path passed to RegisterRoutes:
//
//	GET  /{webform_id}/elements  vue-form-generator payload
//	POST /submit                 forward a submission
//	GET  /{webform_id}/preview   HTML preview (only when a Previewer is set)
//
// Failures are written as {"error": {"code": "<status>", "message": "..."}};
// validation failures keep status 200 and carry the field messages under
// "error".
package webformapi
